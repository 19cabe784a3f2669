// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"strings"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	// Clear environment and set only required var
	os.Clearenv()
	setEnv(t, "SCMS_SESSION_SECRET", "test-secret-key-32-bytes-long!!!")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Check defaults
	if cfg.DBPath != "./data/scms.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/scms.db")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.ImagesDir != "./public/images" {
		t.Errorf("ImagesDir = %q, want %q", cfg.ImagesDir, "./public/images")
	}
	if cfg.DoSeed {
		t.Error("DoSeed = true, want false by default")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	customSecret := "custom-secret-key-32-bytes-long!"
	setEnv(t, "SCMS_SESSION_SECRET", customSecret)
	setEnv(t, "SCMS_DB_PATH", "/custom/path.db")
	setEnv(t, "SCMS_SERVER_HOST", "0.0.0.0")
	setEnv(t, "SCMS_SERVER_PORT", "3001")
	setEnv(t, "SCMS_ENV", "production")
	setEnv(t, "SCMS_LOG_LEVEL", "debug")
	setEnv(t, "SCMS_DO_SEED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.SessionSecret != customSecret {
		t.Errorf("SessionSecret = %q, want %q", cfg.SessionSecret, customSecret)
	}
	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/custom/path.db")
	}
	if cfg.ServerHost != "0.0.0.0" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "0.0.0.0")
	}
	if cfg.ServerPort != 3001 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 3001)
	}
	if !cfg.DoSeed {
		t.Error("DoSeed = false, want true")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() succeeded without SCMS_SESSION_SECRET")
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "SCMS_SESSION_SECRET", "too-short")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() accepted a short session secret")
	}
	if !strings.Contains(err.Error(), "32 bytes") {
		t.Errorf("error %q does not mention minimum length", err)
	}
}

func TestLoad_WeakSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "SCMS_SESSION_SECRET", "change-me-to-32-byte-secret-key!")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted a known weak secret")
	}
}

func TestServerAddr(t *testing.T) {
	cfg := Config{ServerHost: "example.com", ServerPort: 9090}
	if got := cfg.ServerAddr(); got != "example.com:9090" {
		t.Errorf("ServerAddr() = %q, want %q", got, "example.com:9090")
	}
}

func TestIsDevelopment(t *testing.T) {
	if !(Config{Env: "development"}).IsDevelopment() {
		t.Error("development env not detected")
	}
	if (Config{Env: "production"}).IsDevelopment() {
		t.Error("production env reported as development")
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"abcdefgh", false},
		{"abcdEFGH", false},
		{"abcdEFGH1234", true},
		{"abcd1234!!!!", true},
		{"ALLUPPERCASE", false},
	}

	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.secret); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
		}
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLoginProtection_AccountLockout(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		MaxFailedAttempts: 3,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})

	if locked, _ := lp.IsAccountLocked("alice"); locked {
		t.Fatal("fresh account should not be locked")
	}

	lp.RecordFailedAttempt("alice")
	lp.RecordFailedAttempt("alice")
	if locked, _ := lp.IsAccountLocked("alice"); locked {
		t.Fatal("account locked before reaching the threshold")
	}

	locked, duration := lp.RecordFailedAttempt("alice")
	if !locked {
		t.Fatal("third failure should lock the account")
	}
	if duration != time.Minute {
		t.Errorf("lock duration = %v, want %v", duration, time.Minute)
	}

	if locked, remaining := lp.IsAccountLocked("alice"); !locked || remaining <= 0 {
		t.Errorf("IsAccountLocked = (%v, %v), want locked with time remaining", locked, remaining)
	}
}

func TestLoginProtection_SuccessClearsAttempts(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{MaxFailedAttempts: 3})

	lp.RecordFailedAttempt("alice")
	lp.RecordFailedAttempt("alice")
	lp.RecordSuccessfulLogin("alice")

	if got := lp.GetRemainingAttempts("alice"); got != 3 {
		t.Errorf("GetRemainingAttempts = %d, want 3", got)
	}
}

func TestLoginProtection_RemainingAttempts(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{MaxFailedAttempts: 5})

	if got := lp.GetRemainingAttempts("bob"); got != 5 {
		t.Errorf("GetRemainingAttempts = %d, want 5", got)
	}
	lp.RecordFailedAttempt("bob")
	lp.RecordFailedAttempt("bob")
	if got := lp.GetRemainingAttempts("bob"); got != 3 {
		t.Errorf("GetRemainingAttempts = %d, want 3", got)
	}
}

func TestLoginProtection_Middleware(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit: 1,
		IPBurst:     2,
	})

	ok := 0
	h := lp.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok++
	}))

	// GET requests are never limited
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/authentication", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %d: status = %d, want %d", i, rec.Code, http.StatusOK)
		}
	}

	// POST burst of 2 passes, the third is throttled
	limited := false
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/authentication", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		h.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			limited = true
		}
	}
	if !limited {
		t.Error("third rapid POST should be rate limited")
	}
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "192.0.2.1:5000"
	if got := GetClientIP(req); got != "192.0.2.1:5000" {
		t.Errorf("GetClientIP = %q, want RemoteAddr", got)
	}

	req.Header.Set("X-Forwarded-For", "198.51.100.2")
	if got := GetClientIP(req); got != "198.51.100.2" {
		t.Errorf("GetClientIP = %q, want X-Forwarded-For value", got)
	}

	req.Header.Set("X-Real-IP", "203.0.113.3")
	if got := GetClientIP(req); got != "203.0.113.3" {
		t.Errorf("GetClientIP = %q, want X-Real-IP value", got)
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version carries the build identity stamped into the scms binary
// through -ldflags at release time.
package version

import "fmt"

// Info identifies a build of the server.
type Info struct {
	Version   string // git tag, "dev" on untagged builds
	GitCommit string // short commit hash
	BuildTime string // RFC3339 timestamp of the build
}

// String renders the identity the way the -version flag prints it.
func (i Info) String() string {
	return fmt.Sprintf("scms %s (commit: %s, built: %s)", i.Version, i.GitCommit, i.BuildTime)
}

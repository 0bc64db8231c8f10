// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// AppBuildInfo is the metadata injected with -ldflags at build time.
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{version: version, date: date, commit: commit}
}

// BuildVersion is the version reported by /api/version when the
// configuration does not set one.
func (a AppBuildInfo) BuildVersion() string {
	return a.version
}

// String renders the start-up banner; missing values print as N/A.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s\n",
		orNA(a.version), orNA(a.date), orNA(a.commit))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

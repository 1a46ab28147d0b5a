// workflow-activities-pdf - workflow activities for manipulating PDF files
// Copyright (C) 2025  The workflow-activities-pdf authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package buildinfo reports the version of a command line tool.
package buildinfo

import (
	"runtime/debug"
	"strings"
)

// Short returns a short version string for a CLI tool, e.g.
// "pdf-activity (github.com/vertigis/workflow-activities-pdf v0.1.0)".
func Short(toolName string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return toolName
	}
	v := mainVersion(info)
	if v == "" {
		return toolName
	}
	return toolName + " (" + info.Main.Path + " " + v + ")"
}

// Long returns the short version string, followed by the Go version and
// the versions of the PDF libraries the tool was built with.
func Long(toolName string) string {
	b := &strings.Builder{}
	b.WriteString(Short(toolName))

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b.String()
	}
	b.WriteString("\n  go " + strings.TrimPrefix(info.GoVersion, "go"))
	for _, dep := range info.Deps {
		if !strings.HasPrefix(dep.Path, "seehuhn.de/go/") {
			continue
		}
		if dep.Replace != nil {
			dep = dep.Replace
		}
		b.WriteString("\n  " + dep.Path + " " + dep.Version)
	}
	return b.String()
}

// mainVersion returns the module version of the main module, or the
// abbreviated VCS revision for development builds.
func mainVersion(info *debug.BuildInfo) string {
	version := info.Main.Version
	if version != "" && version != "(devel)" {
		return version
	}

	var rev string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if len(rev) > 8 {
		rev = rev[:8]
	}
	if rev != "" && dirty {
		rev += "+dirty"
	}
	return rev
}

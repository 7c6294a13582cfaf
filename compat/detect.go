package compat

import (
	"log/slog"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// LibraryVersion is the version string of the model generation linked into
// this binary. Build with -tags modelv1 to link the first generation.
var LibraryVersion = linkedVersion

// IsV2 reports whether the linked generation is v2. It is computed once.
var IsV2 = IsV2Version(LibraryVersion)

// Default is the Adapter for the linked generation.
var Default = ForVersion(LibraryVersion)

// IsV2Version reports whether a library version string names generation 2.
// Unparseable strings fall back to a "2." prefix match.
func IsV2Version(v string) bool {
	sv, err := semver.NewVersion(v)
	if err != nil {
		slog.Debug("compat: unparseable library version, using prefix match", "version", v, "error", err)
		return strings.HasPrefix(strings.TrimPrefix(v, "v"), "2.")
	}
	return sv.Major() == 2
}

// ForVersion returns the Adapter matching a library version string.
func ForVersion(v string) Adapter {
	if IsV2Version(v) {
		return Current()
	}
	return Legacy()
}

package domain

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is the parsed form of a recorded project version. It is a value
// type: Bump and WithExtras return copies and never mutate the receiver.
type Version struct {
	Major      uint64
	Minor      uint64
	Patch      uint64
	Prerelease string
	Metadata   string
}

// Parse parses a version string into a Version. Strings carrying a leading
// "v" are rejected outright; the recorded form never uses the prefix.
func Parse(s string) (Version, error) {
	if strings.HasPrefix(s, "v") {
		return Version{}, fmt.Errorf("%w: %q starts with 'v', remove it before proceeding", ErrInvalidFormat, s)
	}
	parsed, err := semver.StrictNewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalidFormat, s, err)
	}
	return Version{
		Major:      parsed.Major(),
		Minor:      parsed.Minor(),
		Patch:      parsed.Patch(),
		Prerelease: parsed.Prerelease(),
		Metadata:   parsed.Metadata(),
	}, nil
}

// String renders the version in its canonical recorded form. Round-trips
// with Parse for every value Parse or Bump can produce.
func (v Version) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		b.WriteByte('-')
		b.WriteString(v.Prerelease)
	}
	if v.Metadata != "" {
		b.WriteByte('+')
		b.WriteString(v.Metadata)
	}
	return b.String()
}

// Equal reports whether all five fields match.
func (v Version) Equal(other Version) bool {
	return v == other
}

// Less orders versions by raw byte comparison of their formatted strings.
// This is deliberately not semver precedence ("1.10.0" sorts before "1.9.0");
// the recorded behavior is part of the tool's contract.
func (v Version) Less(other Version) bool {
	return v.String() < other.String()
}

// Bump returns a copy with exactly one component incremented. The other two
// components are left unchanged; there is no cascade reset. When clearExtras
// is set the copy drops prerelease and metadata regardless of kind.
func (v Version) Bump(kind BumpKind, clearExtras bool) (Version, error) {
	out := v
	switch kind {
	case BumpMajor:
		out.Major++
	case BumpMinor:
		out.Minor++
	case BumpPatch:
		out.Patch++
	default:
		return Version{}, fmt.Errorf("%w: %d", ErrUnknownBumpKind, int(kind))
	}
	if clearExtras {
		out.Prerelease = ""
		out.Metadata = ""
	}
	return out, nil
}

// ValidateExtras checks candidate prerelease and metadata values against the
// identifier grammar (dot-separated alphanumerics and hyphens, no leading
// "v") before they are applied to a version.
func ValidateExtras(prerelease, metadata string) error {
	for _, value := range []string{prerelease, metadata} {
		if strings.HasPrefix(value, "v") {
			return fmt.Errorf("%w: %q starts with 'v', remove it before proceeding", ErrInvalidFormat, value)
		}
	}
	// The candidate must parse back into the exact same fields; a stray
	// separator would otherwise shift content between prerelease and metadata.
	candidate := Version{Prerelease: prerelease, Metadata: metadata}
	parsed, err := Parse(candidate.String())
	if err != nil || !parsed.Equal(candidate) {
		return fmt.Errorf("%w: prerelease %q, metadata %q", ErrInvalidFormat, prerelease, metadata)
	}
	return nil
}

// WithExtras returns a copy with prerelease and metadata replaced.
func (v Version) WithExtras(prerelease, metadata string) Version {
	out := v
	out.Prerelease = prerelease
	out.Metadata = metadata
	return out
}

// HasExtras reports whether the version carries prerelease or metadata.
func (v Version) HasExtras() bool {
	return v.Prerelease != "" || v.Metadata != ""
}

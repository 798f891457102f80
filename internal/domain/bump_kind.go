package domain

import "fmt"

// BumpKind selects which version component Bump increments.
type BumpKind int

const (
	BumpMajor BumpKind = iota
	BumpMinor
	BumpPatch
)

// String returns the CLI spelling of the bump kind.
func (k BumpKind) String() string {
	switch k {
	case BumpMajor:
		return "major"
	case BumpMinor:
		return "minor"
	case BumpPatch:
		return "patch"
	default:
		return fmt.Sprintf("BumpKind(%d)", int(k))
	}
}

// ParseBumpKind parses the CLI spelling of a bump kind.
func ParseBumpKind(s string) (BumpKind, error) {
	switch s {
	case "major":
		return BumpMajor, nil
	case "minor":
		return BumpMinor, nil
	case "patch":
		return BumpPatch, nil
	default:
		return 0, fmt.Errorf("%w: %q (expected major, minor or patch)", ErrUnknownBumpKind, s)
	}
}

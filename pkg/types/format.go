package types

import (
	"fmt"
	"strings"
)

// ReactionFormat identifies a reaction SMILES dialect
type ReactionFormat int

const (
	// FormatStandard uses dots for all molecule boundaries; salts lose their grouping
	FormatStandard ReactionFormat = iota + 1
	// FormatStandardWithTilde writes intra-molecule dots as "~"
	FormatStandardWithTilde
	// FormatExtended appends a "|f:...|" fragment annotation
	FormatExtended
)

// TildeFragmentBond is the fragment bond used by FormatStandardWithTilde
const TildeFragmentBond = "~"

var formatNames = map[ReactionFormat]string{
	FormatStandard:          "standard",
	FormatStandardWithTilde: "standard_with_tilde",
	FormatExtended:          "extended",
}

// AllFormats lists every supported format in declaration order
func AllFormats() []ReactionFormat {
	return []ReactionFormat{FormatStandard, FormatStandardWithTilde, FormatExtended}
}

// String returns the snake_case name of the format
func (f ReactionFormat) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("ReactionFormat(%d)", int(f))
}

// IsValid checks if the format is one of the known dialects
func (f ReactionFormat) IsValid() bool {
	_, ok := formatNames[f]
	return ok
}

// ParseReactionFormat converts a format name to a ReactionFormat.
// Matching is case-insensitive and accepts "-" in place of "_".
func ParseReactionFormat(name string) (ReactionFormat, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for f, n := range formatNames {
		if n == normalized {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

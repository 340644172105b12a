package rxnsmiles

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/rxnsmiles-mcp/internal/chem"
	"github.com/dshills/rxnsmiles-mcp/internal/fragments"
	"github.com/dshills/rxnsmiles-mcp/internal/reaction"
	"github.com/dshills/rxnsmiles-mcp/pkg/types"
)

// ErrNoToolkit is returned by operations that need a chemistry toolkit when none is configured
var ErrNoToolkit = errors.New("no chemistry toolkit configured")

// Options configures a Codec
type Options struct {
	// RemoveAtomMaps strips atom-map numbers when parsing extended reaction SMILES
	RemoveAtomMaps bool
}

// Codec parses and serializes reaction SMILES in all supported formats
type Codec struct {
	toolkit chem.Toolkit
	opts    Options
}

// New creates a Codec. A nil toolkit disables every chemistry-dependent step:
// merged fragments are kept verbatim and CanonicalizeAny fails with ErrNoToolkit.
func New(tk chem.Toolkit, opts Options) *Codec {
	return &Codec{toolkit: tk, opts: opts}
}

var defaultCodec = New(nil, Options{})

// Toolkit returns the configured chemistry toolkit, possibly nil
func (c *Codec) Toolkit() chem.Toolkit {
	return c.toolkit
}

// DetermineFormat detects the format of a reaction SMILES.
// Fragment information wins over tildes.
func DetermineFormat(reactionSmiles string) types.ReactionFormat {
	if fragments.HasFragmentInfo(reactionSmiles) {
		return types.FormatExtended
	}
	if strings.Contains(reactionSmiles, types.TildeFragmentBond) {
		return types.FormatStandardWithTilde
	}
	return types.FormatStandard
}

// IsReaction reports whether s is a reaction SMILES rather than a molecule or
// multicomponent SMILES
func IsReaction(s string) bool {
	return strings.Contains(s, reaction.GroupSeparator)
}

// Parse parses a reaction SMILES in the given format
func (c *Codec) Parse(reactionSmiles string, format types.ReactionFormat) (reaction.Equation, error) {
	switch format {
	case types.FormatExtended:
		return fragments.Import(reactionSmiles, fragments.ImportOptions{
			RemoveAtomMaps: c.opts.RemoveAtomMaps,
			Toolkit:        c.toolkit,
		})
	case types.FormatStandard:
		return reaction.FromString(reactionSmiles, "")
	case types.FormatStandardWithTilde:
		return reaction.FromString(reactionSmiles, types.TildeFragmentBond)
	}
	return reaction.Equation{}, fmt.Errorf("%w: %v", types.ErrUnsupportedFormat, format)
}

// ParseAny parses a reaction SMILES in whatever format it is written in
func (c *Codec) ParseAny(reactionSmiles string) (reaction.Equation, error) {
	return c.Parse(reactionSmiles, DetermineFormat(reactionSmiles))
}

// Format serializes eq in the given format
func (c *Codec) Format(eq reaction.Equation, format types.ReactionFormat) (string, error) {
	switch format {
	case types.FormatExtended:
		return fragments.Export(eq), nil
	case types.FormatStandard:
		return eq.ToString(""), nil
	case types.FormatStandardWithTilde:
		return eq.ToString(types.TildeFragmentBond), nil
	}
	return "", fmt.Errorf("%w: %v", types.ErrUnsupportedFormat, format)
}

// Parse parses a reaction SMILES in the given format without chemistry toolkit
func Parse(reactionSmiles string, format types.ReactionFormat) (reaction.Equation, error) {
	return defaultCodec.Parse(reactionSmiles, format)
}

// ParseAny detects the format of reactionSmiles and parses it without chemistry toolkit
func ParseAny(reactionSmiles string) (reaction.Equation, error) {
	return defaultCodec.ParseAny(reactionSmiles)
}

// Format serializes eq in the given format
func Format(eq reaction.Equation, format types.ReactionFormat) (string, error) {
	return defaultCodec.Format(eq, format)
}

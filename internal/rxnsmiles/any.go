package rxnsmiles

import (
	"strings"

	"github.com/dshills/rxnsmiles-mcp/internal/multicomponent"
	"github.com/dshills/rxnsmiles-mcp/internal/reaction"
	"github.com/dshills/rxnsmiles-mcp/pkg/types"
)

// ApplyToAny applies fn to every compound of a molecule, multicomponent or
// reaction SMILES. Reaction SMILES keep their format.
//
// Without ">" or "~", s is taken as a single molecule unless forceMulticomponent
// is set, in which case it is split at every dot.
func (c *Codec) ApplyToAny(s string, fn func(string) (string, error), forceMulticomponent bool) (string, error) {
	switch {
	case IsReaction(s):
		return c.transformReaction(s, func(eq reaction.Equation) (reaction.Equation, error) {
			return eq.ApplyToCompounds(fn)
		})
	case strings.Contains(s, types.TildeFragmentBond) || forceMulticomponent:
		return multicomponent.Apply(s, fn, types.TildeFragmentBond)
	default:
		return fn(s)
	}
}

// ApplyToGroups applies fn to each group of compounds of a multicomponent or
// reaction SMILES, f.i. to sort or shuffle them. Reaction SMILES keep their format.
func (c *Codec) ApplyToGroups(s string, fn func([]string) ([]string, error)) (string, error) {
	if IsReaction(s) {
		return c.transformReaction(s, func(eq reaction.Equation) (reaction.Equation, error) {
			return eq.ApplyToCompoundGroups(fn)
		})
	}

	compounds, err := fn(multicomponent.ToList(s, types.TildeFragmentBond))
	if err != nil {
		return "", err
	}
	return multicomponent.ToString(compounds, types.TildeFragmentBond), nil
}

// CanonicalizeAny canonicalizes every compound of any kind of SMILES string
func (c *Codec) CanonicalizeAny(s string, checkValence bool) (string, error) {
	if c.toolkit == nil {
		return "", ErrNoToolkit
	}
	return c.ApplyToAny(s, func(smiles string) (string, error) {
		return c.toolkit.Canonicalize(smiles, checkValence)
	}, false)
}

// SortAny sorts the compounds of any kind of SMILES string.
// The fragments of a single molecule are reordered as well.
func (c *Codec) SortAny(s string) (string, error) {
	if IsReaction(s) {
		return c.transformReaction(s, func(eq reaction.Equation) (reaction.Equation, error) {
			return eq.SortCompounds(), nil
		})
	}
	return multicomponent.Sort(s), nil
}

// IndividualCompounds lists the compounds of a multicomponent or reaction SMILES.
// Dots outside of reactions separate compounds; "~" binds fragments.
func (c *Codec) IndividualCompounds(s string) ([]string, error) {
	if !IsReaction(s) {
		return multicomponent.ToList(s, types.TildeFragmentBond), nil
	}

	eq, err := c.ParseAny(s)
	if err != nil {
		return nil, err
	}

	compounds := make([]string, 0, eq.NumCompounds())
	for compound := range eq.IterAllSmiles() {
		compounds = append(compounds, compound)
	}
	return compounds, nil
}

func (c *Codec) transformReaction(s string, fn func(reaction.Equation) (reaction.Equation, error)) (string, error) {
	format := DetermineFormat(s)
	eq, err := c.Parse(s, format)
	if err != nil {
		return "", err
	}
	if eq, err = fn(eq); err != nil {
		return "", err
	}
	return c.Format(eq, format)
}

// ApplyToAny is Codec.ApplyToAny without chemistry toolkit
func ApplyToAny(s string, fn func(string) (string, error), forceMulticomponent bool) (string, error) {
	return defaultCodec.ApplyToAny(s, fn, forceMulticomponent)
}

// ApplyToGroups is Codec.ApplyToGroups without chemistry toolkit
func ApplyToGroups(s string, fn func([]string) ([]string, error)) (string, error) {
	return defaultCodec.ApplyToGroups(s, fn)
}

// SortAny is Codec.SortAny without chemistry toolkit
func SortAny(s string) (string, error) {
	return defaultCodec.SortAny(s)
}

// IndividualCompounds is Codec.IndividualCompounds without chemistry toolkit
func IndividualCompounds(s string) ([]string, error) {
	return defaultCodec.IndividualCompounds(s)
}

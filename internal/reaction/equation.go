package reaction

import (
	"iter"
	"slices"

	"github.com/dshills/rxnsmiles-mcp/internal/multicomponent"
	"github.com/dshills/rxnsmiles-mcp/pkg/types"
)

// GroupSeparator separates reactants, agents and products in a reaction SMILES
const GroupSeparator = ">"

// Equation holds the compounds involved in a reaction.
// Each compound may contain several dot-separated fragments.
type Equation struct {
	Reactants []string `json:"reactants"`
	Agents    []string `json:"agents"`
	Products  []string `json:"products"`
}

// New creates an Equation holding copies of the given groups
func New(reactants, agents, products []string) Equation {
	return Equation{
		Reactants: copyGroup(reactants),
		Agents:    copyGroup(agents),
		Products:  copyGroup(products),
	}
}

// FromSeq creates an Equation from arbitrary sequences, in iteration order.
// A nil sequence yields an empty group.
func FromSeq(reactants, agents, products iter.Seq[string]) Equation {
	return Equation{
		Reactants: collect(reactants),
		Agents:    collect(agents),
		Products:  collect(products),
	}
}

// FromString parses a reaction SMILES with exactly two ">" delimiters.
// The ">" of a dative bond "->" is not a delimiter.
// A non-empty fragmentBond marks dots that belong inside a compound.
func FromString(reactionSmiles string, fragmentBond string) (Equation, error) {
	segments := SplitGroups(reactionSmiles)
	if len(segments) != 3 {
		return Equation{}, types.NewSmilesError(reactionSmiles, types.ErrInvalidReactionSmiles, nil)
	}

	return Equation{
		Reactants: multicomponent.ToList(segments[0], fragmentBond),
		Agents:    multicomponent.ToList(segments[1], fragmentBond),
		Products:  multicomponent.ToList(segments[2], fragmentBond),
	}, nil
}

// ToString serializes the equation as a reaction SMILES
func (e Equation) ToString(fragmentBond string) string {
	return multicomponent.ToString(e.Reactants, fragmentBond) +
		GroupSeparator + multicomponent.ToString(e.Agents, fragmentBond) +
		GroupSeparator + multicomponent.ToString(e.Products, fragmentBond)
}

// String serializes the equation without fragment bond
func (e Equation) String() string {
	return e.ToString("")
}

// Groups returns reactants, agents and products, in that order
func (e Equation) Groups() [3][]string {
	return [3][]string{e.Reactants, e.Agents, e.Products}
}

// IterAllSmiles yields every compound: reactants, then agents, then products.
// Each call starts a fresh traversal.
func (e Equation) IterAllSmiles() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, group := range e.Groups() {
			for _, compound := range group {
				if !yield(compound) {
					return
				}
			}
		}
	}
}

// NumCompounds returns the total number of compounds
func (e Equation) NumCompounds() int {
	return len(e.Reactants) + len(e.Agents) + len(e.Products)
}

// Equal reports whether both equations hold the same compounds in the same order
func (e Equation) Equal(other Equation) bool {
	return slices.Equal(e.Reactants, other.Reactants) &&
		slices.Equal(e.Agents, other.Agents) &&
		slices.Equal(e.Products, other.Products)
}

// HasRepeatedMolecules reports whether any compound string occurs more than once
func (e Equation) HasRepeatedMolecules() bool {
	seen := make(map[string]struct{}, e.NumCompounds())
	for compound := range e.IterAllSmiles() {
		if _, ok := seen[compound]; ok {
			return true
		}
		seen[compound] = struct{}{}
	}
	return false
}

// Merge concatenates the groups of all equations in argument order
func Merge(equations ...Equation) Equation {
	merged := New(nil, nil, nil)
	for _, eq := range equations {
		merged.Reactants = append(merged.Reactants, eq.Reactants...)
		merged.Agents = append(merged.Agents, eq.Agents...)
		merged.Products = append(merged.Products, eq.Products...)
	}
	return merged
}

// SplitGroups splits a reaction SMILES on ">", except where it ends a dative bond "->".
// No annotation is removed, and the number of segments is not checked.
func SplitGroups(reactionSmiles string) []string {
	segments := make([]string, 0, 3)
	start := 0
	for i := 0; i < len(reactionSmiles); i++ {
		if reactionSmiles[i] != GroupSeparator[0] || (i > 0 && reactionSmiles[i-1] == '-') {
			continue
		}
		segments = append(segments, reactionSmiles[start:i])
		start = i + 1
	}
	return append(segments, reactionSmiles[start:])
}

func copyGroup(group []string) []string {
	out := make([]string, len(group))
	copy(out, group)
	return out
}

func collect(seq iter.Seq[string]) []string {
	out := make([]string, 0)
	if seq == nil {
		return out
	}
	for s := range seq {
		out = append(out, s)
	}
	return out
}

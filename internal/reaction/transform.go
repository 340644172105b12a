package reaction

import (
	"slices"

	"github.com/dshills/rxnsmiles-mcp/internal/chem"
	"github.com/dshills/rxnsmiles-mcp/internal/multicomponent"
)

// MergeReactantsAndAgents appends the agents to the reactants and empties the agents
func (e Equation) MergeReactantsAndAgents() Equation {
	return New(slices.Concat(e.Reactants, e.Agents), nil, e.Products)
}

// SortCompounds sorts each group by byte order
func (e Equation) SortCompounds() Equation {
	sorted := New(e.Reactants, e.Agents, e.Products)
	slices.Sort(sorted.Reactants)
	slices.Sort(sorted.Agents)
	slices.Sort(sorted.Products)
	return sorted
}

// ApplyToCompounds maps fn over every compound, keeping the group structure.
// The first error returned by fn is returned unchanged.
func (e Equation) ApplyToCompounds(fn func(string) (string, error)) (Equation, error) {
	return e.ApplyToCompoundGroups(func(group []string) ([]string, error) {
		out := make([]string, len(group))
		for i, compound := range group {
			updated, err := fn(compound)
			if err != nil {
				return nil, err
			}
			out[i] = updated
		}
		return out, nil
	})
}

// ApplyToCompoundGroups maps fn over each whole group.
// fn receives a copy of the group and may modify it.
func (e Equation) ApplyToCompoundGroups(fn func([]string) ([]string, error)) (Equation, error) {
	var updated [3][]string
	for i, group := range e.Groups() {
		out, err := fn(copyGroup(group))
		if err != nil {
			return Equation{}, err
		}
		updated[i] = out
	}
	return New(updated[0], updated[1], updated[2]), nil
}

// CanonicalizeCompounds canonicalizes every compound with the toolkit
func (e Equation) CanonicalizeCompounds(tk chem.Toolkit, checkValence bool) (Equation, error) {
	return e.ApplyToCompounds(func(compound string) (string, error) {
		return tk.Canonicalize(compound, checkValence)
	})
}

// CleanupCompounds applies the toolkit's minimal cleanup to every compound
func (e Equation) CleanupCompounds(tk chem.Toolkit) (Equation, error) {
	return e.ApplyToCompounds(tk.Cleanup)
}

// RemoveDuplicateCompounds drops repeated compounds within each group,
// keeping first occurrences. Comparison is textual.
func (e Equation) RemoveDuplicateCompounds() Equation {
	return New(
		multicomponent.Unique(e.Reactants),
		multicomponent.Unique(e.Agents),
		multicomponent.Unique(e.Products),
	)
}

// RemovePrecursorsFromProducts drops products that also appear as reactants or agents
func (e Equation) RemovePrecursorsFromProducts() Equation {
	precursors := make(map[string]struct{}, len(e.Reactants)+len(e.Agents))
	for _, compound := range slices.Concat(e.Reactants, e.Agents) {
		precursors[compound] = struct{}{}
	}

	products := make([]string, 0, len(e.Products))
	for _, product := range e.Products {
		if _, ok := precursors[product]; !ok {
			products = append(products, product)
		}
	}
	return New(e.Reactants, e.Agents, products)
}

// Standardize merges agents into reactants, canonicalizes every compound with
// valence checking, sorts each group and removes duplicates.
func (e Equation) Standardize(tk chem.Toolkit) (Equation, error) {
	canonical, err := e.MergeReactantsAndAgents().CanonicalizeCompounds(tk, true)
	if err != nil {
		return Equation{}, err
	}
	return canonical.SortCompounds().RemoveDuplicateCompounds(), nil
}

// Reverse swaps reactants and products; agents stay in place
func (e Equation) Reverse() Equation {
	return New(e.Products, e.Agents, e.Reactants)
}

// Package reaction provides the Equation value type: the reactants, agents and
// products of a chemical reaction, each an ordered list of compound SMILES.
//
// # Construction
//
// Constructors copy their inputs, so an Equation never aliases a caller's
// slice:
//
//	eq := reaction.New([]string{"CC", "O"}, nil, []string{"CCO"})
//	eq, err := reaction.FromString("CC.O>>CCO", "")
//	eq := reaction.FromSeq(slices.Values(reactants), nil, slices.Values(products))
//
// Groups are never nil after construction, so an empty group encodes as [] in
// JSON.
//
// # Fragment Bonds
//
// In plain reaction SMILES a dot separates compounds. To keep the fragments of
// a salt together, a fragment bond such as "~" stands in for the inner dots:
//
//	eq, _ := reaction.FromString("COCO.[Na+]~[OH-]>O>NCOC", "~")
//	// eq.Reactants == []string{"COCO", "[Na+].[OH-]"}
//
// # Transforms
//
// Every transform returns a new Equation and leaves the receiver untouched.
// Transforms that call a chemistry toolkit return an error; the others cannot
// fail.
//
//	std, err := eq.Standardize(tk) // merge agents, canonicalize, sort, dedupe
package reaction

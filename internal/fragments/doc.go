// Package fragments resolves fragment groups in extended reaction SMILES.
//
// Reaction SMILES separate compounds with dots, so the ions of a salt look
// like independent molecules. Extended reaction SMILES add an annotation that
// lists, by global index, the elements that form one compound:
//
//	CC.[Na+].[OH-]>>CCO |f:1.2|
//
// Indices count the dot-separated elements of reactants, agents and products
// in that order, starting at 0.
//
// # Import
//
// Import processes the three reaction groups left to right. Each step receives
// the number of elements consumed so far (the offset) and returns its own
// count, which the caller adds before the next step. Every fragment group is
// classified against the current step:
//
//	NoneInRange  belongs to another reaction group, skipped
//	AllInRange   merged into a single compound
//	Straddling   crosses a group boundary, rejected with
//	             types.ErrUnsupportedExtendedReactionSmiles
//
// Unmerged elements come first, in their original order, then the merged
// compounds in declaration order:
//
//	MergeFromGroups([]string{"C", "CC", "CCC", "CCCC"}, [][]int{{0, 2, 3}}, 0)
//	// []string{"CC", "C.CCC.CCCC"}
//
// # Export
//
// Export is the inverse: multi-fragment compounds are split into elements and
// their index ranges are written back as an annotation.
//
//	Export(reaction.New([]string{"A", "B.C"}, nil, []string{"D"}))
//	// "A.B.C>>D |f:1.2|"
package fragments

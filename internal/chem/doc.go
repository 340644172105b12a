// Package chem is the boundary to the chemistry toolkit.
//
// The reaction packages never interpret molecules themselves. They call a Toolkit
// to parse, serialize, canonicalize, or clean up individual compound SMILES and
// treat any failure as an opaque error.
//
// # Toolkits
//
// SyntaxToolkit validates SMILES grammar (tokens, branches, ring bonds, bonds)
// and canonicalizes multi-fragment molecules by ordering their fragments:
//
//	tk := chem.NewSyntaxToolkit()
//	s, err := tk.Canonicalize("[OH-].[Na+]", true) // "[Na+].[OH-]"
//	_, err = tk.Canonicalize("C1CC", true)        // errors.Is(err, types.ErrInvalidSmiles)
//
// CachedToolkit wraps any toolkit with LRU caches of canonicalization and
// cleanup results:
//
//	tk := chem.NewCachedToolkit(chem.NewSyntaxToolkit(), 10000)
//
// MaybeCanonicalize returns the input unchanged when the toolkit rejects it as
// invalid SMILES.
//
// # Tokenization
//
// Tokenize splits SMILES with the usual token regex; Detokenize undoes
// space-joined tokenization:
//
//	s, _ := chem.TokenizeSmiles("CC(CO)=N>>CC(C=O)N") // "C C ( C O ) = N >> C C ( C = O ) N"
//	chem.Detokenize(s)                                // "CC(CO)=N>>CC(C=O)N"
//
// RemoveAtomMapping strips atom-map numbers while keeping the brackets.
package chem

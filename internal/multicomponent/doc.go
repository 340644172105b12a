// Package multicomponent converts between multicomponent SMILES strings and
// lists of molecule SMILES.
//
// A multicomponent SMILES string holds several molecules separated by dots.
// Molecules that are themselves made of several fragments (salts, complexes)
// can be protected with a fragment bond, usually "~":
//
//	multicomponent.ToList("CC.[Na+]~[OH-]", "~")
//	// []string{"CC", "[Na+].[OH-]"}
//
//	multicomponent.ToString([]string{"CC", "[Na+].[OH-]"}, "~")
//	// "CC.[Na+]~[OH-]"
//
// An empty fragment bond disables the substitution.
//
// # Round Trip
//
// ToString(ToList(s, b), b) == s for any s without leading, trailing or
// doubled dots, and any bond b that does not otherwise occur in s.
package multicomponent

// Package rxnsmiles detects, parses and serializes the three reaction SMILES
// formats.
//
// # Formats
//
//	types.FormatStandard           CC.O.[Na+].[Cl-]>>CCO
//	types.FormatStandardWithTilde  CC.O.[Na+]~[Cl-]>>CCO
//	types.FormatExtended           CC.O.[Na+].[Cl-]>>CCO |f:2.3|
//
// DetermineFormat checks for a fragment annotation first, then for "~". A
// string with both is extended.
//
// # Codec
//
// A Codec optionally carries a chemistry toolkit. With a toolkit, fragments
// merged while parsing extended reaction SMILES are canonicalized:
//
//	codec := rxnsmiles.New(chem.NewSyntaxToolkit(), rxnsmiles.Options{})
//	eq, err := codec.ParseAny("CC.[OH-].[Na+]>>CCO |f:1.2|")
//	// eq.Reactants == []string{"CC", "[Na+].[OH-]"}
//	out, err := codec.Format(eq, types.FormatStandardWithTilde)
//	// "CC.[Na+]~[OH-]>>CCO"
//
// The package-level Parse, ParseAny and Format use a codec without toolkit.
//
// # Any SMILES
//
// ApplyToAny, ApplyToGroups, CanonicalizeAny, SortAny and IndividualCompounds
// accept molecule, multicomponent and reaction SMILES alike. Reaction SMILES
// are written back in the format they were read in.
package rxnsmiles

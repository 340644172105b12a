// Package types provides shared type definitions for the rxnsmiles MCP server.
//
// This package defines the error kinds and the reaction format enumeration used
// across the codec, resolver, dispatcher, combiner, and server packages.
//
// # Error Kinds
//
// Errors are classified with sentinel values so callers never depend on the
// package that produced them:
//
//	_, err := reaction.FromString("A.B.C", "")
//	errors.Is(err, types.ErrInvalidReactionSmiles) // true
//	errors.Is(err, types.ErrInvalidSmiles)         // true, reaction errors are SMILES errors
//
// SmilesError carries the offending string together with its kind and an
// optional cause:
//
//	var se *types.SmilesError
//	if errors.As(err, &se) {
//	    fmt.Println(se.Smiles)
//	}
//
// # Reaction Formats
//
// ReactionFormat is a closed set of three dialects:
//
//	types.FormatStandard          // "CC.O>>CCO"
//	types.FormatStandardWithTilde // "[Na+]~[OH-].CC>>CCO"
//	types.FormatExtended          // "[Na+].[OH-].CC>>CCO |f:0.1|"
//
// Formats round-trip through their names:
//
//	f, err := types.ParseReactionFormat("extended")
//	fmt.Println(f) // extended
package types

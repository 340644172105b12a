package chem

import "regexp"

// A ":<digits>]" preceded by anything but "*"; the wildcard keeps its label.
var atomMapRegex = regexp.MustCompile(`([^*]):\d+\]`)

// RemoveAtomMapping strips atom-map numbers from a molecule or reaction SMILES.
// Brackets are kept, so "[CH3:7]" becomes "[CH3]"; cleanup afterwards yields nicer strings.
func RemoveAtomMapping(smiles string) string {
	return atomMapRegex.ReplaceAllString(smiles, "${1}]")
}

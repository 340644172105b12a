package chem

import (
	"errors"

	"github.com/dshills/rxnsmiles-mcp/pkg/types"
)

// Molecule is an opaque handle produced by a Toolkit.
// Callers own the handle for the duration of the call that produced it.
type Molecule interface {
	// NumFragments returns the number of disconnected components
	NumFragments() int
}

// Toolkit is the chemistry delegate consumed by the reaction packages.
// Implementations report malformed input with errors of kind types.ErrInvalidSmiles.
type Toolkit interface {
	// ParseMolecule converts a SMILES string to a molecule handle
	ParseMolecule(smiles string) (Molecule, error)

	// SerializeMolecule converts a handle produced by the same toolkit back to SMILES
	SerializeMolecule(mol Molecule) (string, error)

	// Canonicalize returns the canonical SMILES for a molecule.
	// With checkValence false, valence problems are tolerated.
	Canonicalize(smiles string, checkValence bool) (string, error)

	// Cleanup does the bare minimum: no reordering, no kekulization, no valence check
	Cleanup(smiles string) (string, error)
}

// MaybeCanonicalize canonicalizes smiles, returning it unchanged when the toolkit
// rejects it with an ErrInvalidSmiles-kind error. Any other error propagates.
func MaybeCanonicalize(tk Toolkit, smiles string, checkValence bool) (string, error) {
	canonical, err := tk.Canonicalize(smiles, checkValence)
	if errors.Is(err, types.ErrInvalidSmiles) {
		return smiles, nil
	}
	if err != nil {
		return "", err
	}
	return canonical, nil
}

// IsValidSmiles reports whether the toolkit can canonicalize smiles
func IsValidSmiles(tk Toolkit, smiles string, checkValence bool) bool {
	_, err := tk.Canonicalize(smiles, checkValence)
	return err == nil
}

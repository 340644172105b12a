// Package chemtest provides a map-backed chemistry toolkit for tests.
package chemtest

import (
	"strings"
	"sync"

	"github.com/dshills/rxnsmiles-mcp/internal/chem"
	"github.com/dshills/rxnsmiles-mcp/pkg/types"
)

// MapToolkit answers Canonicalize and Cleanup from fixed tables.
// Strings missing from a table pass through unchanged, unless listed in Invalid.
type MapToolkit struct {
	Canonical map[string]string
	Cleaned   map[string]string
	Invalid   map[string]bool

	mu    sync.Mutex
	calls int
}

// New creates a MapToolkit with the given canonical forms
func New(canonical map[string]string) *MapToolkit {
	return &MapToolkit{
		Canonical: canonical,
		Cleaned:   map[string]string{},
		Invalid:   map[string]bool{},
	}
}

// Calls returns the number of Canonicalize and Cleanup calls so far
func (m *MapToolkit) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type molecule string

func (mol molecule) NumFragments() int {
	return strings.Count(string(mol), ".") + 1
}

// ParseMolecule accepts anything not marked invalid
func (m *MapToolkit) ParseMolecule(smiles string) (chem.Molecule, error) {
	if m.Invalid[smiles] {
		return nil, types.InvalidSmiles(smiles, nil)
	}
	return molecule(smiles), nil
}

// SerializeMolecule returns the parsed string
func (m *MapToolkit) SerializeMolecule(mol chem.Molecule) (string, error) {
	s, ok := mol.(molecule)
	if !ok {
		return "", chem.ErrForeignMolecule
	}
	return string(s), nil
}

// Canonicalize looks smiles up in Canonical
func (m *MapToolkit) Canonicalize(smiles string, checkValence bool) (string, error) {
	m.count()
	if m.Invalid[smiles] {
		return "", types.InvalidSmiles(smiles, nil)
	}
	if canonical, ok := m.Canonical[smiles]; ok {
		return canonical, nil
	}
	return smiles, nil
}

// Cleanup looks smiles up in Cleaned
func (m *MapToolkit) Cleanup(smiles string) (string, error) {
	m.count()
	if m.Invalid[smiles] {
		return "", types.InvalidSmiles(smiles, nil)
	}
	if cleaned, ok := m.Cleaned[smiles]; ok {
		return cleaned, nil
	}
	return smiles, nil
}

func (m *MapToolkit) count() {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
}

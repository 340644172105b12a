package chem

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/rxnsmiles-mcp/pkg/types"
)

// Structural problems detected by SyntaxToolkit
var (
	ErrEmptySmiles        = errors.New("empty SMILES")
	ErrEmptyFragment      = errors.New("empty fragment")
	ErrUnbalancedBranch   = errors.New("unbalanced branch parentheses")
	ErrUnclosedRing       = errors.New("unclosed ring bond")
	ErrDanglingBond       = errors.New("bond without a following atom")
	ErrUnexpectedToken    = errors.New("unexpected token")
	ErrForeignMolecule    = errors.New("molecule was not produced by this toolkit")
	ErrNoAtomInFragment   = errors.New("fragment without atoms")
	ErrBranchWithoutAtom  = errors.New("branch opened before any atom")
	ErrRingLabelOnNoAtoms = errors.New("ring bond label before any atom")
)

// SyntaxMolecule is the handle produced by SyntaxToolkit: the token stream of
// each dot-separated fragment, in input order.
type SyntaxMolecule struct {
	fragments [][]string
}

// NumFragments returns the number of dot-separated fragments
func (m *SyntaxMolecule) NumFragments() int {
	return len(m.fragments)
}

// Fragments returns the SMILES of each fragment, in input order
func (m *SyntaxMolecule) Fragments() []string {
	out := make([]string, len(m.fragments))
	for i, f := range m.fragments {
		out[i] = strings.Join(f, "")
	}
	return out
}

// SyntaxToolkit validates SMILES at the grammar level and never reorders atoms.
//
// Canonicalize puts the fragments of a multi-fragment molecule in byte order
// and leaves each fragment's text untouched; it cannot check valences, so the
// checkValence flag has no effect. Plug in a full cheminformatics toolkit for
// atom-level canonical forms.
type SyntaxToolkit struct{}

// NewSyntaxToolkit creates a SyntaxToolkit
func NewSyntaxToolkit() *SyntaxToolkit {
	return &SyntaxToolkit{}
}

// ParseMolecule tokenizes and validates a single-molecule SMILES string
func (tk *SyntaxToolkit) ParseMolecule(smiles string) (Molecule, error) {
	if smiles == "" {
		return nil, types.InvalidSmiles(smiles, ErrEmptySmiles)
	}

	tokens, err := Tokenize(smiles)
	if err != nil {
		return nil, types.InvalidSmiles(smiles, err)
	}

	mol := &SyntaxMolecule{}
	current := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "." {
			mol.fragments = append(mol.fragments, current)
			current = make([]string, 0)
			continue
		}
		current = append(current, tok)
	}
	mol.fragments = append(mol.fragments, current)

	if err := validateFragments(mol.fragments); err != nil {
		return nil, types.InvalidSmiles(smiles, err)
	}

	return mol, nil
}

// SerializeMolecule joins the fragments of a SyntaxMolecule with dots
func (tk *SyntaxToolkit) SerializeMolecule(mol Molecule) (string, error) {
	sm, ok := mol.(*SyntaxMolecule)
	if !ok || sm == nil {
		return "", ErrForeignMolecule
	}
	return strings.Join(sm.Fragments(), "."), nil
}

// Canonicalize validates smiles and sorts its fragments
func (tk *SyntaxToolkit) Canonicalize(smiles string, checkValence bool) (string, error) {
	mol, err := tk.ParseMolecule(smiles)
	if err != nil {
		return "", err
	}

	fragments := mol.(*SyntaxMolecule).Fragments()
	slices.Sort(fragments)
	return strings.Join(fragments, "."), nil
}

// Cleanup validates smiles and returns it in input order
func (tk *SyntaxToolkit) Cleanup(smiles string) (string, error) {
	mol, err := tk.ParseMolecule(smiles)
	if err != nil {
		return "", err
	}
	return tk.SerializeMolecule(mol)
}

// validateFragments checks branches per fragment and ring bonds per molecule;
// a ring bond may legitimately span a dot.
func validateFragments(fragments [][]string) error {
	openRings := make(map[string]bool)

	for i, fragment := range fragments {
		if len(fragment) == 0 {
			return fmt.Errorf("%w at position %d", ErrEmptyFragment, i)
		}
		if err := validateFragment(fragment, openRings); err != nil {
			return fmt.Errorf("fragment %d: %w", i, err)
		}
	}

	if len(openRings) > 0 {
		labels := make([]string, 0, len(openRings))
		for label := range openRings {
			labels = append(labels, label)
		}
		slices.Sort(labels)
		return fmt.Errorf("%w: %s", ErrUnclosedRing, strings.Join(labels, ","))
	}

	return nil
}

func validateFragment(tokens []string, openRings map[string]bool) error {
	depth := 0
	atoms := 0
	pendingBond := false

	for _, tok := range tokens {
		switch {
		case isAtomToken(tok):
			atoms++
			pendingBond = false
		case tok == "(":
			if atoms == 0 {
				return ErrBranchWithoutAtom
			}
			depth++
		case tok == ")":
			if pendingBond {
				return ErrDanglingBond
			}
			depth--
			if depth < 0 {
				return ErrUnbalancedBranch
			}
		case isRingLabel(tok):
			if atoms == 0 {
				return ErrRingLabelOnNoAtoms
			}
			label := strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(tok, "%"), "("), ")")
			if openRings[label] {
				delete(openRings, label)
			} else {
				openRings[label] = true
			}
			pendingBond = false
		case isBondToken(tok):
			pendingBond = true
		default:
			return fmt.Errorf("%w %q", ErrUnexpectedToken, tok)
		}
	}

	if depth != 0 {
		return ErrUnbalancedBranch
	}
	if atoms == 0 {
		return ErrNoAtomInFragment
	}
	if pendingBond {
		return ErrDanglingBond
	}
	return nil
}

func isAtomToken(tok string) bool {
	if strings.HasPrefix(tok, "[") {
		return true
	}
	switch tok {
	case "B", "Br", "C", "Cl", "N", "O", "S", "P", "F", "I", "b", "c", "n", "o", "s", "p", "*":
		return true
	}
	return false
}

func isRingLabel(tok string) bool {
	if len(tok) == 1 {
		return tok[0] >= '0' && tok[0] <= '9'
	}
	return strings.HasPrefix(tok, "%")
}

func isBondToken(tok string) bool {
	switch tok {
	case "-", "=", "#", ":", "/", "\\", "~", "$":
		return true
	}
	return false
}

package chem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/rxnsmiles-mcp/pkg/types"
)

func TestSyntaxToolkit_ParseMolecule_Valid(t *testing.T) {
	tk := NewSyntaxToolkit()

	tests := []struct {
		name      string
		smiles    string
		fragments int
	}{
		{"simple chain", "CCO", 1},
		{"branch", "CC(C)(C)OC(=O)N", 1},
		{"aromatic ring", "c1ccccc1", 1},
		{"bracket atoms", "[Na+].[OH-]", 2},
		{"two-digit ring", "C%10CC%10", 1},
		{"ring bond across dot", "C1.C1", 2},
		{"stereo", "C/C=C/C", 1},
		{"chiral", "N[C@@H](C)C(=O)O", 1},
		{"atom maps", "[CH3:1][OH:2]", 1},
		{"halogens", "ClC(Br)I", 1},
		{"wildcard", "*C", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mol, err := tk.ParseMolecule(tt.smiles)
			require.NoError(t, err)
			assert.Equal(t, tt.fragments, mol.NumFragments())

			serialized, err := tk.SerializeMolecule(mol)
			require.NoError(t, err)
			assert.Equal(t, tt.smiles, serialized)
		})
	}
}

func TestSyntaxToolkit_ParseMolecule_Invalid(t *testing.T) {
	tk := NewSyntaxToolkit()

	tests := []struct {
		name   string
		smiles string
		cause  error
	}{
		{"empty", "", ErrEmptySmiles},
		{"untokenizable", "CCx", types.ErrTokenization},
		{"unclosed ring", "C1CC", ErrUnclosedRing},
		{"unbalanced open", "C(C", ErrUnbalancedBranch},
		{"unbalanced close", "CC)C", ErrUnbalancedBranch},
		{"dangling bond", "CC=", ErrDanglingBond},
		{"bond before branch close", "C(C=)C", ErrDanglingBond},
		{"empty fragment", "C..C", ErrEmptyFragment},
		{"leading dot", ".C", ErrEmptyFragment},
		{"branch first", "(C)C", ErrBranchWithoutAtom},
		{"ring label first", "1CC1", ErrRingLabelOnNoAtoms},
		{"reaction arrow", "CC>O", ErrUnexpectedToken},
		{"charge outside bracket", "C+", ErrUnexpectedToken},
		{"bond only", "=", ErrNoAtomInFragment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tk.ParseMolecule(tt.smiles)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrInvalidSmiles))
			assert.True(t, errors.Is(err, tt.cause), "unexpected cause: %v", err)
		})
	}
}

func TestSyntaxToolkit_SerializeForeignMolecule(t *testing.T) {
	tk := NewSyntaxToolkit()

	_, err := tk.SerializeMolecule(foreignMolecule{})
	assert.ErrorIs(t, err, ErrForeignMolecule)
}

func TestSyntaxToolkit_Canonicalize(t *testing.T) {
	tk := NewSyntaxToolkit()

	canonical, err := tk.Canonicalize("[OH-].[Na+]", true)
	require.NoError(t, err)
	assert.Equal(t, "[Na+].[OH-]", canonical)

	canonical, err = tk.Canonicalize("CCO", false)
	require.NoError(t, err)
	assert.Equal(t, "CCO", canonical)

	_, err = tk.Canonicalize("C1CC", true)
	assert.ErrorIs(t, err, types.ErrInvalidSmiles)
}

func TestSyntaxToolkit_Cleanup_KeepsOrder(t *testing.T) {
	tk := NewSyntaxToolkit()

	cleaned, err := tk.Cleanup("[OH-].[Na+]")
	require.NoError(t, err)
	assert.Equal(t, "[OH-].[Na+]", cleaned)

	_, err = tk.Cleanup("C(")
	assert.ErrorIs(t, err, types.ErrInvalidSmiles)
}

func TestMaybeCanonicalize(t *testing.T) {
	tk := NewSyntaxToolkit()

	s, err := MaybeCanonicalize(tk, "O.C", true)
	require.NoError(t, err)
	assert.Equal(t, "C.O", s)

	s, err = MaybeCanonicalize(tk, "C1CC", true)
	require.NoError(t, err)
	assert.Equal(t, "C1CC", s)

	boom := errors.New("toolkit crashed")
	_, err = MaybeCanonicalize(&countingToolkit{err: boom}, "CC", true)
	assert.ErrorIs(t, err, boom)
}

func TestIsValidSmiles(t *testing.T) {
	tk := NewSyntaxToolkit()
	assert.True(t, IsValidSmiles(tk, "CCO", true))
	assert.False(t, IsValidSmiles(tk, "CC(", true))
}

type foreignMolecule struct{}

func (foreignMolecule) NumFragments() int { return 1 }

package chem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/rxnsmiles-mcp/pkg/types"
)

// countingToolkit records how often the wrapped operations run
type countingToolkit struct {
	SyntaxToolkit
	canonicalizeCalls int
	cleanupCalls      int
	err               error
}

func (c *countingToolkit) Canonicalize(smiles string, checkValence bool) (string, error) {
	c.canonicalizeCalls++
	if c.err != nil {
		return "", c.err
	}
	return c.SyntaxToolkit.Canonicalize(smiles, checkValence)
}

func (c *countingToolkit) Cleanup(smiles string) (string, error) {
	c.cleanupCalls++
	return c.SyntaxToolkit.Cleanup(smiles)
}

func TestCachedToolkit_Canonicalize(t *testing.T) {
	inner := &countingToolkit{}
	tk := NewCachedToolkit(inner, 10)

	for i := 0; i < 3; i++ {
		s, err := tk.Canonicalize("O.C", true)
		require.NoError(t, err)
		assert.Equal(t, "C.O", s)
	}
	assert.Equal(t, 1, inner.canonicalizeCalls)

	// Valence flag is part of the key
	_, err := tk.Canonicalize("O.C", false)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.canonicalizeCalls)
}

func TestCachedToolkit_DoesNotCacheFailures(t *testing.T) {
	inner := &countingToolkit{}
	tk := NewCachedToolkit(inner, 10)

	for i := 0; i < 2; i++ {
		_, err := tk.Canonicalize("C1CC", true)
		assert.ErrorIs(t, err, types.ErrInvalidSmiles)
	}
	assert.Equal(t, 2, inner.canonicalizeCalls)
	assert.Equal(t, 0, tk.Size())
}

func TestCachedToolkit_Cleanup(t *testing.T) {
	inner := &countingToolkit{}
	tk := NewCachedToolkit(inner, 10)

	for i := 0; i < 2; i++ {
		s, err := tk.Cleanup("[OH-].[Na+]")
		require.NoError(t, err)
		assert.Equal(t, "[OH-].[Na+]", s)
	}
	assert.Equal(t, 1, inner.cleanupCalls)
	assert.Equal(t, 1, tk.Size())

	tk.Clear()
	assert.Equal(t, 0, tk.Size())
}

func TestCachedToolkit_Eviction(t *testing.T) {
	inner := &countingToolkit{}
	tk := NewCachedToolkit(inner, 2)

	for _, s := range []string{"C", "CC", "CCC"} {
		_, err := tk.Canonicalize(s, true)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, tk.Size())

	// "C" was evicted
	_, err := tk.Canonicalize("C", true)
	require.NoError(t, err)
	assert.Equal(t, 4, inner.canonicalizeCalls)
}

func TestCachedToolkit_DefaultSize(t *testing.T) {
	tk := NewCachedToolkit(NewSyntaxToolkit(), 0)
	mol, err := tk.ParseMolecule("CC")
	require.NoError(t, err)

	s, err := tk.SerializeMolecule(mol)
	require.NoError(t, err)
	assert.Equal(t, "CC", s)
}

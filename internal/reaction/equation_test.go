package reaction

import (
	"encoding/json"
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/rxnsmiles-mcp/pkg/types"
)

func TestFromString(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		fragmentBond string
		expected     Equation
	}{
		{
			name:     "plain",
			input:    "COCO.[Na+].[OH-].OCC>O.C>NCOC",
			expected: New([]string{"COCO", "[Na+]", "[OH-]", "OCC"}, []string{"O", "C"}, []string{"NCOC"}),
		},
		{
			name:         "tilde fragment bond",
			input:        "COCO.[Na+]~[OH-].OCC>O.C>NCOC",
			fragmentBond: "~",
			expected:     New([]string{"COCO", "[Na+].[OH-]", "OCC"}, []string{"O", "C"}, []string{"NCOC"}),
		},
		{
			name:     "no agents",
			input:    "COCO.[Na+].[OH-].OCC>>NCOC",
			expected: New([]string{"COCO", "[Na+]", "[OH-]", "OCC"}, nil, []string{"NCOC"}),
		},
		{
			name:     "additional dots",
			input:    "..A.B.>.>C.D.",
			expected: New([]string{"A", "B"}, nil, []string{"C", "D"}),
		},
		{
			name:     "dative bond",
			input:    "COC(=O)CCBr.O=C([O-]->[K+])>>COC(=O)CCOC(=O)C",
			expected: New([]string{"COC(=O)CCBr", "O=C([O-]->[K+])"}, nil, []string{"COC(=O)CCOC(=O)C"}),
		},
		{
			name:     "empty reaction",
			input:    ">>",
			expected: New(nil, nil, nil),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eq, err := FromString(tt.input, tt.fragmentBond)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, eq)
			assert.True(t, tt.expected.Equal(eq))
		})
	}
}

func TestFromString_Invalid(t *testing.T) {
	for _, input := range []string{"A.B>C", "A>>>C", "A>>B>>C", "A.B.C", ""} {
		t.Run(input, func(t *testing.T) {
			_, err := FromString(input, "")
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrInvalidReactionSmiles)
			assert.ErrorIs(t, err, types.ErrInvalidSmiles)

			var se *types.SmilesError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, input, se.Smiles)
		})
	}
}

func TestToString(t *testing.T) {
	eq := New([]string{"COCO", "[Na+].[OH-]", "OCC"}, []string{"O", "C"}, []string{"NCOC"})

	assert.Equal(t, "COCO.[Na+].[OH-].OCC>O.C>NCOC", eq.ToString(""))
	assert.Equal(t, "COCO.[Na+].[OH-].OCC>O.C>NCOC", eq.String())
	assert.Equal(t, "COCO.[Na+]~[OH-].OCC>O.C>NCOC", eq.ToString("~"))
	assert.Equal(t, ">>", New(nil, nil, nil).String())
	assert.Equal(t, "A>>B", New([]string{"A"}, nil, []string{"B"}).String())
}

func TestRoundTrip(t *testing.T) {
	equations := []Equation{
		New([]string{"COCO", "[Na+].[OH-]", "OCC"}, []string{"O", "C"}, []string{"NCOC"}),
		New([]string{"A"}, nil, []string{"B.C.D"}),
		New(nil, nil, nil),
	}

	for _, eq := range equations {
		for _, bond := range []string{"~", "_"} {
			parsed, err := FromString(eq.ToString(bond), bond)
			require.NoError(t, err)
			assert.True(t, eq.Equal(parsed), "%v with bond %q", eq, bond)
		}
	}
}

func TestNew_DoesNotShareSlices(t *testing.T) {
	a := []string{"C", "O"}
	b := []string{"CO"}
	eq := New(a, nil, b)

	a[0] = "N"
	assert.Equal(t, []string{"C", "O"}, eq.Reactants)

	eq.Products[0] = "N"
	assert.Equal(t, []string{"CO"}, b)
}

func TestFromSeq(t *testing.T) {
	reactants := map[string]bool{"C": true, "O": true}
	eq := FromSeq(maps.Keys(reactants), nil, slices.Values([]string{"CO", "OC"}))

	assert.ElementsMatch(t, []string{"C", "O"}, eq.Reactants)
	assert.NotNil(t, eq.Agents)
	assert.Empty(t, eq.Agents)
	assert.Equal(t, []string{"CO", "OC"}, eq.Products)
}

func TestGroupsAreNeverNull(t *testing.T) {
	data, err := json.Marshal(New(nil, nil, nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"reactants":[],"agents":[],"products":[]}`, string(data))
}

func TestIterAllSmiles(t *testing.T) {
	eq, err := FromString("COCO.[Na+].[OH-]>O>NCOC", "")
	require.NoError(t, err)

	expected := []string{"COCO", "[Na+]", "[OH-]", "O", "NCOC"}
	assert.Equal(t, expected, slices.Collect(eq.IterAllSmiles()))
	// Restartable
	assert.Equal(t, expected, slices.Collect(eq.IterAllSmiles()))

	var first []string
	for s := range eq.IterAllSmiles() {
		first = append(first, s)
		if len(first) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"COCO", "[Na+]"}, first)
	assert.Equal(t, 5, eq.NumCompounds())
}

func TestHasRepeatedMolecules(t *testing.T) {
	assert.False(t, New([]string{"A", "B"}, []string{"C"}, []string{"D", "E"}).HasRepeatedMolecules())

	repeated := []Equation{
		New([]string{"A", "A"}, []string{"C"}, []string{"D", "E"}),
		New([]string{"A", "B"}, []string{"C", "C"}, []string{"D", "E"}),
		New([]string{"A", "B"}, []string{"C"}, []string{"D", "E", "E"}),
		New([]string{"A", "B"}, []string{"A"}, []string{"D", "E"}),
		New([]string{"A", "B"}, []string{"C"}, []string{"B", "E"}),
	}
	for _, eq := range repeated {
		assert.True(t, eq.HasRepeatedMolecules(), eq.String())
	}
}

func TestMerge(t *testing.T) {
	eq1 := New([]string{"A"}, []string{"B"}, nil)
	eq2 := New(nil, []string{"C"}, []string{"D"})
	eq3 := New([]string{"E"}, nil, []string{"F"})

	merged := Merge(eq1, eq2, eq3)
	assert.Equal(t, New([]string{"A", "E"}, []string{"B", "C"}, []string{"D", "F"}), merged)

	assert.Equal(t, New(nil, nil, nil), Merge())

	merged.Reactants[0] = "X"
	assert.Equal(t, []string{"A"}, eq1.Reactants)
}

func TestEqual(t *testing.T) {
	eq := New([]string{"A", "B"}, nil, []string{"C"})
	assert.True(t, eq.Equal(New([]string{"A", "B"}, []string{}, []string{"C"})))
	assert.False(t, eq.Equal(New([]string{"B", "A"}, nil, []string{"C"})))
	assert.False(t, eq.Equal(New([]string{"A"}, []string{"B"}, []string{"C"})))
}

package combiner

import (
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/rxnsmiles-mcp/internal/chem/chemtest"
	"github.com/dshills/rxnsmiles-mcp/pkg/types"
)

func combineAll(t *testing.T, c *Combiner, fragments1, fragments2 []string) []string {
	t.Helper()
	seq, err := c.Combine(fragments1, fragments2)
	require.NoError(t, err)
	return slices.Collect(seq)
}

func TestCombine(t *testing.T) {
	c := New(Config{}, nil)

	tests := []struct {
		name       string
		fragments1 []string
		fragments2 []string
		expected   []string
	}{
		{
			name:       "precursors and products",
			fragments1: []string{"CC.O", "CCC.O"},
			fragments2: []string{"CCO", "CCCO"},
			expected:   []string{"CC.O>>CCO", "CCC.O>>CCCO"},
		},
		{
			name:       "fragment reactions",
			fragments1: []string{"CC.O>>", "CCC>>CCCO"},
			fragments2: []string{">>CCO", "O.N>>"},
			expected:   []string{"CC.O>>CCO", "CCC.O.N>>CCCO"},
		},
		{
			name:       "tokenized input",
			fragments1: []string{"C C . O", "C C C >> C C C O"},
			fragments2: []string{"C C O", "O . N >>"},
			expected:   []string{"CC.O>>CCO", "CCC.O.N>>CCCO"},
		},
		{
			name:       "several precursors per product",
			fragments1: []string{"CC.O", "CC.O.N", "CC.O.P", "CCC.O", "CCC.O.N", "CCC.O.P"},
			fragments2: []string{"CCO", "CCCO"},
			expected: []string{
				"CC.O>>CCO", "CC.O.N>>CCO", "CC.O.P>>CCO",
				"CCC.O>>CCCO", "CCC.O.N>>CCCO", "CCC.O.P>>CCCO",
			},
		},
		{
			name:       "several products per precursors",
			fragments1: []string{"CC.O", "CCC.O"},
			fragments2: []string{"CCO", "OCCO", "CCCO", "OCCCO"},
			expected:   []string{"CC.O>>CCO", "CC.O>>OCCO", "CCC.O>>CCCO", "CCC.O>>OCCCO"},
		},
		{
			name:       "empty",
			fragments1: nil,
			fragments2: nil,
			expected:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, combineAll(t, c, tt.fragments1, tt.fragments2))
		})
	}
}

func TestCombine_IncompatibleLengths(t *testing.T) {
	c := New(Config{}, nil)

	_, err := c.Combine([]string{"CC.O", "CCC.O", "CCCC.O"}, []string{"CCO", "CCCO"})
	assert.ErrorIs(t, err, types.ErrIncompatibleLengths)
}

func TestCombine_OutputFormats(t *testing.T) {
	fragments1 := []string{"CC~O", "CCC>>CCCO"}
	fragments2 := []string{"CCO", "N~O>>"}

	tests := []struct {
		format   types.ReactionFormat
		expected []string
	}{
		{types.FormatStandard, []string{"CC.O>>CCO", "CCC.N.O>>CCCO"}},
		{types.FormatStandardWithTilde, []string{"CC~O>>CCO", "CCC.N~O>>CCCO"}},
		{types.FormatExtended, []string{"CC.O>>CCO |f:0.1|", "CCC.N.O>>CCCO |f:1.2|"}},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			c := New(Config{Format: tt.format}, nil)
			assert.Equal(t, tt.expected, combineAll(t, c, fragments1, fragments2))
		})
	}
}

func TestCombine_Standardization(t *testing.T) {
	tk := chemtest.New(map[string]string{"C(C)": "CC", "C(CC)": "CCC"})
	precursors := []string{"C(C).O", "O.C(CC)"}
	products := []string{"CCO", "CCCO"}

	standardized := New(Config{Standardize: true}, tk)
	assert.Equal(t, []string{"CC.O>>CCO", "CCC.O>>CCCO"}, combineAll(t, standardized, precursors, products))

	raw := New(Config{Standardize: false}, tk)
	assert.Equal(t, []string{"C(C).O>>CCO", "O.C(CC)>>CCCO"}, combineAll(t, raw, precursors, products))
}

func TestCombine_InvalidReactionsUseFallback(t *testing.T) {
	tk := chemtest.New(nil)
	tk.Invalid["CCo"] = true
	c := New(Config{Standardize: true, Fallback: "C>>C"}, tk)

	precursors := []string{"CC.O", "CCC.O", "CC>CC>O"}
	products := []string{"CCo", "CCCO", "CCCCO"}
	assert.Equal(t, []string{"C>>C", "CCC.O>>CCCO", "C>>C"}, combineAll(t, c, precursors, products))
}

func TestCombine_DefaultFallback(t *testing.T) {
	c := New(Config{}, nil)

	got := combineAll(t, c, []string{"CC>>", "CC>C>C>>"}, []string{"CCO", ">>CO"})
	assert.Equal(t, []string{">>", ">>"}, got)
	assert.Equal(t, DefaultFallback, c.Config().Fallback)
	assert.Equal(t, types.FormatStandardWithTilde, c.Config().Format)
}

func TestCombinePair_Errors(t *testing.T) {
	c := New(Config{}, nil)

	_, err := c.combinePair("CC>>", "CCO")
	assert.ErrorIs(t, err, types.ErrAmbiguousCombination)

	_, err = c.combinePair("CC>C>C>>", ">>CO")
	assert.ErrorIs(t, err, types.ErrInvalidReactionSmiles)
}

func TestCombineSeq(t *testing.T) {
	c := New(Config{}, nil)

	got := slices.Collect(c.CombineSeq(
		slices.Values([]string{"CC.O", "CCC.O"}),
		slices.Values([]string{"CCO", "CCCO"}),
		1, 1,
	))
	assert.Equal(t, []string{"CC.O>>CCO", "CCC.O>>CCCO"}, got)

	got = slices.Collect(c.CombineSeq(
		slices.Values([]string{"CC.O", "CC.O.N", "CCC.O", "CCC.O.N"}),
		slices.Values([]string{"CCO", "CCCO"}),
		1, 2,
	))
	assert.Equal(t, []string{"CC.O>>CCO", "CC.O.N>>CCO", "CCC.O>>CCCO", "CCC.O.N>>CCCO"}, got)
}

func TestCombineSeq_PullsLazily(t *testing.T) {
	c := New(Config{}, nil)

	pulled := 0
	products := func(yield func(string) bool) {
		for _, p := range []string{"CCO", "CCCO", "CCCCO"} {
			pulled++
			if !yield(p) {
				return
			}
		}
	}

	next, stop := iter.Pull(c.CombineSeq(slices.Values([]string{"CC", "CCC", "CCCC"}), products, 1, 1))
	defer stop()

	first, ok := next()
	require.True(t, ok)
	assert.Equal(t, "CC>>CCO", first)
	assert.Equal(t, 1, pulled)
}

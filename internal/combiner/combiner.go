package combiner

import (
	"fmt"
	"iter"
	"slices"

	"github.com/dshills/rxnsmiles-mcp/internal/chem"
	"github.com/dshills/rxnsmiles-mcp/internal/reaction"
	"github.com/dshills/rxnsmiles-mcp/internal/rxnsmiles"
	"github.com/dshills/rxnsmiles-mcp/pkg/types"
)

// DefaultFallback is emitted for pairs that cannot be combined
const DefaultFallback = ">>"

// Config holds combiner configuration
type Config struct {
	Standardize bool                 // Canonicalize and sort the compounds of each reaction
	Format      types.ReactionFormat // Output format (default: FormatStandardWithTilde)
	Fallback    string               // Emitted for invalid pairs (default: ">>")
}

// Combiner joins precursors with products, or partial reactions with partial
// reactions, into full reaction SMILES
type Combiner struct {
	config  Config
	toolkit chem.Toolkit
	codec   *rxnsmiles.Codec
}

// New creates a Combiner. A nil toolkit is replaced by chem.SyntaxToolkit,
// which is only used when standardizing.
func New(config Config, tk chem.Toolkit) *Combiner {
	if !config.Format.IsValid() {
		config.Format = types.FormatStandardWithTilde
	}
	if config.Fallback == "" {
		config.Fallback = DefaultFallback
	}
	if tk == nil {
		tk = chem.NewSyntaxToolkit()
	}

	return &Combiner{
		config:  config,
		toolkit: tk,
		codec:   rxnsmiles.New(nil, rxnsmiles.Options{}),
	}
}

// Config returns the effective configuration
func (c *Combiner) Config() Config {
	return c.config
}

// Combine pairs the items of fragments1 and fragments2. When one list is longer,
// each item of the shorter list is repeated so that both have the same length,
// f.i. two precursor sets for six predicted products pair each precursor set
// with three consecutive products.
//
// It fails with types.ErrIncompatibleLengths when neither length is a multiple
// of the other. Pairs that cannot be combined yield the fallback.
func (c *Combiner) Combine(fragments1, fragments2 []string) (iter.Seq[string], error) {
	mult1, mult2, err := GetMultipliers(len(fragments1), len(fragments2))
	if err != nil {
		return nil, err
	}
	return c.CombineSeq(slices.Values(fragments1), slices.Values(fragments2), mult1, mult2), nil
}

// CombineSeq is Combine on sequences of unknown length with explicit
// multipliers. It stops at the end of the shorter expanded sequence, and pulls
// one item at a time from each input.
func (c *Combiner) CombineSeq(fragments1, fragments2 iter.Seq[string], mult1, mult2 int) iter.Seq[string] {
	return func(yield func(string) bool) {
		next1, stop1 := iter.Pull(repeatEach(fragments1, mult1))
		defer stop1()
		next2, stop2 := iter.Pull(repeatEach(fragments2, mult2))
		defer stop2()

		for {
			f1, ok1 := next1()
			if !ok1 {
				return
			}
			f2, ok2 := next2()
			if !ok2 {
				return
			}
			if !yield(c.toReactionSmiles(f1, f2)) {
				return
			}
		}
	}
}

// toReactionSmiles maps every combination error to the fallback
func (c *Combiner) toReactionSmiles(fragment1, fragment2 string) string {
	rxn, err := c.combinePair(fragment1, fragment2)
	if err != nil {
		return c.config.Fallback
	}
	return rxn
}

func (c *Combiner) combinePair(fragment1, fragment2 string) (string, error) {
	eq, err := c.rawReaction(fragment1, fragment2)
	if err != nil {
		return "", err
	}

	if c.config.Standardize {
		canonical, err := eq.CanonicalizeCompounds(c.toolkit, true)
		if err != nil {
			return "", err
		}
		eq = canonical.SortCompounds()
	}

	return c.codec.Format(eq, c.config.Format)
}

func (c *Combiner) rawReaction(fragment1, fragment2 string) (reaction.Equation, error) {
	fragment1 = chem.Detokenize(fragment1)
	fragment2 = chem.Detokenize(fragment2)

	isReaction1 := rxnsmiles.IsReaction(fragment1)
	isReaction2 := rxnsmiles.IsReaction(fragment2)

	switch {
	case isReaction1 && isReaction2:
		eq1, err := c.codec.ParseAny(fragment1)
		if err != nil {
			return reaction.Equation{}, err
		}
		eq2, err := c.codec.ParseAny(fragment2)
		if err != nil {
			return reaction.Equation{}, err
		}
		return reaction.Merge(eq1, eq2), nil
	case !isReaction1 && !isReaction2:
		return c.codec.ParseAny(fragment1 + ">>" + fragment2)
	default:
		return reaction.Equation{}, fmt.Errorf("%w: %q and %q", types.ErrAmbiguousCombination, fragment1, fragment2)
	}
}

// repeatEach yields every item of seq n times in a row
func repeatEach(seq iter.Seq[string], n int) iter.Seq[string] {
	n = max(n, 1)
	return func(yield func(string) bool) {
		for item := range seq {
			for range n {
				if !yield(item) {
					return
				}
			}
		}
	}
}

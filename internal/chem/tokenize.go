package chem

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dshills/rxnsmiles-mcp/pkg/types"
)

// SmilesTokenPattern matches one SMILES token: bracket atoms, two-letter organic
// atoms, ring-closure labels, bonds, branches, and reaction arrows.
const SmilesTokenPattern = `(\%\([0-9]{3}\)|\[[^\]]+]|Br?|Cl?|N|O|S|P|F|I|b|c|n|o|s|p|\||\(|\)|\.|=|#|-|\+|\\|\/|:|~|@|\?|>>?|\*|\$|\%[0-9]{2}|[0-9])`

var smilesTokenRegex = regexp.MustCompile(SmilesTokenPattern)

// Tokenize splits a SMILES molecule or reaction into tokens.
// It fails with ErrTokenization when the tokens do not rebuild the input.
func Tokenize(smiles string) ([]string, error) {
	tokens := smilesTokenRegex.FindAllString(smiles, -1)
	if joined := strings.Join(tokens, ""); joined != smiles {
		return nil, fmt.Errorf("%w: SMILES=%q != joined_tokens=%q", types.ErrTokenization, smiles, joined)
	}
	return tokens, nil
}

// TokenizeSmiles tokenizes smiles and joins the tokens with spaces,
// f.i. "CC(CO)=N>>CC(C=O)N" -> "C C ( C O ) = N >> C C ( C = O ) N"
func TokenizeSmiles(smiles string) (string, error) {
	tokens, err := Tokenize(smiles)
	if err != nil {
		return "", err
	}
	return strings.Join(tokens, " "), nil
}

// Detokenize removes the spaces of a tokenized SMILES string
func Detokenize(tokenized string) string {
	return strings.ReplaceAll(tokenized, " ", "")
}

// IsTokenized reports whether line is a tokenized SMILES string.
// Lines with fewer than two tokens are ambiguous and fail with ErrUnclearWhetherTokenized.
func IsTokenized(line string) (bool, error) {
	tokens, err := Tokenize(Detokenize(line))
	if err != nil {
		return false, err
	}
	if len(tokens) < 2 {
		return false, fmt.Errorf("%w: %q", types.ErrUnclearWhetherTokenized, line)
	}
	return strings.Join(tokens, " ") == line, nil
}

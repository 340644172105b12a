package fragments

import (
	"errors"
	"strings"
	"unicode"

	"github.com/dshills/rxnsmiles-mcp/internal/chem"
	"github.com/dshills/rxnsmiles-mcp/internal/multicomponent"
	"github.com/dshills/rxnsmiles-mcp/internal/reaction"
	"github.com/dshills/rxnsmiles-mcp/pkg/types"
)

// ImportOptions configures Import
type ImportOptions struct {
	// RemoveAtomMaps strips atom-map numbers before grouping. With a Toolkit,
	// compounds are cleaned up afterwards.
	RemoveAtomMaps bool

	// Toolkit, when set, canonicalizes merged compounds without valence
	// checks. Unmerged compounds keep their text.
	Toolkit chem.Toolkit
}

// SplitSmilesAndInfo splits an extended reaction SMILES at its first whitespace
// into the pure reaction SMILES and the annotation
func SplitSmilesAndInfo(s string) (smiles, info string) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}

// Import parses an extended reaction SMILES, merging the fragments declared in
// its "|f:...|" annotation into single compounds
func Import(s string, opts ImportOptions) (reaction.Equation, error) {
	smiles, info := SplitSmilesAndInfo(s)
	if opts.RemoveAtomMaps {
		smiles = chem.RemoveAtomMapping(smiles)
	}

	segments := reaction.SplitGroups(smiles)
	if len(segments) != 3 {
		return reaction.Equation{}, types.InvalidReactionSmiles(s, nil)
	}

	groups := DetermineGroups(info)

	var mergeFn func(string) (string, error)
	if opts.Toolkit != nil {
		mergeFn = func(molecule string) (string, error) {
			canonical, err := opts.Toolkit.Canonicalize(molecule, false)
			if err != nil {
				return "", types.NewSmilesError(s, types.ErrUnsupportedExtendedReactionSmiles, err)
			}
			return canonical, nil
		}
	}

	var merged [3][]string
	offset := 0
	for i, segment := range segments {
		elements := multicomponent.ToList(segment, "")
		compounds, err := MergeFromGroupsFunc(elements, groups, offset, mergeFn)
		if err != nil {
			var se *types.SmilesError
			if errors.As(err, &se) {
				return reaction.Equation{}, err
			}
			return reaction.Equation{}, types.NewSmilesError(s, types.ErrUnsupportedExtendedReactionSmiles, err)
		}
		merged[i] = compounds
		offset += len(elements)
	}

	eq := reaction.New(merged[0], merged[1], merged[2])
	if opts.RemoveAtomMaps && opts.Toolkit != nil {
		return eq.CleanupCompounds(opts.Toolkit)
	}
	return eq, nil
}

// Export serializes eq as an extended reaction SMILES. Multi-fragment compounds
// are split into dot-separated elements and declared in a trailing "|f:...|"
// annotation, which is omitted when no compound has several fragments.
func Export(eq reaction.Equation) string {
	var (
		flat   [3][]string
		groups [][]int
		offset int
	)
	for i, compounds := range eq.Groups() {
		var groupFragments [][]int
		flat[i], groupFragments, offset = SplitGroup(compounds, offset)
		groups = append(groups, groupFragments...)
	}

	smiles := strings.Join(flat[0], ".") + reaction.GroupSeparator +
		strings.Join(flat[1], ".") + reaction.GroupSeparator +
		strings.Join(flat[2], ".")
	if len(groups) == 0 {
		return smiles
	}
	return smiles + " " + FormatGroups(groups)
}

package fragments

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dshills/rxnsmiles-mcp/pkg/types"
)

var (
	// "f:" starting the annotation or following "|" or ","; "&1:" and "c:" never match
	fragmentInfoRegex = regexp.MustCompile(`(?:^|[|,\s])f:([\d.,]+)`)
	// One group: dot-separated indices
	fragmentGroupRegex = regexp.MustCompile(`\d+(?:\.\d+)*`)
)

// Coverage classifies a fragment group against the index range of one
// reaction group (reactants, agents or products).
type Coverage int

const (
	// NoneInRange groups belong to another reaction group and are skipped
	NoneInRange Coverage = iota
	// AllInRange groups are merged into one compound
	AllInRange
	// Straddling groups cross a reaction group boundary and are rejected
	Straddling
)

func (c Coverage) String() string {
	switch c {
	case NoneInRange:
		return "none_in_range"
	case AllInRange:
		return "all_in_range"
	case Straddling:
		return "straddling"
	default:
		return fmt.Sprintf("Coverage(%d)", int(c))
	}
}

// DetermineGroups extracts the fragment groups from an extended SMILES annotation,
// f.i. "|f:0.2,5.6|" -> [[0 2] [5 6]]. Other sub-annotations are ignored.
// Without fragment information the result is empty.
func DetermineGroups(info string) [][]int {
	m := fragmentInfoRegex.FindStringSubmatch(info)
	if m == nil {
		return [][]int{}
	}

	matches := fragmentGroupRegex.FindAllString(m[1], -1)
	groups := make([][]int, 0, len(matches))
	for _, match := range matches {
		parts := strings.Split(match, ".")
		group := make([]int, len(parts))
		for i, part := range parts {
			// Out-of-range values clamp to MaxInt and match no reaction group
			group[i], _ = strconv.Atoi(part)
		}
		groups = append(groups, group)
	}
	return groups
}

// HasFragmentInfo reports whether the annotation of an extended reaction SMILES
// declares fragment groups
func HasFragmentInfo(reactionSmiles string) bool {
	_, info := SplitSmilesAndInfo(reactionSmiles)
	return info != "" && fragmentInfoRegex.MatchString(info)
}

// FormatGroups renders groups as "|f:i.j,k.l|", or "" when there are none
func FormatGroups(groups [][]int) string {
	if len(groups) == 0 {
		return ""
	}

	groupStrings := make([]string, len(groups))
	for i, group := range groups {
		indices := make([]string, len(group))
		for j, index := range group {
			indices[j] = strconv.Itoa(index)
		}
		groupStrings[i] = strings.Join(indices, ".")
	}
	return "|f:" + strings.Join(groupStrings, ",") + "|"
}

// Classify checks the global indices of group against the n elements starting at offset.
// An empty group is NoneInRange.
func Classify(group []int, offset, n int) Coverage {
	in := 0
	for _, index := range group {
		if local := index - offset; local >= 0 && local < n {
			in++
		}
	}

	switch {
	case in == 0:
		return NoneInRange
	case in == len(group):
		return AllInRange
	default:
		return Straddling
	}
}

// MergeFromGroups joins the elements of smilesList that belong to the same
// fragment group. offset is the global index of smilesList[0].
//
// Elements not merged come first, in their original order, followed by the
// merged compounds in the order their groups were declared.
func MergeFromGroups(smilesList []string, groups [][]int, offset int) ([]string, error) {
	return MergeFromGroupsFunc(smilesList, groups, offset, nil)
}

// MergeFromGroupsFunc is MergeFromGroups with a hook applied to each merged
// compound. Unmerged elements are never passed to mergeFn. A nil mergeFn keeps
// merged compounds as they are.
func MergeFromGroupsFunc(smilesList []string, groups [][]int, offset int, mergeFn func(string) (string, error)) ([]string, error) {
	consumed := make([]bool, len(smilesList))
	merged := make([]string, 0)

	for _, group := range groups {
		switch Classify(group, offset, len(smilesList)) {
		case NoneInRange:
			continue
		case Straddling:
			return nil, fmt.Errorf("%w: fragment group %v straddles the elements %d to %d",
				types.ErrUnsupportedExtendedReactionSmiles, group, offset, offset+len(smilesList)-1)
		case AllInRange:
		}

		parts := make([]string, len(group))
		for i, index := range group {
			local := index - offset
			parts[i] = smilesList[local]
			consumed[local] = true
		}

		molecule := strings.Join(parts, ".")
		if mergeFn != nil {
			var err error
			if molecule, err = mergeFn(molecule); err != nil {
				return nil, err
			}
		}
		merged = append(merged, molecule)
	}

	out := make([]string, 0, len(smilesList))
	for i, smiles := range smilesList {
		if !consumed[i] {
			out = append(out, smiles)
		}
	}
	return append(out, merged...), nil
}

// SplitGroup splits the multi-fragment compounds of one reaction group into
// their fragments, f.i. ["O", "[Na+].[OH-]"] at offset 0 gives
// ["O", "[Na+]", "[OH-]"] and [[1 2]]. It returns the offset of the next group.
func SplitGroup(compounds []string, offset int) (flat []string, groups [][]int, next int) {
	flat = make([]string, 0, len(compounds))
	groups = make([][]int, 0)
	next = offset

	for _, compound := range compounds {
		fragments := strings.Split(compound, ".")
		flat = append(flat, fragments...)

		if len(fragments) > 1 {
			group := make([]int, len(fragments))
			for i := range fragments {
				group[i] = next + i
			}
			groups = append(groups, group)
		}
		next += len(fragments)
	}
	return flat, groups, next
}

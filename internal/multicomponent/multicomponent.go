package multicomponent

import (
	"slices"
	"strings"

	"github.com/dshills/rxnsmiles-mcp/internal/chem"
)

// MoleculeSeparator separates the molecules of a multicomponent SMILES string
const MoleculeSeparator = "."

// ToList splits a multicomponent SMILES string into its molecules.
// Empty elements are dropped. A non-empty fragmentBond is replaced by "." in
// each molecule, restoring multi-fragment molecules.
func ToList(s string, fragmentBond string) []string {
	parts := strings.Split(s, MoleculeSeparator)
	molecules := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		if fragmentBond != "" {
			part = strings.ReplaceAll(part, fragmentBond, MoleculeSeparator)
		}
		molecules = append(molecules, part)
	}
	return molecules
}

// ToString joins molecules into a multicomponent SMILES string.
// A non-empty fragmentBond replaces the dots inside each molecule first.
func ToString(molecules []string, fragmentBond string) string {
	if fragmentBond == "" {
		return strings.Join(molecules, MoleculeSeparator)
	}

	protected := make([]string, len(molecules))
	for i, molecule := range molecules {
		protected[i] = strings.ReplaceAll(molecule, MoleculeSeparator, fragmentBond)
	}
	return strings.Join(protected, MoleculeSeparator)
}

// Apply maps fn over the molecules of s and re-encodes the result.
// The first error returned by fn is returned unchanged.
func Apply(s string, fn func(string) (string, error), fragmentBond string) (string, error) {
	molecules := ToList(s, fragmentBond)
	for i, molecule := range molecules {
		updated, err := fn(molecule)
		if err != nil {
			return "", err
		}
		molecules[i] = updated
	}
	return ToString(molecules, fragmentBond), nil
}

// Canonicalize canonicalizes every molecule of s with the given toolkit
func Canonicalize(s string, tk chem.Toolkit, fragmentBond string, checkValence bool) (string, error) {
	return Apply(s, func(molecule string) (string, error) {
		return tk.Canonicalize(molecule, checkValence)
	}, fragmentBond)
}

// Sort orders the molecules of s by byte value.
// No fragment bond is needed: it would not change the order.
func Sort(s string) string {
	molecules := ToList(s, "")
	slices.Sort(molecules)
	return ToString(molecules, "")
}

// RemoveDuplicates drops repeated molecules of s, keeping first occurrences
func RemoveDuplicates(s string) string {
	return ToString(Unique(ToList(s, "")), "")
}

// Unique returns the distinct strings of items in first-occurrence order
func Unique(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

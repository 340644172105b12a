package chem

import (
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of canonicalization results kept by default
const DefaultCacheSize = 10000

// CachedToolkit memoizes Canonicalize and Cleanup results of another toolkit
// with LRU eviction. Failures are not cached. Safe for concurrent use.
type CachedToolkit struct {
	inner     Toolkit
	canonical *lru.Cache[string, string]
	cleaned   *lru.Cache[string, string]
}

// NewCachedToolkit wraps inner with caches of maxLen entries each
func NewCachedToolkit(inner Toolkit, maxLen int) *CachedToolkit {
	if maxLen <= 0 {
		maxLen = DefaultCacheSize
	}
	return &CachedToolkit{
		inner:     inner,
		canonical: newStringCache(maxLen),
		cleaned:   newStringCache(maxLen),
	}
}

func newStringCache(maxLen int) *lru.Cache[string, string] {
	cache, err := lru.New[string, string](maxLen)
	if err != nil {
		// Only fails for non-positive sizes
		cache, _ = lru.New[string, string](DefaultCacheSize)
	}
	return cache
}

// ParseMolecule delegates to the wrapped toolkit
func (c *CachedToolkit) ParseMolecule(smiles string) (Molecule, error) {
	return c.inner.ParseMolecule(smiles)
}

// SerializeMolecule delegates to the wrapped toolkit
func (c *CachedToolkit) SerializeMolecule(mol Molecule) (string, error) {
	return c.inner.SerializeMolecule(mol)
}

// Canonicalize returns a cached canonical form when available
func (c *CachedToolkit) Canonicalize(smiles string, checkValence bool) (string, error) {
	key := strconv.FormatBool(checkValence) + "|" + smiles
	if canonical, ok := c.canonical.Get(key); ok {
		return canonical, nil
	}

	canonical, err := c.inner.Canonicalize(smiles, checkValence)
	if err != nil {
		return "", err
	}
	c.canonical.Add(key, canonical)
	return canonical, nil
}

// Cleanup returns a cached cleaned-up form when available
func (c *CachedToolkit) Cleanup(smiles string) (string, error) {
	if cleaned, ok := c.cleaned.Get(smiles); ok {
		return cleaned, nil
	}

	cleaned, err := c.inner.Cleanup(smiles)
	if err != nil {
		return "", err
	}
	c.cleaned.Add(smiles, cleaned)
	return cleaned, nil
}

// Size returns the number of cached canonicalization and cleanup results
func (c *CachedToolkit) Size() int {
	return c.canonical.Len() + c.cleaned.Len()
}

// Clear empties both caches
func (c *CachedToolkit) Clear() {
	c.canonical.Purge()
	c.cleaned.Purge()
}

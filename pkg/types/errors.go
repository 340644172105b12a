package types

import (
	"errors"
	"fmt"
)

// Error kinds shared across packages
var (
	// SMILES errors
	ErrInvalidSmiles         = errors.New("invalid SMILES")
	ErrInvalidReactionSmiles = fmt.Errorf("%w: invalid reaction SMILES", ErrInvalidSmiles)

	// Fragment annotation errors
	ErrUnsupportedExtendedReactionSmiles = errors.New("unsupported extended reaction SMILES")

	// Combination errors
	ErrIncompatibleLengths  = errors.New("lengths are not an exact multiple of each other")
	ErrAmbiguousCombination = errors.New("cannot determine how to combine fragments")

	// Format and tokenization errors
	ErrUnsupportedFormat       = errors.New("unsupported reaction format")
	ErrTokenization            = errors.New("SMILES and joined tokens mismatch")
	ErrUnclearWhetherTokenized = errors.New("unclear whether SMILES is tokenized")
)

// SmilesError reports a SMILES string that could not be handled
type SmilesError struct {
	Smiles string
	Kind   error // One of the sentinel kinds above
	Err    error // Optional underlying cause
}

// NewSmilesError creates a SmilesError of the given kind
func NewSmilesError(smiles string, kind error, cause error) *SmilesError {
	return &SmilesError{Smiles: smiles, Kind: kind, Err: cause}
}

func (e *SmilesError) Error() string {
	if e == nil {
		return "<nil>"
	}

	var msg string
	switch {
	case errors.Is(e.Kind, ErrInvalidReactionSmiles):
		msg = fmt.Sprintf("%q is not a valid reaction SMILES string", e.Smiles)
	case errors.Is(e.Kind, ErrInvalidSmiles):
		msg = fmt.Sprintf("%q is not a valid SMILES string", e.Smiles)
	case e.Kind != nil:
		msg = fmt.Sprintf("%v: %q", e.Kind, e.Smiles)
	default:
		msg = fmt.Sprintf("cannot handle %q", e.Smiles)
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As
func (e *SmilesError) Unwrap() []error {
	if e == nil {
		return nil
	}
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// InvalidSmiles returns an ErrInvalidSmiles-kind error for a molecule string
func InvalidSmiles(smiles string, cause error) error {
	return NewSmilesError(smiles, ErrInvalidSmiles, cause)
}

// InvalidReactionSmiles returns an ErrInvalidReactionSmiles-kind error for a reaction string
func InvalidReactionSmiles(reactionSmiles string, cause error) error {
	return NewSmilesError(reactionSmiles, ErrInvalidReactionSmiles, cause)
}

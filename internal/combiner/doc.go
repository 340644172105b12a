// Package combiner assembles full reaction SMILES from two independently
// produced lists, such as a file of precursors and a file of predicted
// products.
//
// # Pairing
//
// Items are paired by position. When one list is an exact multiple of the
// other (the top-N prediction case), each item of the shorter list is repeated
// in place:
//
//	precursors: A, B
//	products:   a1, a2, b1, b2
//	result:     A>>a1, A>>a2, B>>b1, B>>b2
//
// Any other length mismatch fails with types.ErrIncompatibleLengths before
// anything is produced.
//
// # Combination Rules
//
// Tokenized input ("C C . O") is detokenized first. Then:
//
//	both sides are reactions   "CC.O>>" + ">>CCO"  -> reactions merged
//	neither side is a reaction "CC.O"   + "CCO"    -> "CC.O>>CCO"
//	mixed                                          -> fallback
//
// Any pair that fails, whether ambiguous, malformed or rejected by the toolkit
// during standardization, yields the configured fallback instead of an error,
// so one bad line never aborts a batch.
package combiner

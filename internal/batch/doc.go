// Package batch converts many reaction SMILES concurrently.
//
// A Processor parses each line in whatever format it is written in,
// optionally standardizes it, and serializes it in the target format.
// Workers run under an errgroup limit and write into per-line slots, so
// Result.Reactions lines up with the input.
//
// # Failure Handling
//
// A line that cannot be converted does not abort the batch. It is replaced
// by the fallback (">>" by default) and reported in Result.ErrorMessages:
//
//	p := batch.New(codec, nil, logger)
//	result, err := p.Convert(ctx, lines, &batch.Config{
//	    TargetFormat: types.FormatExtended,
//	    Standardize:  true,
//	})
//	if err != nil {
//	    return err // cancelled, or storage failed
//	}
//	for _, msg := range result.ErrorMessages {
//	    log.Println(msg)
//	}
//
// # Storage
//
// With Config.Store set, converted reactions are saved to the Processor's
// storage, committing BatchSize reactions per transaction.
package batch

package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/rxnsmiles-mcp/internal/chem"
	"github.com/dshills/rxnsmiles-mcp/internal/combiner"
	"github.com/dshills/rxnsmiles-mcp/internal/reaction"
	"github.com/dshills/rxnsmiles-mcp/internal/rxnsmiles"
	"github.com/dshills/rxnsmiles-mcp/internal/storage"
	"github.com/dshills/rxnsmiles-mcp/pkg/types"
)

// ErrStoreInProgress is returned when another storing batch is running
var ErrStoreInProgress = errors.New("another batch is storing reactions")

// Config contains configuration for a batch conversion
type Config struct {
	Workers      int                  // Number of concurrent workers (default: runtime.NumCPU())
	BatchSize    int                  // Number of reactions to commit per transaction (default: 100)
	TargetFormat types.ReactionFormat // Output format (default: FormatStandardWithTilde)
	Standardize  bool                 // Merge agents, canonicalize, sort and dedupe compounds
	Fallback     string               // Emitted for lines that fail (default: ">>")
	Store        bool                 // Persist converted reactions (requires storage)
}

// Result contains the outcome of a batch conversion
type Result struct {
	Reactions     []string // One entry per input, in input order
	Converted     int
	Failed        int
	Stored        int
	Duration      time.Duration
	ErrorMessages []string
}

// Processor converts reaction SMILES concurrently
type Processor struct {
	codec   *rxnsmiles.Codec
	toolkit chem.Toolkit
	storage storage.Storage
	logger  *slog.Logger

	storing storeLock
}

// New creates a Processor. store may be nil when reactions are never stored,
// and a nil logger discards output.
func New(codec *rxnsmiles.Codec, store storage.Storage, logger *slog.Logger) *Processor {
	if codec == nil {
		codec = rxnsmiles.New(nil, rxnsmiles.Options{})
	}
	tk := codec.Toolkit()
	if tk == nil {
		tk = chem.NewSyntaxToolkit()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Processor{
		codec:   codec,
		toolkit: tk,
		storage: store,
		logger:  logger,
	}
}

// converted is the outcome of one input line
type converted struct {
	smiles   string
	equation reaction.Equation
	err      error
}

// Convert parses every reaction SMILES, optionally standardizes it, and
// serializes it in the target format. Lines that fail are replaced by the
// fallback and reported in ErrorMessages; the batch carries on.
func (p *Processor) Convert(ctx context.Context, reactions []string, config *Config) (*Result, error) {
	cfg := withDefaults(config)
	if cfg.Store && p.storage == nil {
		return nil, fmt.Errorf("failed to convert batch: storing requested without storage")
	}
	if cfg.Store {
		if !p.storing.TryAcquire() {
			return nil, ErrStoreInProgress
		}
		defer p.storing.Release()
	}

	startTime := time.Now()
	result := &Result{
		Reactions:     make([]string, len(reactions)),
		ErrorMessages: make([]string, 0),
	}

	// Each worker writes only its own slot, so output order matches input order
	outcomes := make([]converted, len(reactions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i, smiles := range reactions {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			eq, out, err := p.convertOne(smiles, cfg)
			if err != nil {
				p.logger.Debug("reaction conversion failed", "line", i, "error", err)
				outcomes[i] = converted{smiles: cfg.Fallback, err: err}
				return nil // Continue with other reactions
			}

			outcomes[i] = converted{smiles: out, equation: eq}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to convert batch: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to convert batch: %w", err)
	}

	for i, o := range outcomes {
		result.Reactions[i] = o.smiles
		if o.err != nil {
			result.Failed++
			result.ErrorMessages = append(result.ErrorMessages, fmt.Sprintf("line %d: %v", i, o.err))
			continue
		}
		result.Converted++
	}

	if cfg.Store {
		stored, err := p.storeAll(ctx, outcomes, cfg.BatchSize)
		result.Stored = stored
		if err != nil {
			return nil, fmt.Errorf("failed to store batch: %w", err)
		}
	}

	result.Duration = time.Since(startTime)
	p.logger.Info("batch converted",
		"total", len(reactions),
		"converted", result.Converted,
		"failed", result.Failed,
		"stored", result.Stored,
		"duration", result.Duration,
	)
	return result, nil
}

// ConvertOne converts a single reaction SMILES with the given configuration
func (p *Processor) ConvertOne(reactionSmiles string, config *Config) (string, error) {
	_, out, err := p.convertOne(reactionSmiles, withDefaults(config))
	return out, err
}

func (p *Processor) convertOne(reactionSmiles string, cfg Config) (reaction.Equation, string, error) {
	eq, err := p.codec.ParseAny(reactionSmiles)
	if err != nil {
		return reaction.Equation{}, "", err
	}

	if cfg.Standardize {
		eq, err = eq.Standardize(p.toolkit)
		if err != nil {
			return reaction.Equation{}, "", err
		}
	}

	out, err := p.codec.Format(eq, cfg.TargetFormat)
	if err != nil {
		return reaction.Equation{}, "", err
	}
	return eq, out, nil
}

// storeAll saves converted reactions, committing every batchSize reactions
func (p *Processor) storeAll(ctx context.Context, outcomes []converted, batchSize int) (int, error) {
	pending := make([]*storage.Reaction, 0, batchSize)
	stored := 0

	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		tx, err := p.storage.BeginTx(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		for _, rxn := range pending {
			if err := tx.SaveReaction(ctx, rxn); err != nil {
				_ = tx.Rollback()
				return err
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		stored += len(pending)
		pending = pending[:0]
		return nil
	}

	for _, o := range outcomes {
		if o.err != nil {
			continue
		}
		pending = append(pending, storage.NewReaction(o.smiles, o.equation))
		if len(pending) >= batchSize {
			if err := flush(); err != nil {
				return stored, err
			}
		}
	}
	if err := flush(); err != nil {
		return stored, err
	}
	return stored, nil
}

func withDefaults(config *Config) Config {
	var cfg Config
	if config != nil {
		cfg = *config
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if !cfg.TargetFormat.IsValid() {
		cfg.TargetFormat = types.FormatStandardWithTilde
	}
	if cfg.Fallback == "" {
		cfg.Fallback = combiner.DefaultFallback
	}
	return cfg
}

package storage

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/dshills/rxnsmiles-mcp/internal/reaction"
)

// Storage defines the interface for persisting and querying reactions
type Storage interface {
	// Reaction operations
	SaveReaction(ctx context.Context, rxn *Reaction) error
	GetReaction(ctx context.Context, reactionID int64) (*Reaction, error)
	GetReactionByHash(ctx context.Context, contentHash [32]byte) (*Reaction, error)
	DeleteReaction(ctx context.Context, reactionID int64) error
	CountReactions(ctx context.Context) (int, error)

	// Compound lookups
	FindByCompound(ctx context.Context, compound string, role Role, limit int) ([]*Reaction, error)

	// Database operations
	Close() error
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx represents a database transaction
type Tx interface {
	Commit() error
	Rollback() error
	Storage // Embed Storage interface for transaction operations
}

// Role is the position of a compound within a reaction
type Role string

const (
	RoleAny      Role = ""
	RoleReactant Role = "reactant"
	RoleAgent    Role = "agent"
	RoleProduct  Role = "product"
)

// IsValid reports whether r is a known role or RoleAny
func (r Role) IsValid() bool {
	switch r {
	case RoleAny, RoleReactant, RoleAgent, RoleProduct:
		return true
	}
	return false
}

// ParseRole converts a role name to a Role; an empty name means RoleAny
func ParseRole(name string) (Role, error) {
	r := Role(name)
	if !r.IsValid() {
		return RoleAny, fmt.Errorf("unknown compound role %q", name)
	}
	return r, nil
}

// Reaction is a stored reaction. ReactionSmiles is the string the reaction was
// saved with; Equation holds its compounds per role.
type Reaction struct {
	ID             int64
	ReactionSmiles string
	ContentHash    [32]byte
	Equation       reaction.Equation
	CreatedAt      time.Time
}

// NewReaction builds an unsaved Reaction and computes its content hash
func NewReaction(reactionSmiles string, eq reaction.Equation) *Reaction {
	return &Reaction{
		ReactionSmiles: reactionSmiles,
		ContentHash:    HashReaction(reactionSmiles),
		Equation:       eq,
	}
}

// HashReaction returns the SHA-256 content hash of a reaction SMILES
func HashReaction(reactionSmiles string) [32]byte {
	return sha256.Sum256([]byte(reactionSmiles))
}

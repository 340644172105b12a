package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dshills/rxnsmiles-mcp/internal/reaction"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrNestedTx is returned when BeginTx is called on a transaction
	ErrNestedTx = errors.New("nested transactions are not supported")
)

// DefaultFindLimit caps FindByCompound when no positive limit is given
const DefaultFindLimit = 50

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite benefits from single writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Apply migrations
	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// BeginTx starts a new transaction
func (s *SQLiteStorage) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqliteTx{tx: tx, storage: s}, nil
}

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqliteTx wraps a SQL transaction
type sqliteTx struct {
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (t *sqliteTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTx) Rollback() error {
	return t.tx.Rollback()
}

// querier returns the transaction querier
func (t *sqliteTx) querier() querier {
	return t.tx
}

// querier returns the DB querier
func (s *SQLiteStorage) querier() querier {
	return s.db
}

// Reaction operations

// saveReactionWithQuerier upserts the reaction row and replaces its compounds
func (s *SQLiteStorage) saveReactionWithQuerier(ctx context.Context, q querier, rxn *Reaction) error {
	if rxn.ContentHash == ([32]byte{}) {
		rxn.ContentHash = HashReaction(rxn.ReactionSmiles)
	}

	// Use atomic INSERT ... ON CONFLICT so saving the same reaction twice keeps its ID
	query := `
		INSERT INTO reactions (reaction_smiles, content_hash, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(content_hash) DO UPDATE SET
			reaction_smiles = excluded.reaction_smiles
		RETURNING id
	`
	err := q.QueryRowContext(ctx, query,
		rxn.ReactionSmiles, rxn.ContentHash[:], time.Now(),
	).Scan(&rxn.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert reaction: %w", err)
	}

	err = q.QueryRowContext(ctx, `SELECT created_at FROM reactions WHERE id = ?`, rxn.ID).Scan(&rxn.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to read reaction timestamp: %w", err)
	}

	if _, err := q.ExecContext(ctx, `DELETE FROM compounds WHERE reaction_id = ?`, rxn.ID); err != nil {
		return fmt.Errorf("failed to clear compounds: %w", err)
	}

	insert := `INSERT INTO compounds (reaction_id, role, position, smiles) VALUES (?, ?, ?, ?)`
	groups := rxn.Equation.Groups()
	for i, role := range []Role{RoleReactant, RoleAgent, RoleProduct} {
		for pos, smiles := range groups[i] {
			if _, err := q.ExecContext(ctx, insert, rxn.ID, string(role), pos, smiles); err != nil {
				return fmt.Errorf("failed to insert %s %d: %w", role, pos, err)
			}
		}
	}

	return nil
}

// SaveReaction stores rxn and its compounds atomically, setting rxn.ID.
// A reaction with the same content hash is updated in place.
func (s *SQLiteStorage) SaveReaction(ctx context.Context, rxn *Reaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.saveReactionWithQuerier(ctx, tx, rxn); err != nil {
		return err
	}
	return tx.Commit()
}

// getReactionWithQuerier loads one reaction row matching the WHERE clause
func (s *SQLiteStorage) getReactionWithQuerier(ctx context.Context, q querier, where string, arg any) (*Reaction, error) {
	query := `
		SELECT id, reaction_smiles, content_hash, created_at
		FROM reactions
		WHERE ` + where

	var rxn Reaction
	var hash []byte
	err := q.QueryRowContext(ctx, query, arg).Scan(&rxn.ID, &rxn.ReactionSmiles, &hash, &rxn.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	copy(rxn.ContentHash[:], hash)

	if err := s.loadCompoundsWithQuerier(ctx, q, &rxn); err != nil {
		return nil, err
	}
	return &rxn, nil
}

// loadCompoundsWithQuerier fills rxn.Equation from the compounds table
func (s *SQLiteStorage) loadCompoundsWithQuerier(ctx context.Context, q querier, rxn *Reaction) error {
	query := `
		SELECT role, smiles
		FROM compounds
		WHERE reaction_id = ?
		ORDER BY position
	`
	rows, err := q.QueryContext(ctx, query, rxn.ID)
	if err != nil {
		return fmt.Errorf("failed to load compounds: %w", err)
	}
	defer func() { _ = rows.Close() }()

	byRole := map[Role][]string{
		RoleReactant: {},
		RoleAgent:    {},
		RoleProduct:  {},
	}
	for rows.Next() {
		var role, smiles string
		if err := rows.Scan(&role, &smiles); err != nil {
			return err
		}
		r := Role(role)
		if _, ok := byRole[r]; !ok {
			return fmt.Errorf("unknown compound role %q for reaction %d", role, rxn.ID)
		}
		byRole[r] = append(byRole[r], smiles)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	rxn.Equation = reaction.New(byRole[RoleReactant], byRole[RoleAgent], byRole[RoleProduct])
	return nil
}

func (s *SQLiteStorage) GetReaction(ctx context.Context, reactionID int64) (*Reaction, error) {
	return s.getReactionWithQuerier(ctx, s.querier(), "id = ?", reactionID)
}

func (s *SQLiteStorage) GetReactionByHash(ctx context.Context, contentHash [32]byte) (*Reaction, error) {
	return s.getReactionWithQuerier(ctx, s.querier(), "content_hash = ?", contentHash[:])
}

// deleteReactionWithQuerier removes a reaction; compounds cascade
func (s *SQLiteStorage) deleteReactionWithQuerier(ctx context.Context, q querier, reactionID int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM reactions WHERE id = ?`, reactionID)
	if err != nil {
		return fmt.Errorf("failed to delete reaction: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStorage) DeleteReaction(ctx context.Context, reactionID int64) error {
	return s.deleteReactionWithQuerier(ctx, s.querier(), reactionID)
}

func (s *SQLiteStorage) countReactionsWithQuerier(ctx context.Context, q querier) (int, error) {
	var count int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM reactions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reactions: %w", err)
	}
	return count, nil
}

func (s *SQLiteStorage) CountReactions(ctx context.Context) (int, error) {
	return s.countReactionsWithQuerier(ctx, s.querier())
}

// findByCompoundWithQuerier returns the reactions containing compound in the
// given role, oldest first
func (s *SQLiteStorage) findByCompoundWithQuerier(ctx context.Context, q querier, compound string, role Role, limit int) ([]*Reaction, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("unknown compound role %q", role)
	}
	if limit <= 0 {
		limit = DefaultFindLimit
	}

	query := `
		SELECT DISTINCT r.id, r.reaction_smiles, r.content_hash, r.created_at
		FROM reactions r
		JOIN compounds c ON c.reaction_id = r.id
		WHERE c.smiles = ? AND (? = '' OR c.role = ?)
		ORDER BY r.id
		LIMIT ?
	`
	rows, err := q.QueryContext(ctx, query, compound, string(role), string(role), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find reactions: %w", err)
	}

	reactions := make([]*Reaction, 0)
	for rows.Next() {
		var rxn Reaction
		var hash []byte
		if err := rows.Scan(&rxn.ID, &rxn.ReactionSmiles, &hash, &rxn.CreatedAt); err != nil {
			_ = rows.Close()
			return nil, err
		}
		copy(rxn.ContentHash[:], hash)
		reactions = append(reactions, &rxn)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	// Release the connection before loading compounds
	_ = rows.Close()

	for _, rxn := range reactions {
		if err := s.loadCompoundsWithQuerier(ctx, q, rxn); err != nil {
			return nil, err
		}
	}
	return reactions, nil
}

func (s *SQLiteStorage) FindByCompound(ctx context.Context, compound string, role Role, limit int) ([]*Reaction, error) {
	return s.findByCompoundWithQuerier(ctx, s.querier(), compound, role, limit)
}

// Transaction implementations use the transaction querier

func (t *sqliteTx) SaveReaction(ctx context.Context, rxn *Reaction) error {
	return t.storage.saveReactionWithQuerier(ctx, t.querier(), rxn)
}

func (t *sqliteTx) GetReaction(ctx context.Context, reactionID int64) (*Reaction, error) {
	return t.storage.getReactionWithQuerier(ctx, t.querier(), "id = ?", reactionID)
}

func (t *sqliteTx) GetReactionByHash(ctx context.Context, contentHash [32]byte) (*Reaction, error) {
	return t.storage.getReactionWithQuerier(ctx, t.querier(), "content_hash = ?", contentHash[:])
}

func (t *sqliteTx) DeleteReaction(ctx context.Context, reactionID int64) error {
	return t.storage.deleteReactionWithQuerier(ctx, t.querier(), reactionID)
}

func (t *sqliteTx) CountReactions(ctx context.Context) (int, error) {
	return t.storage.countReactionsWithQuerier(ctx, t.querier())
}

func (t *sqliteTx) FindByCompound(ctx context.Context, compound string, role Role, limit int) ([]*Reaction, error) {
	return t.storage.findByCompoundWithQuerier(ctx, t.querier(), compound, role, limit)
}

func (t *sqliteTx) BeginTx(ctx context.Context) (Tx, error) {
	return nil, ErrNestedTx
}

// Close is a no-op for transactions; the parent storage owns the connection
func (t *sqliteTx) Close() error {
	return nil
}

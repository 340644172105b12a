// Package storage provides SQLite-based persistence for reactions.
//
// A reaction is stored once per content hash (SHA-256 of its reaction SMILES)
// together with one row per compound, so reactions can be looked up by the
// molecules they contain.
//
// # Database Schema
//
// Tables:
//   - reactions: reaction SMILES and content hash
//   - compounds: compound SMILES with role (reactant, agent, product) and position
//   - schema_version: applied migrations, ordered by semantic version
//
// # Basic Usage
//
//	db, err := storage.NewSQLiteStorage("~/.rxnsmiles/reactions.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	rxn := storage.NewReaction("CC.O>>CCO", eq)
//	if err := db.SaveReaction(ctx, rxn); err != nil {
//	    return err
//	}
//
//	found, err := db.FindByCompound(ctx, "CCO", storage.RoleProduct, 10)
//
// # Transactions
//
// Use transactions to store many reactions atomically:
//
//	tx, err := db.BeginTx(ctx)
//	if err != nil {
//	    return err
//	}
//	defer tx.Rollback()
//
//	for _, rxn := range reactions {
//	    if err := tx.SaveReaction(ctx, rxn); err != nil {
//	        return err
//	    }
//	}
//
//	if err := tx.Commit(); err != nil {
//	    return err
//	}
//
// # Drivers
//
// The default build uses modernc.org/sqlite (pure Go). Building with the
// sqlite_cgo tag switches to github.com/mattn/go-sqlite3.
package storage

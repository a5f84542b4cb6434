// Package sqlite implements the engine's repository interfaces on a local
// SQLite database. Reference data arrives through JSONL imports from
// collaborator extracts; the store itself only ever writes test cases,
// trace selections, and program settings.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// Compile-time interface checks.
var (
	_ types.HierarchyRepository = (*Store)(nil)
	_ types.CatalogRepository   = (*Store)(nil)
	_ types.TraceRepository     = (*Store)(nil)
	_ types.CoverageRepository  = (*Store)(nil)
)

// Store is the SQLite-backed implementation of the four repository
// interfaces. Safe for concurrent readers; writes serialize on the
// embedded mutex.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open creates the data directory if needed, opens (or creates) the
// database file inside it, and applies the schema. The schema uses
// IF NOT EXISTS throughout, so reopening an existing store is safe.
func Open(config types.Config) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "saptrace.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", dbPath, err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// SaveProgram creates or updates a program record and its readiness
// threshold.
func (s *Store) SaveProgram(ctx context.Context, id, name string, threshold float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO programs (program_id, name, readiness_threshold)
		VALUES (?, ?, ?)
		ON CONFLICT(program_id) DO UPDATE SET name = excluded.name,
			readiness_threshold = excluded.readiness_threshold`,
		id, name, threshold)
	if err != nil {
		return fmt.Errorf("saving program %s: %w", id, err)
	}
	return nil
}

// replaceReferenceData replaces one program's rows in a reference table
// inside the given transaction.
func replaceReferenceData(ctx context.Context, tx *sql.Tx, table, programID string) error {
	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE program_id = ?", table), programID); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}
	return nil
}

// Nodes returns the program's process hierarchy as a flat list, parents
// before children.
func (s *Store) Nodes(ctx context.Context, programID string) ([]types.ProcessNode, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT node_id, level, COALESCE(parent_id, ''), code, name
		FROM process_nodes WHERE program_id = ?
		ORDER BY level, code`, programID)
	if err != nil {
		return nil, fmt.Errorf("querying process nodes: %w", err)
	}
	defer rows.Close()

	var nodes []types.ProcessNode
	for rows.Next() {
		var n types.ProcessNode
		if err := rows.Scan(&n.ID, &n.Level, &n.ParentID, &n.Code, &n.Name); err != nil {
			return nil, fmt.Errorf("scanning process node: %w", err)
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

// ReplaceNodes replaces the program's process hierarchy snapshot.
func (s *Store) ReplaceNodes(ctx context.Context, programID string, nodes []types.ProcessNode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning node replace: %w", err)
	}
	defer tx.Rollback()

	if err := replaceReferenceData(ctx, tx, "process_nodes", programID); err != nil {
		return err
	}
	for _, n := range nodes {
		if err := n.Validate(); err != nil {
			return fmt.Errorf("node %s: %w", n.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO process_nodes (node_id, program_id, level, parent_id, code, name)
			VALUES (?, ?, ?, ?, ?, ?)`,
			n.ID, programID, n.Level, nullable(n.ParentID), n.Code, n.Name); err != nil {
			return fmt.Errorf("inserting node %s: %w", n.ID, err)
		}
	}
	return tx.Commit()
}

// nullable maps an empty string to NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Execution tallies mirrored from the external test-execution subsystem.
// The engine never computes pass/fail outcomes; these rows are a verbatim
// copy of what the collaborator reported.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/pkg/types"
)

// ExecutionResults returns the program's execution tallies and readiness
// threshold. A program with no settings row falls back to a threshold of
// 100, which keeps every scope not_ready until the collaborator supplies
// one.
func (s *Store) ExecutionResults(ctx context.Context, programID string) (*types.ExecutionResults, error) {
	out := &types.ExecutionResults{
		Threshold: 100,
		ByCase:    make(map[string]types.ExecutionRecord),
	}

	var threshold float64
	err := s.db.QueryRowContext(ctx,
		"SELECT readiness_threshold FROM programs WHERE program_id = ?", programID).
		Scan(&threshold)
	switch {
	case err == sql.ErrNoRows:
		// Keep the default.
	case err != nil:
		return nil, fmt.Errorf("querying program threshold: %w", err)
	default:
		out.Threshold = threshold
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT test_case_id, runs, passed
		FROM executions WHERE program_id = ?`, programID)
	if err != nil {
		return nil, fmt.Errorf("querying executions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec types.ExecutionRecord
		if err := rows.Scan(&rec.TestCaseID, &rec.Runs, &rec.Passed); err != nil {
			return nil, fmt.Errorf("scanning execution record: %w", err)
		}
		out.ByCase[rec.TestCaseID] = rec
	}
	return out, rows.Err()
}

// RecordExecution upserts one collaborator-reported tally.
func (s *Store) RecordExecution(ctx context.Context, programID string, rec types.ExecutionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO executions (test_case_id, program_id, runs, passed)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(test_case_id) DO UPDATE SET
			runs = excluded.runs, passed = excluded.passed`,
		rec.TestCaseID, programID, rec.Runs, rec.Passed)
	if err != nil {
		return fmt.Errorf("recording execution for %s: %w", rec.TestCaseID, err)
	}
	return nil
}

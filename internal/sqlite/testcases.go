// Test case and trace selection persistence, plus the server-computed
// derived-traceability summary used by clients to reconcile after a save.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/internal/hierarchy"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/internal/trace"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/pkg/types"
)

// SaveTestCase creates or updates a test case's scalar fields. When the ID
// is empty a UUID v7 is generated. Trace selections are persisted
// separately through SaveSelections; a save that fails validation must
// never reach this method.
func (s *Store) SaveTestCase(ctx context.Context, programID string, tc *types.TestCase) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if tc.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return "", fmt.Errorf("generating test case ID: %w", err)
		}
		tc.ID = id.String()
		tc.CreatedAt = now
	}
	tc.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO test_cases (test_case_id, program_id, code, title, test_layer,
			module, risk, linked_data_set, data_readiness_note, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(test_case_id) DO UPDATE SET
			code = excluded.code, title = excluded.title,
			test_layer = excluded.test_layer, module = excluded.module,
			risk = excluded.risk, linked_data_set = excluded.linked_data_set,
			data_readiness_note = excluded.data_readiness_note,
			updated_at = excluded.updated_at`,
		tc.ID, programID, tc.Code, tc.Title, tc.TestLayer,
		tc.Module, tc.Risk, tc.LinkedDataSet, tc.DataReadinessNote,
		tc.CreatedAt.Format(time.RFC3339Nano), tc.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("saving test case %s: %w", tc.ID, err)
	}
	return tc.ID, nil
}

// DeleteTestCase removes a test case and its trace selections. Deleting
// the owning test case destroys its groups.
func (s *Store) DeleteTestCase(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM trace_selections WHERE test_case_id = ?", id); err != nil {
		return fmt.Errorf("deleting selections for %s: %w", id, err)
	}
	res, err := tx.ExecContext(ctx,
		"DELETE FROM test_cases WHERE test_case_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting test case %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return tx.Commit()
}

// TestCase loads one test case with its trace groups in stored order.
func (s *Store) TestCase(ctx context.Context, id string) (*types.TestCase, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT test_case_id, code, title, test_layer,
			COALESCE(module, ''), COALESCE(risk, ''),
			COALESCE(linked_data_set, ''), COALESCE(data_readiness_note, ''),
			created_at, updated_at
		FROM test_cases WHERE test_case_id = ?`, id)
	tc, err := hydrateTestCase(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting test case %s: %w", id, err)
	}
	if err := s.hydrateSelections(ctx, tc); err != nil {
		return nil, err
	}
	return tc, nil
}

// TestCases loads every test case of a program, each with its groups.
func (s *Store) TestCases(ctx context.Context, programID string) ([]*types.TestCase, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT test_case_id, code, title, test_layer,
			COALESCE(module, ''), COALESCE(risk, ''),
			COALESCE(linked_data_set, ''), COALESCE(data_readiness_note, ''),
			created_at, updated_at
		FROM test_cases WHERE program_id = ? ORDER BY code`, programID)
	if err != nil {
		return nil, fmt.Errorf("querying test cases: %w", err)
	}
	defer rows.Close()

	var out []*types.TestCase
	for rows.Next() {
		tc, err := hydrateTestCase(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning test case: %w", err)
		}
		out = append(out, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, tc := range out {
		if err := s.hydrateSelections(ctx, tc); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// hydrateTestCase scans one test_cases row into a TestCase.
func hydrateTestCase(sc scanner) (*types.TestCase, error) {
	var tc types.TestCase
	var createdAt, updatedAt string
	if err := sc.Scan(&tc.ID, &tc.Code, &tc.Title, &tc.TestLayer,
		&tc.Module, &tc.Risk, &tc.LinkedDataSet, &tc.DataReadinessNote,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if tc.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if tc.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &tc, nil
}

// hydrateSelections loads the test case's trace selections and rebuilds
// its groups.
func (s *Store) hydrateSelections(ctx context.Context, tc *types.TestCase) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT l3_id, l4_ids, manual_requirement_ids, manual_wricef_ids,
			manual_config_ids, excluded_requirement_ids, excluded_wricef_ids,
			excluded_config_ids
		FROM trace_selections WHERE test_case_id = ? ORDER BY position`, tc.ID)
	if err != nil {
		return fmt.Errorf("querying selections for %s: %w", tc.ID, err)
	}
	defer rows.Close()

	tc.Groups = nil
	for rows.Next() {
		var sel types.TraceSelection
		var l4, mr, mw, mc, xr, xw, xc string
		if err := rows.Scan(&sel.L3ID, &l4, &mr, &mw, &mc, &xr, &xw, &xc); err != nil {
			return fmt.Errorf("scanning selection: %w", err)
		}
		for _, pair := range []struct {
			raw  string
			dest *[]string
		}{
			{l4, &sel.L4IDs}, {mr, &sel.ManualRequirementIDs},
			{mw, &sel.ManualWricefIDs}, {mc, &sel.ManualConfigIDs},
			{xr, &sel.ExcludedRequirementIDs}, {xw, &sel.ExcludedWricefIDs},
			{xc, &sel.ExcludedConfigIDs},
		} {
			if err := json.Unmarshal([]byte(pair.raw), pair.dest); err != nil {
				return fmt.Errorf("decoding selection sets for %s: %w", tc.ID, err)
			}
		}
		tc.Groups = append(tc.Groups, sel.Group())
	}
	return rows.Err()
}

// SaveSelections replaces the test case's stored trace selections
// wholesale. The replace is transactional: either every record lands or
// none does. Duplicate L3 scopes in the payload abort the save.
func (s *Store) SaveSelections(ctx context.Context, testCaseID string, selections []types.TraceSelection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists bool
	if err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM test_cases WHERE test_case_id = ?", testCaseID).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return types.ErrNotFound
		}
		return fmt.Errorf("checking test case %s: %w", testCaseID, err)
	}

	seen := types.NewIDSet()
	for _, sel := range selections {
		if sel.L3ID == "" {
			return types.ErrInvalidID
		}
		if seen.Has(sel.L3ID) {
			return types.ErrDuplicateL3
		}
		seen.Add(sel.L3ID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning selection save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM trace_selections WHERE test_case_id = ?", testCaseID); err != nil {
		return fmt.Errorf("clearing selections for %s: %w", testCaseID, err)
	}
	for i, sel := range selections {
		cols, err := encodeSelectionSets(sel)
		if err != nil {
			return fmt.Errorf("encoding selection %s: %w", sel.L3ID, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO trace_selections (test_case_id, position, l3_id, l4_ids,
				manual_requirement_ids, manual_wricef_ids, manual_config_ids,
				excluded_requirement_ids, excluded_wricef_ids, excluded_config_ids)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			testCaseID, i, sel.L3ID, cols[0], cols[1], cols[2], cols[3],
			cols[4], cols[5], cols[6]); err != nil {
			return fmt.Errorf("inserting selection %s: %w", sel.L3ID, err)
		}
	}
	return tx.Commit()
}

// encodeSelectionSets marshals the seven ID slices of a selection as JSON
// arrays, in column order.
func encodeSelectionSets(sel types.TraceSelection) ([7]string, error) {
	var out [7]string
	for i, ids := range [][]string{
		sel.L4IDs, sel.ManualRequirementIDs, sel.ManualWricefIDs,
		sel.ManualConfigIDs, sel.ExcludedRequirementIDs,
		sel.ExcludedWricefIDs, sel.ExcludedConfigIDs,
	} {
		if ids == nil {
			ids = []string{}
		}
		raw, err := json.Marshal(ids)
		if err != nil {
			return out, err
		}
		out[i] = string(raw)
	}
	return out, nil
}

// DerivedSummary recomputes effective membership for a persisted test
// case server-side, mirroring the client resolver. Clients compare this
// against their local state after a save to detect catalog drift.
func (s *Store) DerivedSummary(ctx context.Context, testCaseID string) (*types.DerivedSummary, error) {
	tc, err := s.TestCase(ctx, testCaseID)
	if err != nil {
		return nil, err
	}
	programID, err := s.ProgramOf(ctx, testCaseID)
	if err != nil {
		return nil, err
	}
	nodes, err := s.Nodes(ctx, programID)
	if err != nil {
		return nil, err
	}
	cat, err := s.Catalog(ctx, programID)
	if err != nil {
		return nil, err
	}

	resolver := trace.NewResolver(hierarchy.NewIndex(nodes), cat)
	summary := &types.DerivedSummary{TestCaseID: testCaseID}
	for _, g := range tc.Groups {
		gs := types.GroupSummary{
			L3ID:                    g.L3ID,
			EffectiveRequirementIDs: resolver.Effective(types.KindRequirement, g).Values(),
			EffectiveWricefIDs:      resolver.Effective(types.KindWricef, g).Values(),
			EffectiveConfigIDs:      resolver.Effective(types.KindConfig, g).Values(),
		}
		notCovered := g.ExcludedRequirementIDs.Union(g.ExcludedWricefIDs).Union(g.ExcludedConfigIDs)
		gs.NotCoveredIDs = notCovered.Values()
		summary.Groups = append(summary.Groups, gs)
	}
	return summary, nil
}

// ProgramOf returns the program owning a test case.
func (s *Store) ProgramOf(ctx context.Context, testCaseID string) (string, error) {
	var programID string
	err := s.db.QueryRowContext(ctx,
		"SELECT program_id FROM test_cases WHERE test_case_id = ?", testCaseID).Scan(&programID)
	if err == sql.ErrNoRows {
		return "", types.ErrNotFound
	}
	return programID, err
}

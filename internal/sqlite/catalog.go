// Catalog snapshot reads and reference-data replacement for requirements,
// WRICEF items, and configuration items.
package sqlite

import (
	"context"
	"fmt"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/pkg/types"
)

// Catalog returns the program's artifact snapshot in stable code order.
func (s *Store) Catalog(ctx context.Context, programID string) (*types.Catalog, error) {
	cat := &types.Catalog{}

	rows, err := s.db.QueryContext(ctx, `
		SELECT requirement_id, code, title, process_anchor, fit_status
		FROM requirements WHERE program_id = ? ORDER BY code`, programID)
	if err != nil {
		return nil, fmt.Errorf("querying requirements: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var r types.Requirement
		if err := rows.Scan(&r.ID, &r.Code, &r.Title, &r.ProcessAnchor, &r.FitStatus); err != nil {
			return nil, fmt.Errorf("scanning requirement: %w", err)
		}
		cat.Requirements = append(cat.Requirements, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	wrows, err := s.db.QueryContext(ctx, `
		SELECT item_id, code, title, category, requirement_id
		FROM wricef_items WHERE program_id = ? ORDER BY code`, programID)
	if err != nil {
		return nil, fmt.Errorf("querying wricef items: %w", err)
	}
	defer wrows.Close()
	for wrows.Next() {
		var w types.WricefItem
		if err := wrows.Scan(&w.ID, &w.Code, &w.Title, &w.Category, &w.OriginatingRequirementID); err != nil {
			return nil, fmt.Errorf("scanning wricef item: %w", err)
		}
		cat.WricefItems = append(cat.WricefItems, w)
	}
	if err := wrows.Err(); err != nil {
		return nil, err
	}

	crows, err := s.db.QueryContext(ctx, `
		SELECT item_id, code, title, requirement_id
		FROM config_items WHERE program_id = ? ORDER BY code`, programID)
	if err != nil {
		return nil, fmt.Errorf("querying config items: %w", err)
	}
	defer crows.Close()
	for crows.Next() {
		var c types.ConfigItem
		if err := crows.Scan(&c.ID, &c.Code, &c.Title, &c.OriginatingRequirementID); err != nil {
			return nil, fmt.Errorf("scanning config item: %w", err)
		}
		cat.ConfigItems = append(cat.ConfigItems, c)
	}
	return cat, crows.Err()
}

// ReplaceCatalog replaces the program's artifact snapshot wholesale.
// Records failing entity validation abort the whole replace; a partial
// catalog would corrupt every derivation built on it.
func (s *Store) ReplaceCatalog(ctx context.Context, programID string, cat *types.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning catalog replace: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"requirements", "wricef_items", "config_items"} {
		if err := replaceReferenceData(ctx, tx, table, programID); err != nil {
			return err
		}
	}

	for _, r := range cat.Requirements {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("requirement %s: %w", r.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO requirements (requirement_id, program_id, code, title, process_anchor, fit_status)
			VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, programID, r.Code, r.Title, r.ProcessAnchor, r.FitStatus); err != nil {
			return fmt.Errorf("inserting requirement %s: %w", r.ID, err)
		}
	}
	for _, w := range cat.WricefItems {
		if err := w.Validate(); err != nil {
			return fmt.Errorf("wricef item %s: %w", w.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO wricef_items (item_id, program_id, code, title, category, requirement_id)
			VALUES (?, ?, ?, ?, ?, ?)`,
			w.ID, programID, w.Code, w.Title, w.Category, w.OriginatingRequirementID); err != nil {
			return fmt.Errorf("inserting wricef item %s: %w", w.ID, err)
		}
	}
	for _, c := range cat.ConfigItems {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("config item %s: %w", c.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO config_items (item_id, program_id, code, title, requirement_id)
			VALUES (?, ?, ?, ?, ?)`,
			c.ID, programID, c.Code, c.Title, c.OriginatingRequirementID); err != nil {
			return fmt.Errorf("inserting config item %s: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

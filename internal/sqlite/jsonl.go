// JSONL import and export of collaborator extracts. One file per entity
// type, one
// JSON object per line; malformed lines are skipped so a partially
// corrupted extract still loads the healthy remainder.
package sqlite

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/pkg/types"
)

// Extract filenames inside an import directory. Missing files are treated
// as empty.
const (
	nodesFile        = "process_nodes.jsonl"
	requirementsFile = "requirements.jsonl"
	wricefFile       = "wricef_items.jsonl"
	configFile       = "config_items.jsonl"
	testCasesFile    = "test_cases.jsonl"
	executionsFile   = "executions.jsonl"
)

// testCaseRecord is the wire shape of one test case line: scalar fields
// plus structural selections.
type testCaseRecord struct {
	ID                string                 `json:"id"`
	Code              string                 `json:"code"`
	Title             string                 `json:"title"`
	TestLayer         string                 `json:"test_layer"`
	Module            string                 `json:"module"`
	Risk              string                 `json:"risk"`
	LinkedDataSet     string                 `json:"linked_data_set"`
	DataReadinessNote string                 `json:"data_readiness_note"`
	Selections        []types.TraceSelection `json:"selections"`
}

// ImportStats reports how many records each import pass loaded.
type ImportStats struct {
	Nodes        int
	Requirements int
	WricefItems  int
	ConfigItems  int
	TestCases    int
	Executions   int
	Skipped      int
}

// ImportProgram loads a program's JSONL extract directory into the store,
// replacing existing reference data for that program. Test cases are
// upserted individually so re-importing an extract is idempotent.
func (s *Store) ImportProgram(ctx context.Context, programID, dir string) (ImportStats, error) {
	var stats ImportStats

	nodes, skipped, err := decodeJSONL[types.ProcessNode](filepath.Join(dir, nodesFile))
	if err != nil {
		return stats, err
	}
	stats.Skipped += skipped
	if err := s.ReplaceNodes(ctx, programID, nodes); err != nil {
		return stats, err
	}
	stats.Nodes = len(nodes)

	cat := &types.Catalog{}
	if cat.Requirements, skipped, err = decodeJSONL[types.Requirement](filepath.Join(dir, requirementsFile)); err != nil {
		return stats, err
	}
	stats.Skipped += skipped
	if cat.WricefItems, skipped, err = decodeJSONL[types.WricefItem](filepath.Join(dir, wricefFile)); err != nil {
		return stats, err
	}
	stats.Skipped += skipped
	if cat.ConfigItems, skipped, err = decodeJSONL[types.ConfigItem](filepath.Join(dir, configFile)); err != nil {
		return stats, err
	}
	stats.Skipped += skipped
	if err := s.ReplaceCatalog(ctx, programID, cat); err != nil {
		return stats, err
	}
	stats.Requirements = len(cat.Requirements)
	stats.WricefItems = len(cat.WricefItems)
	stats.ConfigItems = len(cat.ConfigItems)

	cases, skipped, err := decodeJSONL[testCaseRecord](filepath.Join(dir, testCasesFile))
	if err != nil {
		return stats, err
	}
	stats.Skipped += skipped
	for _, rec := range cases {
		tc := &types.TestCase{
			ID:                rec.ID,
			Code:              rec.Code,
			Title:             rec.Title,
			TestLayer:         rec.TestLayer,
			Module:            rec.Module,
			Risk:              rec.Risk,
			LinkedDataSet:     rec.LinkedDataSet,
			DataReadinessNote: rec.DataReadinessNote,
		}
		id, err := s.SaveTestCase(ctx, programID, tc)
		if err != nil {
			return stats, err
		}
		if err := s.SaveSelections(ctx, id, rec.Selections); err != nil {
			return stats, fmt.Errorf("importing selections for %s: %w", rec.Code, err)
		}
		stats.TestCases++
	}

	execs, skipped, err := decodeJSONL[types.ExecutionRecord](filepath.Join(dir, executionsFile))
	if err != nil {
		return stats, err
	}
	stats.Skipped += skipped
	for _, rec := range execs {
		if err := s.RecordExecution(ctx, programID, rec); err != nil {
			return stats, err
		}
		stats.Executions++
	}
	return stats, nil
}

// ExportProgram writes a program's reference data, test cases, and
// execution tallies as a JSONL extract directory that ImportProgram can
// load back.
func (s *Store) ExportProgram(ctx context.Context, programID, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}

	nodes, err := s.Nodes(ctx, programID)
	if err != nil {
		return err
	}
	if err := encodeJSONL(filepath.Join(dir, nodesFile), nodes); err != nil {
		return err
	}

	cat, err := s.Catalog(ctx, programID)
	if err != nil {
		return err
	}
	if err := encodeJSONL(filepath.Join(dir, requirementsFile), cat.Requirements); err != nil {
		return err
	}
	if err := encodeJSONL(filepath.Join(dir, wricefFile), cat.WricefItems); err != nil {
		return err
	}
	if err := encodeJSONL(filepath.Join(dir, configFile), cat.ConfigItems); err != nil {
		return err
	}

	cases, err := s.TestCases(ctx, programID)
	if err != nil {
		return err
	}
	records := make([]testCaseRecord, 0, len(cases))
	for _, tc := range cases {
		rec := testCaseRecord{
			ID:                tc.ID,
			Code:              tc.Code,
			Title:             tc.Title,
			TestLayer:         tc.TestLayer,
			Module:            tc.Module,
			Risk:              tc.Risk,
			LinkedDataSet:     tc.LinkedDataSet,
			DataReadinessNote: tc.DataReadinessNote,
		}
		for _, g := range tc.Groups {
			rec.Selections = append(rec.Selections, g.Selection())
		}
		records = append(records, rec)
	}
	if err := encodeJSONL(filepath.Join(dir, testCasesFile), records); err != nil {
		return err
	}

	exec, err := s.ExecutionResults(ctx, programID)
	if err != nil {
		return err
	}
	tallies := make([]types.ExecutionRecord, 0, len(exec.ByCase))
	for _, id := range sortedKeys(exec.ByCase) {
		tallies = append(tallies, exec.ByCase[id])
	}
	return encodeJSONL(filepath.Join(dir, executionsFile), tallies)
}

// sortedKeys returns the map keys in sorted order for stable exports.
func sortedKeys(m map[string]types.ExecutionRecord) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// encodeJSONL writes one JSON object per line.
func encodeJSONL[T any](path string, records []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encoding %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// decodeJSONL reads a JSONL file into a slice of T. A missing file yields
// an empty slice. Empty and malformed lines are counted and skipped.
func decodeJSONL[T any](path string) ([]T, int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var out []T
	skipped := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec T
		if err := json.Unmarshal(line, &rec); err != nil {
			skipped++
			continue
		}
		out = append(out, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("scanning %s: %w", path, err)
	}
	return out, skipped, nil
}

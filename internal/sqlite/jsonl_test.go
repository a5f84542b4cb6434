package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeExtract(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestImportProgram(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	dir := t.TempDir()

	writeExtract(t, dir, nodesFile, `{"id":"L1-1","level":1,"code":"VC1","name":"Order to Cash"}
{"id":"L2-10","level":2,"parent_id":"L1-1","code":"PA1","name":"Sales"}
{"id":"L3-100","level":3,"parent_id":"L2-10","code":"P1","name":"Create Sales Order"}
{"id":"L4-110","level":4,"parent_id":"L3-100","code":"S1","name":"Enter Header"}
`)
	writeExtract(t, dir, requirementsFile, `{"id":"R1","code":"REQ-001","title":"Order entry","process_anchor":"L3-100","fit_status":"fit"}
not json at all
{"id":"R2","code":"REQ-002","title":"Pricing","process_anchor":"L4-110","fit_status":"gap"}
`)
	writeExtract(t, dir, wricefFile, `{"id":"W1","code":"WRF-001","title":"Pricing exit","category":"E","originating_requirement_id":"R2"}
`)
	writeExtract(t, dir, testCasesFile, `{"code":"TC-001","title":"Order flow","test_layer":"sit","module":"SD","risk":"high","linked_data_set":"DS-1","selections":[{"l3_id":"L3-100","l4_ids":["L4-110"]}]}
`)
	writeExtract(t, dir, executionsFile, `{"test_case_id":"TC-EXT-1","runs":5,"passed":4}
`)

	stats, err := s.ImportProgram(ctx, "P1", dir)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Nodes)
	assert.Equal(t, 2, stats.Requirements)
	assert.Equal(t, 1, stats.WricefItems)
	assert.Equal(t, 0, stats.ConfigItems)
	assert.Equal(t, 1, stats.TestCases)
	assert.Equal(t, 1, stats.Executions)
	assert.Equal(t, 1, stats.Skipped, "malformed line is skipped, not fatal")

	cases, err := s.TestCases(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, cases, 1)
	require.Len(t, cases[0].Groups, 1)
	assert.True(t, cases[0].Groups[0].L4IDs.Has("L4-110"))
}

func TestImportProgramMissingFilesTolerated(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	stats, err := s.ImportProgram(ctx, "P1", t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, stats.Nodes)
	assert.Zero(t, stats.TestCases)
}

func TestExportProgramRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.SeedDemoProgram(ctx))

	dir := t.TempDir()
	require.NoError(t, s.ExportProgram(ctx, DemoProgramID, dir))

	s2 := openTestStore(t)
	stats, err := s2.ImportProgram(ctx, "COPY", dir)
	require.NoError(t, err)
	assert.Equal(t, 7, stats.Nodes)
	assert.Equal(t, 4, stats.Requirements)
	assert.Equal(t, 2, stats.TestCases)
	assert.Equal(t, 2, stats.Executions)
	assert.Zero(t, stats.Skipped)

	cases, err := s2.TestCases(ctx, "COPY")
	require.NoError(t, err)
	require.Len(t, cases, 2)
	require.Len(t, cases[0].Groups, 1)
	assert.Equal(t, "L3-SO", cases[0].Groups[0].L3ID)
}

func TestImportProgramIdempotent(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	dir := t.TempDir()

	writeExtract(t, dir, nodesFile, `{"id":"L1-1","level":1,"code":"VC1","name":"OTC"}
`)
	writeExtract(t, dir, testCasesFile, `{"id":"TC-FIXED","code":"TC-001","title":"Order flow","test_layer":"unit"}
`)

	_, err := s.ImportProgram(ctx, "P1", dir)
	require.NoError(t, err)
	_, err = s.ImportProgram(ctx, "P1", dir)
	require.NoError(t, err)

	nodes, err := s.Nodes(ctx, "P1")
	require.NoError(t, err)
	assert.Len(t, nodes, 1)

	cases, err := s.TestCases(ctx, "P1")
	require.NoError(t, err)
	assert.Len(t, cases, 1, "fixed-ID test case upserts instead of duplicating")
}

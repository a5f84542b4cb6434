package types

// Readiness is the boolean verdict combining requirement coverage and
// execution pass rate for a process scope.
type Readiness string

// Readiness values.
const (
	ReadinessReady    Readiness = "ready"
	ReadinessNotReady Readiness = "not_ready"
)

// CoverageRatio is a covered/total pair. Percent is defined as 100 for a
// zero total: an empty candidate set is vacuously covered.
type CoverageRatio struct {
	Covered int `json:"covered"`
	Total   int `json:"total"`
}

// Percent returns the ratio as a percentage in [0,100].
func (r CoverageRatio) Percent() float64 {
	if r.Total == 0 {
		return 100
	}
	return 100 * float64(r.Covered) / float64(r.Total)
}

// Complete reports whether every candidate is covered (vacuously true for
// a zero total).
func (r CoverageRatio) Complete() bool {
	return r.Covered >= r.Total
}

// CoverageSnapshot is the derived readiness roll-up for one L3 process.
// It is never stored; the aggregator recomputes it on demand from the
// current test case catalog and execution results.
type CoverageSnapshot struct {
	L3ID                string        `json:"l3_id"`
	TotalTestCases      int           `json:"total_test_cases"`
	RequirementCoverage CoverageRatio `json:"requirement_coverage"`
	ProcessStepCoverage CoverageRatio `json:"process_step_coverage"`
	PassRate            float64       `json:"pass_rate"`
	Readiness           Readiness     `json:"readiness"`
}

// ExecutionRecord carries the execution tally for one test case as
// supplied by the external test-execution subsystem. The engine never
// computes pass/fail outcomes; it only selects which records contribute
// to a given L3 snapshot.
type ExecutionRecord struct {
	TestCaseID string `json:"test_case_id"`
	Runs       int    `json:"runs"`
	Passed     int    `json:"passed"`
}

// ExecutionResults is the execution collaborator's snapshot: per-test-case
// tallies plus the program's readiness threshold (percent). The threshold
// is collaborator-owned; the engine only compares against it.
type ExecutionResults struct {
	Threshold float64                    `json:"threshold"`
	ByCase    map[string]ExecutionRecord `json:"by_case"`
}

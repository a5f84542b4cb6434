// Package coverage rolls up effective trace sets across every test case
// touching an L3 process into a readiness snapshot. The aggregator is
// read-only and side-effect free: it may be invoked repeatedly, and
// concurrently with edits to unrelated test cases.
package coverage

import (
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/internal/hierarchy"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/internal/trace"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/pkg/types"
)

// Aggregator computes L3 readiness snapshots against one hierarchy and
// catalog snapshot pair. Like the resolver it wraps, it is rebuilt on
// refresh rather than invalidated.
type Aggregator struct {
	idx      *hierarchy.Index
	resolver *trace.Resolver
}

// NewAggregator builds an aggregator over the given snapshot pair.
func NewAggregator(idx *hierarchy.Index, cat *types.Catalog) *Aggregator {
	return &Aggregator{idx: idx, resolver: trace.NewResolver(idx, cat)}
}

// Snapshot computes the readiness roll-up for one L3 process across the
// full test case catalog.
//
// The requirement denominator is the complete candidate set for the L3,
// independent of what any group claims: uncovered requirements show as a
// gap. A candidate counts as covered when at least one contributing group
// holds it effectively without excluding it. Process step coverage is the
// analogous ratio over the L3's L4 children. Both ratios are vacuously
// 100% for an empty denominator.
//
// The pass rate is taken from the execution collaborator's tallies for
// the contributing test cases; the engine never computes pass/fail
// outcomes. With no executions the pass rate is 0 and the scope is
// not_ready. Readiness requires the collaborator threshold to be met and
// requirement coverage to be complete.
func (a *Aggregator) Snapshot(l3ID string, testCases []*types.TestCase, exec *types.ExecutionResults) types.CoverageSnapshot {
	snap := types.CoverageSnapshot{L3ID: l3ID, Readiness: types.ReadinessNotReady}

	coveredReqs := types.NewIDSet()
	claimedSteps := types.NewIDSet()
	var contributing []string

	for _, tc := range testCases {
		g := tc.GroupForL3(l3ID)
		if g == nil {
			continue
		}
		contributing = append(contributing, tc.ID)

		for _, id := range a.resolver.Effective(types.KindRequirement, g).Values() {
			if g.CoverageStatus(types.KindRequirement, id) == types.StatusCovered {
				coveredReqs.Add(id)
			}
		}
		for _, l4 := range g.L4IDs.Values() {
			claimedSteps.Add(l4)
		}
	}
	snap.TotalTestCases = len(contributing)

	candidates := types.NewIDSet()
	for _, req := range a.resolver.CandidateRequirements(l3ID) {
		candidates.Add(req.ID)
	}
	covered := 0
	for id := range candidates {
		if coveredReqs.Has(id) {
			covered++
		}
	}
	snap.RequirementCoverage = types.CoverageRatio{Covered: covered, Total: candidates.Len()}

	steps := a.idx.StepsOf(l3ID)
	stepsCovered := 0
	for _, step := range steps {
		if claimedSteps.Has(step.ID) {
			stepsCovered++
		}
	}
	snap.ProcessStepCoverage = types.CoverageRatio{Covered: stepsCovered, Total: len(steps)}

	snap.PassRate, snap.Readiness = a.readiness(snap.RequirementCoverage, contributing, exec)
	return snap
}

// readiness consumes the collaborator-supplied execution tallies for the
// contributing test cases and applies the readiness rule.
func (a *Aggregator) readiness(reqCov types.CoverageRatio, contributing []string, exec *types.ExecutionResults) (float64, types.Readiness) {
	if exec == nil {
		return 0, types.ReadinessNotReady
	}
	var runs, passed int
	for _, id := range contributing {
		rec, ok := exec.ByCase[id]
		if !ok {
			continue
		}
		runs += rec.Runs
		passed += rec.Passed
	}
	if runs == 0 {
		return 0, types.ReadinessNotReady
	}
	passRate := 100 * float64(passed) / float64(runs)
	if passRate >= exec.Threshold && reqCov.Complete() {
		return passRate, types.ReadinessReady
	}
	return passRate, types.ReadinessNotReady
}

// L3Nodes returns the L3 processes of the underlying hierarchy, in
// hierarchy order.
func (a *Aggregator) L3Nodes() []types.ProcessNode {
	return a.idx.L3Nodes()
}

// Snapshots computes one snapshot per L3 process in the hierarchy, in
// hierarchy order.
func (a *Aggregator) Snapshots(testCases []*types.TestCase, exec *types.ExecutionResults) []types.CoverageSnapshot {
	l3s := a.idx.L3Nodes()
	out := make([]types.CoverageSnapshot, 0, len(l3s))
	for _, n := range l3s {
		out = append(out, a.Snapshot(n.ID, testCases, exec))
	}
	return out
}

package trace

import (
	"fmt"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/internal/hierarchy"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/pkg/types"
)

// Session owns one test case's trace groups for the duration of an edit.
// It holds a private clone of the test case: abandoning the session
// discards every mutation, and two sessions over the same test case never
// share state. All derivation runs inline against the session's current
// snapshot pair; nothing is computed in the background.
//
// A session constructed after a failed collaborator fetch is degraded: it
// derives empty sets and refuses to export selections until Refresh
// succeeds with a live snapshot.
type Session struct {
	tc       *types.TestCase
	idx      *hierarchy.Index
	resolver *Resolver
	degraded bool
	warnings []string
}

// NewSession starts an editing session over a clone of tc using the given
// snapshot pair. Groups whose L3 vanished from the hierarchy are dropped
// immediately and surfaced as warnings.
func NewSession(tc *types.TestCase, idx *hierarchy.Index, cat *types.Catalog) *Session {
	s := &Session{
		tc:       tc.Clone(),
		idx:      idx,
		resolver: NewResolver(idx, cat),
	}
	s.sweep()
	return s
}

// NewDegradedSession starts a session after a collaborator fetch failed.
// The cause is kept as a warning; every derivation yields an empty set and
// Selections returns ErrSaveDisabled until Refresh succeeds.
func NewDegradedSession(tc *types.TestCase, cause error) *Session {
	idx := hierarchy.NewIndex(nil)
	s := &Session{
		tc:       tc.Clone(),
		idx:      idx,
		resolver: NewResolver(idx, &types.Catalog{}),
		degraded: true,
	}
	if cause != nil {
		s.warnings = append(s.warnings, cause.Error())
	}
	return s
}

// Refresh replaces the session's snapshot pair after a catalog reload.
// Clears the degraded state, rebuilds the resolver (derivations are never
// cached across refreshes), and re-runs the consistency sweep.
func (s *Session) Refresh(idx *hierarchy.Index, cat *types.Catalog) {
	s.idx = idx
	s.resolver = NewResolver(idx, cat)
	s.degraded = false
	s.sweep()
}

// sweep drops trace groups whose L3 no longer exists in the hierarchy
// snapshot. Each dropped group becomes a warning; the session itself keeps
// working.
func (s *Session) sweep() {
	kept := s.tc.Groups[:0]
	for _, g := range s.tc.Groups {
		if !s.idx.Contains(g.L3ID) {
			err := types.DerivationInconsistencyError{L3ID: g.L3ID}
			s.warnings = append(s.warnings, err.Error())
			continue
		}
		kept = append(kept, g)
	}
	s.tc.Groups = kept
}

// TestCase returns the session's working copy. Callers hand it to the
// validation gate before persisting.
func (s *Session) TestCase() *types.TestCase {
	return s.tc
}

// Groups returns the session's trace groups in attachment order.
func (s *Session) Groups() []*types.TraceGroup {
	return s.tc.Groups
}

// Warnings returns the inconsistency and collaborator messages accumulated
// so far, oldest first.
func (s *Session) Warnings() []string {
	return s.warnings
}

// Degraded reports whether the session is operating without a live
// catalog snapshot.
func (s *Session) Degraded() bool {
	return s.degraded
}

// group returns the trace group scoped to l3ID or ErrNotFound.
func (s *Session) group(l3ID string) (*types.TraceGroup, error) {
	if g := s.tc.GroupForL3(l3ID); g != nil {
		return g, nil
	}
	return nil, types.ErrNotFound
}

// requireL3 checks that id names an L3 process in the current hierarchy.
func (s *Session) requireL3(id string) error {
	n, ok := s.idx.Node(id)
	if !ok {
		return types.ErrUnknownNode
	}
	if n.Level != types.LevelProcess {
		return types.ErrNotL3
	}
	return nil
}

// AttachGroup adds a trace group scoped to l3ID. The node must be a known
// L3 process and not already claimed by another group of this test case.
func (s *Session) AttachGroup(l3ID string) (*types.TraceGroup, error) {
	if err := s.requireL3(l3ID); err != nil {
		return nil, err
	}
	return s.tc.AttachGroup(l3ID)
}

// DetachGroup removes the group scoped to l3ID. A group that carries L4 or
// manual/excluded selections is only removed when force is set; callers
// surface the confirmation prompt.
func (s *Session) DetachGroup(l3ID string, force bool) error {
	g, err := s.group(l3ID)
	if err != nil {
		return err
	}
	if g.HasChildren() && !force {
		return types.ErrGroupHasChildren
	}
	return s.tc.DetachGroup(l3ID)
}

// ChangeL3 rescopes an existing group to a different L3 process. The new
// node must be a known L3 not claimed by a sibling group. All manual and
// excluded sets of the group are reset; sibling groups are untouched.
func (s *Session) ChangeL3(oldL3ID, newL3ID string) error {
	g, err := s.group(oldL3ID)
	if err != nil {
		return err
	}
	if newL3ID == oldL3ID {
		return nil
	}
	if err := s.requireL3(newL3ID); err != nil {
		return err
	}
	if s.tc.GroupForL3(newL3ID) != nil {
		return types.ErrDuplicateL3
	}
	g.ChangeL3(newL3ID)
	return nil
}

// AddStep narrows the group's scope to include the given L4 process step.
// The step must belong to the group's L3.
func (s *Session) AddStep(l3ID, l4ID string) error {
	g, err := s.group(l3ID)
	if err != nil {
		return err
	}
	anc, ok := s.idx.L3AncestorOf(l4ID)
	if !ok || anc != l3ID {
		return types.ErrUnknownNode
	}
	n, _ := s.idx.Node(l4ID)
	if n.Level != types.LevelProcessStep {
		return fmt.Errorf("adding step %s: %w", l4ID, types.ErrInvalidLevel)
	}
	g.AddStep(l4ID)
	return nil
}

// RemoveStep widens the group's scope by removing an L4 selection.
// Removing a step that was never selected is a no-op.
func (s *Session) RemoveStep(l3ID, l4ID string) error {
	g, err := s.group(l3ID)
	if err != nil {
		return err
	}
	g.RemoveStep(l4ID)
	return nil
}

// AddManual adds a manual inclusion to the group scoped to l3ID.
func (s *Session) AddManual(l3ID string, kind types.ItemKind, id string) error {
	g, err := s.group(l3ID)
	if err != nil {
		return err
	}
	return g.AddManual(kind, id)
}

// RemoveManual removes a manual inclusion from the group scoped to l3ID.
func (s *Session) RemoveManual(l3ID string, kind types.ItemKind, id string) error {
	g, err := s.group(l3ID)
	if err != nil {
		return err
	}
	return g.RemoveManual(kind, id)
}

// ToggleExcluded flips coverage credit for one item within the group
// scoped to l3ID and returns the resulting status.
func (s *Session) ToggleExcluded(l3ID string, kind types.ItemKind, id string) (types.CoverageStatus, error) {
	g, err := s.group(l3ID)
	if err != nil {
		return "", err
	}
	return g.ToggleExcluded(kind, id)
}

// Derive recomputes the implied artifact set for the group scoped to l3ID.
func (s *Session) Derive(l3ID string) (DerivedSet, error) {
	g, err := s.group(l3ID)
	if err != nil {
		return DerivedSet{}, err
	}
	return s.resolver.Derive(g), nil
}

// Effective returns the effective membership for one kind of the group
// scoped to l3ID.
func (s *Session) Effective(l3ID string, kind types.ItemKind) (types.IDSet, error) {
	g, err := s.group(l3ID)
	if err != nil {
		return nil, err
	}
	return s.resolver.Effective(kind, g), nil
}

// EffectiveItems returns the annotated effective membership for display.
func (s *Session) EffectiveItems(l3ID string, kind types.ItemKind) ([]EffectiveItem, error) {
	g, err := s.group(l3ID)
	if err != nil {
		return nil, err
	}
	return s.resolver.EffectiveItems(kind, g), nil
}

// Selections exports the structural selections for persistence: one record
// per group, in attachment order. Only structure is exported; derived
// membership is recomputed server-side. Returns ErrSaveDisabled while the
// session is degraded.
func (s *Session) Selections() ([]types.TraceSelection, error) {
	if s.degraded {
		return nil, types.ErrSaveDisabled
	}
	out := make([]types.TraceSelection, 0, len(s.tc.Groups))
	for _, g := range s.tc.Groups {
		out = append(out, g.Selection())
	}
	return out, nil
}

// Reconcile compares the session's effective sets against the
// server-computed summary returned after a save. Mismatches become
// warnings: they indicate the catalog changed under the session and a
// Refresh is due.
func (s *Session) Reconcile(summary *types.DerivedSummary) []string {
	var mismatches []string
	byL3 := make(map[string]types.GroupSummary, len(summary.Groups))
	for _, gs := range summary.Groups {
		byL3[gs.L3ID] = gs
	}
	kinds := []struct {
		kind types.ItemKind
		pick func(types.GroupSummary) []string
	}{
		{types.KindRequirement, func(gs types.GroupSummary) []string { return gs.EffectiveRequirementIDs }},
		{types.KindWricef, func(gs types.GroupSummary) []string { return gs.EffectiveWricefIDs }},
		{types.KindConfig, func(gs types.GroupSummary) []string { return gs.EffectiveConfigIDs }},
	}
	for _, g := range s.tc.Groups {
		gs, ok := byL3[g.L3ID]
		if !ok {
			mismatches = append(mismatches, fmt.Sprintf("group %s: missing from server summary", g.L3ID))
			continue
		}
		for _, k := range kinds {
			local := s.resolver.Effective(k.kind, g)
			remote := types.NewIDSet(k.pick(gs)...)
			if !equalSets(local, remote) {
				mismatches = append(mismatches,
					fmt.Sprintf("group %s: %s membership differs from server (local %d, server %d)",
						g.L3ID, k.kind, local.Len(), remote.Len()))
			}
		}
	}
	s.warnings = append(s.warnings, mismatches...)
	return mismatches
}

// equalSets reports whether two ID sets hold the same members.
func equalSets(a, b types.IDSet) bool {
	if a.Len() != b.Len() {
		return false
	}
	for id := range a {
		if !b.Has(id) {
			return false
		}
	}
	return true
}

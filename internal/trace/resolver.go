// Package trace implements the traceability core: the derivation resolver
// that computes which requirements, WRICEF items, and configuration items a
// trace group's process scope implies, the override layer that layers
// manual additions and exclusions on top, and the editing session that owns
// one test case's trace groups for the duration of an edit.
package trace

import (
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/internal/hierarchy"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/pkg/types"
)

// DerivedSet is the output of one derivation pass: the artifacts implied
// by a trace group's L3/L4 selection, before manual overrides.
type DerivedSet struct {
	Requirements []types.Requirement
	WricefItems  []types.WricefItem
	ConfigItems  []types.ConfigItem
}

// IDs returns the derived member IDs for one kind. Returns an empty set
// for an unrecognized kind.
func (d DerivedSet) IDs(kind types.ItemKind) types.IDSet {
	out := types.NewIDSet()
	switch kind {
	case types.KindRequirement:
		for _, r := range d.Requirements {
			out.Add(r.ID)
		}
	case types.KindWricef:
		for _, w := range d.WricefItems {
			out.Add(w.ID)
		}
	case types.KindConfig:
		for _, c := range d.ConfigItems {
			out.Add(c.ID)
		}
	}
	return out
}

// Resolver derives implied artifact sets from trace group selections. It
// holds references to one hierarchy index and one catalog snapshot; a new
// resolver is constructed whenever either is refreshed, so derivation
// output is never cached across snapshots.
type Resolver struct {
	idx *hierarchy.Index
	cat *types.Catalog
}

// NewResolver builds a resolver over the given snapshot pair.
func NewResolver(idx *hierarchy.Index, cat *types.Catalog) *Resolver {
	return &Resolver{idx: idx, cat: cat}
}

// CandidateRequirements returns every requirement whose anchor resolves to
// the given L3, in catalog order. This is the coverage denominator for the
// L3 regardless of what any trace group claims.
func (r *Resolver) CandidateRequirements(l3ID string) []types.Requirement {
	var out []types.Requirement
	for _, req := range r.cat.Requirements {
		if anc, ok := r.idx.L3AncestorOf(req.ProcessAnchor); ok && anc == l3ID {
			out = append(out, req)
		}
	}
	return out
}

// Derive computes the artifacts implied by the group's scope. Pure with
// respect to the group: the group is never mutated.
//
// A non-empty L4 selection narrows L4-anchored requirements to the selected
// steps; requirements anchored directly at the L3 always pass the filter.
// The WRICEF and config closures run over the candidate requirements plus
// the group's manually added requirement IDs, so a manual requirement pulls
// in its own dependents. Dependents are never derived item-first.
func (r *Resolver) Derive(g *types.TraceGroup) DerivedSet {
	var out DerivedSet

	originIDs := g.ManualRequirementIDs.Clone()
	for _, req := range r.CandidateRequirements(g.L3ID) {
		if g.L4IDs.Len() > 0 && r.anchoredAtStep(req) && !g.L4IDs.Has(req.ProcessAnchor) {
			continue
		}
		out.Requirements = append(out.Requirements, req)
		originIDs.Add(req.ID)
	}

	for _, w := range r.cat.WricefItems {
		if originIDs.Has(w.OriginatingRequirementID) {
			out.WricefItems = append(out.WricefItems, w)
		}
	}
	for _, c := range r.cat.ConfigItems {
		if originIDs.Has(c.OriginatingRequirementID) {
			out.ConfigItems = append(out.ConfigItems, c)
		}
	}
	return out
}

// anchoredAtStep reports whether the requirement's anchor is an L4 node.
func (r *Resolver) anchoredAtStep(req types.Requirement) bool {
	n, ok := r.idx.Node(req.ProcessAnchor)
	return ok && n.Level == types.LevelProcessStep
}

// Effective returns the effective membership for one kind: the derived set
// united with the group's manual additions. Exclusion never removes
// membership; it only withholds coverage credit.
func (r *Resolver) Effective(kind types.ItemKind, g *types.TraceGroup) types.IDSet {
	manual := g.Manual(kind)
	if manual == nil {
		return types.NewIDSet()
	}
	return r.Derive(g).IDs(kind).Union(manual)
}

// EffectiveItem is one member of an effective set as plain presentation
// data: its coverage status and whether it entered the set manually rather
// than through derivation.
type EffectiveItem struct {
	ID     string               `json:"id"`
	Status types.CoverageStatus `json:"status"`
	Manual bool                 `json:"manual"`
}

// EffectiveItems returns the effective membership for one kind sorted by
// ID, annotated for display by an independent presentation layer.
func (r *Resolver) EffectiveItems(kind types.ItemKind, g *types.TraceGroup) []EffectiveItem {
	manual := g.Manual(kind)
	if manual == nil {
		return nil
	}
	derived := r.Derive(g).IDs(kind)
	union := derived.Union(manual)
	out := make([]EffectiveItem, 0, union.Len())
	for _, id := range union.Values() {
		out = append(out, EffectiveItem{
			ID:     id,
			Status: g.CoverageStatus(kind, id),
			Manual: manual.Has(id) && !derived.Has(id),
		})
	}
	return out
}

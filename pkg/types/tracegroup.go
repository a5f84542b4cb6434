package types

// ItemKind selects which of the three traced artifact kinds an operation
// applies to.
type ItemKind string

// Traced artifact kinds.
const (
	KindRequirement ItemKind = "requirement"
	KindWricef      ItemKind = "wricef"
	KindConfig      ItemKind = "config"
)

// validItemKinds is the set of recognized item kinds.
var validItemKinds = map[ItemKind]bool{
	KindRequirement: true,
	KindWricef:      true,
	KindConfig:      true,
}

// Valid reports whether k is a recognized item kind.
func (k ItemKind) Valid() bool {
	return validItemKinds[k]
}

// CoverageStatus is the per-item readiness flag reported by the override
// layer. Excluded items keep their membership in the effective set but
// report StatusNotCovered.
type CoverageStatus string

// Coverage status values.
const (
	StatusCovered    CoverageStatus = "covered"
	StatusNotCovered CoverageStatus = "not_covered"
)

// TraceGroup is the basket of linked artifacts attached to one L3 process
// within a test case. L4IDs narrows the scope to selected process steps;
// the manual sets add items beyond derivation; the excluded sets suppress
// coverage credit without removing membership. All sets are scoped to the
// group's L3: changing the L3 resets every one of them.
type TraceGroup struct {
	L3ID  string `json:"l3_id"`
	L4IDs IDSet  `json:"l4_ids"`

	ManualRequirementIDs IDSet `json:"manual_requirement_ids"`
	ManualWricefIDs      IDSet `json:"manual_wricef_ids"`
	ManualConfigIDs      IDSet `json:"manual_config_ids"`

	ExcludedRequirementIDs IDSet `json:"excluded_requirement_ids"`
	ExcludedWricefIDs      IDSet `json:"excluded_wricef_ids"`
	ExcludedConfigIDs      IDSet `json:"excluded_config_ids"`
}

// NewTraceGroup returns a group scoped to the given L3 process with all
// sets initialized empty.
func NewTraceGroup(l3ID string) *TraceGroup {
	return &TraceGroup{
		L3ID:                   l3ID,
		L4IDs:                  NewIDSet(),
		ManualRequirementIDs:   NewIDSet(),
		ManualWricefIDs:        NewIDSet(),
		ManualConfigIDs:        NewIDSet(),
		ExcludedRequirementIDs: NewIDSet(),
		ExcludedWricefIDs:      NewIDSet(),
		ExcludedConfigIDs:      NewIDSet(),
	}
}

// Manual returns the manual-inclusion set for the given kind.
// Returns nil for an unrecognized kind.
func (g *TraceGroup) Manual(kind ItemKind) IDSet {
	switch kind {
	case KindRequirement:
		return g.ManualRequirementIDs
	case KindWricef:
		return g.ManualWricefIDs
	case KindConfig:
		return g.ManualConfigIDs
	}
	return nil
}

// Excluded returns the exclusion set for the given kind.
// Returns nil for an unrecognized kind.
func (g *TraceGroup) Excluded(kind ItemKind) IDSet {
	switch kind {
	case KindRequirement:
		return g.ExcludedRequirementIDs
	case KindWricef:
		return g.ExcludedWricefIDs
	case KindConfig:
		return g.ExcludedConfigIDs
	}
	return nil
}

// AddManual adds id to the manual set for kind. Idempotent: adding a
// member already present is a no-op. Returns ErrInvalidKind for an
// unrecognized kind.
func (g *TraceGroup) AddManual(kind ItemKind, id string) error {
	set := g.Manual(kind)
	if set == nil {
		return ErrInvalidKind
	}
	set.Add(id)
	return nil
}

// RemoveManual removes id from the manual set for kind. Idempotent:
// removing a non-member is a no-op.
func (g *TraceGroup) RemoveManual(kind ItemKind, id string) error {
	set := g.Manual(kind)
	if set == nil {
		return ErrInvalidKind
	}
	set.Remove(id)
	return nil
}

// ToggleExcluded flips id's membership in the exclusion set for kind and
// returns the resulting coverage status.
func (g *TraceGroup) ToggleExcluded(kind ItemKind, id string) (CoverageStatus, error) {
	set := g.Excluded(kind)
	if set == nil {
		return "", ErrInvalidKind
	}
	if set.Has(id) {
		set.Remove(id)
		return StatusCovered, nil
	}
	set.Add(id)
	return StatusNotCovered, nil
}

// CoverageStatus reports whether id earns coverage credit within this
// group. Exclusion is a readiness flag only; it never removes the item
// from the effective set.
func (g *TraceGroup) CoverageStatus(kind ItemKind, id string) CoverageStatus {
	set := g.Excluded(kind)
	if set != nil && set.Has(id) {
		return StatusNotCovered
	}
	return StatusCovered
}

// AddStep adds an L4 process step to the group's scope. Idempotent.
func (g *TraceGroup) AddStep(l4ID string) {
	g.L4IDs.Add(l4ID)
}

// RemoveStep removes an L4 process step from the group's scope. Idempotent.
func (g *TraceGroup) RemoveStep(l4ID string) {
	g.L4IDs.Remove(l4ID)
}

// ChangeL3 rescopes the group to a different L3 process. All L4, manual,
// and excluded sets were scoped to the old L3 and are reset. Changing to
// the current L3 is a no-op.
func (g *TraceGroup) ChangeL3(newL3ID string) {
	if newL3ID == g.L3ID {
		return
	}
	*g = *NewTraceGroup(newL3ID)
}

// HasChildren reports whether the group carries any selection beyond its
// L3 scope. Destroying a group with children requires confirmation at the
// calling surface.
func (g *TraceGroup) HasChildren() bool {
	return g.L4IDs.Len() > 0 ||
		g.ManualRequirementIDs.Len() > 0 ||
		g.ManualWricefIDs.Len() > 0 ||
		g.ManualConfigIDs.Len() > 0 ||
		g.ExcludedRequirementIDs.Len() > 0 ||
		g.ExcludedWricefIDs.Len() > 0 ||
		g.ExcludedConfigIDs.Len() > 0
}

// Clone returns a deep copy of the group.
func (g *TraceGroup) Clone() *TraceGroup {
	return &TraceGroup{
		L3ID:                   g.L3ID,
		L4IDs:                  g.L4IDs.Clone(),
		ManualRequirementIDs:   g.ManualRequirementIDs.Clone(),
		ManualWricefIDs:        g.ManualWricefIDs.Clone(),
		ManualConfigIDs:        g.ManualConfigIDs.Clone(),
		ExcludedRequirementIDs: g.ExcludedRequirementIDs.Clone(),
		ExcludedWricefIDs:      g.ExcludedWricefIDs.Clone(),
		ExcludedConfigIDs:      g.ExcludedConfigIDs.Clone(),
	}
}

package types

// Catalog is the read-only snapshot of one program's requirements, WRICEF
// items, and configuration items. It is loaded once per editing session;
// the resolver recomputes against whatever snapshot the session currently
// holds and is never cached across refreshes.
type Catalog struct {
	Requirements []Requirement `json:"requirements"`
	WricefItems  []WricefItem  `json:"wricef_items"`
	ConfigItems  []ConfigItem  `json:"config_items"`
}

// Requirement returns the requirement with the given ID, or false.
func (c *Catalog) Requirement(id string) (Requirement, bool) {
	for _, r := range c.Requirements {
		if r.ID == id {
			return r, true
		}
	}
	return Requirement{}, false
}

// TraceSelection is the persistence shape of one trace group: structural
// selections only, with sets flattened to sorted slices. This is the only
// payload sent to the persistence collaborator on save; derived membership
// is recomputed server-side.
type TraceSelection struct {
	L3ID                   string   `json:"l3_id" binding:"required"`
	L4IDs                  []string `json:"l4_ids"`
	ManualRequirementIDs   []string `json:"manual_requirement_ids"`
	ManualWricefIDs        []string `json:"manual_wricef_ids"`
	ManualConfigIDs        []string `json:"manual_config_ids"`
	ExcludedRequirementIDs []string `json:"excluded_requirement_ids"`
	ExcludedWricefIDs      []string `json:"excluded_wricef_ids"`
	ExcludedConfigIDs      []string `json:"excluded_config_ids"`
}

// Selection flattens the group into its persistence shape.
func (g *TraceGroup) Selection() TraceSelection {
	return TraceSelection{
		L3ID:                   g.L3ID,
		L4IDs:                  g.L4IDs.Values(),
		ManualRequirementIDs:   g.ManualRequirementIDs.Values(),
		ManualWricefIDs:        g.ManualWricefIDs.Values(),
		ManualConfigIDs:        g.ManualConfigIDs.Values(),
		ExcludedRequirementIDs: g.ExcludedRequirementIDs.Values(),
		ExcludedWricefIDs:      g.ExcludedWricefIDs.Values(),
		ExcludedConfigIDs:      g.ExcludedConfigIDs.Values(),
	}
}

// Group rebuilds a trace group from its persistence shape.
func (s TraceSelection) Group() *TraceGroup {
	return &TraceGroup{
		L3ID:                   s.L3ID,
		L4IDs:                  NewIDSet(s.L4IDs...),
		ManualRequirementIDs:   NewIDSet(s.ManualRequirementIDs...),
		ManualWricefIDs:        NewIDSet(s.ManualWricefIDs...),
		ManualConfigIDs:        NewIDSet(s.ManualConfigIDs...),
		ExcludedRequirementIDs: NewIDSet(s.ExcludedRequirementIDs...),
		ExcludedWricefIDs:      NewIDSet(s.ExcludedWricefIDs...),
		ExcludedConfigIDs:      NewIDSet(s.ExcludedConfigIDs...),
	}
}

// GroupSummary is the server-computed effective membership for one trace
// group, returned by the derived-traceability read used to reconcile
// client state after a save.
type GroupSummary struct {
	L3ID                    string   `json:"l3_id"`
	EffectiveRequirementIDs []string `json:"effective_requirement_ids"`
	EffectiveWricefIDs      []string `json:"effective_wricef_ids"`
	EffectiveConfigIDs      []string `json:"effective_config_ids"`
	NotCoveredIDs           []string `json:"not_covered_ids"`
}

// DerivedSummary is the full server-computed mirror for one persisted
// test case.
type DerivedSummary struct {
	TestCaseID string         `json:"test_case_id"`
	Groups     []GroupSummary `json:"groups"`
}

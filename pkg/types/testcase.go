package types

import "time"

// Test layers. The layer determines which validation rules gate a save.
const (
	LayerUnit        = "unit"
	LayerSIT         = "sit"
	LayerUAT         = "uat"
	LayerE2E         = "e2e"
	LayerRegression  = "regression"
	LayerPerformance = "performance"
	LayerCutover     = "cutover"
)

// validTestLayers is the set of recognized test layer values.
var validTestLayers = map[string]bool{
	LayerUnit:        true,
	LayerSIT:         true,
	LayerUAT:         true,
	LayerE2E:         true,
	LayerRegression:  true,
	LayerPerformance: true,
	LayerCutover:     true,
}

// ValidTestLayer reports whether layer is a recognized test layer value.
func ValidTestLayer(layer string) bool {
	return validTestLayers[layer]
}

// TestCase owns an ordered collection of trace groups, one per selected
// L3 process. The SIT layer additionally requires module, risk, and data
// readiness fields before a save is accepted.
type TestCase struct {
	ID                string        `json:"id"`
	Code              string        `json:"code"`
	Title             string        `json:"title"`
	TestLayer         string        `json:"test_layer"`
	Module            string        `json:"module,omitempty"`
	Risk              string        `json:"risk,omitempty"`
	LinkedDataSet     string        `json:"linked_data_set,omitempty"`
	DataReadinessNote string        `json:"data_readiness_note,omitempty"`
	Groups            []*TraceGroup `json:"groups"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// GroupForL3 returns the trace group scoped to l3ID, or nil if the test
// case carries none.
func (tc *TestCase) GroupForL3(l3ID string) *TraceGroup {
	for _, g := range tc.Groups {
		if g.L3ID == l3ID {
			return g
		}
	}
	return nil
}

// AttachGroup appends a new trace group scoped to l3ID. Returns
// ErrDuplicateL3 if the test case already carries a group for that L3.
func (tc *TestCase) AttachGroup(l3ID string) (*TraceGroup, error) {
	if l3ID == "" {
		return nil, ErrInvalidID
	}
	if tc.GroupForL3(l3ID) != nil {
		return nil, ErrDuplicateL3
	}
	g := NewTraceGroup(l3ID)
	tc.Groups = append(tc.Groups, g)
	return g, nil
}

// DetachGroup removes the trace group scoped to l3ID, preserving the order
// of the remaining groups. Returns ErrNotFound if no such group exists.
func (tc *TestCase) DetachGroup(l3ID string) error {
	for i, g := range tc.Groups {
		if g.L3ID == l3ID {
			tc.Groups = append(tc.Groups[:i], tc.Groups[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Clone returns a deep copy of the test case and its groups.
func (tc *TestCase) Clone() *TestCase {
	out := *tc
	out.Groups = make([]*TraceGroup, len(tc.Groups))
	for i, g := range tc.Groups {
		out.Groups[i] = g.Clone()
	}
	return &out
}

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceGroupAddRemoveManual(t *testing.T) {
	tests := []struct {
		name    string
		kind    ItemKind
		wantErr error
	}{
		{name: "requirement kind", kind: KindRequirement},
		{name: "wricef kind", kind: KindWricef},
		{name: "config kind", kind: KindConfig},
		{name: "unknown kind rejected", kind: ItemKind("backlog"), wantErr: ErrInvalidKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewTraceGroup("L3-100")

			err := g.AddManual(tt.kind, "X-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, g.Manual(tt.kind).Has("X-1"))

			// Adding an existing member is a no-op.
			require.NoError(t, g.AddManual(tt.kind, "X-1"))
			assert.Equal(t, 1, g.Manual(tt.kind).Len())

			require.NoError(t, g.RemoveManual(tt.kind, "X-1"))
			assert.False(t, g.Manual(tt.kind).Has("X-1"))

			// Removing a non-member is a no-op.
			require.NoError(t, g.RemoveManual(tt.kind, "X-1"))
			assert.Equal(t, 0, g.Manual(tt.kind).Len())
		})
	}
}

func TestTraceGroupToggleExcluded(t *testing.T) {
	g := NewTraceGroup("L3-100")

	status, err := g.ToggleExcluded(KindRequirement, "R2")
	require.NoError(t, err)
	assert.Equal(t, StatusNotCovered, status)
	assert.Equal(t, StatusNotCovered, g.CoverageStatus(KindRequirement, "R2"))

	// Other kinds are unaffected.
	assert.Equal(t, StatusCovered, g.CoverageStatus(KindWricef, "R2"))

	status, err = g.ToggleExcluded(KindRequirement, "R2")
	require.NoError(t, err)
	assert.Equal(t, StatusCovered, status)
	assert.Equal(t, StatusCovered, g.CoverageStatus(KindRequirement, "R2"))

	_, err = g.ToggleExcluded(ItemKind("defect"), "R2")
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestTraceGroupChangeL3ResetsAllSets(t *testing.T) {
	g := NewTraceGroup("L3-100")
	g.AddStep("L4-110")
	require.NoError(t, g.AddManual(KindRequirement, "R9"))
	require.NoError(t, g.AddManual(KindWricef, "W9"))
	require.NoError(t, g.AddManual(KindConfig, "C9"))
	_, err := g.ToggleExcluded(KindRequirement, "R2")
	require.NoError(t, err)

	g.ChangeL3("L3-200")

	assert.Equal(t, "L3-200", g.L3ID)
	assert.Equal(t, 0, g.L4IDs.Len())
	assert.Equal(t, 0, g.ManualRequirementIDs.Len())
	assert.Equal(t, 0, g.ManualWricefIDs.Len())
	assert.Equal(t, 0, g.ManualConfigIDs.Len())
	assert.Equal(t, 0, g.ExcludedRequirementIDs.Len())
	assert.Equal(t, 0, g.ExcludedWricefIDs.Len())
	assert.Equal(t, 0, g.ExcludedConfigIDs.Len())
}

func TestTraceGroupChangeL3SameIDKeepsSets(t *testing.T) {
	g := NewTraceGroup("L3-100")
	g.AddStep("L4-110")
	require.NoError(t, g.AddManual(KindRequirement, "R9"))

	g.ChangeL3("L3-100")

	assert.True(t, g.L4IDs.Has("L4-110"))
	assert.True(t, g.ManualRequirementIDs.Has("R9"))
}

func TestTraceGroupHasChildren(t *testing.T) {
	g := NewTraceGroup("L3-100")
	assert.False(t, g.HasChildren())

	g.AddStep("L4-110")
	assert.True(t, g.HasChildren())

	g.RemoveStep("L4-110")
	assert.False(t, g.HasChildren())

	_, err := g.ToggleExcluded(KindConfig, "C1")
	require.NoError(t, err)
	assert.True(t, g.HasChildren())
}

func TestTraceGroupSelectionRoundTrip(t *testing.T) {
	g := NewTraceGroup("L3-100")
	g.AddStep("L4-120")
	g.AddStep("L4-110")
	require.NoError(t, g.AddManual(KindRequirement, "R9"))
	_, err := g.ToggleExcluded(KindWricef, "W2")
	require.NoError(t, err)

	sel := g.Selection()
	assert.Equal(t, "L3-100", sel.L3ID)
	assert.Equal(t, []string{"L4-110", "L4-120"}, sel.L4IDs)
	assert.Equal(t, []string{"R9"}, sel.ManualRequirementIDs)
	assert.Equal(t, []string{"W2"}, sel.ExcludedWricefIDs)
	assert.Empty(t, sel.ManualWricefIDs)

	back := sel.Group()
	assert.Equal(t, g, back)
}

func TestTraceGroupClone(t *testing.T) {
	g := NewTraceGroup("L3-100")
	require.NoError(t, g.AddManual(KindRequirement, "R1"))

	c := g.Clone()
	require.NoError(t, c.AddManual(KindRequirement, "R2"))

	assert.False(t, g.ManualRequirementIDs.Has("R2"), "clone must not share sets")
	assert.True(t, c.ManualRequirementIDs.Has("R1"))
}

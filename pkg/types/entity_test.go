package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessNodeValidate(t *testing.T) {
	tests := []struct {
		name    string
		node    ProcessNode
		wantErr error
	}{
		{name: "valid L1", node: ProcessNode{ID: "L1-1", Level: 1, Code: "VC1"}},
		{name: "valid L4", node: ProcessNode{ID: "L4-1", Level: 4, ParentID: "L3-1"}},
		{name: "missing id", node: ProcessNode{Level: 2, ParentID: "L1-1"}, wantErr: ErrInvalidID},
		{name: "level zero", node: ProcessNode{ID: "n", Level: 0}, wantErr: ErrInvalidLevel},
		{name: "level five", node: ProcessNode{ID: "n", Level: 5, ParentID: "p"}, wantErr: ErrInvalidLevel},
		{name: "L1 with parent", node: ProcessNode{ID: "n", Level: 1, ParentID: "p"}, wantErr: ErrInvalidLevel},
		{name: "L2 without parent", node: ProcessNode{ID: "n", Level: 2}, wantErr: ErrInvalidLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.node.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequirementValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Requirement
		wantErr error
	}{
		{name: "valid fit", req: Requirement{ID: "R1", ProcessAnchor: "L3-1", FitStatus: FitStatusFit}},
		{name: "valid gap", req: Requirement{ID: "R1", ProcessAnchor: "L4-1", FitStatus: FitStatusGap}},
		{name: "valid partial", req: Requirement{ID: "R1", ProcessAnchor: "L3-1", FitStatus: FitStatusPartial}},
		{name: "missing id", req: Requirement{ProcessAnchor: "L3-1", FitStatus: FitStatusFit}, wantErr: ErrInvalidID},
		{name: "missing anchor", req: Requirement{ID: "R1", FitStatus: FitStatusFit}, wantErr: ErrMissingAnchor},
		{name: "bad fit status", req: Requirement{ID: "R1", ProcessAnchor: "L3-1", FitStatus: "maybe"}, wantErr: ErrInvalidFitStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWricefItemValidate(t *testing.T) {
	valid := WricefItem{ID: "W1", Category: WricefEnhancement, OriginatingRequirementID: "R1"}
	assert.NoError(t, valid.Validate())

	noOrigin := valid
	noOrigin.OriginatingRequirementID = ""
	assert.ErrorIs(t, noOrigin.Validate(), ErrMissingOrigin)

	badCategory := valid
	badCategory.Category = "X"
	assert.ErrorIs(t, badCategory.Validate(), ErrInvalidCategory)
}

func TestConfigItemValidate(t *testing.T) {
	assert.NoError(t, ConfigItem{ID: "C1", OriginatingRequirementID: "R1"}.Validate())
	assert.ErrorIs(t, ConfigItem{OriginatingRequirementID: "R1"}.Validate(), ErrInvalidID)
	assert.ErrorIs(t, ConfigItem{ID: "C1"}.Validate(), ErrMissingOrigin)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Backend: BackendSQLite}.Validate())
	assert.ErrorIs(t, Config{}.Validate(), ErrBackendEmpty)
	assert.ErrorIs(t, Config{Backend: "postgres"}.Validate(), ErrBackendUnknown)
}

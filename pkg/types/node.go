package types

// Process hierarchy levels. The hierarchy is a forest of four levels:
// value chain (L1) → process area (L2) → process (L3) → process step (L4).
const (
	LevelValueChain  = 1
	LevelProcessArea = 2
	LevelProcess     = 3
	LevelProcessStep = 4
)

// ProcessNode is one node of the four-level process hierarchy. Level-1
// nodes have an empty ParentID; every other node's level must equal its
// parent's level plus one. Nodes are externally owned reference data; the
// engine reads snapshots and never mutates them.
type ProcessNode struct {
	ID       string `json:"id"`
	Level    int    `json:"level"`
	ParentID string `json:"parent_id,omitempty"`
	Code     string `json:"code"`
	Name     string `json:"name"`
}

// Validate checks structural well-formedness of the node in isolation.
// Parent/level consistency across nodes is checked by the hierarchy index
// at build time.
func (n ProcessNode) Validate() error {
	if n.ID == "" {
		return ErrInvalidID
	}
	if n.Level < LevelValueChain || n.Level > LevelProcessStep {
		return ErrInvalidLevel
	}
	if n.Level == LevelValueChain && n.ParentID != "" {
		return ErrInvalidLevel
	}
	if n.Level > LevelValueChain && n.ParentID == "" {
		return ErrInvalidLevel
	}
	return nil
}

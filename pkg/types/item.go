package types

// WRICEF categories: Workflow, Report, Interface, Conversion, Enhancement,
// Form.
const (
	WricefWorkflow    = "W"
	WricefReport      = "R"
	WricefInterface   = "I"
	WricefConversion  = "C"
	WricefEnhancement = "E"
	WricefForm        = "F"
)

// validWricefCategories is the set of recognized WRICEF category codes.
var validWricefCategories = map[string]bool{
	WricefWorkflow:    true,
	WricefReport:      true,
	WricefInterface:   true,
	WricefConversion:  true,
	WricefEnhancement: true,
	WricefForm:        true,
}

// WricefItem is a custom development object raised to close a requirement
// gap. Its position in the process hierarchy is defined transitively through
// the originating requirement's anchor.
type WricefItem struct {
	ID                       string `json:"id"`
	Code                     string `json:"code"`
	Title                    string `json:"title"`
	Category                 string `json:"category"`
	OriginatingRequirementID string `json:"originating_requirement_id"`
}

// Validate checks ID, originating requirement, and category.
func (w WricefItem) Validate() error {
	if w.ID == "" {
		return ErrInvalidID
	}
	if w.OriginatingRequirementID == "" {
		return ErrMissingOrigin
	}
	if !validWricefCategories[w.Category] {
		return ErrInvalidCategory
	}
	return nil
}

// ConfigItem is an IMG configuration activity raised for a requirement.
// Like WricefItem, its hierarchy position is transitive through the
// originating requirement.
type ConfigItem struct {
	ID                       string `json:"id"`
	Code                     string `json:"code"`
	Title                    string `json:"title"`
	OriginatingRequirementID string `json:"originating_requirement_id"`
}

// Validate checks ID and originating requirement.
func (c ConfigItem) Validate() error {
	if c.ID == "" {
		return ErrInvalidID
	}
	if c.OriginatingRequirementID == "" {
		return ErrMissingOrigin
	}
	return nil
}

package types

// Fit/gap classification of a requirement against the standard software.
const (
	FitStatusFit     = "fit"
	FitStatusGap     = "gap"
	FitStatusPartial = "partial"
)

// validFitStatuses is the set of recognized fit status values.
var validFitStatuses = map[string]bool{
	FitStatusFit:     true,
	FitStatusGap:     true,
	FitStatusPartial: true,
}

// Requirement is a business requirement anchored to a process node.
// ProcessAnchor references either an L3 process or an L4 process step;
// the requirement's L3 ancestor is the anchor itself when anchored at L3,
// or the anchor's L3 parent when anchored at L4.
type Requirement struct {
	ID            string `json:"id"`
	Code          string `json:"code"`
	Title         string `json:"title"`
	ProcessAnchor string `json:"process_anchor"`
	FitStatus     string `json:"fit_status"`
}

// Validate checks that the requirement carries an ID, an anchor, and a
// recognized fit status.
func (r Requirement) Validate() error {
	if r.ID == "" {
		return ErrInvalidID
	}
	if r.ProcessAnchor == "" {
		return ErrMissingAnchor
	}
	if !validFitStatuses[r.FitStatus] {
		return ErrInvalidFitStatus
	}
	return nil
}

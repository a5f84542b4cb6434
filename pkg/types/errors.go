package types

import (
	"errors"
	"fmt"
)

// Entity and selection errors.
var (
	ErrNotFound         = errors.New("entity not found")
	ErrInvalidID        = errors.New("invalid entity ID")
	ErrInvalidLevel     = errors.New("invalid hierarchy level")
	ErrInvalidKind      = errors.New("invalid item kind")
	ErrInvalidLayer     = errors.New("invalid test layer")
	ErrInvalidFitStatus = errors.New("invalid fit status")
	ErrInvalidCategory  = errors.New("invalid WRICEF category")
	ErrMissingAnchor    = errors.New("requirement has no process anchor")
	ErrMissingOrigin    = errors.New("item has no originating requirement")
	ErrDuplicateL3      = errors.New("test case already carries a trace group for this L3")
	ErrGroupHasChildren = errors.New("trace group carries selections; detach requires confirmation")
	ErrNotL3            = errors.New("node is not an L3 process")
	ErrUnknownNode      = errors.New("node not present in hierarchy")
)

// Collaborator and session errors.
var (
	// ErrUnknownL3 marks a derivation inconsistency: a trace group
	// references an L3 absent from the current hierarchy snapshot.
	ErrUnknownL3 = errors.New("trace group references an unknown L3 process")

	// ErrCollaboratorUnavailable marks a failed catalog or coverage
	// fetch. The editing session degrades to an empty derived set and
	// refuses to save until a reload succeeds.
	ErrCollaboratorUnavailable = errors.New("collaborator service unavailable")

	// ErrSaveDisabled is returned when a session attempts to export
	// selections while degraded by a collaborator failure.
	ErrSaveDisabled = errors.New("save disabled until catalog reload succeeds")
)

// ValidationError reports one violated pre-persistence rule. Recoverable:
// the user corrects the named field and retries; no partial save happens.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every rule violation found in one pass so
// the user sees all problems at once.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	return fmt.Sprintf("%d validation errors (first: %s)", len(e), e[0].Error())
}

// DerivationInconsistencyError identifies the trace group whose L3 scope
// vanished from the hierarchy. The session recovers by dropping the group
// and surfacing the warning; the rest of the session continues.
type DerivationInconsistencyError struct {
	L3ID string
}

// Error implements the error interface.
func (e DerivationInconsistencyError) Error() string {
	return fmt.Sprintf("trace group scoped to %s: %v", e.L3ID, ErrUnknownL3)
}

// Unwrap makes the error match ErrUnknownL3 under errors.Is.
func (e DerivationInconsistencyError) Unwrap() error {
	return ErrUnknownL3
}

// CollaboratorUnavailableError identifies which collaborator resource
// could not be fetched.
type CollaboratorUnavailableError struct {
	Resource string
	Err      error
}

// Error implements the error interface.
func (e CollaboratorUnavailableError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.Resource, ErrCollaboratorUnavailable)
}

// Unwrap makes the error match ErrCollaboratorUnavailable under errors.Is.
func (e CollaboratorUnavailableError) Unwrap() error {
	return ErrCollaboratorUnavailable
}

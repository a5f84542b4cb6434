package types

import (
	"context"
	"errors"
)

// HierarchyRepository supplies the process hierarchy for a program as a
// flat node list. The engine builds its own index; orphaned nodes are
// tolerated and surface as unscoped.
type HierarchyRepository interface {
	Nodes(ctx context.Context, programID string) ([]ProcessNode, error)
}

// CatalogRepository supplies the read-only artifact snapshot for a
// program.
type CatalogRepository interface {
	Catalog(ctx context.Context, programID string) (*Catalog, error)
}

// TraceRepository persists and reads back test cases and their trace
// selections. SaveSelections replaces the stored selections wholesale;
// there is no partial save. DerivedSummary is the server-computed mirror
// used to reconcile client state after a save.
type TraceRepository interface {
	TestCases(ctx context.Context, programID string) ([]*TestCase, error)
	TestCase(ctx context.Context, id string) (*TestCase, error)
	SaveSelections(ctx context.Context, testCaseID string, selections []TraceSelection) error
	DerivedSummary(ctx context.Context, testCaseID string) (*DerivedSummary, error)
}

// CoverageRepository supplies execution tallies and the program's
// readiness threshold. Both are collaborator-owned; the engine only
// consumes them.
type CoverageRepository interface {
	ExecutionResults(ctx context.Context, programID string) (*ExecutionResults, error)
}

// Config holds backend selection and parameters for opening a store.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}

// Shared helpers for saptrace CLI commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/internal/sqlite"
	"github.com/umutsoyyilmaz/SAP-Transformation-Platform-sub001/pkg/types"
)

// errProgramRequired is returned by commands that need --program.
var errProgramRequired = errors.New("--program is required")

// openStore resolves the data directory and opens the SQLite store. The
// caller must close it.
func openStore() (*sqlite.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	store, err := sqlite.Open(types.Config{Backend: types.BackendSQLite, DataDir: dataDir})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return store, nil
}

// requireProgram returns the program flag or an error when unset.
func requireProgram() (string, error) {
	if flagProgram == "" {
		return "", errProgramRequired
	}
	return flagProgram, nil
}

// printJSON renders v as indented JSON on stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

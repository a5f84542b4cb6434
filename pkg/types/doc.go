// Package types defines the domain entities of the traceability engine
// (process hierarchy nodes, requirements, WRICEF items, configuration items,
// trace groups, test cases), the repository interfaces through which
// collaborator services supply and persist them, and the standard error
// types shared across the engine packages.
//
// Entity methods mutate structs in memory only; persistence is an explicit
// separate step through a TraceRepository.
package types

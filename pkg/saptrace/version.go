// Package saptrace exposes build metadata shared by the CLI and server.
package saptrace

// Version is the released version of the saptrace tooling.
const Version = "0.1.0"

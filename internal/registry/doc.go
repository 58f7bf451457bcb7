// Package registry provides the central "glue" for the module system.
//
// The Registry stores mappings between the handler names used in schedule
// declarations (e.g., `handler = "print"`) and the compiled Go functions and
// input types that implement them.
//
// During application startup, the registry is populated by every Module and
// then validated, so that a handler with a malformed signature is reported
// before any task runs.
package registry

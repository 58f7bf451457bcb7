// Package resource defines the identity and access-declaration model the
// scheduler uses to decide which tasks may run concurrently.
//
// An ID names a resource category, not an instance: every task that touches
// "transforms" is serialized against every other task writing "transforms",
// even when the underlying objects never alias. This over-approximation is
// intentional and keeps conflict detection a pure set operation.
package resource

// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary execution lifecycle: load the
// declarations, bind tasks to handlers, then run the schedule on a fork-join
// pool or print its plan. It is decoupled from any specific entrypoint like a
// CLI or server.
package app

// Package config defines the format-agnostic declaration model for a
// schedule: resources, stages and the tasks inside them, along with the core
// interfaces (Loader, Converter) for loading and interpreting declarations
// from various sources.
//
// The `config.Model` is the single input of the `planner` package. Concrete
// implementations of the interfaces, such as for HCL, are provided in
// separate packages.
package config

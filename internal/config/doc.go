// Package config defines the format-agnostic declaration model for the
// status-code catalog, along with the Loader interface used to discover
// declarations from a concrete source.
//
// The `config.Model` is the single input of the catalog builder. Concrete
// loaders, such as the HCL one, are provided in separate packages.
package config

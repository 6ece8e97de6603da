// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for finding declaration files, parsing them
// and translating `enum` and `status` blocks into the format-agnostic
// declaration model.
//
// Attribute values are evaluated without variables or functions. Values that
// fail to evaluate are kept as unknown so the catalog builder can reject the
// owning unit on its own, leaving the rest of the catalog intact.
package hcl

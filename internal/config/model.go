package config

import "github.com/zclconf/go-cty/cty"

// Model is the unified, format-agnostic representation of every declaring
// unit discovered by a Loader.
type Model struct {
	Units []*Unit
}

// UnitKind tags the shape a unit was declared in.
type UnitKind int

const (
	// UnitEnum is a unit that enumerates any number of codes.
	UnitEnum UnitKind = iota
	// UnitSingle is a unit that is itself exactly one code.
	UnitSingle
)

// String returns the declaration keyword for the kind.
func (k UnitKind) String() string {
	switch k {
	case UnitEnum:
		return "enum"
	case UnitSingle:
		return "status"
	default:
		return "unknown"
	}
}

// Unit is one declaring unit: a named collection of code entries with
// optional display metadata.
type Unit struct {
	// ID is the fully qualified identifier of the unit. It is also the group
	// name when no descriptor name is declared.
	ID         string
	Kind       UnitKind
	Descriptor *Descriptor
	Entries    []*Entry
	// Source is the file the unit was declared in, for diagnostics.
	Source string
}

// Descriptor carries the optional group metadata attached to a unit.
type Descriptor struct {
	Name  string
	Theme string
}

// Entry is a single declared code. Values are kept raw; turning them into
// typed codes is the builder's job so one malformed entry can be reported
// against its unit without failing the load.
type Entry struct {
	Name    string
	Number  cty.Value
	Message cty.Value
	// Color is cty.NilVal when the entry declares no color.
	Color cty.Value
}

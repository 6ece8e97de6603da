package catalog

import "fmt"

// DeclarationError reports a declared entry that could not be turned into a
// Code. The owning unit is excluded from the registry.
type DeclarationError struct {
	UnitID    string
	Entry     string
	Attribute string
	Err       error
}

func (e *DeclarationError) Error() string {
	return fmt.Sprintf("unit %q: code %q: %s: %v", e.UnitID, e.Entry, e.Attribute, e.Err)
}

func (e *DeclarationError) Unwrap() error {
	return e.Err
}

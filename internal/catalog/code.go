package catalog

import "strconv"

// Code is a single status code entry.
type Code struct {
	Number  int    `json:"code"`
	Color   string `json:"color,omitempty"`
	Message string `json:"message"`
}

// HasColor reports whether the code carries a display color.
func (c Code) HasColor() bool {
	return c.Color != ""
}

// Key returns the index key of the code.
func (c Code) Key() string {
	return strconv.Itoa(c.Number)
}

// String renders the code as `200: "message"`.
func (c Code) String() string {
	return c.Key() + `: "` + c.Message + `"`
}

// Group is the set of codes declared by one unit, in declaration order.
type Group struct {
	Name  string `json:"group"`
	Theme string `json:"theme,omitempty"`
	Codes []Code `json:"codes"`
}

// Len returns the number of codes in the group.
func (g Group) Len() int {
	return len(g.Codes)
}

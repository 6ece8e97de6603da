package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is the complete top-level schema of a declaration file. Any
// other block or attribute is rejected by the decoder.
type fileRoot struct {
	Enums    []*EnumBlock   `hcl:"enum,block"`
	Statuses []*StatusBlock `hcl:"status,block"`
}

// DescriptorBlock attaches a display name and theme color to a unit.
type DescriptorBlock struct {
	Name  string `hcl:"name,optional"`
	Theme string `hcl:"theme,optional"`
}

// CodeBlock is one `code` entry inside an `enum` block.
type CodeBlock struct {
	Name    string         `hcl:"name,label"`
	Number  hcl.Expression `hcl:"number,optional"`
	Message hcl.Expression `hcl:"message,optional"`
	Color   hcl.Expression `hcl:"color,optional"`
}

// EnumBlock declares a unit enumerating any number of codes.
type EnumBlock struct {
	ID         string           `hcl:"id,label"`
	Descriptor *DescriptorBlock `hcl:"descriptor,block"`
	Codes      []*CodeBlock     `hcl:"code,block"`
}

// StatusBlock declares a unit that is exactly one code.
type StatusBlock struct {
	ID         string           `hcl:"id,label"`
	Descriptor *DescriptorBlock `hcl:"descriptor,block"`
	Number     hcl.Expression   `hcl:"number,optional"`
	Message    hcl.Expression   `hcl:"message,optional"`
	Color      hcl.Expression   `hcl:"color,optional"`
}

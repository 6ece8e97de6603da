package testutil

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// FixtureCode is one code entry of a generated enum declaration.
type FixtureCode struct {
	Name    string
	Number  int64
	Message string
	Color   string
}

// EnumHCL renders an `enum` declaration block. The descriptor block is only
// written when name or theme is set, and a code's color only when non-empty.
func EnumHCL(id, name, theme string, codes ...FixtureCode) string {
	f := hclwrite.NewEmptyFile()
	enum := f.Body().AppendNewBlock("enum", []string{id}).Body()

	if name != "" || theme != "" {
		descriptor := enum.AppendNewBlock("descriptor", nil).Body()
		if name != "" {
			descriptor.SetAttributeValue("name", cty.StringVal(name))
		}
		if theme != "" {
			descriptor.SetAttributeValue("theme", cty.StringVal(theme))
		}
	}

	for _, c := range codes {
		code := enum.AppendNewBlock("code", []string{c.Name}).Body()
		code.SetAttributeValue("number", cty.NumberIntVal(c.Number))
		code.SetAttributeValue("message", cty.StringVal(c.Message))
		if c.Color != "" {
			code.SetAttributeValue("color", cty.StringVal(c.Color))
		}
	}
	return string(f.Bytes())
}

// HTTPCodesHCL is a small catalog declaring 200, 201, 210 and 299 in one
// themed enum plus a single 503 status.
const HTTPCodesHCL = `
enum "com.example.HttpCode" {
  descriptor {
    name  = "HTTP codes"
    theme = "#EC26BD"
  }

  code "OK" {
    number  = 200
    message = "Request succeeded"
  }
  code "CREATED" {
    number  = 201
    message = "Created"
  }
  code "RESET" {
    number  = 210
    message = "Reset"
    color   = "#83CF9C"
  }
  code "LAST" {
    number  = 299
    message = "Last success"
  }
}

status "com.example.Maintenance" {
  number  = 503
  message = "Down for maintenance"
}
`

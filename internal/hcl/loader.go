package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/codeapi/internal/config"
	"github.com/vk/codeapi/internal/ctxlog"
	"github.com/vk/codeapi/internal/fsutil"
)

// Extension is the file extension of declaration files.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL declaration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load walks the given paths, parses every declaration file in lexical path
// order and returns the declared units in discovery order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(Extension, paths...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := &config.Model{}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		// Keep declaration order within the file: enums first as written,
		// then single statuses as written.
		for _, enum := range root.Enums {
			model.Units = append(model.Units, l.translateEnum(ctx, file, enum))
		}
		for _, status := range root.Statuses {
			model.Units = append(model.Units, l.translateStatus(ctx, file, status))
		}
		logger.Debug("Loaded declarations from HCL file.", "file", file, "enums", len(root.Enums), "statuses", len(root.Statuses))
	}

	logger.Debug("HCL loading complete.", "units", len(model.Units))
	return model, nil
}

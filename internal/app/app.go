package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/vk/codeapi/internal/catalog"
	"github.com/vk/codeapi/internal/config"
	"github.com/vk/codeapi/internal/ctxlog"
	"github.com/vk/codeapi/internal/export"
	"github.com/vk/codeapi/internal/metrics"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	catalog  *catalog.Registry
	metrics  *prometheus.Registry
	exporter export.Exporter
}

// NewApp is the constructor for the main application. It loads every
// declaration, builds the catalog and its instrumentation, and returns a
// fully initialized App with its own isolated logger and metrics registry.
// Failing to load the declarations is fatal and panics.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, cfg.Declarations...)
	if err != nil {
		panic(fmt.Errorf("failed to load declarations: %w", err))
	}
	logger.Debug("Declarations loaded into unified model.", "units", len(model.Units))

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewGoCollector())

	lookupMetrics, err := metrics.NewLookupMetrics(promRegistry)
	if err != nil {
		// A fresh registry cannot hold conflicting collectors.
		panic(err)
	}

	reg := catalog.Build(ctx, model.Units, catalog.WithObserver(lookupMetrics))
	if err := metrics.RegisterCatalogGauges(promRegistry, reg.Len, reg.CachedQueries); err != nil {
		panic(err)
	}
	logger.Debug("Catalog instrumentation registered.")

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		catalog:  reg,
		metrics:  promRegistry,
		exporter: export.TextExporter{},
	}
}

// Catalog returns the application's code registry.
func (a *App) Catalog() *catalog.Registry {
	return a.catalog
}

// Export writes every known code through the configured exporter. It fails
// with export.ErrExportDisabled unless the configuration allows exporting.
func (a *App) Export(w io.Writer) error {
	if err := export.Guard(a.config.Exportable); err != nil {
		return err
	}
	return a.exporter.Export(w, a.config.Title, a.catalog.AllSorted())
}

// ExportFileName is the download name for the exported document.
func (a *App) ExportFileName() string {
	return export.FileName(a.exporter, a.config.Title)
}

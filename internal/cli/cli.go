package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/vk/codeapi/internal/app"
	"github.com/vk/codeapi/internal/export"
	"github.com/vk/codeapi/internal/hcl"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// envPrefix namespaces every environment variable override, e.g.
// CODEAPI_LOG_LEVEL.
const envPrefix = "CODEAPI"

// flagKeys maps persistent flag names to configuration keys.
var flagKeys = map[string]string{
	"declarations": "declarations",
	"title":        "title",
	"path":         "path",
	"exportable":   "exportable",
	"port":         "port",
	"log-level":    "log_level",
	"log-format":   "log_format",
}

// Execute builds a fresh command tree, runs it with args and maps failures
// to ExitErrors. Command output goes to outW; diagnostics go to errW.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	slog.Debug("CLI parser started.")
	root := NewRootCommand(outW, errW)
	if args == nil {
		// cobra falls back to os.Args on a nil slice.
		args = []string{}
	}
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCommand returns the `codeapi` command with all subcommands. Each
// call owns its own viper instance so commands never share state.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:   "codeapi",
		Short: "Status code catalog lookup service",
		Long: `CodeApi - a catalog of application status codes.

Status codes are declared in HCL files as enum or status blocks. The catalog
can be served over HTTP, searched with wildcard patterns such as 5xx, and
exported as a text table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: 2, Message: err.Error()}
	})

	defaults := app.DefaultConfig()
	flags := root.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "Path to a YAML config file.")
	flags.StringSliceP("declarations", "d", nil, "HCL declaration files or directories.")
	flags.String("title", defaults.Title, "Title used for exported documents.")
	flags.String("path", defaults.Path, "Route the lookup API is served under.")
	flags.Bool("exportable", defaults.Exportable, "Allow exporting the full code list.")
	flags.Int("port", defaults.Port, "Port for the HTTP lookup server. 0 is disabled.")
	flags.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")

	env := &environment{viper: v, flags: flags, cfgFile: &cfgFile, outW: outW, errW: errW}
	root.AddCommand(
		newServeCommand(env),
		newSearchCommand(env),
		newGroupsCommand(env),
		newExportCommand(env),
		newMappingCommand(env),
	)
	return root
}

// environment is the state shared by all subcommands of one root.
type environment struct {
	viper   *viper.Viper
	flags   *pflag.FlagSet
	cfgFile *string
	outW    io.Writer
	errW    io.Writer
}

// config resolves the application configuration from flags, environment
// variables and the optional config file, in that order of precedence.
// Positional paths, when given, replace the configured declarations.
func (e *environment) config(paths []string) (*app.Config, error) {
	v := e.viper
	defaults := app.DefaultConfig()
	v.SetDefault("title", defaults.Title)
	v.SetDefault("path", defaults.Path)
	v.SetDefault("exportable", defaults.Exportable)
	v.SetDefault("port", defaults.Port)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for flagName, key := range flagKeys {
		if err := v.BindPFlag(key, e.flags.Lookup(flagName)); err != nil {
			return nil, err
		}
	}

	if *e.cfgFile != "" {
		v.SetConfigFile(*e.cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, &ExitError{Code: 2, Message: fmt.Sprintf("failed to read config file %s: %v", *e.cfgFile, err)}
		}
	}

	var raw app.Config
	if err := v.Unmarshal(&raw); err != nil {
		return nil, &ExitError{Code: 2, Message: fmt.Sprintf("invalid configuration: %v", err)}
	}
	if len(paths) > 0 {
		raw.Declarations = paths
	}

	cfg, err := app.NewConfig(raw)
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("CLI configuration resolved.", "config", cfg)
	return cfg, nil
}

// newApp resolves the configuration and builds an App whose logs go to logW.
func (e *environment) newApp(logW io.Writer, paths []string) (*app.App, *app.Config, error) {
	cfg, err := e.config(paths)
	if err != nil {
		return nil, nil, err
	}
	return app.NewApp(logW, cfg, hcl.NewLoader()), cfg, nil
}

// exitOnDisabledExport turns a disabled export into a usage-level exit.
func exitOnDisabledExport(err error) error {
	if errors.Is(err, export.ErrExportDisabled) {
		return &ExitError{Code: 2, Message: err.Error()}
	}
	return err
}

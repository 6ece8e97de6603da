package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vk/codeapi/internal/catalog"
)

func newServeCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "serve [PATHS...]",
		Short: "Serve the lookup API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := env.newApp(env.outW, args)
			if err != nil {
				return err
			}
			return a.Run(cmd.Context())
		},
	}
}

func newSearchCommand(env *environment) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Look up codes by number or wildcard pattern (x matches any digit)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			a, _, err := env.newApp(env.errW, nil)
			if err != nil {
				return err
			}
			if args[0] == "" {
				return writeGroups(env.outW, a.Catalog().Groups(), asJSON)
			}

			codes := a.Catalog().Search(args[0])
			if asJSON {
				return writeJSON(env.outW, codes)
			}
			if len(codes) == 0 {
				fmt.Fprintf(env.outW, "No status code matches %q.\n", args[0])
				return nil
			}
			for _, c := range codes {
				fmt.Fprintln(env.outW, c.String())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON.")
	return cmd
}

func newGroupsCommand(env *environment) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "List every code group with its codes",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			a, _, err := env.newApp(env.errW, nil)
			if err != nil {
				return err
			}
			return writeGroups(env.outW, a.Catalog().Groups(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print groups as JSON.")
	return cmd
}

func newExportCommand(env *environment) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every code, sorted by number, as a text table",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			a, _, err := env.newApp(env.errW, nil)
			if err != nil {
				return err
			}
			if output == "" {
				return exitOnDisabledExport(a.Export(env.outW))
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create export file: %w", err)
			}
			if err := a.Export(f); err != nil {
				f.Close()
				os.Remove(output)
				return exitOnDisabledExport(err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write export file: %w", err)
			}
			fmt.Fprintf(env.errW, "Exported to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the export to a file instead of stdout.")
	return cmd
}

func newMappingCommand(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "mapping",
		Short: "Print the number-to-code index as JSON",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			a, _, err := env.newApp(env.errW, nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(env.outW, a.Catalog().SerializedIndex())
			return nil
		},
	}
}

func writeGroups(w io.Writer, groups []catalog.Group, asJSON bool) error {
	if asJSON {
		return writeJSON(w, groups)
	}
	for _, g := range groups {
		if g.Theme != "" {
			fmt.Fprintf(w, "%s (%s)\n", g.Name, g.Theme)
		} else {
			fmt.Fprintln(w, g.Name)
		}
		for _, c := range g.Codes {
			fmt.Fprintf(w, "  %s\n", c)
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

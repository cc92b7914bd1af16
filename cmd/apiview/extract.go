// cmd/apiview/extract.go
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/julianshen/apiview/internal/config"
	"github.com/julianshen/apiview/internal/csharp"
	"github.com/julianshen/apiview/internal/decl"
	"github.com/julianshen/apiview/internal/extract"
	"github.com/julianshen/apiview/internal/render"
)

type extractOptions struct {
	name        string
	version     string
	references  []string
	noDeps      bool
	noInternals bool
	save        bool
	storeDSN    string
	diagnostics string
}

func extractCmd() *cobra.Command {
	var opts extractOptions

	cmd := &cobra.Command{
		Use:   "extract <input> <output>",
		Short: "Extract the API listing of a library into a code file",
		Long: `Extract reads a directory or .cs file of C# sources, or a YAML
declaration manifest, and writes the public API listing as a JSON code file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, output := args[0], args[1]

			cfg, err := loadConfig(projectDir(input))
			if err != nil {
				return err
			}

			refs, err := loadReferences(opts.references)
			if err != nil {
				return err
			}
			var diags []render.Diagnostic
			if opts.diagnostics != "" {
				if !opts.save {
					return fmt.Errorf("--diagnostics requires --save")
				}
				if diags, err = render.LoadDiagnostics(opts.diagnostics); err != nil {
					return err
				}
			}
			mod, err := loadModule(cmd.Context(), input, cfg.Extract, opts, refs)
			if err != nil {
				return err
			}

			ex := extract.New(csharp.NewProvider(mod, refs...),
				extract.WithDependencies(cfg.Extract.IncludeDependencies && !opts.noDeps),
				extract.WithInternalsVisibleTo(cfg.Extract.IncludeInternalsVisibleTo && !opts.noInternals),
			)
			cf, err := ex.Extract()
			if err != nil {
				return err
			}
			if err := cf.WriteFile(output); err != nil {
				return fmt.Errorf("writing code file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d tokens)\n", output, len(cf.Tokens))

			if !opts.save {
				return nil
			}
			s, err := openStore(cfg, opts.storeDSN)
			if err != nil {
				return err
			}
			defer s.Close()

			rev, err := s.SaveRevision(cf, diags)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved revision %s\n", rev.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "override the package name")
	cmd.Flags().StringVar(&opts.version, "package-version", "", "override the package version")
	cmd.Flags().StringSliceVar(&opts.references, "reference", nil, "YAML manifest of a referenced library (repeatable)")
	cmd.Flags().BoolVar(&opts.noDeps, "no-dependencies", false, "omit the dependencies header")
	cmd.Flags().BoolVar(&opts.noInternals, "no-internals", false, "omit the internals-visible-to header")
	cmd.Flags().BoolVar(&opts.save, "save", false, "also store the code file as a revision")
	cmd.Flags().StringVar(&opts.storeDSN, "store", "", "store connection string (overrides config)")
	cmd.Flags().StringVar(&opts.diagnostics, "diagnostics", "", "diagnostics JSON to attach to the saved revision")

	return cmd
}

func isManifest(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// projectDir is the directory a project config file is looked up in.
func projectDir(input string) string {
	if info, err := os.Stat(input); err == nil && info.IsDir() {
		return input
	}
	return filepath.Dir(input)
}

func loadReferences(paths []string) ([]*decl.Module, error) {
	var refs []*decl.Module
	for _, p := range paths {
		m, err := decl.LoadManifest(p)
		if err != nil {
			return nil, fmt.Errorf("loading reference %s: %w", p, err)
		}
		refs = append(refs, m)
	}
	return refs, nil
}

func loadModule(ctx context.Context, input string, ec config.ExtractConfig, opts extractOptions, refs []*decl.Module) (*decl.Module, error) {
	if isManifest(input) {
		m, err := decl.LoadManifest(input)
		if err != nil {
			return nil, err
		}
		if opts.name != "" {
			m.Name = opts.name
		}
		if opts.version != "" {
			m.Version = opts.version
		}
		return m, nil
	}

	if ec.Language != "" && ec.Language != "csharp" {
		return nil, fmt.Errorf("unsupported source language %q", ec.Language)
	}
	var exclude []string
	if len(ec.Exclude) > 0 {
		exclude = append(append(exclude, csharp.DefaultExcludes...), ec.Exclude...)
	}
	loader, err := csharp.NewLoader(csharp.LoaderConfig{
		Name:        opts.name,
		Version:     opts.version,
		Exclude:     exclude,
		Concurrency: ec.Concurrency,
		References:  refs,
	})
	if err != nil {
		return nil, err
	}
	return loader.LoadPath(ctx, input)
}

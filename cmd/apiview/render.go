// cmd/apiview/render.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/julianshen/apiview/internal/codefile"
	"github.com/julianshen/apiview/internal/output"
	"github.com/julianshen/apiview/internal/render"
)

const formatAuto = "auto"

// stdoutIsTerminal reports whether standard output is attached to a terminal.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func renderCmd() *cobra.Command {
	var (
		formatFlag      string
		diagnosticsFlag string
		revisionFlag    string
		outFlag         string
		titleFlag       string
		storeFlag       string
		failOnFlag      string
		latestFlag      string
	)

	cmd := &cobra.Command{
		Use:   "render [code-file]",
		Short: "Render a code file as a review listing",
		Long: `Render turns a code file, or a stored revision, into review lines
with diagnostics attached to the declarations they target.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if revisionFlag == "" && latestFlag == "" && len(args) == 0 {
				return fmt.Errorf("a code file, --revision or --latest is required")
			}
			if revisionFlag != "" && latestFlag != "" {
				return fmt.Errorf("--revision and --latest are mutually exclusive")
			}
			if failOnFlag != "" {
				if _, err := render.ParseLevel(failOnFlag); err != nil {
					return err
				}
			}

			cfg, err := loadConfig("")
			if err != nil {
				return err
			}
			format := formatFlag
			if format == "" {
				format = cfg.Render.Format
			}

			var (
				cf    *codefile.CodeFile
				diags []render.Diagnostic
			)
			if revisionFlag != "" || latestFlag != "" {
				s, err := openStore(cfg, storeFlag)
				if err != nil {
					return err
				}
				defer s.Close()
				if latestFlag != "" {
					rev, err := s.LatestRevision(latestFlag)
					if err != nil {
						return err
					}
					revisionFlag = rev.ID
				}
				if _, cf, err = s.GetRevision(revisionFlag); err != nil {
					return err
				}
				if diags, err = s.Diagnostics(revisionFlag); err != nil {
					return err
				}
			} else {
				if cf, err = codefile.ReadFile(args[0]); err != nil {
					return err
				}
			}
			if diagnosticsFlag != "" {
				extra, err := render.LoadDiagnostics(diagnosticsFlag)
				if err != nil {
					return err
				}
				diags = append(diags, extra...)
			}
			for _, d := range unmatchedDiagnostics(cf, diags) {
				log.Printf("warning: diagnostic %s targets unknown id %q", d.DiagnosticID, d.TargetID)
			}

			format, profile := resolveFormat(format, outFlag == "" && stdoutIsTerminal())
			f, err := output.New(format)
			if err != nil {
				return err
			}

			title := titleFlag
			if title == "" {
				title = cfg.Render.PageTitle
			}
			if title == "" {
				title = cf.Name
			}
			doc := &output.Document{
				Title:          title,
				PackageName:    cf.PackageName,
				PackageVersion: cf.PackageVersion,
				Lines:          render.Render(cf.Tokens, diags, output.Strategy(format, profile)),
			}
			data, err := f.Format(doc)
			if err != nil {
				return fmt.Errorf("formatting output: %w", err)
			}

			if outFlag == "" {
				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return err
				}
			} else if err := os.WriteFile(outFlag, data, 0o644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}

			code, err := exitCodeFromDiagnostics(doc.Lines, failOnFlag)
			if err != nil {
				return err
			}
			if code != 0 {
				return &ExitError{Code: code}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "", "output format: auto, text, ansi, html, json, markdown (default from config)")
	cmd.Flags().StringVar(&diagnosticsFlag, "diagnostics", "", "JSON file of diagnostics to attach")
	cmd.Flags().StringVar(&revisionFlag, "revision", "", "render a stored revision instead of a file")
	cmd.Flags().StringVar(&outFlag, "out", "", "write output to file instead of stdout")
	cmd.Flags().StringVar(&titleFlag, "title", "", "document title (default from config or code file name)")
	cmd.Flags().StringVar(&storeFlag, "store", "", "store connection string (overrides config)")
	cmd.Flags().StringVar(&latestFlag, "latest", "", "render the highest stored revision of this package")
	cmd.Flags().StringVar(&failOnFlag, "fail-on", "", "exit 1 if any attached diagnostic is at or above this level (info, warning, error)")

	return cmd
}

// resolveFormat maps auto onto ANSI for terminals and text otherwise, and
// picks the colour profile the strategy is built with.
func resolveFormat(format string, tty bool) (string, termenv.Profile) {
	if format == formatAuto {
		if !tty {
			return output.FormatText, termenv.Ascii
		}
		format = output.FormatANSI
	}
	if format == output.FormatANSI {
		return format, termenv.ANSI256
	}
	return format, termenv.Ascii
}

// unmatchedDiagnostics returns the targeted diagnostics whose id is not
// defined anywhere in cf. They render nowhere.
func unmatchedDiagnostics(cf *codefile.CodeFile, diags []render.Diagnostic) []render.Diagnostic {
	defined := make(map[string]bool)
	for _, id := range cf.DefinitionIDs() {
		defined[id] = true
	}
	var out []render.Diagnostic
	for _, d := range diags {
		if d.TargetID != "" && !defined[d.TargetID] {
			out = append(out, d)
		}
	}
	return out
}

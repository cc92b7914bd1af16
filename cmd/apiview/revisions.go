// cmd/apiview/revisions.go
package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/julianshen/apiview/internal/render"
)

func revisionsCmd() *cobra.Command {
	var (
		storeFlag       string
		deleteFlag      string
		attachFlag      string
		diagnosticsFlag string
	)

	cmd := &cobra.Command{
		Use:   "revisions <package>",
		Short: "List stored revisions of a package",
		Long:  "List stored revisions of a package, highest version first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (attachFlag == "") != (diagnosticsFlag == "") {
				return fmt.Errorf("--attach and --diagnostics must be given together")
			}
			cfg, err := loadConfig("")
			if err != nil {
				return err
			}
			s, err := openStore(cfg, storeFlag)
			if err != nil {
				return err
			}
			defer s.Close()

			if deleteFlag != "" {
				if err := s.DeleteRevision(deleteFlag); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted revision %s\n", deleteFlag)
			}
			if attachFlag != "" {
				diags, err := render.LoadDiagnostics(diagnosticsFlag)
				if err != nil {
					return err
				}
				if err := s.SetDiagnostics(attachFlag, diags); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "attached %d diagnostics to revision %s\n", len(diags), attachFlag)
			}

			revs, err := s.ListRevisions(args[0])
			if err != nil {
				return err
			}
			if len(revs) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No revisions of %s.\n", args[0])
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tVERSION\tLANGUAGE\tCREATED")
			for _, r := range revs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					r.ID, r.PackageVersion, r.Language,
					r.CreatedAt.Format(time.RFC3339),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&storeFlag, "store", "", "store connection string (overrides config)")
	cmd.Flags().StringVar(&deleteFlag, "delete", "", "delete the revision with this id before listing")
	cmd.Flags().StringVar(&attachFlag, "attach", "", "replace the diagnostics of the revision with this id")
	cmd.Flags().StringVar(&diagnosticsFlag, "diagnostics", "", "diagnostics JSON used by --attach")

	return cmd
}

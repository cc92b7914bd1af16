// cmd/apiview/main.go
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/julianshen/apiview/internal/config"
	"github.com/julianshen/apiview/internal/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	configPath string
)

func versionString() string {
	return fmt.Sprintf("apiview %s (commit: %s, built: %s)", version, commit, date)
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apiview",
		Short: "Extract and render reviewable API listings",
		Long: `apiview turns the public API surface of a C# library into a
reviewable listing. Listings are stored as code files, rendered as text,
HTML or ANSI, and annotated with review diagnostics.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
		},
	}

	cmd.AddCommand(versionCmd)
	cmd.AddCommand(extractCmd())
	cmd.AddCommand(renderCmd())
	cmd.AddCommand(revisionsCmd())
	return cmd
}

// loadConfig resolves the config file in order: --config, a project file
// in projectDir, then the per-user default.
func loadConfig(projectDir string) (*config.Config, error) {
	cfgPath := configPath
	if cfgPath == "" && projectDir != "" {
		p, err := config.ProjectConfigPath(projectDir)
		if err != nil {
			return nil, fmt.Errorf("reading project config: %w", err)
		}
		cfgPath = p
	}
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// openStore opens the revision store. A non-empty dsn overrides the
// configured connection string.
func openStore(cfg *config.Config, dsn string) (*store.Store, error) {
	if dsn == "" {
		var err error
		dsn, err = config.ResolveDSN(cfg.Store)
		if err != nil {
			return nil, fmt.Errorf("resolving store dsn: %w", err)
		}
	}
	s, err := store.Open(cfg.Store.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return s, nil
}

// Package commands wires the conciliar CLI.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Gms006/Drogarias/internal/buildinfo"
	"github.com/Gms006/Drogarias/internal/config"
	"github.com/Gms006/Drogarias/internal/registry"
)

const settingsFile = "conciliar.yaml"

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "conciliar",
		Short:   "Bank statement reconciliation for accounts payable",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newInitCommand(),
		newReconcileCommand(),
		newSupplierCommand(),
		newAccountCommand(),
		newCompaniesCommand(),
	)

	return rootCmd
}

// resolveDataDir picks the data directory: flag, then CONCILIAR_DATA_DIR,
// then the working directory.
func resolveDataDir(flagValue string) (string, error) {
	dir := flagValue
	if dir == "" {
		dir = os.Getenv("CONCILIAR_DATA_DIR")
	}
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving data dir: %w", err)
	}
	return abs, nil
}

// loadSettings reads <dataDir>/conciliar.yaml, falling back to defaults
// when the file does not exist yet.
func loadSettings(dataDir string) *config.Settings {
	s, err := config.LoadSettings(filepath.Join(dataDir, settingsFile))
	if err != nil {
		return config.DefaultSettings()
	}
	return s
}

// openStore builds the registry store for a data directory.
func openStore(dataDir string) *registry.Store {
	return registry.NewStore(dataDir, loadSettings(dataDir).Git)
}

// addDataFlag registers the shared --data flag on a command.
func addDataFlag(cmd *cobra.Command, dataDir *string) {
	cmd.Flags().StringVar(dataDir, "data", "", "data directory (default $CONCILIAR_DATA_DIR or .)")
}

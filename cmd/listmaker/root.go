// Root command for the listmaker CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/listmaker/internal/paths"
)

// Global flag values.
var (
	flagConfigDir  string
	flagStorageDir string
)

// Values loaded from config.yaml by PersistentPreRunE, available to all
// subcommands.
var (
	configStorageDir string
	configListen     string
)

var rootCmd = &cobra.Command{
	Use:   "listmaker",
	Short: "Listmaker is a backend for schema-driven lists",
	Long: `Listmaker manages user-defined lists whose items carry typed,
schema-driven field values (boolean, text, number, URL, image). Lists are
persisted as JSON documents, one directory per list.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configStorageDir = cfg.GetString(cfgKeyStorageDir)
		configListen = cfg.GetString(cfgKeyListen)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagStorageDir, "storage-dir", "", "storage root (default: $(CWD)/storage)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(migrateCmd)
}

// resolveStorageDir returns the storage root following the precedence:
// --storage-dir flag > config.yaml storage_dir > LISTMAKER_STORAGE_DIR env >
// default $(CWD)/storage.
func resolveStorageDir() (string, error) {
	return paths.ResolveStorageDir(flagStorageDir, configStorageDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > LISTMAKER_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/dotcommander/cognishield/internal/config"
	"github.com/spf13/cobra"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the effective configuration to a file",
	Long: `Writes the configuration currently in force (defaults, config file,
environment and flags) as JSON. The default path is .cognishieldrc.json.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := config.ConfigFiles[0]
		if len(args) == 1 {
			path = args[0]
		}
		if err := runConfigInit(path); err != nil {
			fail(err)
		}
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(path string) error {
	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.SaveConfig(cfg, path); err != nil {
		return err
	}
	if !cfg.Quiet {
		fmt.Printf("Configuration written to %s\n", path)
	}
	return nil
}

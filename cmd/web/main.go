package main

import (
	"fmt"
	"os"

	"admin_console/internal/app"
	"admin_console/internal/config"

	"github.com/spf13/cobra"
)

// Version задается при сборке (-ldflags "-X main.Version=...")
var Version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:     "admin-console",
	Short:   "Admin console - server-rendered back office",
	Version: Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("admin-console %s\n", Version)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Load and validate the configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		fmt.Printf("Configuration OK (api: %s, storage: %s, listen: %s)\n", cfg.API.BaseURL, cfg.Storage.Type, cfg.Address())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (default CONFIG_PATH or config/config.yaml)")

	configCmd.AddCommand(configCheckCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func serve() error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return app.Run(cfg, Version)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

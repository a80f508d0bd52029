// Package main contains the asnreport CLI commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Veraticus/asnreport/internal/cli"
	"github.com/Veraticus/asnreport/internal/common"
	"github.com/Veraticus/asnreport/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "asnreport",
		Short: "🗄️  Paperless-ngx archive serial number reports",
		Long: `asnreport fetches documents from Paperless-ngx by archive serial number,
groups them by a select custom field (such as a storage location) and by
correspondent, and writes tab-separated reports for filing.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/asnreport/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("output-dir", "", "directory reports are written to (default: current directory)")
	rootCmd.PersistentFlags().Bool("progress", true, "show a progress bar while fetching")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag(config.KeyOutputDir, rootCmd.PersistentFlags().Lookup("output-dir"))
	_ = viper.BindPFlag(config.KeyProgress, rootCmd.PersistentFlags().Lookup("progress"))

	// Add commands
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(errorLine(err)))
		os.Exit(1)
	}
}

// errorLine flattens err into the single line shown to the user.
func errorLine(err error) string {
	msg := "Error: " + strings.Join(strings.Fields(err.Error()), " ")
	if errors.Is(err, common.ErrMissingConfig) {
		msg += " (set PAPERLESS_URL and PAPERLESS_TOKEN or use --config)"
	}
	return msg
}

func initConfig(_ *cobra.Command, _ []string) error {
	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		viper.AddConfigPath(fmt.Sprintf("%s/.config/asnreport", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables, e.g. ASNREPORT_PAPERLESS_URL
	viper.SetEnvPrefix("ASNREPORT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	// Set up logging
	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	if err := common.SetupLogger(level, viper.GetString("logging.format")); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "asnreport version %s\n", version)
		},
	}
}

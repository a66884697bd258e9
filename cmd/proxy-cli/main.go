// Proxy-cli toggles session-scoped HTTP/HTTPS proxy variables.
//
// It keeps a preferred local proxy port in a small config file and, through
// a wrapper function installed into the user's shell profile, exports or
// clears http_proxy, https_proxy, HTTP_PROXY and HTTPS_PROXY in the calling
// shell.
//
// Usage:
//
//	proxy-cli [command] [flags]
//
// Running without arguments opens the interactive menu.
// See 'proxy-cli --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/proxy-cli/internal/logging"
	"github.com/muurk/proxy-cli/internal/version"
)

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "proxy-cli",
	Short: "Toggle HTTP/HTTPS proxy variables for your shell",
	Long: `A small utility that turns a local HTTP proxy on and off for the
current shell session.

The preferred port is kept in a config file. Each run ends by printing one
directive line on stdout (#SET_PROXY:<url> or #CLEAR_PROXY) which the
'proxy' shell function installed by 'proxy-cli install' applies to your
shell. Everything else is written to stderr.

If no command is specified, the interactive menu opens.`,
	Version:           version.Version,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: initLogging,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: open the menu when no subcommand is given
		return runInteractive(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: <config dir>/proxy-cli/config.json, or $PROXYCLI_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); default: $PROXYCLI_LOG_LEVEL or silent")

	rootCmd.AddCommand(versionCmd)
}

func initLogging(cmd *cobra.Command, args []string) error {
	return logging.Initialize(logLevel)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "proxy-cli %s\n", version.Full())
	},
}

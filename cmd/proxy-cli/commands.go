package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/proxy-cli/internal/config"
	"github.com/muurk/proxy-cli/internal/menu"
	"github.com/muurk/proxy-cli/internal/proxyenv"
	"github.com/muurk/proxy-cli/internal/session"
	"github.com/muurk/proxy-cli/internal/terminal"
	"github.com/muurk/proxy-cli/internal/ui"
	"github.com/muurk/proxy-cli/internal/urls"
)

// Command flags
var (
	enablePort   uint16
	clearPort    bool
	statusFormat string
)

func init() {
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
	rootCmd.AddCommand(setPortCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(interactiveCmd)

	enableCmd.Flags().Uint16Var(&enablePort, "port", 0, "Store this port before enabling")
	setPortCmd.Flags().BoolVar(&clearPort, "clear", false, "Remove the stored port (disables the proxy)")
	statusCmd.Flags().StringVar(&statusFormat, "format", "detailed", "Output format (detailed, compact, json, yaml)")
}

// openStore returns the config store selected by --config, $PROXYCLI_CONFIG
// or the platform default.
func openStore() (*config.Store, error) {
	if configPath != "" {
		return config.NewStore(configPath), nil
	}
	return config.DefaultStore()
}

func openSession() (*session.Session, *config.Store, error) {
	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	return session.New(store, proxyenv.NewOS()), store, nil
}

// emitDirective prints the shell directive for the session on stdout.
func emitDirective(cmd *cobra.Command, sess *session.Session) error {
	return sess.Directive().Write(cmd.OutOrStdout())
}

var enableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable the proxy on the stored port",
	Long: `Point http_proxy, https_proxy, HTTP_PROXY and HTTPS_PROXY at
http://127.0.0.1:<port> and remember that the proxy is on.

A port must be stored first, either with 'proxy-cli set-port' or with --port.`,
	Example: `  # Enable on the stored port
  proxy-cli enable

  # Store port 7890 and enable
  proxy-cli enable --port 7890`,
	Args: cobra.NoArgs,
	RunE: runEnable,
}

func runEnable(cmd *cobra.Command, args []string) error {
	sess, _, err := openSession()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("port") {
		port, err := config.ValidatePort(uint32(enablePort))
		if err != nil {
			return err
		}
		if err := sess.SetPort(port); err != nil {
			return fmt.Errorf("failed to store port: %w", err)
		}
	}

	if err := sess.Enable(); err != nil {
		if errors.Is(err, session.ErrNoPort) {
			return fmt.Errorf("%w (try 'proxy-cli set-port <port>')", err)
		}
		return fmt.Errorf("failed to enable proxy: %w", err)
	}

	url := proxyenv.URL(sess.Config().PortValue())
	ui.NewPrinter(cmd.ErrOrStderr()).PrintSuccess("Proxy enabled", ui.Detail{Key: "URL", Value: url})
	return emitDirective(cmd, sess)
}

var disableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable the proxy",
	Long: `Remove http_proxy, https_proxy, HTTP_PROXY and HTTPS_PROXY and
remember that the proxy is off. The stored port is kept.`,
	Args: cobra.NoArgs,
	RunE: runDisable,
}

func runDisable(cmd *cobra.Command, args []string) error {
	sess, _, err := openSession()
	if err != nil {
		return err
	}

	if err := sess.Disable(); err != nil {
		return fmt.Errorf("failed to disable proxy: %w", err)
	}

	ui.NewPrinter(cmd.ErrOrStderr()).PrintSuccess("Proxy disabled")
	return emitDirective(cmd, sess)
}

var setPortCmd = &cobra.Command{
	Use:   "set-port [port]",
	Short: "Store the proxy port",
	Long: `Store the local proxy port (1-65535).

Without an argument the port is read from the terminal; an empty answer
clears the stored port. When the proxy is enabled it is re-pointed at the
new port straight away.`,
	Example: `  # Store port 7890
  proxy-cli set-port 7890

  # Ask for the port
  proxy-cli set-port

  # Forget the port (also disables the proxy)
  proxy-cli set-port --clear`,
	Args: setPortArgs,
	RunE: runSetPort,
}

func setPortArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
		return err
	}
	if clearPort && len(args) > 0 {
		return fmt.Errorf("--clear does not take a port, got %q", args[0])
	}
	return nil
}

func runSetPort(cmd *cobra.Command, args []string) error {
	sess, _, err := openSession()
	if err != nil {
		return err
	}
	printer := ui.NewPrinter(cmd.ErrOrStderr())

	var text string
	switch {
	case clearPort:
		text = ""
	case len(args) == 1:
		text = args[0]
	default:
		initial := ""
		if sess.Config().HasPort() {
			initial = strconv.FormatUint(uint64(sess.Config().PortValue()), 10)
		}
		line, ok, err := ui.NewLinePrompt(cmd.InOrStdin(), cmd.ErrOrStderr()).ReadLine("Proxy port (empty to clear)", initial)
		if err != nil {
			return err
		}
		if !ok {
			printer.PrintInfo("Port unchanged")
			return emitDirective(cmd, sess)
		}
		text = line
	}

	change, err := sess.ApplyPortInput(text)
	if err != nil {
		return err
	}

	switch change {
	case session.PortSet:
		printer.PrintSuccess("Port stored", ui.Detail{Key: "Port", Value: strconv.FormatUint(uint64(sess.Config().PortValue()), 10)})
	case session.PortCleared:
		printer.PrintSuccess("Port cleared")
	default:
		printer.PrintInfo("Port unchanged")
	}
	return emitDirective(cmd, sess)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored proxy state",
	Long: `Show whether the proxy is enabled, the stored port and the config
file location.

The detailed and compact formats are written to stderr and followed by the
usual directive line. The directive only keeps the proxy set when your shell
already has it; status never turns a proxy on. The json and yaml formats are
meant for scripts and are written to stdout on their own.`,
	Example: `  proxy-cli status
  proxy-cli status --format compact
  proxy-cli status --format json`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	sess, store, err := openSession()
	if err != nil {
		return err
	}

	report := buildStatusReport(sess, store.Path())

	switch statusFormat {
	case "json", "yaml":
		return writeStatus(cmd.OutOrStdout(), report, statusFormat)
	case "compact":
		fmt.Fprintln(cmd.ErrOrStderr(), report.FormatCompact())
	case "detailed":
		fmt.Fprintln(cmd.ErrOrStderr(), report.FormatDetailed(ui.GetTerminalWidth()))
	default:
		return fmt.Errorf("unknown format %q (want detailed, compact, json or yaml)", statusFormat)
	}
	return sess.ObservedDirective().Write(cmd.OutOrStdout())
}

func buildStatusReport(sess *session.Session, path string) ui.StatusReport {
	cfg := sess.Config()
	report := ui.StatusReport{
		Enabled:    cfg.Enabled,
		Port:       cfg.Port,
		EnvActive:  sess.Snapshot().Enabled(),
		ConfigPath: path,
	}
	if cfg.Enabled {
		report.HTTPProxy = proxyenv.URL(cfg.PortValue())
		report.HTTPSProxy = report.HTTPProxy
	}
	return report
}

func writeStatus(w io.Writer, report ui.StatusReport, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", format)
}

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Open the interactive menu",
	Long: `Open the full-screen menu to enable or disable the proxy and set the
port. This is the default when no command is given.

Every interactive session starts with the proxy disabled.`,
	Example: `  proxy-cli interactive
  # Or simply:
  proxy-cli`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func runInteractive(cmd *cobra.Command, args []string) error {
	sess, _, err := openSession()
	if err != nil {
		return err
	}
	if err := sess.ResetOnStartup(); err != nil {
		return err
	}

	console := terminal.NewConsole(os.Stdin, os.Stderr)
	prompt := ui.NewLinePrompt(os.Stdin, os.Stderr)
	ctrl := menu.NewController(console, prompt, sess, os.Stderr, menu.DefaultOptions())

	runErr := ctrl.Run()

	// The session may have changed before a terminal failure, so the
	// directive is printed either way.
	if err := emitDirective(cmd, sess); err != nil && runErr == nil {
		runErr = err
	}
	if errors.Is(runErr, terminal.ErrSetup) {
		return fmt.Errorf("interactive mode needs a terminal (see %s): %w", urls.Troubleshooting, runErr)
	}
	return runErr
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/proxy-cli/internal/installer"
	"github.com/muurk/proxy-cli/internal/logging"
	"github.com/muurk/proxy-cli/internal/ui"
	"github.com/muurk/proxy-cli/internal/urls"
)

// Install command flags
var (
	installYes     bool
	installCheck   bool
	installPrint   bool
	installShell   string
	installProfile string
)

func init() {
	rootCmd.AddCommand(installCmd)

	installCmd.Flags().BoolVarP(&installYes, "yes", "y", false, "Do not ask for confirmation")
	installCmd.Flags().BoolVar(&installCheck, "check", false, "Only report whether the wrapper is installed")
	installCmd.Flags().BoolVar(&installPrint, "print", false, "Print the wrapper to stdout instead of installing it")
	installCmd.Flags().StringVar(&installShell, "shell", "", "Shell to install for (bash, zsh, fish, powershell); default: detected")
	installCmd.Flags().StringVar(&installProfile, "profile", "", "Profile file to modify; default: the shell's startup file")
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the 'proxy' shell function",
	Long: `Add a 'proxy' function to your shell profile.

The function runs proxy-cli and applies the directive it prints, so that
enabling or disabling the proxy changes the variables of your shell. The
profile is only changed when the function is missing.`,
	Example: `  # Install for the detected shell
  proxy-cli install

  # Check without changing anything
  proxy-cli install --check

  # Install for fish without asking
  proxy-cli install --shell fish --yes

  # Inspect the function first
  proxy-cli install --print --shell zsh`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	env, err := installer.CurrentEnvironment()
	if err != nil {
		return err
	}

	shell, err := resolveShell(env)
	if err != nil {
		return err
	}

	exe, err := executablePath()
	if err != nil {
		return err
	}

	if installPrint {
		snippet, err := installer.Snippet(shell, exe)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), snippet)
		return err
	}

	profile := installProfile
	if profile == "" {
		if profile, err = env.ProfilePath(shell); err != nil {
			return err
		}
	}

	printer := ui.NewPrinter(cmd.ErrOrStderr())
	installed, err := installer.IsInstalled(profile)
	if err != nil {
		return err
	}

	details := []ui.Detail{
		{Key: "Shell", Value: shell.String()},
		{Key: "Profile", Value: profile},
	}

	if installed {
		printer.PrintInfo("Wrapper already installed", details...)
		return nil
	}
	if installCheck {
		return fmt.Errorf("wrapper not installed in %s", profile)
	}

	if !installYes {
		confirmed := ui.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(),
			"Shell profile change",
			[]string{
				"Shell:      " + shell.String(),
				"Profile:    " + profile,
				"Executable: " + exe,
			},
			"Add the 'proxy' function to this profile?",
		)
		if !confirmed {
			return nil
		}
	}

	if _, err := installer.Install(profile, shell, exe); err != nil {
		return err
	}

	details = append(details,
		ui.Detail{Key: "Reload", Value: reloadHint(shell, profile)},
		ui.Detail{Key: "Docs", Value: urls.ShellWrapper},
	)
	printer.PrintSuccess("Wrapper installed", details...)
	return nil
}

func resolveShell(env installer.Environment) (installer.Shell, error) {
	if installShell != "" {
		return installer.ParseShell(installShell)
	}
	return env.DetectShell()
}

// executablePath returns the absolute path of the running binary with
// symlinks resolved, so the wrapper keeps working from any directory.
func executablePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("cannot locate executable: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		logging.Debug("Using unresolved executable path", zap.String("path", exe), zap.Error(err))
		return exe, nil
	}
	return resolved, nil
}

func reloadHint(shell installer.Shell, profile string) string {
	if shell == installer.ShellPowerShell {
		return fmt.Sprintf(`. "%s"`, profile)
	}
	return "source " + profile
}

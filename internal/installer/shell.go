package installer

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

// Shell is a supported interactive shell.
type Shell int

const (
	ShellBash Shell = iota
	ShellZsh
	ShellFish
	ShellPowerShell
)

// String returns the shell name accepted by ParseShell.
func (s Shell) String() string {
	switch s {
	case ShellBash:
		return "bash"
	case ShellZsh:
		return "zsh"
	case ShellFish:
		return "fish"
	case ShellPowerShell:
		return "powershell"
	default:
		return fmt.Sprintf("Shell(%d)", int(s))
	}
}

// ParseShell maps a shell name or executable path to a Shell.
func ParseShell(name string) (Shell, error) {
	// Windows paths may reach us on any OS through $SHELL or --shell.
	normalized := strings.ReplaceAll(strings.TrimSpace(name), `\`, "/")
	base := strings.ToLower(path.Base(normalized))
	base = strings.TrimSuffix(base, ".exe")

	switch base {
	case "bash":
		return ShellBash, nil
	case "zsh":
		return ShellZsh, nil
	case "fish":
		return ShellFish, nil
	case "powershell", "pwsh":
		return ShellPowerShell, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedShell, name)
}

// Environment is the part of the process environment the installer looks
// at. Tests build one by hand.
type Environment struct {
	GOOS   string
	Home   string
	Getenv func(string) string
}

// CurrentEnvironment describes the running process.
func CurrentEnvironment() (Environment, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Environment{}, fmt.Errorf("cannot determine home directory: %w", err)
	}
	return Environment{GOOS: runtime.GOOS, Home: home, Getenv: os.Getenv}, nil
}

// DetectShell guesses the user's shell. $SHELL wins when set; on Windows,
// or when only PowerShell's $PSModulePath is present, PowerShell is
// assumed.
func (e Environment) DetectShell() (Shell, error) {
	if sh := e.Getenv("SHELL"); sh != "" {
		return ParseShell(sh)
	}
	if e.GOOS == "windows" || e.Getenv("PSModulePath") != "" {
		return ShellPowerShell, nil
	}
	return 0, ErrShellNotDetected
}

// ProfilePath returns the startup file the wrapper is appended to.
func (e Environment) ProfilePath(s Shell) (string, error) {
	switch s {
	case ShellBash:
		return filepath.Join(e.Home, ".bashrc"), nil

	case ShellZsh:
		if dir := e.Getenv("ZDOTDIR"); dir != "" {
			return filepath.Join(dir, ".zshrc"), nil
		}
		return filepath.Join(e.Home, ".zshrc"), nil

	case ShellFish:
		if dir := e.Getenv("XDG_CONFIG_HOME"); dir != "" {
			return filepath.Join(dir, "fish", "config.fish"), nil
		}
		return filepath.Join(e.Home, ".config", "fish", "config.fish"), nil

	case ShellPowerShell:
		if p := e.Getenv("PROFILE"); p != "" {
			return p, nil
		}
		return e.powerShellProfile(), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedShell, s)
}

// powerShellProfile picks Windows PowerShell 5 when its directory exists,
// then PowerShell 7, then falls back to the PowerShell 5 location.
func (e Environment) powerShellProfile() string {
	const file = "Microsoft.PowerShell_profile.ps1"
	docs := filepath.Join(e.Home, "Documents")

	ps5 := filepath.Join(docs, "WindowsPowerShell", file)
	ps7 := filepath.Join(docs, "PowerShell", file)

	if dirExists(filepath.Dir(ps5)) {
		return ps5
	}
	if dirExists(filepath.Dir(ps7)) {
		return ps7
	}
	if e.GOOS != "windows" {
		// pwsh on Linux and macOS
		return filepath.Join(e.Home, ".config", "powershell", file)
	}
	return ps5
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

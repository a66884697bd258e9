package installer

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

// Marker is the comment line that identifies an installed wrapper.
const Marker = "# proxy-cli wrapper"

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(
	template.New("wrapper").
		Funcs(template.FuncMap{
			"shquote": shellQuote,
			"psquote": powerShellQuote,
		}).
		ParseFS(templateFS, "templates/*.tmpl"),
)

func templateName(s Shell) (string, error) {
	switch s {
	case ShellBash, ShellZsh:
		return "posix.sh.tmpl", nil
	case ShellFish:
		return "fish.fish.tmpl", nil
	case ShellPowerShell:
		return "powershell.ps1.tmpl", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedShell, s)
}

// Snippet renders the wrapper function for shell s calling the binary at
// exe.
func Snippet(s Shell, exe string) (string, error) {
	name, err := templateName(s)
	if err != nil {
		return "", err
	}

	params := map[string]interface{}{
		"Marker": Marker,
		"Shell":  s.String(),
		"Exe":    exe,
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, params); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// shellQuote quotes s for POSIX shells and fish.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// powerShellQuote quotes s as a PowerShell verbatim string.
func powerShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Confirm shows a warning box with the given lines and asks a yes/no
// question on out, reading the answer from in. An empty answer or a read
// error counts as no.
func Confirm(in io.Reader, out io.Writer, title string, lines []string, question string) bool {
	width := GetTerminalWidth()

	content := []string{WarningTitleStyle.Render(WarningMarker + "  " + title), ""}
	for _, line := range lines {
		content = append(content, lipgloss.NewStyle().Foreground(TextColor).Render(line))
	}

	fmt.Fprintln(out, WarningBoxStyle(width).Render(strings.Join(content, "\n")))
	fmt.Fprint(out, WarningTitleStyle.Render(question+" [y/N]: "))

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		fmt.Fprintln(out)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		fmt.Fprintln(out, MutedStyle.Render("  Cancelled."))
		return false
	}
}

package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Detail is one "key: value" line of a result box. A slice keeps the order
// stable, unlike a map.
type Detail struct {
	Key   string
	Value string
}

// Printer provides methods for printing UI components to a writer.
// Commands print through a Printer on stderr; stdout is reserved for the
// directive line.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stderr is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stderr
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// Width returns the current terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details ...Detail) {
	p.Println(RenderSuccessBox(title, details, p.width))
}

// PrintError prints an error result box with optional hints
func (p *Printer) PrintError(title string, err error, hints ...string) {
	p.Println(RenderErrorBox(title, err, hints, p.width))
}

// PrintInfo prints a neutral box
func (p *Printer) PrintInfo(title string, details ...Detail) {
	p.Println(RenderInfoBox(title, details, p.width))
}

// RenderSuccessBox renders a success result box
func RenderSuccessBox(title string, details []Detail, width int) string {
	lines := []string{SuccessTitleStyle.Render(SuccessMarker + "  " + title)}
	lines = append(lines, renderDetails(details)...)
	return SuccessBoxStyle(width).Render(strings.Join(lines, "\n"))
}

// RenderErrorBox renders an error result box
func RenderErrorBox(title string, err error, hints []string, width int) string {
	lines := []string{ErrorTitleStyle.Render(FailureMarker + "  " + title)}
	if err != nil {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(ErrorColor).Render("Error: "+err.Error()))
	}
	if len(hints) > 0 {
		lines = append(lines, "")
		for _, hint := range hints {
			lines = append(lines, MutedStyle.Render("• "+hint))
		}
	}
	return ErrorBoxStyle(width).Render(strings.Join(lines, "\n"))
}

// RenderInfoBox renders a neutral box
func RenderInfoBox(title string, details []Detail, width int) string {
	lines := []string{TitleStyle.Render(title)}
	lines = append(lines, renderDetails(details)...)
	return InfoBoxStyle(width).Render(strings.Join(lines, "\n"))
}

func renderDetails(details []Detail) []string {
	if len(details) == 0 {
		return nil
	}
	lines := []string{""}
	for _, d := range details {
		lines = append(lines, KeyStyle.Render(d.Key+":")+" "+ValueStyle.Render(d.Value))
	}
	return lines
}

package menu

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/proxy-cli/internal/urls"
	"github.com/muurk/proxy-cli/internal/version"
)

// AppName is shown in the header of every frame.
const AppName = "PROXY CLI"

// Layout constants
const (
	MinTerminalWidth  = 48
	MinTerminalHeight = 16
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF5555") // Red
	InfoColor      = lipgloss.Color("#5FAFFF") // Blue

	TextColor      = lipgloss.Color("#FFFFFF") // White
	SubtleColor    = lipgloss.Color("#626262") // Gray
	BorderColor    = lipgloss.Color("#7D56F4") // Purple (same as primary)
	HighlightColor = lipgloss.Color("#43BF6D") // Green (same as secondary)
)

var (
	// Menu item style (unselected)
	MenuItemStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(TextColor)

	// Menu item style (selected)
	SelectedMenuItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(HighlightColor).
				Bold(true)

	// Unavailable item, still selectable
	MutedMenuItemStyle = lipgloss.NewStyle().
				PaddingLeft(4).
				Foreground(SubtleColor)

	SelectedMutedMenuItemStyle = lipgloss.NewStyle().
					PaddingLeft(2).
					Foreground(SubtleColor).
					Bold(true)

	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true).
				PaddingLeft(2)

	FieldKeyStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			PaddingLeft(4).
			Width(14)

	FieldValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	EnabledStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	DisabledStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	StatusLineStyle = lipgloss.NewStyle().
			PaddingLeft(2)
)

// RenderMenuItem renders a menu item with selection indicator
func RenderMenuItem(text string, selected, muted bool) string {
	switch {
	case selected && muted:
		return SelectedMutedMenuItemStyle.Render("→ " + text)
	case selected:
		return SelectedMenuItemStyle.Render("→ " + text)
	case muted:
		return MutedMenuItemStyle.Render("  " + text)
	default:
		return MenuItemStyle.Render("  " + text)
	}
}

// RenderField renders a "key: value" line of the state panel.
func RenderField(k, v string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, FieldKeyStyle.Render(k), FieldValueStyle.Render(v))
}

// RenderStatus renders the status line for msg.
func RenderStatus(msg StatusMessage) string {
	var marker string
	var color lipgloss.Color
	switch msg.Kind {
	case StatusSuccess:
		marker, color = "✓", SecondaryColor
	case StatusError:
		marker, color = "✗", ErrorColor
	case StatusWarning:
		marker, color = "!", WarningColor
	default:
		marker, color = "i", InfoColor
	}
	return StatusLineStyle.Foreground(color).Render(marker + " " + msg.Text)
}

// BuildHeaderContent creates header content with app name and GitHub URL
func BuildHeaderContent() string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " " + version.Version)

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(urls.Repository)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// RenderApplicationContainer wraps content in the full-screen frame: header
// with name and version, content, footer with key help, all inside a border
// sized to the terminal.
func RenderApplicationContainer(content, footer string, width, height int) string {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height < MinTerminalHeight {
		height = MinTerminalHeight
	}

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(width-4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Foreground(SubtleColor).
		Width(width-4).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().
		Width(width - 4)

	inner := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(BuildHeaderContent()),
		contentStyle.Render(content),
		footerStyle.Render(footer),
	)

	// Height keeps the footer from floating mid-screen on tall terminals.
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(width - 2).
		Height(height - 2).
		AlignVertical(lipgloss.Top).
		Render(inner)
}

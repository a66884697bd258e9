package menu

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"

	"github.com/muurk/proxy-cli/internal/config"
	"github.com/muurk/proxy-cli/internal/proxyenv"
)

// View is everything a frame depends on.
type View struct {
	Config   config.ProxyConfig
	Env      proxyenv.Snapshot
	Items    []Item
	Selected int
	Status   *StatusMessage
	Width    int
	Height   int
}

// Renderer turns a View into a frame. It holds no state between frames.
type Renderer struct {
	help help.Model
	keys keyMap
}

// NewRenderer returns a renderer with the default key help.
func NewRenderer() *Renderer {
	return &Renderer{
		help: help.New(),
		keys: defaultKeyMap(),
	}
}

// Render returns the full frame for v.
func (r *Renderer) Render(v View) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(SectionTitleStyle.Render("Proxy"))
	b.WriteString("\n")
	b.WriteString(r.renderState(v))
	b.WriteString("\n\n")

	b.WriteString(SectionTitleStyle.Render("Select an action"))
	b.WriteString("\n")
	for i, item := range v.Items {
		muted := item == ItemEnableProxy && !v.Config.HasPort()
		label := item.Label()
		if muted {
			label += " (set a port first)"
		}
		b.WriteString(RenderMenuItem(label, i == v.Selected, muted))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.Status != nil {
		b.WriteString(RenderStatus(*v.Status))
	}
	b.WriteString("\n")

	return RenderApplicationContainer(b.String(), r.help.View(r.keys), v.Width, v.Height)
}

func (r *Renderer) renderState(v View) string {
	lines := make([]string, 0, 4)

	if v.Env.Enabled() {
		lines = append(lines, RenderField("Status:", EnabledStyle.Render("Enabled")))
	} else {
		lines = append(lines, RenderField("Status:", DisabledStyle.Render("Disabled")))
	}
	lines = append(lines,
		RenderField("HTTP:", valueOrDash(v.Env.HTTP, v.Env.HTTPSet)),
		RenderField("HTTPS:", valueOrDash(v.Env.HTTPS, v.Env.HTTPSSet)),
	)

	port := "not set"
	if v.Config.HasPort() {
		port = strconv.FormatUint(uint64(v.Config.PortValue()), 10)
	}
	lines = append(lines, RenderField("Saved port:", port))

	return strings.Join(lines, "\n")
}

func valueOrDash(value string, set bool) string {
	if !set {
		return "-"
	}
	if value == "" {
		return `""`
	}
	return value
}

package ui

import (
	"fmt"
	"strconv"
	"strings"
)

// StatusReport is the state printed by the status command.
type StatusReport struct {
	Enabled    bool    `json:"enabled" yaml:"enabled"`
	Port       *uint16 `json:"port" yaml:"port"`
	HTTPProxy  string  `json:"http_proxy" yaml:"http_proxy"`
	HTTPSProxy string  `json:"https_proxy" yaml:"https_proxy"`
	EnvActive  bool    `json:"env_active" yaml:"env_active"`
	ConfigPath string  `json:"config_path" yaml:"config_path"`
}

func (r StatusReport) portText() string {
	if r.Port == nil {
		return "not set"
	}
	return strconv.FormatUint(uint64(*r.Port), 10)
}

// FormatDetailed renders the report as a boxed listing.
func (r StatusReport) FormatDetailed(width int) string {
	state := DisabledStyle.Render("Disabled")
	if r.Enabled {
		state = EnabledStyle.Render("Enabled")
	}

	details := []Detail{
		{Key: "Status", Value: state},
		{Key: "Port", Value: r.portText()},
	}
	if r.Enabled {
		details = append(details,
			Detail{Key: "HTTP", Value: r.HTTPProxy},
			Detail{Key: "HTTPS", Value: r.HTTPSProxy},
		)
	}
	env := "not set"
	if r.EnvActive {
		env = "set"
	}
	details = append(details,
		Detail{Key: "Environment", Value: env},
		Detail{Key: "Config", Value: r.ConfigPath},
	)

	return RenderInfoBox("Proxy", details, width)
}

// FormatCompact renders the report on one line.
func (r StatusReport) FormatCompact() string {
	var b strings.Builder
	if r.Enabled {
		fmt.Fprintf(&b, "enabled %s", r.HTTPProxy)
	} else {
		b.WriteString("disabled")
	}
	fmt.Fprintf(&b, " port=%s", r.portText())
	return b.String()
}

package installer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func envFrom(goos, home string, vars map[string]string) Environment {
	return Environment{
		GOOS:   goos,
		Home:   home,
		Getenv: func(k string) string { return vars[k] },
	}
}

func TestParseShell(t *testing.T) {
	tests := []struct {
		in      string
		want    Shell
		wantErr bool
	}{
		{"/bin/bash", ShellBash, false},
		{"/usr/local/bin/zsh", ShellZsh, false},
		{"fish", ShellFish, false},
		{"pwsh", ShellPowerShell, false},
		{`C:\Windows\System32\WindowsPowerShell\v1.0\powershell.exe`, ShellPowerShell, false},
		{"/bin/tcsh", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseShell(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseShell() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedShell) {
					t.Errorf("error = %v, want ErrUnsupportedShell", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseShell() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectShell(t *testing.T) {
	if s, err := envFrom("linux", "/home/u", map[string]string{"SHELL": "/bin/zsh"}).DetectShell(); err != nil || s != ShellZsh {
		t.Errorf("DetectShell() = %v, %v; want zsh", s, err)
	}
	if s, err := envFrom("windows", `C:\Users\u`, nil).DetectShell(); err != nil || s != ShellPowerShell {
		t.Errorf("DetectShell() on windows = %v, %v; want powershell", s, err)
	}
	if _, err := envFrom("linux", "/home/u", nil).DetectShell(); !errors.Is(err, ErrShellNotDetected) {
		t.Errorf("DetectShell() error = %v, want ErrShellNotDetected", err)
	}
}

func TestProfilePath(t *testing.T) {
	home := t.TempDir()
	tests := []struct {
		name  string
		vars  map[string]string
		shell Shell
		want  string
	}{
		{"bash", nil, ShellBash, filepath.Join(home, ".bashrc")},
		{"zsh", nil, ShellZsh, filepath.Join(home, ".zshrc")},
		{"zsh zdotdir", map[string]string{"ZDOTDIR": "/etc/zsh"}, ShellZsh, filepath.Join("/etc/zsh", ".zshrc")},
		{"fish", nil, ShellFish, filepath.Join(home, ".config", "fish", "config.fish")},
		{"fish xdg", map[string]string{"XDG_CONFIG_HOME": "/x"}, ShellFish, filepath.Join("/x", "fish", "config.fish")},
		{"powershell profile var", map[string]string{"PROFILE": "/p/profile.ps1"}, ShellPowerShell, "/p/profile.ps1"},
		{"pwsh on linux", nil, ShellPowerShell, filepath.Join(home, ".config", "powershell", "Microsoft.PowerShell_profile.ps1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := envFrom("linux", home, tt.vars).ProfilePath(tt.shell)
			if err != nil {
				t.Fatalf("ProfilePath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ProfilePath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProfilePath_PowerShellDocuments(t *testing.T) {
	home := t.TempDir()
	ps7 := filepath.Join(home, "Documents", "PowerShell")
	if err := os.MkdirAll(ps7, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := envFrom("windows", home, nil).ProfilePath(ShellPowerShell)
	if err != nil {
		t.Fatalf("ProfilePath() error = %v", err)
	}
	if want := filepath.Join(ps7, "Microsoft.PowerShell_profile.ps1"); got != want {
		t.Errorf("ProfilePath() = %q, want %q", got, want)
	}
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		shell Shell
		wants []string
	}{
		{ShellBash, []string{Marker, "proxy() {", "'/opt/it'\\''s/proxy-cli' \"$@\"", "#SET_PROXY:", "unset http_proxy https_proxy HTTP_PROXY HTTPS_PROXY"}},
		{ShellZsh, []string{Marker + " (zsh)", "done < <("}},
		{ShellFish, []string{"function proxy", "set -gx HTTPS_PROXY $url", "'#CLEAR_PROXY'"}},
		{ShellPowerShell, []string{"function proxy {", "$binaryPath = '/opt/it''s/proxy-cli'", "Remove-Item Env:HTTP_PROXY"}},
	}

	for _, tt := range tests {
		t.Run(tt.shell.String(), func(t *testing.T) {
			got, err := Snippet(tt.shell, "/opt/it's/proxy-cli")
			if err != nil {
				t.Fatalf("Snippet() error = %v", err)
			}
			for _, want := range tt.wants {
				if !strings.Contains(got, want) {
					t.Errorf("snippet missing %q:\n%s", want, got)
				}
			}
		})
	}

	if _, err := Snippet(Shell(42), "x"); !errors.Is(err, ErrUnsupportedShell) {
		t.Errorf("Snippet(unknown) error = %v", err)
	}
}

func TestInstall_Idempotent(t *testing.T) {
	profile := filepath.Join(t.TempDir(), "nested", ".bashrc")

	installed, err := IsInstalled(profile)
	if err != nil || installed {
		t.Fatalf("IsInstalled() on missing file = %v, %v", installed, err)
	}

	wrote, err := Install(profile, ShellBash, "/usr/local/bin/proxy-cli")
	if err != nil || !wrote {
		t.Fatalf("first Install() = %v, %v", wrote, err)
	}

	wrote, err = Install(profile, ShellBash, "/usr/local/bin/proxy-cli")
	if err != nil || wrote {
		t.Fatalf("second Install() = %v, %v; want no write", wrote, err)
	}

	data, err := os.ReadFile(profile)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), Marker); n != 1 {
		t.Errorf("marker appears %d times, want 1", n)
	}
}

func TestInstall_KeepsExistingProfile(t *testing.T) {
	profile := filepath.Join(t.TempDir(), ".zshrc")
	if err := os.WriteFile(profile, []byte("export EDITOR=vim\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Install(profile, ShellZsh, "/bin/proxy-cli"); err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	data, _ := os.ReadFile(profile)
	if !strings.HasPrefix(string(data), "export EDITOR=vim\n") {
		t.Errorf("existing content changed:\n%s", data)
	}
	if ok, _ := IsInstalled(profile); !ok {
		t.Error("IsInstalled() = false after Install")
	}
}

package proxyenv

import (
	"errors"
	"os"
	"testing"
)

// clearProxyEnv unsets the proxy variables for the duration of the test.
func clearProxyEnv(t *testing.T) {
	t.Helper()
	for _, name := range Names {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestURL(t *testing.T) {
	tests := []struct {
		port uint16
		want string
	}{
		{1, "http://127.0.0.1:1"},
		{8080, "http://127.0.0.1:8080"},
		{65535, "http://127.0.0.1:65535"},
	}
	for _, tt := range tests {
		if got := URL(tt.port); got != tt.want {
			t.Errorf("URL(%d) = %q, want %q", tt.port, got, tt.want)
		}
	}
}

func TestOS_EnableDisable(t *testing.T) {
	clearProxyEnv(t)
	env := NewOS()

	if err := env.Enable(8080); err != nil {
		t.Fatalf("Enable() error = %v", err)
	}
	for _, name := range Names {
		if got := os.Getenv(name); got != "http://127.0.0.1:8080" {
			t.Errorf("%s = %q after Enable", name, got)
		}
	}

	snap := env.Snapshot()
	if !snap.Enabled() || snap.HTTP != "http://127.0.0.1:8080" || snap.HTTPS != "http://127.0.0.1:8080" {
		t.Errorf("Snapshot() after Enable = %+v", snap)
	}

	if err := env.Disable(); err != nil {
		t.Fatalf("Disable() error = %v", err)
	}
	for _, name := range Names {
		if _, ok := os.LookupEnv(name); ok {
			t.Errorf("%s still set after Disable", name)
		}
	}
	if snap := env.Snapshot(); snap.Enabled() || snap.HTTPSet || snap.HTTPSSet {
		t.Errorf("Snapshot() after Disable = %+v", snap)
	}
}

func TestOS_RoundTripMatchesSingleEnable(t *testing.T) {
	clearProxyEnv(t)
	env := NewOS()

	if err := env.Enable(3128); err != nil {
		t.Fatal(err)
	}
	single := env.Snapshot()

	for _, step := range []func() error{
		func() error { return env.Disable() },
		func() error { return env.Enable(3128) },
	} {
		if err := step(); err != nil {
			t.Fatal(err)
		}
	}

	if got := env.Snapshot(); got != single {
		t.Errorf("enable/disable/enable = %+v, single enable = %+v", got, single)
	}
}

func TestSnapshot_Precedence(t *testing.T) {
	tests := []struct {
		name      string
		vars      map[string]string
		wantHTTP  string
		wantHTTPS string
		enabled   bool
	}{
		{
			name:    "nothing set",
			vars:    map[string]string{},
			enabled: false,
		},
		{
			name:      "lowercase wins",
			vars:      map[string]string{HTTPLower: "http://a:1", HTTPUpper: "http://b:2", HTTPSLower: "http://c:3", HTTPSUpper: "http://d:4"},
			wantHTTP:  "http://a:1",
			wantHTTPS: "http://c:3",
			enabled:   true,
		},
		{
			name:      "uppercase fallback per scheme",
			vars:      map[string]string{HTTPUpper: "http://b:2", HTTPSLower: "http://c:3"},
			wantHTTP:  "http://b:2",
			wantHTTPS: "http://c:3",
			enabled:   true,
		},
		{
			name:      "only https",
			vars:      map[string]string{HTTPSUpper: "http://d:4"},
			wantHTTPS: "http://d:4",
			enabled:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := NewMemory()
			for k, v := range tt.vars {
				env.Set(k, v)
			}
			snap := env.Snapshot()
			if snap.HTTP != tt.wantHTTP || snap.HTTPS != tt.wantHTTPS {
				t.Errorf("Snapshot() = %+v, want http=%q https=%q", snap, tt.wantHTTP, tt.wantHTTPS)
			}
			if snap.Enabled() != tt.enabled {
				t.Errorf("Enabled() = %v, want %v", snap.Enabled(), tt.enabled)
			}
		})
	}
}

func TestMemory_Failures(t *testing.T) {
	env := NewMemory()
	env.EnableErr = errors.New("denied")

	err := env.Enable(8080)
	var envErr *Error
	if !errors.As(err, &envErr) {
		t.Fatalf("Enable() error = %v, want *Error", err)
	}
	if env.Snapshot().Enabled() {
		t.Error("failed Enable must not change the environment")
	}
	if env.EnableCalls != 1 {
		t.Errorf("EnableCalls = %d, want 1", env.EnableCalls)
	}
}

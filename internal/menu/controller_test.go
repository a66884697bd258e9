package menu

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/muurk/proxy-cli/internal/config"
	"github.com/muurk/proxy-cli/internal/proxyenv"
	"github.com/muurk/proxy-cli/internal/session"
)

const ms = time.Millisecond

type harness struct {
	term   *fakeTerm
	prompt *fakePrompter
	env    *proxyenv.Memory
	store  *memStore
	sess   *session.Session
	out    *bytes.Buffer
	ctrl   *Controller
}

func newHarness(cfg config.ProxyConfig, keys ...timedKey) *harness {
	h := &harness{
		term:  newFakeTerm(keys...),
		env:   proxyenv.NewMemory(),
		store: &memStore{cfg: cfg},
		out:   &bytes.Buffer{},
	}
	h.prompt = &fakePrompter{term: h.term}
	h.sess = session.New(h.store, h.env)
	h.ctrl = NewController(h.term, h.prompt, h.sess, h.out, Options{})
	h.ctrl.input.now = h.term.now
	h.ctrl.input.sleep = h.term.sleep
	h.ctrl.sleep = h.term.sleep
	return h
}

func (h *harness) framesContain(s string) bool {
	for _, f := range h.term.frames {
		if strings.Contains(f, s) {
			return true
		}
	}
	return false
}

func TestRun_ThreeRapidDownsMoveOnce(t *testing.T) {
	h := newHarness(config.Default(),
		down(1000*ms), down(1030*ms), down(1060*ms),
		char(2000*ms, 'q'),
	)

	if err := h.ctrl.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := h.ctrl.Selected(); got != 1 {
		t.Errorf("Selected() = %d, want 1", got)
	}
}

func TestRun_SelectionClamps(t *testing.T) {
	h := newHarness(config.Default(),
		up(1000*ms),
		down(2000*ms), down(3000*ms), down(4000*ms), down(5000*ms), down(6000*ms),
		char(7000*ms, 'Q'),
	)

	if err := h.ctrl.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := h.ctrl.Selected(); got != len(DefaultItems())-1 {
		t.Errorf("Selected() = %d, want %d", got, len(DefaultItems())-1)
	}
	if !h.framesContain("→ Enable proxy") {
		t.Error("up at the top should keep the first item selected")
	}
}

func TestRun_VimKeysMove(t *testing.T) {
	h := newHarness(config.Default(),
		char(1000*ms, 'j'), char(2000*ms, 'j'), char(3000*ms, 'k'),
		char(4000*ms, 'q'),
	)

	if err := h.ctrl.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := h.ctrl.Selected(); got != 1 {
		t.Errorf("Selected() = %d, want 1", got)
	}
}

func TestRun_DownThenEnterActivatesCurrentItem(t *testing.T) {
	h := newHarness(config.Default(),
		down(1000*ms), enter(1020*ms),
		char(3000*ms, 'q'),
	)

	if err := h.ctrl.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := h.ctrl.Selected(); got != 0 {
		t.Errorf("Selected() = %d, want 0 (enter preempts the arrow)", got)
	}
	if !h.framesContain("Set a port first") {
		t.Error("expected the no-port warning from activating Enable")
	}
}

func TestRun_EnableWithoutPortLeavesEverythingAlone(t *testing.T) {
	h := newHarness(config.Default(), enter(1000*ms), char(2000*ms, 'q'))

	if err := h.ctrl.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if h.env.EnableCalls != 0 || h.env.DisableCalls != 0 {
		t.Errorf("environment mutated: enable=%d disable=%d", h.env.EnableCalls, h.env.DisableCalls)
	}
	if h.store.cfg.Enabled {
		t.Error("config must stay disabled")
	}
	if !h.framesContain("Set a port first") {
		t.Error("expected warning status")
	}
}

func TestRun_StatusIsClearedAfterFlash(t *testing.T) {
	h := newHarness(config.Default(), enter(1000*ms), char(5000*ms, 'q'))

	if err := h.ctrl.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Contains(h.term.lastFrame(), "Set a port first") {
		t.Error("status should be cleared after it was shown")
	}
}

func TestRun_SetPortThenEnable(t *testing.T) {
	h := newHarness(config.Default(),
		down(1000*ms), down(2000*ms), enter(3000*ms),
		up(4000*ms), up(5000*ms), enter(6000*ms),
		char(7000*ms, 'q'),
	)
	h.prompt.text, h.prompt.ok = "8080", true

	if err := h.ctrl.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if h.prompt.calls != 1 {
		t.Fatalf("prompt calls = %d, want 1", h.prompt.calls)
	}
	if h.prompt.activeDuring {
		t.Error("prompt ran while full-screen mode was held")
	}
	if cfg := h.store.cfg; !cfg.Enabled || cfg.PortValue() != 8080 {
		t.Errorf("saved config = %+v, want enabled on 8080", cfg)
	}
	if v, _ := h.env.Get(proxyenv.HTTPSUpper); v != "http://127.0.0.1:8080" {
		t.Errorf("%s = %q", proxyenv.HTTPSUpper, v)
	}
	if !h.framesContain("Port set to 8080") {
		t.Error("expected port set status")
	}
	if !strings.Contains(h.out.String(), "http://127.0.0.1:8080") {
		t.Errorf("closing notice = %q", h.out.String())
	}

	want := []string{"enter", "leave", "flush", "enter", "leave"}
	if !reflect.DeepEqual(h.term.events, want) {
		t.Errorf("screen events = %v, want %v", h.term.events, want)
	}
}

func TestRun_SetPortFlushFailureIsNotFatal(t *testing.T) {
	h := newHarness(config.Default(),
		down(1000*ms), down(2000*ms), enter(3000*ms),
		char(4000*ms, 'q'),
	)
	h.term.flushErr = errors.New("inappropriate ioctl for device")
	h.prompt.text, h.prompt.ok = "3128", true

	if err := h.ctrl.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if h.prompt.calls != 1 {
		t.Fatalf("prompt calls = %d, want 1", h.prompt.calls)
	}
	if h.store.cfg.PortValue() != 3128 {
		t.Errorf("saved port = %d, want 3128", h.store.cfg.PortValue())
	}
}

func TestRun_SetPortDrainFailureBecomesStatus(t *testing.T) {
	h := newHarness(config.Default(),
		down(1000*ms), down(2000*ms), enter(3000*ms),
		char(4000*ms, 'q'),
	)
	h.term.drainErr = errors.New("input/output error")
	h.term.drainErrAt = 2500 * ms

	if err := h.ctrl.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if h.prompt.calls != 0 {
		t.Errorf("prompt calls = %d, want 0", h.prompt.calls)
	}
	if !h.framesContain("Failed to read input: input/output error") {
		t.Error("expected input failure status")
	}
	if want := []string{"enter", "leave"}; !reflect.DeepEqual(h.term.events, want) {
		t.Errorf("screen events = %v, want %v", h.term.events, want)
	}
}

func TestRun_SetPortEmptyWhileEnabledClears(t *testing.T) {
	cfg := config.Default().WithPort(7890)
	h := newHarness(cfg,
		enter(1000*ms),
		down(2000*ms), down(3000*ms), enter(4000*ms),
		char(5000*ms, 'q'),
	)
	h.prompt.text, h.prompt.ok = "", true

	if err := h.ctrl.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if h.prompt.initial != "7890" {
		t.Errorf("prompt initial = %q, want 7890", h.prompt.initial)
	}
	if h.store.cfg.HasPort() || h.store.cfg.Enabled {
		t.Errorf("saved config = %+v, want cleared and disabled", h.store.cfg)
	}
	if h.env.Snapshot().Enabled() {
		t.Error("environment should be cleared")
	}
	if !h.framesContain("Port cleared") {
		t.Error("expected port cleared status")
	}
}

func TestRun_SetPortOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		ok       bool
		err      error
		wantText string
		wantPort uint16
	}{
		{"cancelled", "", false, nil, "Port unchanged", 3128},
		{"same port", "3128", true, nil, "Port unchanged", 3128},
		{"invalid", "abc", true, nil, `Invalid port "abc"`, 3128},
		{"out of range", "70000", true, nil, `Invalid port "70000"`, 3128},
		{"prompt failure", "", false, errors.New("tty gone"), "Failed to read port", 3128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(config.Default().WithPort(3128),
				down(1000*ms), down(2000*ms), enter(3000*ms),
				char(4000*ms, 'q'),
			)
			h.prompt.text, h.prompt.ok, h.prompt.err = tt.text, tt.ok, tt.err

			if err := h.ctrl.Run(); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if !h.framesContain(tt.wantText) {
				t.Errorf("no frame contains %q", tt.wantText)
			}
			if got := h.store.cfg.PortValue(); got != tt.wantPort {
				t.Errorf("port = %d, want %d", got, tt.wantPort)
			}
		})
	}
}

func TestRun_DisableReportsSaveFailure(t *testing.T) {
	h := newHarness(config.Default().WithPort(8080),
		enter(1000*ms),
		down(2000*ms), enter(3000*ms),
		char(4000*ms, 'q'),
	)

	// Enable succeeds, then saving the disable fails.
	h.ctrl.sleep = func(d time.Duration) {
		h.term.sleep(d)
		h.store.saveErr = errors.New("read-only file system")
	}

	if err := h.ctrl.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !h.framesContain("Failed to disable proxy") {
		t.Error("expected error status")
	}
	if !h.env.Snapshot().Enabled() {
		t.Error("environment should be rolled back to enabled")
	}
}

func TestRun_OtherKeysAreIgnored(t *testing.T) {
	h := newHarness(config.Default(), char(1000*ms, 'x'), char(2000*ms, 'q'))

	if err := h.ctrl.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if h.ctrl.Selected() != 0 || h.env.EnableCalls != 0 {
		t.Error("unbound key should do nothing")
	}
}

func TestRun_ExitItem(t *testing.T) {
	h := newHarness(config.Default(),
		down(1000*ms), down(2000*ms), down(3000*ms), enter(4000*ms),
	)

	if err := h.ctrl.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(h.out.String(), "Proxy disabled") {
		t.Errorf("closing notice = %q", h.out.String())
	}
}

func TestRun_ReleasesScreenOnError(t *testing.T) {
	h := newHarness(config.Default(), down(1000*ms))

	err := h.ctrl.Run()
	if !errors.Is(err, errScriptDone) {
		t.Fatalf("Run() error = %v, want errScriptDone", err)
	}
	if want := []string{"enter", "leave"}; !reflect.DeepEqual(h.term.events, want) {
		t.Errorf("screen events = %v, want %v", h.term.events, want)
	}
	if h.out.Len() != 0 {
		t.Error("no closing notice expected on error")
	}
}

func TestRun_ReleasesScreenOnPanic(t *testing.T) {
	h := newHarness(config.Default(),
		down(1000*ms), down(2000*ms), enter(3000*ms),
	)
	h.prompt.panicMsg = "boom"

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic to propagate")
			}
		}()
		_ = h.ctrl.Run()
	}()

	if h.term.active {
		t.Error("terminal left in full-screen mode")
	}
	if want := []string{"enter", "leave", "flush"}; !reflect.DeepEqual(h.term.events, want) {
		t.Errorf("screen events = %v, want %v", h.term.events, want)
	}
}

func TestRun_EnterFailureIsFatal(t *testing.T) {
	h := newHarness(config.Default())
	h.term.enterErr = errors.New("not a tty")

	if err := h.ctrl.Run(); err == nil {
		t.Fatal("Run() should fail when the screen cannot be entered")
	}
	if len(h.term.events) != 0 {
		t.Errorf("screen events = %v, want none", h.term.events)
	}
}

func TestRun_LeaveFailureIsReported(t *testing.T) {
	h := newHarness(config.Default(), char(1000*ms, 'q'))
	h.term.leaveErr = errors.New("restore failed")

	if err := h.ctrl.Run(); err == nil {
		t.Fatal("Run() should report a failed restore")
	}
}

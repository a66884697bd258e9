package installer

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/muurk/proxy-cli/internal/logging"
)

var (
	// ErrUnsupportedShell is returned for shells without a wrapper template.
	ErrUnsupportedShell = errors.New("unsupported shell")
	// ErrShellNotDetected is returned when no shell can be inferred.
	ErrShellNotDetected = errors.New("cannot detect shell, use --shell")
)

// IsInstalled reports whether the profile at path already contains the
// wrapper marker. A missing profile is not installed.
func IsInstalled(path string) (bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read profile: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.HasPrefix(strings.TrimSpace(scanner.Text()), Marker) {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("failed to read profile: %w", err)
	}
	return false, nil
}

// Install appends the wrapper for shell s to the profile at path unless it
// is already there. It reports whether anything was written.
func Install(path string, s Shell, exe string) (bool, error) {
	installed, err := IsInstalled(path)
	if err != nil {
		return false, err
	}
	if installed {
		logging.Info("Wrapper already installed", zap.String("profile", path))
		return false, nil
	}

	snippet, err := Snippet(s, exe)
	if err != nil {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create profile directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return false, fmt.Errorf("failed to open profile: %w", err)
	}
	if _, err := f.WriteString(snippet); err != nil {
		f.Close()
		return false, fmt.Errorf("failed to write profile: %w", err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("failed to write profile: %w", err)
	}

	logging.Info("Wrapper installed",
		zap.String("profile", path),
		zap.Stringer("shell", s),
		zap.String("exe", exe),
	)
	return true, nil
}

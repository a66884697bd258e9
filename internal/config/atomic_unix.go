//go:build !windows

package config

import (
	"os"

	"github.com/google/renameio"
)

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(path, data, perm)
}

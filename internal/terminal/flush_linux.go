//go:build linux

package terminal

import "golang.org/x/sys/unix"

func flushInput(fd int) error {
	return unix.IoctlSetInt(fd, unix.TCFLSH, unix.TCIFLUSH)
}

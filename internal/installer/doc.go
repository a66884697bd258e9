// Package installer adds the proxy wrapper function to a shell profile.
//
// proxy-cli runs as a child process and cannot change the environment of
// the shell that started it. The wrapper runs the binary, reads the
// directive line it prints on stdout and exports or clears the proxy
// variables in the calling shell. Templates exist for bash and zsh (shared
// POSIX form), fish and PowerShell.
//
// Installation is idempotent: a profile containing Marker is left alone.
package installer

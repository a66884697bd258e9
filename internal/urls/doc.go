// Package urls provides centralized constants for the documentation URLs
// printed by proxy-cli, so they can be updated in one place.
//
// Usage:
//
//	import "github.com/muurk/proxy-cli/internal/urls"
//
//	fmt.Printf("See %s\n", urls.ShellWrapper)
package urls

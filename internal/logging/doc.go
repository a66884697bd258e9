// Package logging provides structured logging for proxy-cli.
//
// This package wraps a global zap logger with package-level helpers. The
// logger is silent by default so that the interactive menu and the stdout
// directive line are never interleaved with log output.
//
// # Configuration
//
// Logging is enabled by setting PROXYCLI_LOG_LEVEL (or the --log-level
// flag) to "debug", "info", "warn" or "error":
//
//	if err := logging.Initialize(logLevel); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// Log lines go to stderr unless PROXYCLI_LOG_FILE names a file. Use a file
// when debugging the interactive menu; stderr is repainted on every frame.
//
// # Domain Helpers
//
//	logging.LogAction("enable", err, zap.Uint16("port", port))
//	logging.LogEnvChange("set", proxyenv.Names, url)
//	logging.LogKey("down", true)
package logging

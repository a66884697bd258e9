// Package config loads and saves the persisted proxy preference.
//
// The preference is a small JSON document:
//
//	{
//	  "enabled": false,
//	  "port": 7890
//	}
//
// # File Location
//
// The file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/proxy-cli/config.json or $HOME/.config/proxy-cli/config.json
//   - macOS: $HOME/.config/proxy-cli/config.json
//   - Windows: %LOCALAPPDATA%\proxy-cli\config.json
//
// PROXYCLI_CONFIG overrides the path.
//
// # Failure Policy
//
// Load never fails. A missing, unreadable or unparseable file is replaced
// with the defaults so that a damaged file cannot block startup; losing a
// saved port is recoverable. Save errors are returned to the caller, which
// must abort the action that triggered the save.
//
// Comments and trailing commas are accepted on load so the file can be
// edited by hand.
//
// # Usage Example
//
//	store, err := config.DefaultStore()
//	if err != nil {
//	    return err
//	}
//	cfg := store.Load()
//	port, err := config.ParsePort("8080")
//	if err != nil {
//	    return err
//	}
//	if err := store.Save(cfg.WithPort(port)); err != nil {
//	    return err
//	}
package config

// Package config provides configuration management for the fpnm CLI.
//
// # Configuration File
//
// The file is config.yaml, searched in the working directory and then in
// <xdg config home>/fpnm (FPNM_CONFIG_DIR overrides the latter):
//
//	version: 1
//	app_id: fp-node-manager   # registry key and desktop file name
//	locale: zh-CN             # context-menu label language
//	default_terminal: kitty   # empty means first available
//	editor: code
//	probe_timeout: 5s
//
// Every key can be overridden from the environment with the FPNM_ prefix,
// e.g. FPNM_LOCALE=zh.
//
// # Loading Configuration
//
// Call [Init] once, then [Load]. An empty path searches the default
// locations and falls back to defaults; an explicit path must exist:
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//
// Load validates the result and returns an error marked
// errors.ErrInvalidConfig when any field is rejected. [Validate] returns the
// individual problems instead.
//
// # Writing
//
// [Set] updates one key in a config file atomically and refuses to write a
// file that would not validate.
package config

// Package paths resolves the filesystem and registry locations fpnm reads
// and mutates.
//
// # XDG Base Directory Compliance
//
// The fpnm configuration directory follows github.com/adrg/xdg:
//
//	paths.ConfigDir() // ~/.config/fpnm on Linux
//
// # Shell Integration Locations
//
//	| OS      | Artifact                                                     |
//	|---------|--------------------------------------------------------------|
//	| Linux   | ~/.local/share/applications/<app-id>-context.desktop        |
//	| Windows | HKCU\Software\Classes\Directory\shell\<app-id>               |
//	|         | HKCU\Software\Classes\Directory\Background\shell\<app-id>    |
//
// The desktop-entry location is derived from $HOME on every call rather than
// from the cached XDG data home, so the registrar always targets the home
// directory of the running process.
package paths

// Package platform is the leaf resolver shared by the capability
// components: it reports which OS family and CPU architecture the process
// runs on, and where the running binary lives.
//
// # Platform Info
//
//	info := platform.Current()
//	fmt.Println(info.OS, info.Arch) // linux amd64
//
// [Info.Family] collapses GOOS into the four [Family] values that select
// terminal tables and shell-integration strategies.
//
// # Self Path
//
// [SelfExecutable] is used when registering a launch command that points
// back at this binary. Its errors are marked with errors.ErrIOFailure or
// errors.ErrInvalidPath and are never retried.
//
// # Thread Safety
//
// The package holds no state; all functions are safe for concurrent use.
package platform

// Package terminal discovers which terminal emulators and shells are
// installed.
//
// Candidates come from a static table per OS family ([Definitions]); only
// availability is computed, by a [Probe] built from three strategies:
//
//   - [Paths]: well-known install locations, with ${VAR} expansion
//   - [Command]: the OS command locator (where or which) run as a subprocess
//   - [AnyOf]: first match wins, path probes before the subprocess
//
// [Prober.Detect] probes candidates concurrently and returns them in table
// order. Nothing is cached, so a terminal installed between two calls shows
// up on the second one.
package terminal

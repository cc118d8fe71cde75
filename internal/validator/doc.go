// Package validator collects and reports lint issues for the fpnm config.
//
// Unlike config.Check, which rejects a file outright, a [Result] keeps every
// issue with its [Severity], so a single run can show both blocking errors
// and advice:
//
//	result := &validator.Result{}
//	result.AddWarning("probe_timeout", "probes longer than 30s delay doctor", "1m").
//		With("max", "30s")
//
//	validator.NewReporter(os.Stdout, validator.FormatText).Report(result)
package validator

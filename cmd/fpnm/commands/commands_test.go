package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/fp-node-manager/fpnm/internal/backup"
	"github.com/fp-node-manager/fpnm/internal/platform"
	"github.com/fp-node-manager/fpnm/internal/shellint"
	"github.com/fp-node-manager/fpnm/internal/terminal"
)

const fakeExe = "/opt/fpnm/fpnm"

type fakeResolver struct {
	goos string
}

func (f fakeResolver) Info() platform.Info         { return platform.Info{OS: f.goos, Arch: "amd64"} }
func (f fakeResolver) Executable() (string, error) { return fakeExe, nil }

type locatorFunc func(ctx context.Context, name string) bool

func (f locatorFunc) Locate(ctx context.Context, name string) bool { return f(ctx, name) }

// fakeOS points every command at a fake OS: goos decides the platform family,
// installed lists the commands the locator finds, and home is a temp dir.
type fakeOS struct {
	home      string
	configDir string
	refreshes int
}

func useFakeOS(t *testing.T, goos string, installed ...string) *fakeOS {
	t.Helper()

	f := &fakeOS{home: t.TempDir(), configDir: t.TempDir()}
	t.Setenv("HOME", f.home)
	t.Setenv("FPNM_CONFIG_DIR", f.configDir)
	t.Setenv("FPNM_DEBUG", "")
	t.Setenv("NO_COLOR", "1")

	found := make(map[string]bool, len(installed))
	for _, name := range installed {
		found[name] = true
	}

	origResolver, origProber, origRegistrar := newResolver, proberOptions, registrarOptions
	t.Cleanup(func() {
		newResolver, proberOptions, registrarOptions = origResolver, origProber, origRegistrar
	})

	newResolver = func() platform.Resolver { return fakeResolver{goos: goos} }
	proberOptions = []terminal.Option{
		terminal.WithLocator(locatorFunc(func(_ context.Context, name string) bool { return found[name] })),
		terminal.WithExists(func(string) bool { return false }),
		terminal.WithGetenv(func(string) string { return "" }),
	}
	registrarOptions = []shellint.Option{
		shellint.WithHome(func() (string, error) { return f.home, nil }),
		shellint.WithCommandRunner(func(context.Context, string, ...string) error {
			f.refreshes++
			return nil
		}),
	}
	return f
}

// resetFlags restores every package-level flag variable. Cobra keeps flag
// values between Execute calls on the same command tree.
func resetFlags() {
	verbosity, quiet, logFormat, logFile, configFile = 0, false, "text", "", ""
	terminalsAvailable, terminalsOutput = false, outputText
	platformOutput, contextMenuOutput, projectOutput, configOutput = outputText, outputText, outputText, outputText
	contextMenuLocale, projectList, projectEdit = "", false, false
	doctorJSON, doctorFix, configValidateJSON = false, false, false
	backupOutput = outputText
	backup.ResetBackupState()
	cfg, configLoadErr = nil, nil
}

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(t.Context())
	return out.String(), err
}

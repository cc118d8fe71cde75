package terminal

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fp-node-manager/fpnm/internal/logging"
	"github.com/fp-node-manager/fpnm/internal/platform"
)

type fakeResolver struct {
	info platform.Info
}

func (f fakeResolver) Info() platform.Info         { return f.info }
func (f fakeResolver) Executable() (string, error) { return "/opt/fpnm/fpnm", nil }

func resolverFor(goos string) fakeResolver {
	return fakeResolver{info: platform.Info{OS: goos, Arch: "amd64"}}
}

// locatorFunc adapts a function to Locator.
type locatorFunc func(ctx context.Context, name string) bool

func (f locatorFunc) Locate(ctx context.Context, name string) bool { return f(ctx, name) }

func existsIn(paths ...string) func(string) bool {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[p] = true
	}
	return func(p string) bool { return set[p] }
}

func envOf(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func ids(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func TestDetect_OrderAndUniquenessPerFamily(t *testing.T) {
	tests := []struct {
		goos string
		want []string
	}{
		{"windows", []string{"cmd", "powershell", "pwsh", "git-bash", "windows-terminal", "cmder"}},
		{"darwin", []string{"terminal", "iterm2", "zsh", "bash"}},
		{"linux", []string{"bash", "zsh", "gnome-terminal", "konsole", "xfce4-terminal", "alacritty", "kitty"}},
		{"freebsd", []string{"bash"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			p := NewProber(resolverFor(tt.goos),
				WithLocator(locatorFunc(func(context.Context, string) bool { return false })),
				WithExists(existsIn()),
				WithGetenv(envOf(nil)),
				WithLogger(logging.ForTest(t)),
			)

			got := p.Detect(t.Context())
			require.NotEmpty(t, got)
			assert.Equal(t, tt.want, ids(got))

			seen := make(map[string]bool)
			for _, c := range got {
				assert.False(t, seen[c.ID], "duplicate id %q", c.ID)
				seen[c.ID] = true
				assert.NotEmpty(t, c.Name)
			}
		})
	}
}

func TestDetect_OrderStableUnderConcurrency(t *testing.T) {
	// slow early probes must not reorder results
	delays := map[string]time.Duration{"bash": 30 * time.Millisecond, "zsh": 20 * time.Millisecond}
	p := NewProber(resolverFor("linux"),
		WithLocator(locatorFunc(func(_ context.Context, name string) bool {
			time.Sleep(delays[name])
			return true
		})),
	)

	got := p.Detect(t.Context())
	want := Definitions(platform.FamilyLinux)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.True(t, got[i].Available)
	}
}

func TestDetect_LinuxUsesCommandLocator(t *testing.T) {
	loc := NewMockLocator(t)
	loc.EXPECT().Locate(mock.Anything, "bash").Return(true)
	loc.EXPECT().Locate(mock.Anything, "zsh").Return(false)
	loc.EXPECT().Locate(mock.Anything, "gnome-terminal").Return(false)
	loc.EXPECT().Locate(mock.Anything, "konsole").Return(false)
	loc.EXPECT().Locate(mock.Anything, "xfce4-terminal").Return(false)
	loc.EXPECT().Locate(mock.Anything, "alacritty").Return(true)
	loc.EXPECT().Locate(mock.Anything, "kitty").Return(false)

	p := NewProber(resolverFor("linux"), WithLocator(loc))
	got := p.Detect(t.Context())

	avail := Available(got)
	assert.Equal(t, []string{"bash", "alacritty"}, ids(avail))
}

func TestDetect_WindowsPathProbesShortCircuit(t *testing.T) {
	env := map[string]string{
		"ComSpec":      `C:\Windows\System32\cmd.exe`,
		"LOCALAPPDATA": `C:\Users\dev\AppData\Local`,
		"ProgramFiles": `C:\Program Files`,
	}
	exists := existsIn(
		`C:\Windows\System32\cmd.exe`,
		`C:\Users\dev\AppData\Local\Microsoft\WindowsApps\wt.exe`,
		`C:\Program Files\Git\bin\bash.exe`,
	)

	loc := NewMockLocator(t)
	// cmd, git-bash and windows-terminal are settled by path probes
	loc.EXPECT().Locate(mock.Anything, "powershell").Return(true)
	loc.EXPECT().Locate(mock.Anything, "pwsh").Return(false)

	p := NewProber(resolverFor("windows"),
		WithLocator(loc), WithGetenv(envOf(env)), WithExists(exists))
	got := p.Detect(t.Context())

	want := map[string]bool{
		"cmd":              true,
		"powershell":       true,
		"pwsh":             false,
		"git-bash":         true,
		"windows-terminal": true,
		"cmder":            false,
	}
	for _, c := range got {
		assert.Equal(t, want[c.ID], c.Available, "candidate %s", c.ID)
	}
	loc.AssertNotCalled(t, "Locate", mock.Anything, "wt")
	loc.AssertNotCalled(t, "Locate", mock.Anything, "bash")
	loc.AssertNotCalled(t, "Locate", mock.Anything, "cmd")
}

func TestDetect_WindowsFallsBackToCommandProbe(t *testing.T) {
	var calls []string
	var n atomic.Int32
	p := NewProber(resolverFor("windows"),
		WithParallelism(1),
		WithGetenv(envOf(nil)),
		WithExists(existsIn()),
		WithLocator(locatorFunc(func(_ context.Context, name string) bool {
			n.Add(1)
			calls = append(calls, name)
			return name == "wt" || name == "bash"
		})),
	)

	got := p.Detect(t.Context())
	byID := make(map[string]bool)
	for _, c := range got {
		byID[c.ID] = c.Available
	}

	assert.True(t, byID["windows-terminal"], "wt on PATH should count")
	assert.True(t, byID["git-bash"], "bash on PATH should count")
	assert.False(t, byID["cmder"], "cmder has no command probe")
	assert.Equal(t, []string{"cmd", "powershell", "pwsh", "bash", "wt"}, calls)
	assert.EqualValues(t, 5, n.Load())
}

func TestDetect_DarwinAppBundles(t *testing.T) {
	p := NewProber(resolverFor("darwin"),
		WithGetenv(envOf(map[string]string{"HOME": "/Users/dev"})),
		WithExists(existsIn("/System/Applications/Utilities/Terminal.app", "/Users/dev/Applications/iTerm.app")),
		WithLocator(locatorFunc(func(_ context.Context, name string) bool { return name == "zsh" })),
	)

	got := p.Detect(t.Context())
	assert.Equal(t, []Candidate{
		{ID: "terminal", Name: "Terminal.app", Available: true},
		{ID: "iterm2", Name: "iTerm2", Available: true},
		{ID: "zsh", Name: "Zsh", Available: true},
		{ID: "bash", Name: "Bash", Available: false},
	}, got)
}

func TestDetect_PanickingProbeDegrades(t *testing.T) {
	p := NewProber(resolverFor("linux"),
		WithLogger(logging.ForTest(t)),
		WithLocator(locatorFunc(func(_ context.Context, name string) bool {
			if name == "zsh" {
				panic("locator exploded")
			}
			return true
		})),
	)

	got := p.Detect(t.Context())
	require.Len(t, got, 7)
	for _, c := range got {
		assert.Equal(t, c.ID != "zsh", c.Available, "candidate %s", c.ID)
	}
}

func TestDetect_TimeoutDegrades(t *testing.T) {
	p := NewProber(resolverFor("freebsd"),
		WithTimeout(10*time.Millisecond),
		WithLocator(locatorFunc(func(ctx context.Context, _ string) bool {
			<-ctx.Done()
			return true
		})),
	)

	got := p.Detect(t.Context())
	require.Len(t, got, 1)
	assert.False(t, got[0].Available)
}

func TestDetect_NoCachingBetweenCalls(t *testing.T) {
	var installed atomic.Bool
	p := NewProber(resolverFor("freebsd"),
		WithLocator(locatorFunc(func(context.Context, string) bool { return installed.Load() })),
	)

	assert.False(t, p.Detect(t.Context())[0].Available)
	installed.Store(true)
	assert.True(t, p.Detect(t.Context())[0].Available)
	installed.Store(false)
	assert.False(t, p.Detect(t.Context())[0].Available)
}

func TestNewProber_DefaultLocatorTool(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"windows", "where"},
		{"linux", "which"},
		{"darwin", "which"},
		{"plan9", "which"},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			p := NewProber(resolverFor(tt.goos))
			loc, ok := p.locator.(*ExecLocator)
			require.True(t, ok, "default locator should be *ExecLocator")
			assert.Equal(t, tt.want, loc.Tool)
		})
	}
}

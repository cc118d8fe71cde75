package terminal

import (
	"context"
	"testing"

	"github.com/fp-node-manager/fpnm/internal/platform"
)

func TestPaths_SkipsUnsetVariables(t *testing.T) {
	var probed []string
	env := Env{
		Getenv: envOf(map[string]string{"ProgramFiles": `C:\Program Files`}),
		Exists: func(p string) bool {
			probed = append(probed, p)
			return false
		},
	}

	Paths(`${ProgramFiles(x86)}\Git\bin\bash.exe`, `${ProgramFiles}\Git\bin\bash.exe`).Present(t.Context(), env)

	if len(probed) != 1 || probed[0] != `C:\Program Files\Git\bin\bash.exe` {
		t.Errorf("probed = %q, want only the expandable template", probed)
	}
}

func TestExpand(t *testing.T) {
	getenv := envOf(map[string]string{"HOME": "/home/dev", "ProgramFiles(x86)": `C:\PF86`})
	tests := []struct {
		tmpl   string
		want   string
		wantOK bool
	}{
		{"/Applications/iTerm.app", "/Applications/iTerm.app", true},
		{"${HOME}/Applications/iTerm.app", "/home/dev/Applications/iTerm.app", true},
		{`${ProgramFiles(x86)}\Git`, `C:\PF86\Git`, true},
		{"${MISSING}/x", "/x", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.tmpl, func(t *testing.T) {
			got, ok := expand(tt.tmpl, getenv)
			if ok != tt.wantOK {
				t.Fatalf("expand(%q) ok = %v, want %v", tt.tmpl, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("expand(%q) = %q, want %q", tt.tmpl, got, tt.want)
			}
		})
	}
}

func TestAnyOf_StopsAtFirstHit(t *testing.T) {
	var located []string
	env := Env{
		Getenv: envOf(nil),
		Exists: existsIn("/opt/found"),
		Locator: locatorFunc(func(_ context.Context, name string) bool {
			located = append(located, name)
			return true
		}),
	}

	if !AnyOf(Paths("/opt/found"), Command("never")).Present(t.Context(), env) {
		t.Fatal("AnyOf should be present when the path probe hits")
	}
	if len(located) != 0 {
		t.Errorf("command probe ran after path hit: %v", located)
	}

	if !AnyOf(Paths("/opt/missing"), Command("fallback")).Present(t.Context(), env) {
		t.Fatal("AnyOf should fall through to the command probe")
	}
	if len(located) != 1 || located[0] != "fallback" {
		t.Errorf("located = %v, want [fallback]", located)
	}
}

func TestAnyOf_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	env := Env{Getenv: envOf(nil), Exists: existsIn("/x")}
	if AnyOf(Paths("/x")).Present(ctx, env) {
		t.Error("AnyOf should report absent on a canceled context")
	}
}

func TestDefinitions_ReturnsCopy(t *testing.T) {
	defs := Definitions(platform.FamilyLinux)
	defs[0].ID = "mutated"
	if Definitions(platform.FamilyLinux)[0].ID != "bash" {
		t.Error("Definitions should return a copy of the table")
	}
}

func TestDefinitions_UnknownFamilyFallsBack(t *testing.T) {
	defs := Definitions(platform.Family("haiku"))
	if len(defs) != 1 || defs[0].ID != "bash" {
		t.Errorf("Definitions(unknown) = %+v, want single bash fallback", defs)
	}
}

func TestLookupAndKnownID(t *testing.T) {
	if d, ok := Lookup(platform.FamilyWindows, "git-bash"); !ok || d.Name != "Git Bash" {
		t.Errorf("Lookup(windows, git-bash) = %+v, %v", d, ok)
	}
	if _, ok := Lookup(platform.FamilyLinux, "cmd"); ok {
		t.Error("cmd should not be a linux candidate")
	}
	for _, id := range []string{"cmd", "iterm2", "kitty", "bash"} {
		if !KnownID(id) {
			t.Errorf("KnownID(%q) = false, want true", id)
		}
	}
	if KnownID("hyper") {
		t.Error("KnownID(hyper) = true, want false")
	}
}

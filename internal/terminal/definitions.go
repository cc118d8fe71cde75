package terminal

import (
	"github.com/fp-node-manager/fpnm/internal/platform"
)

// Definition is a statically known terminal or shell for one OS family.
type Definition struct {
	// ID is a stable slug, unique within its family.
	ID string

	// Name is the display name.
	Name string

	// Probe decides availability at call time.
	Probe Probe
}

// definitions is keyed by family; slice order is the presentation order
// consumers rely on and must not be sorted.
var definitions = map[platform.Family][]Definition{
	platform.FamilyWindows: {
		{
			ID:   "cmd",
			Name: "Command Prompt (cmd.exe)",
			Probe: AnyOf(
				Paths(`${ComSpec}`, `${SystemRoot}\System32\cmd.exe`),
				Command("cmd"),
			),
		},
		{ID: "powershell", Name: "PowerShell", Probe: Command("powershell")},
		{ID: "pwsh", Name: "PowerShell Core (pwsh)", Probe: Command("pwsh")},
		{
			ID:   "git-bash",
			Name: "Git Bash",
			Probe: AnyOf(
				Paths(
					`${ProgramFiles}\Git\bin\bash.exe`,
					`${ProgramFiles(x86)}\Git\bin\bash.exe`,
					`C:\Program Files\Git\bin\bash.exe`,
					`C:\Program Files (x86)\Git\bin\bash.exe`,
				),
				Command("bash"),
			),
		},
		{
			ID:   "windows-terminal",
			Name: "Windows Terminal",
			Probe: AnyOf(
				Paths(`${LOCALAPPDATA}\Microsoft\WindowsApps\wt.exe`),
				Command("wt"),
			),
		},
		{
			ID:   "cmder",
			Name: "Cmder",
			Probe: Paths(
				`${CMDER_ROOT}\Cmder.exe`,
				`C:\cmder\Cmder.exe`,
				`C:\tools\cmder\Cmder.exe`,
			),
		},
	},
	platform.FamilyDarwin: {
		{
			ID:   "terminal",
			Name: "Terminal.app",
			Probe: Paths(
				"/System/Applications/Utilities/Terminal.app",
				"/Applications/Utilities/Terminal.app",
			),
		},
		{
			ID:    "iterm2",
			Name:  "iTerm2",
			Probe: Paths("/Applications/iTerm.app", "${HOME}/Applications/iTerm.app"),
		},
		{ID: "zsh", Name: "Zsh", Probe: Command("zsh")},
		{ID: "bash", Name: "Bash", Probe: Command("bash")},
	},
	platform.FamilyLinux: {
		{ID: "bash", Name: "Bash", Probe: Command("bash")},
		{ID: "zsh", Name: "Zsh", Probe: Command("zsh")},
		{ID: "gnome-terminal", Name: "GNOME Terminal", Probe: Command("gnome-terminal")},
		{ID: "konsole", Name: "Konsole (KDE)", Probe: Command("konsole")},
		{ID: "xfce4-terminal", Name: "XFCE Terminal", Probe: Command("xfce4-terminal")},
		{ID: "alacritty", Name: "Alacritty", Probe: Command("alacritty")},
		{ID: "kitty", Name: "Kitty", Probe: Command("kitty")},
	},
	platform.FamilyOther: {
		{ID: "bash", Name: "Bash", Probe: Command("bash")},
	},
}

// Definitions returns a copy of the candidate table for family, in
// presentation order. Unknown families get the FamilyOther table.
func Definitions(family platform.Family) []Definition {
	defs, ok := definitions[family]
	if !ok {
		defs = definitions[platform.FamilyOther]
	}
	out := make([]Definition, len(defs))
	copy(out, defs)
	return out
}

// Lookup returns the definition with id for family.
func Lookup(family platform.Family, id string) (Definition, bool) {
	for _, d := range Definitions(family) {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// KnownID reports whether id names a candidate in any family.
func KnownID(id string) bool {
	for _, family := range platform.Families() {
		if _, ok := Lookup(family, id); ok {
			return true
		}
	}
	return false
}

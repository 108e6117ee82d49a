package deps

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

type Dependency struct {
	Name       string
	Command    string
	Required   bool
	InstallCmd map[string]string
}

type MissingDep struct {
	Dependency
}

var dependencies = []Dependency{
	{
		Name:     "tmux",
		Command:  "tmux",
		Required: true,
		InstallCmd: map[string]string{
			"darwin": "brew install tmux",
			"linux":  "sudo apt install tmux",
		},
	},
}

var lookPath = exec.LookPath

func Check() []MissingDep {
	missing := []MissingDep{}
	for _, dep := range dependencies {
		if _, err := lookPath(dep.Command); err != nil {
			missing = append(missing, MissingDep{dep})
		}
	}
	return missing
}

func InstallHint(dep MissingDep) string {
	if cmd, ok := dep.InstallCmd[runtime.GOOS]; ok {
		return cmd
	}
	return "install " + dep.Name + " via your package manager"
}

// Require fails when any required dependency is missing, listing each with
// an install hint.
func Require() error {
	var lines []string
	for _, dep := range Check() {
		if !dep.Required {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s: %s", dep.Name, InstallHint(dep)))
	}
	if len(lines) == 0 {
		return nil
	}
	return fmt.Errorf("missing dependencies:\n%s", strings.Join(lines, "\n"))
}

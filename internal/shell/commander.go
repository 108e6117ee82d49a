package shell

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

type Commander interface {
	Run(name string, args ...string) ([]byte, error)
	Output(name string, args ...string) ([]byte, error)
	Command(name string, args ...string) *exec.Cmd
}

// Error carries the stderr text of a failed command so callers can match on
// it (tmux reports "no server running" that way).
type Error struct {
	Name   string
	Args   []string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("%s %s: %v", e.Name, strings.Join(e.Args, " "), e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Name, firstArg(e.Args), msg)
}

func (e *Error) Unwrap() error { return e.Err }

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

type ExecCommander struct{}

// Run returns combined output.
func (e *ExecCommander) Run(name string, args ...string) ([]byte, error) {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return out, &Error{Name: name, Args: args, Stderr: string(out), Err: err}
	}
	return out, nil
}

// Output returns stdout only; stderr is attached to the error.
func (e *ExecCommander) Output(name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return out, &Error{Name: name, Args: args, Stderr: stderr.String(), Err: err}
	}
	return out, nil
}

// Command builds an unstarted command for callers that hand the terminal
// over to the child, such as tea.ExecProcess.
func (e *ExecCommander) Command(name string, args ...string) *exec.Cmd {
	return exec.Command(name, args...)
}

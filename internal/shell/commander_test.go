package shell

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	base := errors.New("exit status 1")

	withStderr := &Error{Name: "tmux", Args: []string{"kill-session", "-t", "x"}, Stderr: "can't find session: x\n", Err: base}
	assert.Equal(t, "tmux kill-session: can't find session: x", withStderr.Error())
	assert.ErrorIs(t, withStderr, base)

	bare := &Error{Name: "tmux", Args: []string{"ls"}, Err: base}
	assert.Equal(t, "tmux ls: exit status 1", bare.Error())
}

func TestExecCommanderOutput(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	c := &ExecCommander{}

	out, err := c.Output("sh", "-c", "echo out; echo err 1>&2")
	require.NoError(t, err)
	assert.Equal(t, "out\n", string(out))

	_, err = c.Output("sh", "-c", "echo boom 1>&2; exit 3")
	var shErr *Error
	require.ErrorAs(t, err, &shErr)
	assert.Equal(t, "boom\n", shErr.Stderr)

	out, err = c.Run("sh", "-c", "echo a; echo b 1>&2")
	require.NoError(t, err)
	assert.Contains(t, string(out), "a")
	assert.Contains(t, string(out), "b")
}

package browser

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateName(t *testing.T) {
	re := regexp.MustCompile(`^claude_[0-9A-F]{8}$`)
	for i := 0; i < 20; i++ {
		assert.Regexp(t, re, GenerateName("claude"))
	}
	assert.Regexp(t, `^shell_[0-9A-F]{8}$`, GenerateName("shell"))
}

func TestReprefix(t *testing.T) {
	tests := []struct {
		name, from, to, expected string
	}{
		{"claude_0A1B2C3D", "claude", "shell", "shell_0A1B2C3D"},
		{"shell_0A1B2C3D", "shell", "claude", "claude_0A1B2C3D"},
		{"claude_0a1b2c3d", "claude", "shell", "claude_0a1b2c3d"},
		{"claude_feature", "claude", "shell", "claude_feature"},
		{"my-session", "claude", "shell", "my-session"},
		{"claude_0A1B2C3D9", "claude", "shell", "claude_0A1B2C3D9"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Reprefix(tt.name, tt.from, tt.to), tt.name)
	}
}

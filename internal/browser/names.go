package browser

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nicobailon/tsm/internal/session"
)

const shellPrefix = "shell"

// GenerateName returns prefix_XXXXXXXX with 8 random upper-case hex digits.
func GenerateName(prefix string) string {
	id := uuid.New()
	return fmt.Sprintf("%s_%08X", prefix, binary.BigEndian.Uint32(id[:4]))
}

// Reprefix swaps from for to on a generated name and leaves anything the
// user typed alone.
func Reprefix(name, from, to string) string {
	suffix, ok := strings.CutPrefix(name, from+"_")
	if !ok || !isHexSuffix(suffix) {
		return name
	}
	return to + "_" + suffix
}

func isHexSuffix(s string) bool {
	if len(s) != 8 {
		return false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'A' && r <= 'F') {
			return false
		}
	}
	return true
}

func (s *State) namePrefix(mode session.StartMode) string {
	if mode == session.StartShell {
		return shellPrefix
	}
	return s.agentName
}

package views

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Sanitize makes a backend string safe to print on a terminal. Escape
// sequences are removed whole, then any control character left over is
// dropped so a result cannot move the cursor or talk to the terminal
// emulator. Bidi embedding, override and isolate characters are dropped so
// a title cannot reorder the text drawn after it. Tabs and newlines become
// single spaces.
func Sanitize(s string) string {
	s = ansi.Strip(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		case r < 0x20, r == 0x7f, r >= 0x80 && r <= 0x9f:
			// C0, DEL and C1 controls
		case r >= 0x202a && r <= 0x202e, r >= 0x2066 && r <= 0x2069:
			// LRE..RLO and LRI..PDI
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

package normalize

import "strings"

// Clean collapses every whitespace run (including newlines) to a single space,
// strips characters outside the printable 7-bit range, and trims the edges.
// The transform is idempotent: Clean(Clean(x)) == Clean(x).
func Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingSpace := false
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f':
			pendingSpace = true
		case r < 0x20 || r > 0x7e:
			// Control characters and non-ASCII are dropped outright
		default:
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		}
	}

	return b.String()
}

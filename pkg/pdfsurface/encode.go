package pdfsurface

import (
	"golang.org/x/text/encoding/charmap"
)

// replacement stands in for runes the core fonts cannot show.
const replacement = '?'

// latin1 converts UTF-8 text to the ISO-8859-1 bytes the core fonts expect.
// Runes outside Latin-1 are replaced instead of failing the whole string.
func latin1(s string) string {
	if isASCII(s) {
		return s
	}
	if out, err := charmap.ISO8859_1.NewEncoder().String(s); err == nil {
		return out
	}

	b := make([]byte, 0, len(s))
	for _, r := range s {
		if c, ok := charmap.ISO8859_1.EncodeRune(r); ok {
			b = append(b, c)
			continue
		}
		b = append(b, replacement)
	}
	return string(b)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

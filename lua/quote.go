package lua

import (
	"fmt"
	"strings"
)

// Quote returns s as a Lua 5.1 string literal. Bytes outside printable
// ASCII are written as three-digit decimal escapes.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(&b, "\\%03d", c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

var simpleEscapes = map[byte]byte{
	'a': '\a', 'b': '\b', 'f': '\f', 'n': '\n', 'r': '\r', 't': '\t', 'v': '\v',
	'\\': '\\', '"': '"', '\'': '\'',
}

// Unquote parses a double-quoted Lua 5.1 string literal.
func Unquote(literal string) (string, error) {
	if len(literal) < 2 || literal[0] != '"' || literal[len(literal)-1] != '"' {
		return "", fmt.Errorf("%w: not a string literal: %s", ErrInvalidArtifact, literal)
	}
	body := literal[1 : len(literal)-1]

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '"' {
			return "", fmt.Errorf("%w: unescaped quote in %s", ErrInvalidArtifact, literal)
		}
		if c != '\\' {
			b.WriteByte(c)
			continue
		}

		i++
		if i == len(body) {
			return "", fmt.Errorf("%w: dangling escape in %s", ErrInvalidArtifact, literal)
		}
		if r, ok := simpleEscapes[body[i]]; ok {
			b.WriteByte(r)
			continue
		}

		value, digits := 0, 0
		for digits < 3 && i+digits < len(body) && body[i+digits] >= '0' && body[i+digits] <= '9' {
			value = value*10 + int(body[i+digits]-'0')
			digits++
		}
		if digits == 0 || value > 255 {
			return "", fmt.Errorf("%w: invalid escape in %s", ErrInvalidArtifact, literal)
		}
		b.WriteByte(byte(value))
		i += digits - 1
	}
	return b.String(), nil
}

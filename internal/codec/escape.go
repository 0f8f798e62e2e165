// Package codec serializes resolved message fields into the shapes the
// platform expects: a response parameter mapping and a session request
// XML document. It also owns the percent encoding used on the wire.
package codec

import "strings"

const upperhex = "0123456789ABCDEF"

// Escape percent-encodes s byte by byte. ASCII letters, digits, '.', '_'
// and '-' pass through, a space becomes '+', and every other byte becomes
// %XX with uppercase hex digits.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isUnreserved(c):
			b.WriteByte(c)
		case c == ' ':
			b.WriteByte('+')
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0x0F])
		}
	}

	return b.String()
}

// Unescape reverses Escape: '+' becomes a space and each %XX becomes the
// byte it encodes, so consecutive escapes rebuild multi-byte characters.
//
// Malformed sequences ('%' not followed by two hex digits, including a
// truncated one at the end of s) are copied through unchanged.
func Unescape(s string) string {
	if !strings.ContainsAny(s, "%+") {
		return s
	}

	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '+':
			buf = append(buf, ' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			buf = append(buf, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
		default:
			buf = append(buf, c)
		}
	}

	return string(buf)
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '.', c == '_', c == '-':
		return true
	}
	return false
}

func isHex(c byte) bool {
	switch {
	case '0' <= c && c <= '9', 'a' <= c && c <= 'f', 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

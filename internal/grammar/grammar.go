package grammar

//go:generate go tool errtrace -w .

import (
	"strings"

	"github.com/ghettovoice/gohttp/internal/util"
)

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	ErrEmptyInput     Error = "empty input"
	ErrMalformedInput Error = "malformed input"
)

// IsScheme reports whether s matches the RFC 3986 scheme rule:
// ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ).
func IsScheme[T ~string | ~[]byte](s T) bool {
	if len(s) == 0 {
		return false
	}
	if !IsAlphaChar(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if c := s[i]; !IsAlphanumChar(c) && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return true
}

// IsPort reports whether s is a decimal port number within [1, 65535].
func IsPort[T ~string | ~[]byte](s T) bool {
	if len(s) == 0 || len(s) > 5 {
		return false
	}
	var n int
	for i := 0; i < len(s); i++ {
		if !IsDigitChar(s[i]) {
			return false
		}
		n = n*10 + int(s[i]-'0')
	}
	return 1 <= n && n <= 65535
}

// IsHost reports whether s is usable as a host component: a bracketed IP
// literal, or any non-empty text free of whitespace and unescaped colons.
func IsHost[T ~string | ~[]byte](s T) bool {
	if len(s) == 0 {
		return false
	}
	if s[0] == '[' {
		return s[len(s)-1] == ']'
	}
	str := string(s)
	return strings.IndexByte(str, ':') < 0 && !util.ContainsSP(str)
}

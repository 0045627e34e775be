package blob

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// InitCall is the page script function whose first string argument carries the rows
const InitCall = "initDataGrid"

var (
	// ErrNotFound means the page has no data blob. It is a valid outcome, not a failure.
	ErrNotFound = errors.New("data blob not found")
	// ErrMalformedPayload means a blob was found but could not be decoded
	ErrMalformedPayload = errors.New("malformed data blob")
)

// initCallPattern matches the call name and everything up to the opening quote
// of its first double-quoted argument.
var initCallPattern = regexp.MustCompile(regexp.QuoteMeta(InitCall) + `\s*\([^"]*"`)

// Locate returns the unescaped array literal passed to the first initDataGrid
// call whose string argument begins with "[[" and ends with "]]".
// Calls are examined in document order and the first qualifying one wins.
func Locate(page string) (string, error) {
	for _, loc := range initCallPattern.FindAllStringIndex(page, -1) {
		// loc[1] is just past the opening quote
		literal, ok := scanStringLiteral(page[loc[1]:])
		if !ok {
			continue
		}
		payload := unescapeJS(literal)
		if isArrayOfArrays(payload) {
			return payload, nil
		}
	}
	return "", ErrNotFound
}

// Extract returns the array literal carried by a fetched body.
// Script pages go through Locate; bodies that are themselves an array literal,
// optionally wrapped in quotes as the AJAX endpoint returns them, are unwrapped.
func Extract(body string) (string, error) {
	payload, err := Locate(body)
	if err == nil {
		return payload, nil
	}

	trimmed := strings.TrimSpace(body)
	if len(trimmed) >= 2 && trimmed[0] == '"' && trimmed[len(trimmed)-1] == '"' {
		if literal, ok := scanStringLiteral(trimmed[1:]); ok && len(literal) == len(trimmed)-2 {
			trimmed = strings.TrimSpace(unescapeJS(literal))
		} else {
			trimmed = strings.TrimSpace(trimmed[1 : len(trimmed)-1])
		}
	}
	if isArrayOfArrays(trimmed) || trimmed == "[]" {
		return trimmed, nil
	}

	return "", ErrNotFound
}

func isArrayOfArrays(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "[[") && strings.HasSuffix(s, "]]")
}

// scanStringLiteral reads the body of a double-quoted JavaScript string whose
// opening quote has already been consumed. It returns the raw (still escaped)
// body and false if the closing quote is missing.
func scanStringLiteral(s string) (string, bool) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return s[:i], true
		}
	}
	return "", false
}

// unescapeJS resolves the escape sequences allowed in a JavaScript string literal.
// Unknown escapes yield the escaped character itself, as JavaScript does.
func unescapeJS(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}

		i++
		switch e := s[i]; e {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation
		case 'u':
			r, n := decodeHex(s[i+1:], 4)
			if n == 0 {
				b.WriteByte(e)
				break
			}
			i += n
			if utf16.IsSurrogate(r) && strings.HasPrefix(s[i+1:], `\u`) {
				if low, m := decodeHex(s[i+3:], 4); m > 0 {
					if pair := utf16.DecodeRune(r, low); pair != utf8.RuneError {
						r = pair
						i += 2 + m
					}
				}
			}
			b.WriteRune(r)
		case 'x':
			if r, n := decodeHex(s[i+1:], 2); n > 0 {
				b.WriteRune(r)
				i += n
			} else {
				b.WriteByte(e)
			}
		default:
			b.WriteByte(e)
		}
	}

	return b.String()
}

// decodeHex decodes exactly n hex digits at the start of s
func decodeHex(s string, n int) (rune, int) {
	if len(s) < n {
		return 0, 0
	}
	v, err := strconv.ParseUint(s[:n], 16, 32)
	if err != nil {
		return 0, 0
	}
	return rune(v), n
}

// Preview shortens a payload for log output
func Preview(payload string, max int) string {
	if len(payload) <= max {
		return payload
	}
	return fmt.Sprintf("%s... (%d bytes)", payload[:max], len(payload))
}

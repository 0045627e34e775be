package blob

import (
	"fmt"
	"strings"

	"github.com/titanous/json5"
)

// Row is one element of a data blob: positional fields of loosely typed values
// (string, float64, bool, nil, or nested values) in upstream order.
type Row []any

// Parse decodes a located payload into rows, preserving order.
// Outer elements that are not arrays become empty rows so that downstream
// length checks skip them. A payload that is not an array literal yields
// ErrMalformedPayload.
func Parse(payload string) ([]Row, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedPayload)
	}

	var outer []any
	if err := json5.Unmarshal([]byte(escapeControls(payload)), &outer); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	rows := make([]Row, 0, len(outer))
	for _, elem := range outer {
		fields, ok := elem.([]any)
		if !ok {
			rows = append(rows, nil)
			continue
		}
		rows = append(rows, Row(fields))
	}

	return rows, nil
}

// escapeControls re-escapes raw control characters inside string literals.
// Locate has already resolved JS escapes, so a "\t" in a venue name arrives
// as a literal tab, which the decoder would reject for the whole payload.
func escapeControls(payload string) string {
	var b strings.Builder
	b.Grow(len(payload))

	var quote byte
	for i := 0; i < len(payload); i++ {
		c := payload[i]
		switch {
		case quote == 0:
			if c == '"' || c == '\'' {
				quote = c
			}
		case c == '\\' && i+1 < len(payload):
			b.WriteByte(c)
			i++
			c = payload[i]
		case c == quote:
			quote = 0
		case c < 0x20:
			switch c {
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			default:
				fmt.Fprintf(&b, `\u%04x`, c)
			}
			continue
		}
		b.WriteByte(c)
	}

	return b.String()
}

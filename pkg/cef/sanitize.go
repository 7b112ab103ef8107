package cef

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxLength is the longest record, key or value we emit.
const MaxLength = 1023

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined marks a field that was named but never given a value. It is
// rendered as the literal "undefined", while a nil value renders as "null".
var Undefined = undefined{}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ToText coerces an arbitrary field value into the text that is escaped
// and written to the wire.
func ToText(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case undefined:
		return t.String()
	case string:
		return t
	case []byte:
		return string(t)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int8:
		return strconv.FormatInt(int64(t), 10)
	case int16:
		return strconv.FormatInt(int64(t), 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint8:
		return strconv.FormatUint(uint64(t), 10)
	case uint16:
		return strconv.FormatUint(uint64(t), 10)
	case uint32:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case error:
		return t.Error()
	case fmt.Stringer:
		return t.String()
	}

	// maps, slices and structs go out as compact JSON; encoding/json sorts
	// map keys so the result is stable
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// SanitizePrefixField escapes a value for one of the pipe separated
// header fields. Backslashes and pipes get a leading backslash unless they
// are already escaped, equal signs are left alone, and every run of line
// breaks becomes a single space.
func SanitizePrefixField(v any) string {
	input := ToText(v)

	var b strings.Builder
	b.Grow(len(input))
	for i := 0; i < len(input); i++ {
		switch c := input[i]; c {
		case '\\':
			// an escape pair is copied through untouched
			if i+1 < len(input) && (input[i+1] == '\\' || input[i+1] == '|') {
				b.WriteByte('\\')
				b.WriteByte(input[i+1])
				i++
			} else {
				b.WriteString(`\\`)
			}
		case '|':
			b.WriteString(`\|`)
		case '\r', '\n':
			b.WriteByte(' ')
			for i+1 < len(input) && isLineBreak(input[i+1]) {
				i++
			}
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// SanitizeExtensionValue escapes a value for the key=value extension
// section. Equal signs not already preceded by a backslash are escaped and
// every CRLF, lone CR or run of line breaks becomes a single "\n". Pipes and
// backslashes are not delimiters there and pass through.
func SanitizeExtensionValue(v any) string {
	input := ToText(v)

	var b strings.Builder
	b.Grow(len(input))
	for i := 0; i < len(input); i++ {
		switch c := input[i]; c {
		case '=':
			if i == 0 || input[i-1] != '\\' {
				b.WriteByte('\\')
			}
			b.WriteByte('=')
		case '\r', '\n':
			b.WriteByte('\n')
			for i+1 < len(input) && isLineBreak(input[i+1]) {
				i++
			}
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// SanitizeKey applies the extension grammar to a key, replaces whitespace
// runs with underscores and caps the result at MaxLength.
func SanitizeKey(v any) string {
	key := whitespaceRun.ReplaceAllString(SanitizeExtensionValue(v), "_")
	return truncate(key, MaxLength)
}

func isLineBreak(c byte) bool {
	return c == '\r' || c == '\n'
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
// Escape pairs are not protected: a trailing lone backslash is possible.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

package cef

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToText(t *testing.T) {
	t.Run("nil is null", func(t *testing.T) {
		assert.Equal(t, "null", ToText(nil))
	})

	t.Run("undefined is undefined", func(t *testing.T) {
		assert.Equal(t, "undefined", ToText(Undefined))
	})

	t.Run("numbers and bools", func(t *testing.T) {
		assert.Equal(t, "42", ToText(42))
		assert.Equal(t, "-7", ToText(int64(-7)))
		assert.Equal(t, "3.5", ToText(3.5))
		assert.Equal(t, "123", ToText(123.0))
		assert.Equal(t, "true", ToText(true))
		assert.Equal(t, "17", ToText(json.Number("17")))
	})

	t.Run("errors use their message", func(t *testing.T) {
		assert.Equal(t, "boom", ToText(errors.New("boom")))
	})

	t.Run("objects become JSON", func(t *testing.T) {
		text := ToText(map[string]string{"I like": "pie"})

		var decoded map[string]string
		require.NoError(t, json.Unmarshal([]byte(text), &decoded))
		assert.Equal(t, "pie", decoded["I like"])
	})

	t.Run("map keys are sorted", func(t *testing.T) {
		assert.Equal(t, `{"a":1,"b":2,"c":3}`, ToText(map[string]int{"c": 3, "a": 1, "b": 2}))
	})
}

func TestSanitizePrefixField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"pipes", "eggman|walrus|", `eggman\|walrus\|`},
		{"backslashes", `C:\blah\blah`, `C:\\blah\\blah`},
		{"ignorable equals signs", "2+2=4, 4+4=8", "2+2=4, 4+4=8"},
		{"escaped characters at string margins", "|or else=", `\|or else=`},
		{"forbidden newlines", "I\r\n\r\nlike\r\r\rpie", "I like pie"},
		{"already escaped pipe", `a\|b`, `a\|b`},
		{"already escaped backslash", `a\\b`, `a\\b`},
		{"trailing backslash", `a\`, `a\\`},
		{"leading backslash", `\n`, `\\n`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizePrefixField(tt.input))
		})
	}
}

func TestSanitizeExtensionValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"pipes", "eggman|walrus|", "eggman|walrus|"},
		{"backslashes", `C:\blah\blah`, `C:\blah\blah`},
		{"equals signs", "2+2=4, 4+4=8", `2+2\=4, 4+4\=8`},
		{"escaped characters at string margins", "|or else=", `|or else\=`},
		{"leading equals sign", "=x", `\=x`},
		{"newlines", "I\r\n\r\nlike\r\r\rpie", "I\nlike\npie"},
		{"lone carriage return", "a\rb", "a\nb"},
		{"already escaped equals", `Foo\=Bar`, `Foo\=Bar`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeExtensionValue(tt.input))
		})
	}
}

func TestSanitizersAreIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"eggman|walrus|",
		`C:\blah\blah`,
		"|or else=",
		"=|\\",
		`a\|b\\c\=d`,
		`\\\|`,
		"I\r\n\r\nlike\r\r\rpie",
		"\n\n=\r|",
		`ends with \`,
		"ünïcödé | = \\",
	}

	for _, input := range inputs {
		once := SanitizePrefixField(input)
		assert.Equal(t, once, SanitizePrefixField(once), "prefix %q", input)

		once = SanitizeExtensionValue(input)
		assert.Equal(t, once, SanitizeExtensionValue(once), "extension %q", input)
	}
}

func TestSanitizeKey(t *testing.T) {
	assert.Equal(t, "source_user_name", SanitizeKey("source  user\tname"))
	assert.Equal(t, "Suser", SanitizeKey("Suser"))

	long := SanitizeKey(strings.Repeat("k", 2000))
	assert.Len(t, long, MaxLength)
}

func TestTruncateKeepsRunes(t *testing.T) {
	s := strings.Repeat("é", 600) // 1200 bytes

	cut := truncate(s, MaxLength)
	assert.LessOrEqual(t, len(cut), MaxLength)
	assert.True(t, utf8.ValidString(cut))
	assert.Equal(t, "short", truncate("short", MaxLength))
}

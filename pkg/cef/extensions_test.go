package cef

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidators(t *testing.T) {
	tests := []struct {
		input string
		typ   KeyType
		valid bool
	}{
		{"delete", TypeString, true},
		{"6789", TypeInteger, true},
		{"192.168.1.42", TypeIPv4Addr, true},
		{"http://jed.gov", TypeFQDN, true},
		{"1A:2B:3C:4D:5E:6F", TypeMACAddr, true},
		{"32767", TypePortNum, true},
		{"0", TypePortNum, true},
		{"65535", TypePortNum, true},
		{"Jul 20 2012 12:20:02", TypeTimestamp, true},
		{"1342814344430", TypeTimestamp, true},
		{"Administrator", TypePriv, true},
		{"Guest", TypePriv, true},

		{"123.0", TypeInteger, false},
		{"12abc", TypeInteger, false},
		{"", TypeInteger, false},
		{"192.168.1.1234", TypeIPv4Addr, false},
		{"192.168.1", TypeIPv4Addr, false},
		{"1A:2B:3C:4D:5E", TypeMACAddr, false},
		{"1A:2B:3C:4D:5E:6F hi mom", TypeMACAddr, false},
		{"1a:2b:3c:4d:5e:6f", TypeMACAddr, false},
		{"---", TypeFQDN, false},
		{"Jul 1 2012 11:42:34", TypeTimestamp, false},
		{"Jul 01 2012 11:42:34 PM", TypeTimestamp, false},
		{"1342813700", TypeTimestamp, false},
		{"20130320", TypeTimestamp, false},
		{"Bro", TypePriv, false},
		{"65536", TypePortNum, false},
		{"-1", TypePortNum, false},
		{"corn", TypePortNum, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ)+"/"+tt.input, func(t *testing.T) {
			assert.Equal(t, tt.valid, Validators[tt.typ](tt.input))
		})
	}
}

func TestEveryTypeHasAValidator(t *testing.T) {
	for key, info := range dictionary {
		_, ok := Validators[info.Type]
		assert.True(t, ok, "key %s has type %s without validator", key, info.Type)
	}
}

func TestValidatorForKey(t *testing.T) {
	validate, ok := ValidatorForKey("spt")
	assert.True(t, ok)
	assert.True(t, validate("8080"))
	assert.False(t, validate("80800"))

	_, ok = ValidatorForKey("fdsart")
	assert.False(t, ok)

	info, ok := LookupKey("suser")
	assert.True(t, ok)
	assert.Equal(t, "sourceUserName", info.LongName)
	assert.Equal(t, TypeString, info.Type)
}

func TestExtensionsSetAndMerge(t *testing.T) {
	var exts Extensions
	exts.Set("suser", "bob")
	exts.Set("dhost", "example.com")
	exts.Set("suser", "alice")

	assert.Equal(t, Extensions{
		{Key: "suser", Value: "alice"},
		{Key: "dhost", Value: "example.com"},
	}, exts)

	merged := exts.Merge(Extensions{{Key: "dhost", Value: "other.org"}, {Key: "msg", Value: "hi"}})
	v, _ := merged.Get("dhost")
	assert.Equal(t, "other.org", v)
	assert.Len(t, merged, 3)

	// the receiver is left alone
	v, _ = exts.Get("dhost")
	assert.Equal(t, "example.com", v)
}

func TestExtensionsFromMapIsSorted(t *testing.T) {
	exts := ExtensionsFromMap(map[string]any{"suser": "bob", "act": "login", "msg": "hi"})

	keys := []string{}
	for _, e := range exts {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"act", "msg", "suser"}, keys)
}

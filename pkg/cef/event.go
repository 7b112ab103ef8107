package cef

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Event holds the prefix fields and extensions of one CEF record. A nil
// field is absent; anything else is coerced with ToText.
type Event struct {
	Vendor    any
	Product   any
	Version   any
	Signature any
	Name      any
	Severity  any

	Extensions Extensions
}

// Extension is a single key=value pair.
type Extension struct {
	Key   string
	Value any
}

// Extensions is an ordered extension set. Records are written in slice order.
type Extensions []Extension

// ExtensionsFromMap converts a map into Extensions sorted by key.
func ExtensionsFromMap(m map[string]any) Extensions {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	exts := make(Extensions, 0, len(keys))
	for _, k := range keys {
		exts = append(exts, Extension{Key: k, Value: m[k]})
	}
	return exts
}

// Set replaces the value of key in place, or appends it.
func (x *Extensions) Set(key string, value any) {
	for i := range *x {
		if (*x)[i].Key == key {
			(*x)[i].Value = value
			return
		}
	}
	*x = append(*x, Extension{Key: key, Value: value})
}

// Get returns the value of key.
func (x Extensions) Get(key string) (any, bool) {
	for _, e := range x {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Merge returns a copy of x with every pair of other set on top of it.
func (x Extensions) Merge(other Extensions) Extensions {
	merged := make(Extensions, len(x), len(x)+len(other))
	copy(merged, x)
	for _, e := range other {
		merged.Set(e.Key, e.Value)
	}
	return merged
}

type eventJSON struct {
	Vendor     any            `json:"vendor"`
	Product    any            `json:"product"`
	Version    any            `json:"version"`
	Signature  any            `json:"signature"`
	Name       any            `json:"name"`
	Severity   any            `json:"severity"`
	Extensions map[string]any `json:"extensions"`
}

// UnmarshalJSON decodes {"vendor": .., "extensions": {..}}. Numbers are kept
// as json.Number so they are written exactly as they were read.
func (e *Event) UnmarshalJSON(data []byte) error {
	var raw eventJSON

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	*e = Event{
		Vendor:     raw.Vendor,
		Product:    raw.Product,
		Version:    raw.Version,
		Signature:  raw.Signature,
		Name:       raw.Name,
		Severity:   raw.Severity,
		Extensions: ExtensionsFromMap(raw.Extensions),
	}
	return nil
}

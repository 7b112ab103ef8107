package cef

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Version is the only CEF version we emit.
const Version = "0"

var (
	ErrMissingField    = errors.New("missing required key")
	ErrInvalidSeverity = errors.New("illegal severity value")
)

// RejectReason tells why an extension was dropped.
type RejectReason string

const (
	RejectUnknownKey   RejectReason = "unknown_key"
	RejectInvalidValue RejectReason = "invalid_value"
)

// FieldRejection describes an extension that was dropped from a record.
// It never fails the record itself.
type FieldRejection struct {
	Key    string
	Value  string
	Reason RejectReason
}

func (r FieldRejection) Error() string {
	if r.Reason == RejectUnknownKey {
		return "Not a valid CEF or ArcSight key: " + r.Key
	}
	return fmt.Sprintf("Not a valid value for %s: %s", r.Key, r.Value)
}

// Defaults are the device fields used when an event does not carry its
// own vendor, product and version.
type Defaults struct {
	Vendor  string
	Product string
	Version string
}

type FormatterOption func(*Formatter)

// WithLogger sets the logger rejections are reported to.
func WithLogger(logger zerolog.Logger) FormatterOption {
	return func(f *Formatter) {
		f.log = logger
	}
}

// WithRejectionHandler registers fn to be called for every dropped extension.
func WithRejectionHandler(fn func(FieldRejection)) FormatterOption {
	return func(f *Formatter) {
		f.onReject = fn
	}
}

// Formatter turns events into CEF records. It holds no per-call state and
// is safe for concurrent use.
type Formatter struct {
	defaults Defaults
	log      zerolog.Logger
	onReject func(FieldRejection)
}

func NewFormatter(defaults Defaults, opts ...FormatterOption) *Formatter {
	f := &Formatter{
		defaults: defaults,
		log:      log.Logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Defaults returns the device fields the formatter was built with.
func (f *Formatter) Defaults() Defaults {
	return f.defaults
}

// Format builds the record
//
//	CEF:0|vendor|product|version|signature|name|severity|key=value ...
//
// A missing prefix field or a severity outside [0,10] is an error and
// nothing is returned. Unknown keys and invalid values are dropped and
// reported; they never fail the event. The record is cut to MaxLength bytes.
func (f *Formatter) Format(ev Event) (string, error) {
	// device fields come as a set: if one is missing, use all defaults
	if isAbsent(ev.Vendor) || isAbsent(ev.Product) || isAbsent(ev.Version) {
		ev.Vendor = presentOrNil(f.defaults.Vendor)
		ev.Product = presentOrNil(f.defaults.Product)
		ev.Version = presentOrNil(f.defaults.Version)
	}

	required := []struct {
		key   string
		value any
	}{
		{"vendor", ev.Vendor},
		{"product", ev.Product},
		{"version", ev.Version},
		{"signature", ev.Signature},
		{"name", ev.Name},
		{"severity", ev.Severity},
	}

	prefix := make([]string, len(required))
	for i, field := range required {
		if field.value == nil {
			formatErrors.WithLabelValues("missing_field").Inc()
			return "", fmt.Errorf("%w '%s'", ErrMissingField, field.key)
		}
		prefix[i] = SanitizePrefixField(field.value)
	}

	severity, err := strconv.Atoi(strings.TrimSpace(prefix[5]))
	if err != nil || severity < 0 || severity > 10 {
		formatErrors.WithLabelValues("invalid_severity").Inc()
		return "", fmt.Errorf("%w '%s'; must be [0..10]", ErrInvalidSeverity, prefix[5])
	}

	output := fmt.Sprintf("CEF:%s|%s|%s|%s|%s|%s|%d",
		Version,
		prefix[0],
		prefix[1],
		prefix[2],
		prefix[3],
		prefix[4],
		severity,
	)

	if extension := f.formatExtensions(ev.Extensions); extension != "" {
		output += "|" + extension
	}

	if len(output) > MaxLength {
		eventsTruncated.Inc()
		output = truncate(output, MaxLength)
	}

	eventsFormatted.Inc()

	return output, nil
}

// formatExtensions returns "key1=value1 key2=value2" for every extension
// that passes its key's validator.
func (f *Formatter) formatExtensions(extensions Extensions) string {
	parts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		key := SanitizeKey(ext.Key)

		validate, ok := ValidatorForKey(key)
		if !ok {
			f.reject(FieldRejection{Key: key, Reason: RejectUnknownKey})
			continue
		}

		value := ToText(ext.Value)
		if !validate(value) {
			f.reject(FieldRejection{Key: key, Value: value, Reason: RejectInvalidValue})
			continue
		}

		parts = append(parts, key+"="+SanitizeExtensionValue(value))
	}

	return strings.Join(parts, " ")
}

func (f *Formatter) reject(r FieldRejection) {
	fieldsRejected.WithLabelValues(string(r.Reason)).Inc()

	event := f.log.Warn().Str("key", r.Key)
	if r.Reason == RejectInvalidValue {
		event = event.Str("value", r.Value)
	}
	event.Msg(r.Error())

	if f.onReject != nil {
		f.onReject(r)
	}
}

func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

func presentOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

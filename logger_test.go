package streamer

import (
	"bytes"
	"regexp"
	"sync"
	"testing"

	"github.com/juanfont/cef-streamer/pkg/cef"
	"github.com/juanfont/cef-streamer/pkg/syslog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureTransport struct {
	mu       sync.Mutex
	messages []string
}

func (c *captureTransport) Send(envelope []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, string(envelope))
	return nil
}

func (c *captureTransport) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.messages...)
}

func steinway(transport syslog.Transport) Config {
	return Config{
		Vendor:  "Steinway",
		Product: "Piano",
		Version: "B",
		Syslog: syslog.Config{
			Tag:       "test",
			Transport: transport,
		},
	}
}

var outOfTune = cef.Event{
	Name:      "Out of tune",
	Signature: "6/8",
}

func TestLoggerNamedLevels(t *testing.T) {
	capture := &captureTransport{}
	logger, err := NewLogger(steinway(capture))
	require.NoError(t, err)

	tests := []struct {
		name     string
		log      func(cef.Event) (string, error)
		want     string
		priority string
	}{
		{"emergency", logger.Emergency, "CEF:0|Steinway|Piano|B|6/8|Out of tune|10", "<8>"},
		{"alert", logger.Alert, "CEF:0|Steinway|Piano|B|6/8|Out of tune|9", "<9>"},
		{"critical", logger.Critical, "CEF:0|Steinway|Piano|B|6/8|Out of tune|8", "<10>"},
		{"error", logger.Error, "CEF:0|Steinway|Piano|B|6/8|Out of tune|7", "<11>"},
		{"warning", logger.Warning, "CEF:0|Steinway|Piano|B|6/8|Out of tune|6", "<12>"},
		{"warn", logger.Warn, "CEF:0|Steinway|Piano|B|6/8|Out of tune|6", "<12>"},
		{"notice", logger.Notice, "CEF:0|Steinway|Piano|B|6/8|Out of tune|5", "<13>"},
		{"info", logger.Info, "CEF:0|Steinway|Piano|B|6/8|Out of tune|4", "<14>"},
		{"debug", logger.Debug, "CEF:0|Steinway|Piano|B|6/8|Out of tune|3", "<15>"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.log(outOfTune)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			messages := capture.Messages()
			require.Len(t, messages, i+1)
			assert.Regexp(t, "^"+regexp.QuoteMeta(tt.priority)+` \w{3} \d{2} \d{2}:\d{2}:\d{2} test\[\d+\] `, messages[i])
			assert.Contains(t, messages[i], tt.want)
		})
	}
}

func TestLoggerLowLevelsAreNotSent(t *testing.T) {
	capture := &captureTransport{}
	logger, err := NewLogger(steinway(capture))
	require.NoError(t, err)

	for _, level := range []Level{0, 1, 2} {
		got, err := logger.Log(outOfTune, level)
		require.NoError(t, err)
		assert.Contains(t, got, "|Out of tune|")
	}

	assert.Empty(t, capture.Messages())
}

func TestLoggerFormatErrorSendsNothing(t *testing.T) {
	capture := &captureTransport{}
	logger, err := NewLogger(steinway(capture))
	require.NoError(t, err)

	got, err := logger.Info(cef.Event{Name: "no signature"})
	assert.ErrorIs(t, err, cef.ErrMissingField)
	assert.Empty(t, got)

	_, err = logger.Log(outOfTune, Level(11))
	assert.ErrorIs(t, err, cef.ErrInvalidSeverity)

	assert.Empty(t, capture.Messages())
}

func TestLoggerFacility(t *testing.T) {
	capture := &captureTransport{}
	cfg := Config{
		Vendor:  "Foo",
		Product: "bar",
		Version: "1.2.3",
		Syslog: syslog.Config{
			Tag:       "night-kitchen",
			Facility:  "local4",
			Transport: capture,
		},
	}
	logger, err := NewLogger(cfg)
	require.NoError(t, err)

	_, err = logger.Info(cef.Event{Name: "I like pie", Signature: 1234})
	require.NoError(t, err)

	messages := capture.Messages()
	require.Len(t, messages, 1)
	assert.Regexp(t, `^<166> \w{3} \d{2} \d{2}:\d{2}:\d{2} night-kitchen\[\d+\] CEF:0\|Foo\|bar\|1\.2\.3\|1234\|I like pie\|4$`, messages[0])
}

func TestLoggerMissingConfig(t *testing.T) {
	capture := &captureTransport{}
	logger, err := NewLogger(Config{Syslog: syslog.Config{Transport: capture}})
	require.NoError(t, err)
	require.NotNil(t, logger)

	messages := capture.Messages()
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "<12> ")
	assert.Contains(t, messages[0], "CEF:0|Unknown|Unknown|Unknown|cef-streamer|Missing parameters for new logger: vendor, product, version|6")

	partial, err := NewLogger(Config{Vendor: "Blammo", Syslog: syslog.Config{Transport: capture}})
	require.NoError(t, err)
	assert.Equal(t, "Blammo", partial.Formatter().Defaults().Vendor)
	assert.Contains(t, capture.Messages()[1], "Missing parameters for new logger: product, version")
}

func TestLoggerBadSyslogConfig(t *testing.T) {
	_, err := NewLogger(Config{Syslog: syslog.Config{Facility: "bogus"}})
	assert.ErrorIs(t, err, syslog.ErrUnknownFacility)
}

func TestLoggerLogEvent(t *testing.T) {
	capture := &captureTransport{}
	logger, err := NewLogger(steinway(capture))
	require.NoError(t, err)

	ev := outOfTune
	ev.Severity = "alert"
	got, err := logger.LogEvent(ev)
	require.NoError(t, err)
	assert.Equal(t, "CEF:0|Steinway|Piano|B|6/8|Out of tune|9", got)

	ev.Severity = 7
	got, err = logger.LogEvent(ev)
	require.NoError(t, err)
	assert.Equal(t, "CEF:0|Steinway|Piano|B|6/8|Out of tune|7", got)

	ev.Severity = "loud"
	_, err = logger.LogEvent(ev)
	assert.ErrorIs(t, err, cef.ErrInvalidSeverity)

	ev.Severity = nil
	_, err = logger.LogEvent(ev)
	assert.ErrorIs(t, err, cef.ErrMissingField)

	assert.Len(t, capture.Messages(), 2)
}

func TestLoggerRejections(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf)
	var rejected []cef.FieldRejection

	cfg := steinway(&captureTransport{})
	cfg.Logger = &zl
	cfg.OnReject = func(r cef.FieldRejection) {
		rejected = append(rejected, r)
	}

	logger, err := NewLogger(cfg)
	require.NoError(t, err)

	ev := outOfTune
	ev.Extensions = cef.Extensions{{Key: "fdsart", Value: 1}, {Key: "spt", Value: 99999}}
	got, err := logger.Info(ev)
	require.NoError(t, err)
	assert.Equal(t, "CEF:0|Steinway|Piano|B|6/8|Out of tune|4", got)

	require.Len(t, rejected, 2)
	assert.Equal(t, cef.RejectUnknownKey, rejected[0].Reason)
	assert.Equal(t, cef.RejectInvalidValue, rejected[1].Reason)
	assert.Contains(t, buf.String(), "Not a valid value for spt: 99999")
}

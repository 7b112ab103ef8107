package streamer

import (
	"fmt"
	"strings"

	"github.com/juanfont/cef-streamer/pkg/cef"
	"github.com/juanfont/cef-streamer/pkg/syslog"
	"github.com/rs/zerolog"
)

const unknownDevice = "Unknown"

// Config is everything a Logger needs: the CEF device fields and the
// syslog destination.
type Config struct {
	Vendor  string
	Product string
	Version string

	Syslog syslog.Config

	// OnReject is called for every extension the formatter drops.
	OnReject func(cef.FieldRejection)

	// Logger receives rejections. Defaults to the global zerolog logger.
	Logger *zerolog.Logger
}

// Logger formats events as CEF and forwards them to syslog.
type Logger struct {
	formatter *cef.Formatter
	syslog    *syslog.SysLogger
}

// NewLogger builds a logger with its own syslog transport. Missing device
// fields are set to "Unknown" and reported with a warning event.
func NewLogger(cfg Config) (*Logger, error) {
	return newLogger(cfg, nil)
}

func newLogger(cfg Config, syslogs *syslog.Registry) (*Logger, error) {
	missing := cfg.fillDefaults()

	var sl *syslog.SysLogger
	var err error
	if syslogs != nil {
		sl, err = syslogs.GetInstance(cfg.Syslog)
	} else {
		sl, err = syslog.New(cfg.Syslog)
	}
	if err != nil {
		return nil, err
	}

	opts := []cef.FormatterOption{}
	if cfg.Logger != nil {
		opts = append(opts, cef.WithLogger(*cfg.Logger))
	}
	if cfg.OnReject != nil {
		opts = append(opts, cef.WithRejectionHandler(cfg.OnReject))
	}

	l := &Logger{
		formatter: cef.NewFormatter(cef.Defaults{
			Vendor:  cfg.Vendor,
			Product: cfg.Product,
			Version: cfg.Version,
		}, opts...),
		syslog: sl,
	}

	if len(missing) != 0 {
		l.Warning(cef.Event{
			Signature: "cef-streamer",
			Name:      "Missing parameters for new logger: " + strings.Join(missing, ", "),
		})
	}

	return l, nil
}

// fillDefaults sets absent device fields to "Unknown" and returns their names.
func (c *Config) fillDefaults() []string {
	var missing []string
	for _, field := range []struct {
		name  string
		value *string
	}{
		{"vendor", &c.Vendor},
		{"product", &c.Product},
		{"version", &c.Version},
	} {
		if *field.value == "" {
			*field.value = unknownDevice
			missing = append(missing, field.name)
		}
	}
	return missing
}

func (l *Logger) Formatter() *cef.Formatter {
	return l.formatter
}

func (l *Logger) Syslog() *syslog.SysLogger {
	return l.syslog
}

// Format returns the CEF record of ev without sending it.
func (l *Logger) Format(ev cef.Event) (string, error) {
	return l.formatter.Format(ev)
}

// Log formats ev with the given level and, for levels 3 and up, sends it
// to syslog. The record is returned either way; a malformed prefix is
// returned as an error and nothing is sent.
func (l *Logger) Log(ev cef.Event, level Level) (string, error) {
	ev.Severity = int(level)

	message, err := l.formatter.Format(ev)
	if err != nil {
		return "", err
	}

	if severity, ok := level.SyslogSeverity(); ok {
		l.syslog.Log(message, severity)
	} else {
		eventsSuppressed.Inc()
	}

	return message, nil
}

// LogEvent logs ev at the level named by its own Severity field, which
// may be a number or a level name.
func (l *Logger) LogEvent(ev cef.Event) (string, error) {
	if ev.Severity == nil {
		return l.formatter.Format(ev)
	}

	level, err := ParseLevel(cef.ToText(ev.Severity))
	if err != nil {
		return "", fmt.Errorf("%w: %w", cef.ErrInvalidSeverity, err)
	}
	return l.Log(ev, level)
}

func (l *Logger) Emergency(ev cef.Event) (string, error) { return l.Log(ev, Emergency) }
func (l *Logger) Alert(ev cef.Event) (string, error)     { return l.Log(ev, Alert) }
func (l *Logger) Critical(ev cef.Event) (string, error)  { return l.Log(ev, Critical) }
func (l *Logger) Error(ev cef.Event) (string, error)     { return l.Log(ev, Error) }
func (l *Logger) Warning(ev cef.Event) (string, error)   { return l.Log(ev, Warning) }
func (l *Logger) Warn(ev cef.Event) (string, error)      { return l.Warning(ev) }
func (l *Logger) Notice(ev cef.Event) (string, error)    { return l.Log(ev, Notice) }
func (l *Logger) Info(ev cef.Event) (string, error)      { return l.Log(ev, Info) }
func (l *Logger) Debug(ev cef.Event) (string, error)     { return l.Log(ev, Debug) }

// Close releases the syslog transport.
func (l *Logger) Close() error {
	return l.syslog.Close()
}

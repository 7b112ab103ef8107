package streamer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/juanfont/cef-streamer/pkg/syslog"
)

// Level is a CEF severity. CEF counts 0 .. 10 while syslog has 8 levels,
// so the top 8 CEF levels line up with the syslog severities and 0 .. 2
// are never sent to syslog.
type Level int

const (
	Debug     Level = 3
	Info      Level = 4
	Notice    Level = 5
	Warning   Level = 6
	Error     Level = 7
	Critical  Level = 8
	Alert     Level = 9
	Emergency Level = 10
)

var levelNames = map[string]Level{
	"emergency": Emergency,
	"alert":     Alert,
	"critical":  Critical,
	"error":     Error,
	"warning":   Warning,
	"warn":      Warning,
	"notice":    Notice,
	"info":      Info,
	"debug":     Debug,
}

var ErrUnknownLevel = errors.New("unknown severity level")

// ParseLevel accepts a level name or a number from 0 to 10.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if l, ok := levelNames[s]; ok {
		return l, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > int(Emergency) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
	return Level(n), nil
}

// SyslogSeverity maps 3 .. 10 to syslog 7 .. 0. Levels below 3 report false
// and must not be sent.
func (l Level) SyslogSeverity() (syslog.Severity, bool) {
	if l < Debug || l > Emergency {
		return 0, false
	}
	return syslog.Severity(Emergency - l), true
}

func (l Level) String() string {
	for name, level := range levelNames {
		if level == l && name != "warn" {
			return name
		}
	}
	return strconv.Itoa(int(l))
}

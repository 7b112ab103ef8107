package syslog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Facility is an RFC 3164 facility code.
type Facility int

const (
	Kern   Facility = 0
	User   Facility = 1
	Mail   Facility = 2
	Daemon Facility = 3
	Auth   Facility = 4
	Syslog Facility = 5
	LPR    Facility = 6
	News   Facility = 7
	UUCP   Facility = 8
	Local0 Facility = 16
	Local1 Facility = 17
	Local2 Facility = 18
	Local3 Facility = 19
	Local4 Facility = 20
	Local5 Facility = 21
	Local6 Facility = 22
	Local7 Facility = 23
)

var facilityNames = map[string]Facility{
	"kern":   Kern,
	"user":   User,
	"mail":   Mail,
	"daemon": Daemon,
	"auth":   Auth,
	"syslog": Syslog,
	"lpr":    LPR,
	"news":   News,
	"uucp":   UUCP,
	"local0": Local0,
	"local1": Local1,
	"local2": Local2,
	"local3": Local3,
	"local4": Local4,
	"local5": Local5,
	"local6": Local6,
	"local7": Local7,
}

// Severity is a syslog severity, 0 (emerg) to 7 (debug).
type Severity int

const (
	Emerg  Severity = 0
	Alert  Severity = 1
	Crit   Severity = 2
	Err    Severity = 3
	Warn   Severity = 4
	Notice Severity = 5
	Info   Severity = 6
	Debug  Severity = 7
)

var severityNames = map[string]Severity{
	"emerg":     Emerg,
	"emergency": Emerg,
	"alert":     Alert,
	"crit":      Crit,
	"critical":  Crit,
	"err":       Err,
	"error":     Err,
	"warn":      Warn,
	"warning":   Warn,
	"notice":    Notice,
	"info":      Info,
	"debug":     Debug,
}

var (
	ErrUnknownFacility = errors.New("unknown syslog facility")
	ErrUnknownSeverity = errors.New("unknown syslog severity")
)

// ParseFacility accepts a facility name (kern .. local7) or its number.
// The empty string is the user facility.
func ParseFacility(s string) (Facility, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return User, nil
	}

	if f, ok := facilityNames[s]; ok {
		return f, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > int(Local7) {
		return 0, fmt.Errorf("%w: %s", ErrUnknownFacility, s)
	}
	return Facility(n), nil
}

// ParseSeverity accepts a severity name or its number.
func ParseSeverity(s string) (Severity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if sev, ok := severityNames[s]; ok {
		return sev, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || !Severity(n).Valid() {
		return 0, fmt.Errorf("%w: %s", ErrUnknownSeverity, s)
	}
	return Severity(n), nil
}

func (s Severity) Valid() bool {
	return s >= Emerg && s <= Debug
}

// Priority is the PRI value of the syslog header.
func Priority(f Facility, s Severity) int {
	return int(f)*8 + int(s)
}

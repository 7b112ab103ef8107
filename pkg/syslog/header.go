package syslog

import (
	"fmt"
	"strconv"
	"time"

	"github.com/influxdata/go-syslog/rfc5424"
)

// Format selects the envelope written around each message.
type Format string

const (
	FormatRFC3164 Format = "rfc3164"
	FormatRFC5424 Format = "rfc5424"
)

// rfc3164Stamp is "Mmm dd HH:MM:SS" with a zero padded day.
const rfc3164Stamp = "Jan 02 15:04:05"

type Header struct {
	Priority  int
	Timestamp time.Time
	Hostname  string
	Tag       string
	PID       int
}

// RFC3164 returns "<PRI> Mmm dd HH:MM:SS tag[pid] message".
func (h Header) RFC3164(message string) string {
	return fmt.Sprintf("<%d> %s %s[%d] %s",
		h.Priority,
		h.Timestamp.Format(rfc3164Stamp),
		h.Tag,
		h.PID,
		message,
	)
}

// RFC5424 returns "<PRI>1 timestamp hostname tag pid - - message".
func (h Header) RFC5424(message string) (string, error) {
	msg := rfc5424.SyslogMessage{}

	msg.SetPriority(uint8(h.Priority))
	msg.SetVersion(1)

	msg.SetTimestamp(h.Timestamp.UTC().Format(time.RFC3339))
	msg.SetHostname(h.Hostname)
	msg.SetAppname(h.Tag)
	msg.SetProcID(strconv.Itoa(h.PID))
	msg.SetMessage(message)

	return msg.String()
}

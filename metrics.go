package streamer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	prometheusNamespace = "cef_streamer"
)

// events read from the watched events file
var eventsReceived = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: prometheusNamespace,
	Name:      "events_received",
	Help:      "Number of events read from the events file",
})

var eventParseErrors = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: prometheusNamespace,
	Name:      "event_parse_errors",
	Help:      "Number of lines of the events file that could not be parsed",
})

var eventsForwarded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: prometheusNamespace,
	Name:      "events_forwarded",
	Help:      "Number of events formatted and handed to syslog",
})

// events under CEF severity 3 are formatted but never reach syslog
var eventsSuppressed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: prometheusNamespace,
	Name:      "events_suppressed",
	Help:      "Number of events below the syslog threshold",
})

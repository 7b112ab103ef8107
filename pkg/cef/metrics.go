package cef

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	prometheusNamespace = "cef_streamer"
	prometheusSubsystem = "formatter"
)

var eventsFormatted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: prometheusNamespace,
	Subsystem: prometheusSubsystem,
	Name:      "events_formatted",
	Help:      "Number of CEF records produced",
})

var eventsTruncated = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: prometheusNamespace,
	Subsystem: prometheusSubsystem,
	Name:      "events_truncated",
	Help:      "Number of CEF records cut to the maximum length",
})

var formatErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: prometheusNamespace,
	Subsystem: prometheusSubsystem,
	Name:      "format_errors",
	Help:      "Number of events refused because of a malformed prefix",
}, []string{"reason"})

// fields dropped from otherwise valid records
var fieldsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: prometheusNamespace,
	Subsystem: prometheusSubsystem,
	Name:      "fields_rejected",
	Help:      "Number of extension fields dropped",
}, []string{"reason"})

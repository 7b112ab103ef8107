package syslog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	prometheusNamespace = "cef_streamer"
	prometheusSubsystem = "syslog"
)

var messagesSent = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: prometheusNamespace,
	Subsystem: prometheusSubsystem,
	Name:      "messages_sent",
	Help:      "Number of syslog messages handed to the transport",
})

var sendErrors = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: prometheusNamespace,
	Subsystem: prometheusSubsystem,
	Name:      "send_errors",
	Help:      "Number of syslog messages that could not be sent",
})

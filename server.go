package streamer

import (
	"fmt"
	"html"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/juanfont/cef-streamer/pkg/cef"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const (
	httpRequestSignature = "http_request"
	httpRequestName      = "HTTP request received"
)

// NewServer returns a router that logs a Notice event for every request
// and serves Prometheus metrics on /metrics.
func NewServer(logger *Logger) http.Handler {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.PathPrefix("/").HandlerFunc(eventHandler(logger))

	return router
}

func eventHandler(logger *Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		extensions := ExtensionsFromHTTPRequest(req)
		if user, _, ok := req.BasicAuth(); ok {
			extensions.Set("suser", user)
		}

		message, err := logger.Notice(cef.Event{
			Signature:  httpRequestSignature,
			Name:       httpRequestName,
			Extensions: extensions,
		})
		if err != nil {
			log.Error().Caller().Err(err).Msg("Failed to log request event")
			http.Error(w, "could not log event", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "<html><body><h1>Event Logged</h1><p>%s</p></body></html>", html.EscapeString(message))
	}
}

package streamer

import (
	"github.com/rs/zerolog/log"
)

func (s *EventStreamer) forwardEvents(events []fileEvent) {
	forwarded := 0
	for _, e := range events {
		message, err := s.forwardEvent(e)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to format event")
			continue
		}

		forwarded++
		eventsForwarded.Inc()
		log.Debug().Str("cef", message).Msg("Event forwarded")
	}

	if len(events) != 0 {
		log.Info().
			Int("events", len(events)).
			Int("forwarded", forwarded).
			Msg("Forwarded events to syslog")
	}
}

func (s *EventStreamer) forwardEvent(e fileEvent) (string, error) {
	if e.level == "" {
		return s.logger.LogEvent(e.event)
	}

	level, err := ParseLevel(e.level)
	if err != nil {
		return "", err
	}
	return s.logger.Log(e.event, level)
}

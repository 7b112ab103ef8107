package streamer

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/juanfont/cef-streamer/pkg/cef"
	"github.com/rs/zerolog/log"
)

// fileEvent is one line of the events file:
//
//	{"signature": "42", "name": "Stolen!!", "level": "alert", "extensions": {"suser": "milton"}}
//
// "level" is optional and wins over "severity".
type fileEvent struct {
	event cef.Event
	level string
}

// loadEvents reads the complete lines after the stored cursor, forwards
// them and advances the cursor. A trailing line without a newline is left
// for the next call.
func (s *EventStreamer) loadEvents() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cursor, err := s.getCursor(s.cfg.EventsPath)
	if err != nil {
		return err
	}

	file, err := os.Open(s.cfg.EventsPath)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}
	if info.Size() < cursor.Offset {
		log.Warn().
			Str("path", s.cfg.EventsPath).
			Int64("offset", cursor.Offset).
			Msg("Events file shrank, reading it from the start")
		cursor.Offset = 0
	}

	if _, err := file.Seek(cursor.Offset, io.SeekStart); err != nil {
		return err
	}

	events := []fileEvent{}
	offset := cursor.Offset
	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		offset += int64(len(line))

		line = strings.TrimSpace(line)
		if line == "" {
			log.Warn().Msg("Empty line in events file")
			continue
		}

		event, err := parseEventLine(line)
		if err != nil {
			eventParseErrors.Inc()
			log.Warn().Err(err).Msgf("Failed to parse event. Content: %s", line)
			continue
		}

		eventsReceived.Inc()
		events = append(events, event)
	}

	s.forwardEvents(events)

	cursor.Offset = offset
	return s.saveCursor(cursor)
}

func parseEventLine(line string) (fileEvent, error) {
	var event cef.Event
	if err := json.Unmarshal([]byte(line), &event); err != nil {
		return fileEvent{}, err
	}

	var meta struct {
		Level string `json:"level"`
	}
	if err := json.Unmarshal([]byte(line), &meta); err != nil {
		return fileEvent{}, err
	}

	return fileEvent{event: event, level: meta.Level}, nil
}

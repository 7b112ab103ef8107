package streamer

import (
	"context"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type WatchConfig struct {
	// EventsPath is a file with one JSON event per line.
	EventsPath string
	// DBPath is the SQLite file holding the read position.
	DBPath string
}

// EventStreamer forwards the events appended to a file through a Logger.
type EventStreamer struct {
	cfg    WatchConfig
	db     *gorm.DB
	logger *Logger

	mu sync.Mutex
}

func NewEventStreamer(cfg WatchConfig, logger *Logger) (*EventStreamer, error) {
	// we check if the file exists
	// if not, we return an error
	if _, err := os.Stat(cfg.EventsPath); err != nil {
		return nil, err
	}

	streamer := &EventStreamer{
		cfg:    cfg,
		logger: logger,
	}

	err := streamer.initDB()
	if err != nil {
		return nil, err
	}

	return streamer, nil
}

// Watch forwards what is already in the file past the stored cursor, then
// every new line as it is written, until ctx is done.
func (s *EventStreamer) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	err = watcher.Add(s.cfg.EventsPath)
	if err != nil {
		return err
	}

	if err := s.loadEvents(); err != nil {
		log.Warn().Caller().Err(err).Msg("Error while loading events")
	}

	log.Info().Caller().Msgf("Watching for changes in %s", s.cfg.EventsPath)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			s.handleEvent(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Caller().Err(err).Msgf("Error while watching")
		}
	}
}

func (s *EventStreamer) handleEvent(event fsnotify.Event) {
	if event.Name != s.cfg.EventsPath {
		return
	}

	if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
		log.Debug().Caller().Msgf("Events file %s modified", event.Name)
		if err := s.loadEvents(); err != nil {
			log.Warn().Caller().Err(err).Msg("Error while loading events")
		}
	}
}

func (s *EventStreamer) Close() error {
	return s.closeDB()
}

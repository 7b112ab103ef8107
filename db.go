package streamer

import (
	"errors"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Cursor is how far into an events file we have forwarded. Events
// themselves are never stored.
type Cursor struct {
	Path      string `gorm:"primaryKey"`
	Offset    int64
	UpdatedAt time.Time
}

func (s *EventStreamer) initDB() error {
	db, err := s.openDB()
	if err != nil {
		return err
	}

	s.db = db
	return nil
}

func (s *EventStreamer) openDB() (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Silent)

	db, err := gorm.Open(
		sqlite.Open(s.cfg.DBPath+"?_pragma=journal_mode(WAL)&_pragma=synchronous(1)"),
		&gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			Logger:                                   gormLogger,
		},
	)
	if err != nil {
		return nil, err
	}

	// The pure Go SQLite library does not handle locking in
	// the same way as the C based one.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxIdleTime(time.Hour)

	err = db.AutoMigrate(&Cursor{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func (s *EventStreamer) getCursor(path string) (Cursor, error) {
	var cursor Cursor
	err := s.db.First(&cursor, "path = ?", path).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Cursor{Path: path}, nil
	}
	return cursor, err
}

func (s *EventStreamer) saveCursor(cursor Cursor) error {
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&cursor).Error
}

func (s *EventStreamer) closeDB() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

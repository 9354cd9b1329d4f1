package compiler

import (
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// HistoryEntry is one accepted REPL buffer: the input text, how many
// diagnostics compiling it produced, and when it was entered. Persisting
// entries to a local SQLite file lets a REPL session survive restart and
// be replayed or inspected afterwards.
type HistoryEntry struct {
	ID          uint `gorm:"primarykey"`
	Input       string
	Diagnostics int
	CreatedAt   time.Time
}

// History wraps the SQLite-backed REPL history store.
type History struct {
	db *gorm.DB
}

// OpenHistory opens (creating if needed) the history database at path.
func OpenHistory(path string) (*History, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&HistoryEntry{}); err != nil {
		return nil, err
	}
	return &History{db: db}, nil
}

// Append records one accepted buffer.
func (h *History) Append(input string, diagnostics int) error {
	return h.db.Create(&HistoryEntry{Input: input, Diagnostics: diagnostics}).Error
}

// Recent returns the latest n entries, newest first.
func (h *History) Recent(n int) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	err := h.db.Order("id desc").Limit(n).Find(&entries).Error
	return entries, err
}

// Close releases the underlying database connection.
func (h *History) Close() error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Package localstore persists the handful of values the browser kept in
// local storage: the session token, the cached user profile and the theme
// preference. Backing store is a single sqlite file.
package localstore

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Well-known keys, matching the original local storage slots.
const (
	KeyToken = "token"
	KeyUser  = "user"
	KeyTheme = "theme"
)

// ErrNotFound reports a missing key.
var ErrNotFound = errors.New("localstore: key not found")

type entry struct {
	Key       string `gorm:"primaryKey;column:key"`
	Value     string `gorm:"column:value"`
	UpdatedAt time.Time
}

func (entry) TableName() string { return "local_entries" }

// Store wraps the sqlite-backed key/value table.
type Store struct {
	conn *gorm.DB
	path string
}

// Open creates or opens the store file, migrating the schema as needed.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("state path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	silent := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)
	conn, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:                 silent,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}
	if err := conn.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("migrating state db: %w", err)
	}
	return &Store{conn: conn, path: path}, nil
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Get reads one value; ErrNotFound when the key has never been set.
func (s *Store) Get(key string) (string, error) {
	var row entry
	err := s.conn.First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", key, err)
	}
	return row.Value, nil
}

// Put writes one value, replacing any previous one.
func (s *Store) Put(key, value string) error {
	row := entry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := s.conn.Save(&row).Error
	if err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}

// Delete removes a key; deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	err := s.conn.Delete(&entry{}, "key = ?", key).Error
	if err != nil {
		return fmt.Errorf("deleting %q: %w", key, err)
	}
	return nil
}

// Close shuts down the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

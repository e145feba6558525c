package transcriptcache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"scriptsync/internal/align"
)

// Key identifies one cached transcription. Language is empty when the
// transcriber auto-detected.
type Key struct {
	AudioHash string
	Model     string
	Language  string
}

// Store manages cached transcription results backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the cache database at path, creating
// parent directories as needed.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("transcript cache: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Get returns the cached segments for key. The second return reports
// whether an entry existed.
func (s *Store) Get(ctx context.Context, key Key) ([]align.Segment, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT segments_json FROM transcripts WHERE audio_hash = ? AND model = ? AND language = ?",
		key.AudioHash, key.Model, key.Language,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query transcript: %w", err)
	}

	var segments []align.Segment
	if err := json.Unmarshal([]byte(payload), &segments); err != nil {
		return nil, false, fmt.Errorf("decode cached transcript: %w", err)
	}
	return segments, true, nil
}

// Put stores segments under key, replacing any previous entry.
func (s *Store) Put(ctx context.Context, key Key, segments []align.Segment) error {
	payload, err := json.Marshal(segments)
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO transcripts (audio_hash, model, language, segments_json, created_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT (audio_hash, model, language)
         DO UPDATE SET segments_json = excluded.segments_json, created_at = excluded.created_at`,
		key.AudioHash, key.Model, key.Language, string(payload), timestamp,
	)
	if err != nil {
		return fmt.Errorf("store transcript: %w", err)
	}
	return nil
}

// Count returns the number of cached transcripts.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM transcripts").Scan(&count); err != nil {
		return 0, fmt.Errorf("count transcripts: %w", err)
	}
	return count, nil
}

// Clear removes every cached transcript.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM transcripts"); err != nil {
		return fmt.Errorf("clear transcripts: %w", err)
	}
	return nil
}

// HashFile computes the cache hash of the file at path.
func HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for hashing: %w", err)
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

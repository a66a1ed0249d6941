package transcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"scrub/internal/transcribe"
)

// ErrMiss is returned by Get when no cached transcript exists for the key.
var ErrMiss = errors.New("transcript cache miss")

// Store caches word-level transcripts keyed by media fingerprint and model
// name, so re-analyzing the same file with a different word list skips the
// hour-long transcription step.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS transcripts (
	fingerprint TEXT NOT NULL,
	model       TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	payload     BLOB NOT NULL,
	PRIMARY KEY (fingerprint, model)
);`

// Open initializes or connects to the cache database in cacheDir. The cache
// is exclusively locked for the lifetime of the store; concurrent runs fall
// back to transcribing without the cache rather than corrupting it.
func Open(cacheDir string) (*Store, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache directory: %w", err)
	}

	lock := flock.New(filepath.Join(cacheDir, "transcripts.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire cache lock: %w", err)
	}
	if !locked {
		return nil, errors.New("transcript cache is locked by another run")
	}

	dbPath := filepath.Join(cacheDir, "transcripts.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("apply cache schema: %w", err)
	}

	return &Store{db: db, lock: lock, path: dbPath}, nil
}

// Close releases the database connection and the cache lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var firstErr error
	if s.db != nil {
		firstErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Get returns the cached transcript for (fingerprint, model), or ErrMiss.
func (s *Store) Get(ctx context.Context, fingerprint, model string) (transcribe.Transcript, error) {
	var transcript transcribe.Transcript
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM transcripts WHERE fingerprint = ? AND model = ?`,
		fingerprint, model,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return transcript, ErrMiss
	}
	if err != nil {
		return transcript, fmt.Errorf("query transcript cache: %w", err)
	}
	if err := json.Unmarshal(payload, &transcript.Words); err != nil {
		return transcript, fmt.Errorf("decode cached transcript: %w", err)
	}
	return transcript, nil
}

// Put stores or replaces the transcript for (fingerprint, model).
func (s *Store) Put(ctx context.Context, fingerprint, model string, transcript transcribe.Transcript) error {
	payload, err := json.Marshal(transcript.Words)
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO transcripts (fingerprint, model, created_at, payload)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (fingerprint, model) DO UPDATE SET
		   created_at = excluded.created_at,
		   payload = excluded.payload`,
		fingerprint, model, time.Now().UTC().Format(time.RFC3339), payload,
	)
	if err != nil {
		return fmt.Errorf("store transcript: %w", err)
	}
	return nil
}

// Package keystore holds the process-wide API key and the most recently
// observed NASA rate-limit counters. One Store is constructed at startup and
// handed to every consumer; clients never touch it directly — the consumer
// reads the key before a call and records rate-limit headers after one.
package keystore

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// DemoKey is the fallback credential used when no real API key has been
// configured. NASA accepts it with a heavily reduced quota.
const DemoKey = "DEMO_KEY"

// Snapshot is the most recently observed rate-limit state, taken verbatim
// from X-RateLimit-* response headers.
type Snapshot struct {
	Remaining int
	Limit     int
	ResetTime string
}

// Store holds the active API key and rate-limit snapshot.
type Store struct {
	storage Storage
	logger  zerolog.Logger

	mu       sync.Mutex
	key      string
	snapshot *Snapshot
}

// New resolves the active key and returns a Store. Resolution order: the
// deployment-time key (config or environment), then a previously persisted
// user key, then DemoKey. No network call is made.
func New(deployKey string, storage Storage, logger zerolog.Logger) *Store {
	s := &Store{
		storage: storage,
		logger:  logger,
		key:     DemoKey,
	}

	if deployKey != "" {
		s.key = deployKey
		logger.Debug().Msg("using deployment-configured API key")
		return s
	}

	saved, err := storage.Load()
	switch {
	case err == nil && saved != DemoKey:
		s.key = saved
		logger.Debug().Msg("using saved API key")
	case err != nil && !errors.Is(err, ErrNoSavedKey):
		logger.Warn().Err(err).Msg("failed to load saved API key, falling back to demo key")
	}

	return s
}

// Key returns the active API key.
func (s *Store) Key() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key
}

// IsDemo reports whether the active key is the demo fallback.
func (s *Store) IsDemo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key == DemoKey
}

// SetKey replaces the active key wholesale. Setting DemoKey clears any
// persisted override so future sessions fall back to deployment/demo
// resolution; any other value is persisted for future sessions. Calls already
// in flight keep the key they captured.
func (s *Store) SetKey(key string) error {
	s.mu.Lock()
	s.key = key
	s.mu.Unlock()

	if key == DemoKey {
		if err := s.storage.Clear(); err != nil {
			return err
		}
		s.logger.Info().Msg("API key reset to demo key")
		return nil
	}

	if err := s.storage.Save(key); err != nil {
		return err
	}
	s.logger.Info().Msg("API key updated")
	return nil
}

// RecordRateLimit overwrites the snapshot wholesale. Updates are last-write-
// wins in arrival order: a slow response for an older request can overwrite a
// newer one with a larger Remaining. That matches what the headers actually
// said and is left as-is.
func (s *Store) RecordRateLimit(remaining, limit int, resetTime string) {
	s.mu.Lock()
	s.snapshot = &Snapshot{Remaining: remaining, Limit: limit, ResetTime: resetTime}
	s.mu.Unlock()
	s.logger.Debug().
		Int("remaining", remaining).
		Int("limit", limit).
		Msg("rate limit observed")
}

// RateLimit returns the last observed snapshot, or ok=false before any
// response carrying rate-limit headers has been seen.
func (s *Store) RateLimit() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return Snapshot{}, false
	}
	return *s.snapshot, true
}

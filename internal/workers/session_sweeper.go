package workers

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-profile-keeper/internal/logger"
	"github.com/MKhiriev/go-profile-keeper/internal/session"
	"github.com/MKhiriev/go-profile-keeper/internal/store"
)

// SessionSweeper evicts cached sessions that are no longer the current token
// of their user. Such entries appear when another process replaced or
// deleted the token, or when the token expired in the store.
type SessionSweeper struct {
	cache    session.Cache
	tokens   store.TokenStore
	interval time.Duration

	logger *logger.Logger
}

func NewSessionSweeper(cache session.Cache, tokens store.TokenStore, interval time.Duration, logger *logger.Logger) *SessionSweeper {
	return &SessionSweeper{
		cache:    cache,
		tokens:   tokens,
		interval: interval,
		logger:   logger,
	}
}

func (s *SessionSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("session sweeper started")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("session sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs a single pass and returns the number of evicted sessions.
// When the token store is unreachable the pass stops early and keeps every
// remaining entry.
func (s *SessionSweeper) Sweep(ctx context.Context) int {
	log := s.logger.With().Str("func", "*SessionSweeper.Sweep").Logger()

	current := make(map[string]string)
	evicted := 0
	for token, username := range s.cache.Entries() {
		want, seen := current[username]
		if !seen {
			got, err := s.tokens.Get(ctx, username)
			switch {
			case errors.Is(err, store.ErrTokenNotFound):
				got = ""
			case err != nil:
				log.Warn().Err(err).Str("username", username).Msg("token store unavailable, sweep aborted")
				return evicted
			}
			current[username] = got
			want = got
		}

		if token != want {
			s.cache.Remove(token)
			evicted++
		}
	}

	if evicted > 0 {
		log.Debug().Int("evicted", evicted).Msg("stale sessions evicted")
	}
	return evicted
}

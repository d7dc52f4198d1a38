package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-profile-keeper/internal/config"
	"github.com/MKhiriev/go-profile-keeper/internal/logger"
	"github.com/redis/go-redis/v9"
)

// redisTokenStore keeps one key per user holding the current session token.
type redisTokenStore struct {
	client  redis.Cmdable
	prefix  string
	ttl     time.Duration
	timeout time.Duration
	logger  *logger.Logger
}

// NewRedisClient dials redis and verifies the connection with PING.
func NewRedisClient(ctx context.Context, cfg config.Redis, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.Timeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisClient").Str("addr", cfg.Address).Msg("error connecting redis (ping)")
		client.Close()
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	log.Info().Str("func", "NewRedisClient").Msg("connected to redis successfully")

	return client, nil
}

// NewRedisTokenStore builds a [TokenStore] over client. A zero cfg.TokenTTL
// keeps tokens until they are replaced or deleted.
func NewRedisTokenStore(client redis.Cmdable, cfg config.Redis, logger *logger.Logger) TokenStore {
	logger.Debug().Msg("creating redis token store")
	return &redisTokenStore{
		client:  client,
		prefix:  cfg.KeyPrefix,
		ttl:     cfg.TokenTTL,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

func (s *redisTokenStore) Set(ctx context.Context, username, token string) error {
	log := logger.FromContext(ctx)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.client.Set(ctx, s.key(username), token, s.ttl).Err(); err != nil {
		log.Err(err).Str("func", "*redisTokenStore.Set").Msg("error storing session token")
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return nil
}

func (s *redisTokenStore) Get(ctx context.Context, username string) (string, error) {
	log := logger.FromContext(ctx)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	token, err := s.client.Get(ctx, s.key(username)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", ErrTokenNotFound
	case err != nil:
		log.Err(err).Str("func", "*redisTokenStore.Get").Msg("error reading session token")
		return "", fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return token, nil
}

func (s *redisTokenStore) Delete(ctx context.Context, username string) error {
	log := logger.FromContext(ctx)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.client.Del(ctx, s.key(username)).Err(); err != nil {
		log.Err(err).Str("func", "*redisTokenStore.Delete").Msg("error deleting session token")
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return nil
}

func (s *redisTokenStore) key(username string) string {
	return s.prefix + username
}

func (s *redisTokenStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

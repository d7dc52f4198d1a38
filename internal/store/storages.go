package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-profile-keeper/internal/config"
	"github.com/MKhiriev/go-profile-keeper/internal/crypto"
	"github.com/MKhiriev/go-profile-keeper/internal/logger"
)

// Storages groups the three stores the service layer depends on.
type Storages struct {
	CredentialStore CredentialStore
	ProfileStore    ProfileStore
	TokenStore      TokenStore

	closers []io.Closer
}

// NewStorages connects the configured database (running migrations) and
// redis, and wires the repositories on top of them.
func NewStorages(ctx context.Context, cfg config.StructuredConfig, log *logger.Logger) (*Storages, error) {
	hasher, err := crypto.NewPasswordHasher(cfg.App.PasswordHashAlgorithm)
	if err != nil {
		return nil, err
	}
	salts := crypto.NewSaltGenerator(cfg.App.SaltLength)

	db, err := connectDB(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(ctx); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		db.Close()
		return nil, err
	}

	redisClient, err := NewRedisClient(ctx, cfg.Storage.Redis, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Storages{
		CredentialStore: NewCredentialRepository(db, hasher, salts, log),
		ProfileStore:    NewProfileRepository(db, log),
		TokenStore:      NewRedisTokenStore(redisClient, cfg.Storage.Redis, log),
		closers:         []io.Closer{redisClient, db},
	}, nil
}

func connectDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// Close releases the database and redis connections.
func (s *Storages) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-profile-keeper/internal/logger"
	"github.com/MKhiriev/go-profile-keeper/models"
)

// profileRepository is the SQL-backed implementation of [ProfileStore].
type profileRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewProfileRepository(db *DB, logger *logger.Logger) ProfileStore {
	logger.Debug().Msg("creating profile repository")
	return &profileRepository{
		db:     db,
		logger: logger,
	}
}

func (r *profileRepository) Create(ctx context.Context, username, filesDir string) (models.Profile, error) {
	log := logger.FromContext(ctx)

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	// resolve the owning account first; a missing account is not a driver error
	selectQuery, selectArgs, err := buildSelectAccountQuery(r.db.builder, username)
	if err != nil {
		return models.Profile{}, err
	}
	var (
		userID     int64
		hash, salt string
	)
	err = r.db.QueryRowContext(ctx, selectQuery, selectArgs...).Scan(&userID, &hash, &salt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Profile{}, ErrNotFound
	case err != nil:
		log.Err(err).Str("func", "*profileRepository.Create").Msg("error selecting account")
		return models.Profile{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	profile := models.Profile{
		Username: username,
		Avatar:   models.DefaultAvatar,
		FilesDir: filesDir,
	}
	query, args, err := buildInsertProfileQuery(r.db.builder, userID, profile)
	if err != nil {
		return models.Profile{}, err
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		if r.db.isUniqueViolation(err) {
			return models.Profile{}, ErrAlreadyExists
		}
		log.Err(err).Str("func", "*profileRepository.Create").Msg("error inserting profile")
		return models.Profile{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return profile, nil
}

func (r *profileRepository) Get(ctx context.Context, username string) (models.Profile, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectProfileQuery(r.db.builder, username)
	if err != nil {
		return models.Profile{}, err
	}

	var profile models.Profile
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, args...).
			Scan(&profile.Username, &profile.FirstName, &profile.LastName, &profile.Avatar, &profile.FilesDir)
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Profile{}, ErrNotFound
	case err != nil:
		log.Err(err).Str("func", "*profileRepository.Get").Msg("error selecting profile")
		return models.Profile{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return profile, nil
}

func (r *profileRepository) Update(ctx context.Context, username string, update models.ProfileUpdate) error {
	if update.IsEmpty() {
		// nothing to write, but the profile must still exist
		_, err := r.Get(ctx, username)
		return err
	}

	query, args, err := buildUpdateProfileQuery(r.db.builder, username, update)
	if err != nil {
		return err
	}

	return execAffectingOne(ctx, r.db, "*profileRepository.Update", query, args)
}

func (r *profileRepository) Delete(ctx context.Context, username string) error {
	query, args, err := buildDeleteProfileQuery(r.db.builder, username)
	if err != nil {
		return err
	}

	return execAffectingOne(ctx, r.db, "*profileRepository.Delete", query, args)
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-profile-keeper/internal/crypto"
	"github.com/MKhiriev/go-profile-keeper/internal/logger"
	"github.com/MKhiriev/go-profile-keeper/models"
)

// credentialRepository is the SQL-backed implementation of [CredentialStore].
// Hashing happens here so plain-text passwords never cross the store boundary
// in either direction.
type credentialRepository struct {
	db     *DB
	hasher crypto.PasswordHasher
	salts  crypto.SaltGenerator
	logger *logger.Logger
}

func NewCredentialRepository(db *DB, hasher crypto.PasswordHasher, salts crypto.SaltGenerator, logger *logger.Logger) CredentialStore {
	logger.Debug().Msg("creating credential repository")
	return &credentialRepository{
		db:     db,
		hasher: hasher,
		salts:  salts,
		logger: logger,
	}
}

func (r *credentialRepository) Create(ctx context.Context, username, password string) (models.Account, error) {
	log := logger.FromContext(ctx)

	salt, err := r.salts.Generate()
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.Create").Msg("error generating salt")
		return models.Account{}, err
	}
	hash, err := r.hasher.Hash(salt, password)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.Create").Msg("error hashing password")
		return models.Account{}, err
	}

	account := models.Account{Username: username, PasswordHash: hash, Salt: salt}
	query, args, err := buildInsertAccountQuery(r.db.builder, account)
	if err != nil {
		return models.Account{}, err
	}

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&account.ID); err != nil {
		if r.db.isUniqueViolation(err) {
			log.Debug().Str("func", "*credentialRepository.Create").Str("username", username).Msg("username already taken")
			return models.Account{}, ErrAlreadyExists
		}
		log.Err(err).Str("func", "*credentialRepository.Create").Msg("error inserting account")
		return models.Account{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return account, nil
}

func (r *credentialRepository) Authenticate(ctx context.Context, username, password string) (bool, error) {
	log := logger.FromContext(ctx)

	account, err := r.find(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.Authenticate").Msg("error loading account")
		return false, err
	}

	ok, err := r.hasher.Verify(account.Salt, password, account.PasswordHash)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.Authenticate").Msg("error verifying password")
		return false, err
	}

	return ok, nil
}

func (r *credentialRepository) UpdatePassword(ctx context.Context, username, newPassword string) error {
	log := logger.FromContext(ctx)

	account, err := r.find(ctx, username)
	if err != nil {
		return err
	}

	hash, err := r.hasher.Hash(account.Salt, newPassword)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.UpdatePassword").Msg("error hashing password")
		return err
	}

	query, args, err := buildUpdatePasswordQuery(r.db.builder, username, hash)
	if err != nil {
		return err
	}

	return r.execAffectingOne(ctx, "*credentialRepository.UpdatePassword", query, args)
}

func (r *credentialRepository) Delete(ctx context.Context, username string) error {
	query, args, err := buildDeleteAccountQuery(r.db.builder, username)
	if err != nil {
		return err
	}

	return r.execAffectingOne(ctx, "*credentialRepository.Delete", query, args)
}

func (r *credentialRepository) find(ctx context.Context, username string) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectAccountQuery(r.db.builder, username)
	if err != nil {
		return models.Account{}, err
	}

	account := models.Account{Username: username}
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&account.ID, &account.PasswordHash, &account.Salt)
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Account{}, ErrNotFound
	case err != nil:
		log.Err(err).Str("func", "*credentialRepository.find").Msg("error selecting account")
		return models.Account{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return account, nil
}

func (r *credentialRepository) execAffectingOne(ctx context.Context, fn, query string, args []any) error {
	return execAffectingOne(ctx, r.db, fn, query, args)
}

// execAffectingOne runs a single-row UPDATE or DELETE and maps "no row
// touched" to [ErrNotFound]. Both statements are idempotent, so transient
// failures are retried.
func execAffectingOne(ctx context.Context, db *DB, fn, query string, args []any) error {
	log := logger.FromContext(ctx)

	var affected int64
	err := db.withRetry(ctx, func(ctx context.Context) error {
		res, err := db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

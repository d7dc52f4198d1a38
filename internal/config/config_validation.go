// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"
)

const minSaltLength = 8

// validate checks that the final merged [StructuredConfig] is usable before
// any connection is opened.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: empty http address", ErrInvalidServerConfigs)
	}
	if cfg.Server.CookieName == "" {
		return fmt.Errorf("%w: empty cookie name", ErrInvalidServerConfigs)
	}

	if !slices.Contains([]string{DriverPostgres, DriverSQLite}, cfg.Storage.DB.Driver) {
		return fmt.Errorf("%w: unknown db driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty db dsn", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.Redis.Address == "" {
		return fmt.Errorf("%w: empty redis address", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.Redis.TokenTTL < 0 {
		return fmt.Errorf("%w: negative token ttl", ErrInvalidStorageConfigs)
	}

	switch cfg.Storage.Files.Backend {
	case FilesBackendLocal:
		if cfg.Storage.Files.RootDir == "" {
			return fmt.Errorf("%w: empty files root dir", ErrInvalidStorageConfigs)
		}
	case FilesBackendS3:
		if cfg.Storage.Files.S3.Bucket == "" {
			return fmt.Errorf("%w: empty s3 bucket", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown files backend %q", ErrInvalidStorageConfigs, cfg.Storage.Files.Backend)
	}

	if !slices.Contains([]string{HashSHA256, HashArgon2ID, HashBcrypt}, cfg.App.PasswordHashAlgorithm) {
		return fmt.Errorf("%w: unknown password hash algorithm %q", ErrInvalidAppConfigs, cfg.App.PasswordHashAlgorithm)
	}
	if cfg.App.SaltLength < minSaltLength {
		return fmt.Errorf("%w: salt length must be at least %d", ErrInvalidAppConfigs, minSaltLength)
	}

	if cfg.Workers.SessionSweepInterval < 0 {
		return fmt.Errorf("%w: negative session sweep interval", ErrInvalidWorkerConfigs)
	}

	return nil
}

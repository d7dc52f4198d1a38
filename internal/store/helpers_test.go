// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-profile-keeper/internal/config"
	"github.com/MKhiriev/go-profile-keeper/internal/logger"
	"github.com/MKhiriev/go-profile-keeper/migrations"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// newDBFromSQL wraps a sqlmock connection as a postgres-dialect DB.
func newDBFromSQL(db *sql.DB) *DB {
	return newDB(db, migrations.DialectPostgres, time.Second, NewPostgresErrorClassifier(), logger.Nop())
}

// newSQLiteDB opens a migrated on-disk sqlite database in a temp dir.
func newSQLiteDB(t *testing.T) *DB {
	t.Helper()
	cfg := testDBConfig(t)
	db, err := NewConnectSQLite(testContext(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(testContext()))
	return db
}

func testDBConfig(t *testing.T) config.DB {
	return config.DB{
		Driver:       config.DriverSQLite,
		DSN:          filepath.Join(t.TempDir(), "profiles.db"),
		QueryTimeout: 5 * time.Second,
	}
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

type fixedSalt string

func (f fixedSalt) Generate() (string, error) { return string(f), nil }

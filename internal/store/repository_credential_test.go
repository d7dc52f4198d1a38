// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"regexp"
	"sync"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-profile-keeper/internal/crypto"
	"github.com/MKhiriev/go-profile-keeper/internal/logger"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSalt = "abc123def0"
	testPass = "s3cret"
)

func newTestCredentialRepo(t *testing.T) (CredentialStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	repo := NewCredentialRepository(newDBFromSQL(db), crypto.NewSHA256Hasher(), fixedSalt(testSalt), logger.Nop())
	return repo, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func testHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := crypto.NewSHA256Hasher().Hash(testSalt, password)
	require.NoError(t, err)
	return hash
}

func TestCredentialCreate_Success(t *testing.T) {
	repo, mock := newTestCredentialRepo(t)

	mock.ExpectQuery("INSERT INTO accounts").
		WithArgs("john", testHash(t, testPass), testSalt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	account, err := repo.Create(testContext(), "john", testPass)
	require.NoError(t, err)
	assert.Equal(t, int64(7), account.ID)
	assert.Equal(t, "john", account.Username)
	assert.Equal(t, testSalt, account.Salt)
	assert.NotEqual(t, testPass, account.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialCreate_UniqueViolation(t *testing.T) {
	repo, mock := newTestCredentialRepo(t)

	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.Create(testContext(), "john", testPass)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCredentialCreate_DriverError(t *testing.T) {
	repo, mock := newTestCredentialRepo(t)

	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Create(testContext(), "john", testPass)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrAlreadyExists)
}

func TestCredentialAuthenticate(t *testing.T) {
	selectQuery := regexp.QuoteMeta("SELECT id, password_hash, salt FROM accounts WHERE username = $1")

	tests := []struct {
		name     string
		password string
		setup    func(m sqlmock.Sqlmock)
		want     bool
		wantErr  error
	}{
		{
			name:     "correct password",
			password: testPass,
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(selectQuery).WithArgs("john").
					WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash", "salt"}).AddRow(1, testHash(t, testPass), testSalt))
			},
			want: true,
		},
		{
			name:     "wrong password",
			password: "nope",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(selectQuery).WithArgs("john").
					WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash", "salt"}).AddRow(1, testHash(t, testPass), testSalt))
			},
			want: false,
		},
		{
			name:     "unknown user",
			password: testPass,
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(selectQuery).WithArgs("john").
					WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash", "salt"}))
			},
			want: false,
		},
		{
			name:     "driver error",
			password: testPass,
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(selectQuery).WithArgs("john").WillReturnError(errors.New("timeout"))
			},
			wantErr: ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestCredentialRepo(t)
			tt.setup(mock)

			ok, err := repo.Authenticate(testContext(), "john", tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCredentialUpdatePassword_Success(t *testing.T) {
	repo, mock := newTestCredentialRepo(t)

	mock.ExpectQuery("SELECT id, password_hash, salt FROM accounts").WithArgs("john").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash", "salt"}).AddRow(1, testHash(t, testPass), testSalt))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE accounts SET password_hash = $1 WHERE username = $2")).
		WithArgs(testHash(t, "new-pass"), "john").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdatePassword(testContext(), "john", "new-pass"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialUpdatePassword_UnknownUser(t *testing.T) {
	repo, mock := newTestCredentialRepo(t)

	mock.ExpectQuery("SELECT id, password_hash, salt FROM accounts").WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "password_hash", "salt"}))

	err := repo.UpdatePassword(testContext(), "ghost", "new-pass")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCredentialDelete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		repo, mock := newTestCredentialRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM accounts WHERE username = $1")).
			WithArgs("john").WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(testContext(), "john"))
	})

	t.Run("absent", func(t *testing.T) {
		repo, mock := newTestCredentialRepo(t)
		mock.ExpectExec("DELETE FROM accounts").
			WithArgs("john").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(testContext(), "john"), ErrNotFound)
	})

	t.Run("driver error", func(t *testing.T) {
		repo, mock := newTestCredentialRepo(t)
		mock.ExpectExec("DELETE FROM accounts").
			WithArgs("john").WillReturnError(errors.New("broken pipe"))

		assert.ErrorIs(t, repo.Delete(testContext(), "john"), ErrStoreUnavailable)
	})
}

func TestCredentialRepository_SQLite(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewCredentialRepository(db, crypto.NewSHA256Hasher(), crypto.NewSaltGenerator(crypto.DefaultSaltLength), logger.Nop())
	ctx := testContext()

	first, err := repo.Create(ctx, "john", testPass)
	require.NoError(t, err)

	_, err = repo.Create(ctx, "john", "other")
	require.ErrorIs(t, err, ErrAlreadyExists)

	// second account gets its own salt
	second, err := repo.Create(ctx, "jane", testPass)
	require.NoError(t, err)
	assert.NotEqual(t, first.Salt, second.Salt)
	assert.NotEqual(t, first.PasswordHash, second.PasswordHash)

	ok, err := repo.Authenticate(ctx, "john", testPass)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.UpdatePassword(ctx, "john", "changed"))
	ok, err = repo.Authenticate(ctx, "john", testPass)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = repo.Authenticate(ctx, "john", "changed")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.Delete(ctx, "john"))
	assert.ErrorIs(t, repo.Delete(ctx, "john"), ErrNotFound)
	ok, err = repo.Authenticate(ctx, "john", "changed")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCredentialDelete_RetriesTransientError(t *testing.T) {
	repo, mock := newTestCredentialRepo(t)

	mock.ExpectExec("DELETE FROM accounts").WithArgs("john").
		WillReturnError(pgError(pgerrcode.DeadlockDetected))
	mock.ExpectExec("DELETE FROM accounts").WithArgs("john").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(testContext(), "john"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialDelete_RetriesAreBounded(t *testing.T) {
	repo, mock := newTestCredentialRepo(t)

	for range retryAttempts + 1 {
		mock.ExpectExec("DELETE FROM accounts").WithArgs("john").
			WillReturnError(pgError(pgerrcode.SerializationFailure))
	}

	err := repo.Delete(testContext(), "john")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialCreate_InsertIsNotRetried(t *testing.T) {
	repo, mock := newTestCredentialRepo(t)

	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnError(pgError(pgerrcode.DeadlockDetected))

	_, err := repo.Create(testContext(), "john", testPass)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialCreate_ConcurrentSameUsername(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewCredentialRepository(db, crypto.NewSHA256Hasher(), crypto.NewSaltGenerator(crypto.DefaultSaltLength), logger.Nop())
	ctx := testContext()

	const workers = 8
	var (
		wg   sync.WaitGroup
		errs = make([]error, workers)
	)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = repo.Create(ctx, "alice", testPass)
		}()
	}
	wg.Wait()

	created, taken := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrAlreadyExists):
			taken++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, taken)

	ok, err := repo.Authenticate(ctx, "alice", testPass)
	require.NoError(t, err)
	assert.True(t, ok)
}

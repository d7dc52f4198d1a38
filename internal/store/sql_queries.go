// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-profile-keeper/models"
)

// All statements are built with placeholders; user input never reaches the
// SQL text.

const (
	accountsTable = "accounts"
	profilesTable = "profiles"
)

// accountIDByUsername scopes a profiles statement to the account owning username.
func accountIDByUsername(username string) sq.Sqlizer {
	return sq.Expr("user_id = (SELECT id FROM "+accountsTable+" WHERE username = ?)", username)
}

func buildInsertAccountQuery(b sq.StatementBuilderType, account models.Account) (string, []any, error) {
	query, args, err := b.Insert(accountsTable).
		Columns("username", "password_hash", "salt").
		Values(account.Username, account.PasswordHash, account.Salt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSelectAccountQuery(b sq.StatementBuilderType, username string) (string, []any, error) {
	query, args, err := b.Select("id", "password_hash", "salt").
		From(accountsTable).
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildUpdatePasswordQuery(b sq.StatementBuilderType, username, passwordHash string) (string, []any, error) {
	query, args, err := b.Update(accountsTable).
		Set("password_hash", passwordHash).
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteAccountQuery(b sq.StatementBuilderType, username string) (string, []any, error) {
	query, args, err := b.Delete(accountsTable).
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildInsertProfileQuery(b sq.StatementBuilderType, userID int64, profile models.Profile) (string, []any, error) {
	query, args, err := b.Insert(profilesTable).
		Columns("user_id", "first_name", "last_name", "avatar", "files_dir").
		Values(userID, profile.FirstName, profile.LastName, profile.Avatar, profile.FilesDir).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSelectProfileQuery(b sq.StatementBuilderType, username string) (string, []any, error) {
	query, args, err := b.Select("a.username", "p.first_name", "p.last_name", "p.avatar", "p.files_dir").
		From(profilesTable + " p").
		Join(accountsTable + " a ON a.id = p.user_id").
		Where(sq.Eq{"a.username": username}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildUpdateProfileQuery(b sq.StatementBuilderType, username string, update models.ProfileUpdate) (string, []any, error) {
	ub := b.Update(profilesTable)
	if update.FirstName != nil {
		ub = ub.Set("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		ub = ub.Set("last_name", *update.LastName)
	}
	if update.Avatar != nil {
		ub = ub.Set("avatar", *update.Avatar)
	}

	query, args, err := ub.Where(accountIDByUsername(username)).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteProfileQuery(b sq.StatementBuilderType, username string) (string, []any, error) {
	query, args, err := b.Delete(profilesTable).
		Where(accountIDByUsername(username)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

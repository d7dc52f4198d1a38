package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"path"

	"github.com/MKhiriev/go-profile-keeper/internal/files"
	"github.com/MKhiriev/go-profile-keeper/internal/logger"
	"github.com/MKhiriev/go-profile-keeper/internal/session"
	"github.com/MKhiriev/go-profile-keeper/internal/store"
	"github.com/MKhiriev/go-profile-keeper/models"
)

const filesRoot = "files"

// authService is the concrete implementation of AuthService.
//
// Persistent writes always happen before cache writes, so a failed store call
// never leaves the cache ahead of the stores. Token and profile writes of one
// username run under its lock so the cache ends up matching the last write.
type authService struct {
	credentials store.CredentialStore
	profiles    store.ProfileStore
	tokens      store.TokenStore
	cache       session.Cache
	sink        files.Sink
	tokenGen    TokenGenerator
	locks       *userLocks

	logger *logger.Logger
}

func NewAuthService(
	credentials store.CredentialStore,
	profiles store.ProfileStore,
	tokens store.TokenStore,
	cache session.Cache,
	sink files.Sink,
	tokenGen TokenGenerator,
	logger *logger.Logger,
) AuthService {
	return &authService{
		credentials: credentials,
		profiles:    profiles,
		tokens:      tokens,
		cache:       cache,
		sink:        sink,
		tokenGen:    tokenGen,
		locks:       newUserLocks(),
		logger:      logger,
	}
}

// Register runs credential create → files dir → profile create → token set →
// cache put. Every step after the account insert is compensated on failure so
// no orphan account survives.
func (a *authService) Register(ctx context.Context, creds models.Credentials) (models.Session, error) {
	log := logger.FromContext(ctx).With().Str("username", creds.Username).Logger()

	if _, err := a.credentials.Create(ctx, creds.Username, creds.Password); err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("account creation failed")
		return models.Session{}, mapStoreError(err)
	}

	filesDir := userFilesDir(creds.Username)
	if err := a.sink.EnsureDir(ctx, filesDir); err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("files directory creation failed")
		a.rollbackRegistration(ctx, creds.Username, false)
		return models.Session{}, mapStoreError(err)
	}

	profile, err := a.profiles.Create(ctx, creds.Username, filesDir)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("profile creation failed")
		a.rollbackRegistration(ctx, creds.Username, false)
		return models.Session{}, mapStoreError(err)
	}

	unlock := a.locks.lock(creds.Username)
	token, err := a.issueToken(ctx, creds.Username)
	if err != nil {
		unlock()
		log.Err(err).Str("func", "*authService.Register").Msg("session token issue failed")
		a.rollbackRegistration(ctx, creds.Username, true)
		return models.Session{}, err
	}
	a.cache.Put(token, profile)
	unlock()

	log.Info().Str("func", "*authService.Register").Msg("account registered")

	return models.Session{Token: token, Profile: profile}, nil
}

// rollbackRegistration undoes a partial registration. It runs detached from
// the request context so a cancelled request still cleans up.
func (a *authService) rollbackRegistration(ctx context.Context, username string, profileCreated bool) {
	log := logger.FromContext(ctx).With().Str("username", username).Str("func", "*authService.rollbackRegistration").Logger()
	ctx = context.WithoutCancel(ctx)

	if profileCreated {
		if err := a.profiles.Delete(ctx, username); err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Err(err).Msg("rollback: profile delete failed")
		}
	}
	if err := a.credentials.Delete(ctx, username); err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Err(err).Msg("rollback: account delete failed")
	}
	if err := a.sink.RemoveAll(ctx, userFilesDir(username)); err != nil {
		log.Err(err).Msg("rollback: files directory removal failed")
	}
	log.Warn().Msg("registration rolled back")
}

// Login authenticates, supersedes any previous token and evicts the sessions
// that token backed.
func (a *authService) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	log := logger.FromContext(ctx).With().Str("username", creds.Username).Logger()

	ok, err := a.credentials.Authenticate(ctx, creds.Username, creds.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("authentication failed")
		return models.Session{}, mapStoreError(err)
	}
	if !ok {
		log.Info().Str("func", "*authService.Login").Msg("wrong username or password")
		return models.Session{}, ErrInvalidCredentials
	}

	profile, err := a.loadOrRepairProfile(ctx, creds.Username)
	if err != nil {
		return models.Session{}, err
	}

	unlock := a.locks.lock(creds.Username)
	defer unlock()

	token, err := a.issueToken(ctx, creds.Username)
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("session token issue failed")
		return models.Session{}, err
	}

	// the previous token is dead in the store; its cache entries go too
	if evicted := a.cache.RemoveUser(creds.Username); len(evicted) > 0 {
		log.Debug().Str("func", "*authService.Login").Int("evicted", len(evicted)).Msg("superseded sessions evicted")
	}
	a.cache.Put(token, profile)

	return models.Session{Token: token, Profile: profile}, nil
}

// loadOrRepairProfile fetches the profile, recreating it when an earlier
// deletion or registration stopped between the profile and account steps.
func (a *authService) loadOrRepairProfile(ctx context.Context, username string) (models.Profile, error) {
	log := logger.FromContext(ctx)

	profile, err := a.profiles.Get(ctx, username)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Err(err).Str("func", "*authService.loadOrRepairProfile").Msg("profile fetch failed")
		return models.Profile{}, mapStoreError(err)
	}

	log.Warn().Str("func", "*authService.loadOrRepairProfile").Str("username", username).Msg("account without profile, recreating")
	filesDir := userFilesDir(username)
	if err = a.sink.EnsureDir(ctx, filesDir); err != nil {
		return models.Profile{}, mapStoreError(err)
	}
	profile, err = a.profiles.Create(ctx, username, filesDir)
	if errors.Is(err, store.ErrAlreadyExists) {
		// lost a race with a concurrent repair
		profile, err = a.profiles.Get(ctx, username)
	}
	if err != nil {
		return models.Profile{}, mapStoreError(err)
	}

	return profile, nil
}

func (a *authService) issueToken(ctx context.Context, username string) (string, error) {
	token, err := a.tokenGen.Generate()
	if err != nil {
		return "", fmt.Errorf("%w: generating token: %w", ErrStoreUnavailable, err)
	}
	if err = a.tokens.Set(ctx, username, token); err != nil {
		return "", mapStoreError(err)
	}
	return token, nil
}

// Logout deletes the store token only if it is still the one being logged
// out, so a stale session cannot revoke a newer one.
func (a *authService) Logout(ctx context.Context, token string) error {
	log := logger.FromContext(ctx)

	profile, ok := a.cache.Get(token)
	if !ok {
		return nil
	}

	unlock := a.locks.lock(profile.Username)
	defer unlock()

	current, err := a.tokens.Get(ctx, profile.Username)
	switch {
	case errors.Is(err, store.ErrTokenNotFound):
	case err != nil:
		log.Err(err).Str("func", "*authService.Logout").Msg("token lookup failed")
		return mapStoreError(err)
	case tokensEqual(current, token):
		if err = a.tokens.Delete(ctx, profile.Username); err != nil {
			log.Err(err).Str("func", "*authService.Logout").Msg("token delete failed")
			return mapStoreError(err)
		}
	}

	a.cache.Remove(token)
	log.Info().Str("func", "*authService.Logout").Str("username", profile.Username).Msg("logged out")

	return nil
}

// Resolve trusts the cache; there is no token store round trip.
func (a *authService) Resolve(_ context.Context, token string) (models.Profile, bool) {
	if token == "" {
		return models.Profile{}, false
	}
	return a.cache.Get(token)
}

// IsOwner requires both a cached session for username and agreement from the
// token store. A cached session the store no longer backs is evicted.
func (a *authService) IsOwner(ctx context.Context, token, username string) (bool, error) {
	profile, ok := a.Resolve(ctx, token)
	if !ok || profile.Username != username {
		return false, nil
	}

	current, err := a.tokens.Get(ctx, username)
	switch {
	case errors.Is(err, store.ErrTokenNotFound):
		a.cache.Remove(token)
		return false, nil
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "*authService.IsOwner").Msg("token lookup failed")
		return false, mapStoreError(err)
	}

	if !tokensEqual(current, token) {
		a.cache.Remove(token)
		return false, nil
	}

	return true, nil
}

func (a *authService) UpdateProfile(ctx context.Context, username string, update models.ProfileUpdate) error {
	unlock := a.locks.lock(username)
	defer unlock()

	if err := a.profiles.Update(ctx, username, update); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.UpdateProfile").Msg("profile update failed")
		return mapStoreError(err)
	}

	a.cache.MutateUser(username, update.Apply)
	return nil
}

func (a *authService) ChangePassword(ctx context.Context, username, newPassword string) error {
	if err := a.credentials.UpdatePassword(ctx, username, newPassword); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.ChangePassword").Msg("password update failed")
		return mapStoreError(err)
	}
	return nil
}

// DeleteAccount revokes the token first, then removes profile and account.
// Each step tolerates an already-missing row so a failed deletion can simply
// be retried; ErrNotFound is returned only when neither row existed.
func (a *authService) DeleteAccount(ctx context.Context, username, confirmation string) error {
	log := logger.FromContext(ctx).With().Str("username", username).Str("func", "*authService.DeleteAccount").Logger()

	if username == "" || confirmation != username {
		return fmt.Errorf("%w: confirmation does not match username", ErrInvalidRequest)
	}

	profile, err := a.profiles.Get(ctx, username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		profile = models.Profile{Username: username, FilesDir: userFilesDir(username)}
	case err != nil:
		log.Err(err).Msg("profile fetch failed")
		return mapStoreError(err)
	}

	unlock := a.locks.lock(username)
	defer unlock()

	if err = a.tokens.Delete(ctx, username); err != nil {
		log.Err(err).Msg("token delete failed")
		return mapStoreError(err)
	}
	// Evicted right after revocation, before the row deletes: Resolve trusts
	// the cache alone, and a row delete that fails below must not leave a
	// session alive for a token the store no longer has.
	a.cache.RemoveUser(username)

	profileErr := a.profiles.Delete(ctx, username)
	if profileErr != nil && !errors.Is(profileErr, store.ErrNotFound) {
		log.Err(profileErr).Msg("profile delete failed")
		return mapStoreError(profileErr)
	}

	accountErr := a.credentials.Delete(ctx, username)
	if accountErr != nil && !errors.Is(accountErr, store.ErrNotFound) {
		log.Err(accountErr).Msg("account delete failed")
		return mapStoreError(accountErr)
	}

	a.removeUserFiles(ctx, profile)

	if profileErr != nil && accountErr != nil {
		return mapStoreError(accountErr)
	}

	log.Info().Msg("account deleted")
	return nil
}

// removeUserFiles is best effort: rows are already gone, leftovers are logged.
func (a *authService) removeUserFiles(ctx context.Context, profile models.Profile) {
	log := logger.FromContext(ctx)
	ctx = context.WithoutCancel(ctx)

	if profile.HasCustomAvatar() {
		if err := a.sink.Remove(ctx, profile.Avatar); err != nil {
			log.Err(err).Str("func", "*authService.removeUserFiles").Str("avatar", profile.Avatar).Msg("avatar removal failed")
		}
	}
	if err := a.sink.RemoveAll(ctx, profile.FilesDir); err != nil {
		log.Err(err).Str("func", "*authService.removeUserFiles").Str("dir", profile.FilesDir).Msg("files removal failed")
	}
}

func userFilesDir(username string) string {
	return path.Join(filesRoot, username)
}

func tokensEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

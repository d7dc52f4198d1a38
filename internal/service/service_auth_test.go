package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-profile-keeper/internal/logger"
	"github.com/MKhiriev/go-profile-keeper/internal/mock"
	"github.com/MKhiriev/go-profile-keeper/internal/session"
	"github.com/MKhiriev/go-profile-keeper/internal/store"
	"github.com/MKhiriev/go-profile-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type authMocks struct {
	credentials *mock.MockCredentialStore
	profiles    *mock.MockProfileStore
	tokens      *mock.MockTokenStore
	sink        *mock.MockSink
	tokenGen    *mock.MockTokenGenerator
	cache       session.Cache
}

// newTestAuthSvc: authService over mocked stores and a real in-memory cache
func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (*authService, authMocks) {
	t.Helper()
	m := authMocks{
		credentials: mock.NewMockCredentialStore(ctrl),
		profiles:    mock.NewMockProfileStore(ctrl),
		tokens:      mock.NewMockTokenStore(ctrl),
		sink:        mock.NewMockSink(ctrl),
		tokenGen:    mock.NewMockTokenGenerator(ctrl),
		cache:       session.NewMemoryCache(),
	}
	svc := NewAuthService(m.credentials, m.profiles, m.tokens, m.cache, m.sink, m.tokenGen, logger.Nop()).(*authService)
	return svc, m
}

func aliceProfile() models.Profile {
	return models.Profile{Username: "alice", Avatar: models.DefaultAvatar, FilesDir: "files/alice"}
}

var errBoom = errors.New("boom")

// ── Register ─────────────────────────────────────────────────────────────────

func TestAuthService_Register_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		m.credentials.EXPECT().Create(ctx, "alice", "pw").Return(models.Account{ID: 1, Username: "alice"}, nil),
		m.sink.EXPECT().EnsureDir(ctx, "files/alice").Return(nil),
		m.profiles.EXPECT().Create(ctx, "alice", "files/alice").Return(aliceProfile(), nil),
		m.tokenGen.EXPECT().Generate().Return("tok-1", nil),
		m.tokens.EXPECT().Set(ctx, "alice", "tok-1").Return(nil),
	)

	sess, err := svc.Register(ctx, models.Credentials{Username: "alice", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "tok-1", sess.Token)
	assert.Equal(t, "alice", sess.Profile.Username)

	cached, ok := m.cache.Get("tok-1")
	require.True(t, ok)
	assert.Equal(t, aliceProfile(), cached)
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	m.credentials.EXPECT().Create(ctx, "alice", "pw").Return(models.Account{}, store.ErrAlreadyExists)

	_, err := svc.Register(ctx, models.Credentials{Username: "alice", Password: "pw"})

	require.ErrorIs(t, err, ErrAlreadyExists)
	assert.Empty(t, m.cache.Entries())
}

func TestAuthService_Register_DirFailure_RollsBackAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	m.credentials.EXPECT().Create(ctx, "alice", "pw").Return(models.Account{ID: 1}, nil)
	m.sink.EXPECT().EnsureDir(ctx, "files/alice").Return(errBoom)
	m.credentials.EXPECT().Delete(gomock.Any(), "alice").Return(nil)
	m.sink.EXPECT().RemoveAll(gomock.Any(), "files/alice").Return(nil)

	_, err := svc.Register(ctx, models.Credentials{Username: "alice", Password: "pw"})

	require.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestAuthService_Register_ProfileFailure_RollsBackAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	m.credentials.EXPECT().Create(ctx, "alice", "pw").Return(models.Account{ID: 1}, nil)
	m.sink.EXPECT().EnsureDir(ctx, "files/alice").Return(nil)
	m.profiles.EXPECT().Create(ctx, "alice", "files/alice").Return(models.Profile{}, store.ErrAlreadyExists)
	m.credentials.EXPECT().Delete(gomock.Any(), "alice").Return(nil)
	m.sink.EXPECT().RemoveAll(gomock.Any(), "files/alice").Return(nil)

	_, err := svc.Register(ctx, models.Credentials{Username: "alice", Password: "pw"})

	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestAuthService_Register_TokenFailure_RollsBackEverything(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	m.credentials.EXPECT().Create(ctx, "alice", "pw").Return(models.Account{ID: 1}, nil)
	m.sink.EXPECT().EnsureDir(ctx, "files/alice").Return(nil)
	m.profiles.EXPECT().Create(ctx, "alice", "files/alice").Return(aliceProfile(), nil)
	m.tokenGen.EXPECT().Generate().Return("tok-1", nil)
	m.tokens.EXPECT().Set(ctx, "alice", "tok-1").Return(errBoom)
	gomock.InOrder(
		m.profiles.EXPECT().Delete(gomock.Any(), "alice").Return(nil),
		m.credentials.EXPECT().Delete(gomock.Any(), "alice").Return(nil),
		m.sink.EXPECT().RemoveAll(gomock.Any(), "files/alice").Return(nil),
	)

	_, err := svc.Register(ctx, models.Credentials{Username: "alice", Password: "pw"})

	require.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Empty(t, m.cache.Entries())
}

func TestAuthService_Register_CancelledContext_StillRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx, cancel := context.WithCancel(context.Background())

	m.credentials.EXPECT().Create(ctx, "alice", "pw").Return(models.Account{ID: 1}, nil)
	m.sink.EXPECT().EnsureDir(ctx, "files/alice").DoAndReturn(func(context.Context, string) error {
		cancel()
		return context.Canceled
	})
	m.credentials.EXPECT().Delete(gomock.Any(), "alice").DoAndReturn(func(ctx context.Context, _ string) error {
		assert.NoError(t, ctx.Err(), "rollback must not inherit cancellation")
		return nil
	})
	m.sink.EXPECT().RemoveAll(gomock.Any(), "files/alice").Return(nil)

	_, err := svc.Register(ctx, models.Credentials{Username: "alice", Password: "pw"})

	require.Error(t, err)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	m.credentials.EXPECT().Authenticate(ctx, "alice", "pw").Return(true, nil)
	m.profiles.EXPECT().Get(ctx, "alice").Return(aliceProfile(), nil)
	m.tokenGen.EXPECT().Generate().Return("tok-1", nil)
	m.tokens.EXPECT().Set(ctx, "alice", "tok-1").Return(nil)

	sess, err := svc.Login(ctx, models.Credentials{Username: "alice", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "tok-1", sess.Token)
	_, ok := m.cache.Get("tok-1")
	assert.True(t, ok)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	m.credentials.EXPECT().Authenticate(ctx, "alice", "nope").Return(false, nil)

	_, err := svc.Login(ctx, models.Credentials{Username: "alice", Password: "nope"})

	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_StoreDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	m.credentials.EXPECT().Authenticate(ctx, "alice", "pw").Return(false, errBoom)

	_, err := svc.Login(ctx, models.Credentials{Username: "alice", Password: "pw"})

	require.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_EvictsSupersededSessions(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	m.cache.Put("tok-old", aliceProfile())
	m.cache.Put("tok-bob", models.Profile{Username: "bob"})

	m.credentials.EXPECT().Authenticate(ctx, "alice", "pw").Return(true, nil)
	m.profiles.EXPECT().Get(ctx, "alice").Return(aliceProfile(), nil)
	m.tokenGen.EXPECT().Generate().Return("tok-new", nil)
	m.tokens.EXPECT().Set(ctx, "alice", "tok-new").Return(nil)

	_, err := svc.Login(ctx, models.Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	_, ok := m.cache.Get("tok-old")
	assert.False(t, ok)
	_, ok = m.cache.Get("tok-new")
	assert.True(t, ok)
	_, ok = m.cache.Get("tok-bob")
	assert.True(t, ok, "other users' sessions are untouched")
}

func TestAuthService_Login_TokenStoreDown_KeepsOldSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	m.cache.Put("tok-old", aliceProfile())

	m.credentials.EXPECT().Authenticate(ctx, "alice", "pw").Return(true, nil)
	m.profiles.EXPECT().Get(ctx, "alice").Return(aliceProfile(), nil)
	m.tokenGen.EXPECT().Generate().Return("tok-new", nil)
	m.tokens.EXPECT().Set(ctx, "alice", "tok-new").Return(errBoom)

	_, err := svc.Login(ctx, models.Credentials{Username: "alice", Password: "pw"})

	require.ErrorIs(t, err, ErrStoreUnavailable)
	_, ok := m.cache.Get("tok-old")
	assert.True(t, ok)
	_, ok = m.cache.Get("tok-new")
	assert.False(t, ok)
}

func TestAuthService_Login_RepairsMissingProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	m.credentials.EXPECT().Authenticate(ctx, "alice", "pw").Return(true, nil)
	m.profiles.EXPECT().Get(ctx, "alice").Return(models.Profile{}, store.ErrNotFound)
	m.sink.EXPECT().EnsureDir(ctx, "files/alice").Return(nil)
	m.profiles.EXPECT().Create(ctx, "alice", "files/alice").Return(aliceProfile(), nil)
	m.tokenGen.EXPECT().Generate().Return("tok-1", nil)
	m.tokens.EXPECT().Set(ctx, "alice", "tok-1").Return(nil)

	sess, err := svc.Login(ctx, models.Credentials{Username: "alice", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Profile.Username)
}

func TestAuthService_Login_GeneratorFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	m.credentials.EXPECT().Authenticate(ctx, "alice", "pw").Return(true, nil)
	m.profiles.EXPECT().Get(ctx, "alice").Return(aliceProfile(), nil)
	m.tokenGen.EXPECT().Generate().Return("", errBoom)

	_, err := svc.Login(ctx, models.Credentials{Username: "alice", Password: "pw"})

	require.ErrorIs(t, err, ErrStoreUnavailable)
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestAuthService_Logout_CurrentToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	m.cache.Put("tok-1", aliceProfile())
	m.tokens.EXPECT().Get(ctx, "alice").Return("tok-1", nil)
	m.tokens.EXPECT().Delete(ctx, "alice").Return(nil)

	require.NoError(t, svc.Logout(ctx, "tok-1"))

	_, ok := m.cache.Get("tok-1")
	assert.False(t, ok)
}

func TestAuthService_Logout_StaleTokenDoesNotRevokeNewer(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	m.cache.Put("tok-old", aliceProfile())
	m.tokens.EXPECT().Get(ctx, "alice").Return("tok-new", nil)
	// no Delete expected

	require.NoError(t, svc.Logout(ctx, "tok-old"))

	_, ok := m.cache.Get("tok-old")
	assert.False(t, ok)
}

func TestAuthService_Logout_UnknownToken_NoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestAuthSvc(t, ctrl)

	require.NoError(t, svc.Logout(context.Background(), "nobody"))
}

func TestAuthService_Logout_TokenStoreDown_KeepsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	m.cache.Put("tok-1", aliceProfile())
	m.tokens.EXPECT().Get(ctx, "alice").Return("", errBoom)

	err := svc.Logout(ctx, "tok-1")

	require.ErrorIs(t, err, ErrStoreUnavailable)
	_, ok := m.cache.Get("tok-1")
	assert.True(t, ok)
}

// ── Resolve / IsOwner ────────────────────────────────────────────────────────

func TestAuthService_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	m.cache.Put("tok-1", aliceProfile())

	p, ok := svc.Resolve(ctx, "tok-1")
	assert.True(t, ok)
	assert.Equal(t, "alice", p.Username)

	_, ok = svc.Resolve(ctx, "")
	assert.False(t, ok)
	_, ok = svc.Resolve(ctx, "tok-2")
	assert.False(t, ok)
}

func TestAuthService_IsOwner(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		username   string
		storeToken string
		storeErr   error
		wantOwner  bool
		wantErr    error
		wantCached bool
	}{
		{name: "current token", token: "tok-1", username: "alice", storeToken: "tok-1", wantOwner: true, wantCached: true},
		{name: "superseded token", token: "tok-1", username: "alice", storeToken: "tok-2", wantCached: false},
		{name: "revoked token", token: "tok-1", username: "alice", storeErr: store.ErrTokenNotFound, wantCached: false},
		{name: "store down", token: "tok-1", username: "alice", storeErr: errBoom, wantErr: ErrStoreUnavailable, wantCached: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, m := newTestAuthSvc(t, ctrl)
			ctx := context.Background()

			m.cache.Put("tok-1", aliceProfile())
			m.tokens.EXPECT().Get(ctx, tt.username).Return(tt.storeToken, tt.storeErr)

			owner, err := svc.IsOwner(ctx, tt.token, tt.username)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantOwner, owner)
			_, ok := m.cache.Get("tok-1")
			assert.Equal(t, tt.wantCached, ok)
		})
	}
}

func TestAuthService_IsOwner_OtherUsersPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)

	m.cache.Put("tok-1", aliceProfile())

	owner, err := svc.IsOwner(context.Background(), "tok-1", "bob")

	require.NoError(t, err)
	assert.False(t, owner)
}

// ── UpdateProfile / ChangePassword ───────────────────────────────────────────

func TestAuthService_UpdateProfile_WritesThroughToCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	m.cache.Put("tok-1", aliceProfile())
	first := "Alice"
	update := models.ProfileUpdate{FirstName: &first}
	m.profiles.EXPECT().Update(ctx, "alice", update).Return(nil)

	require.NoError(t, svc.UpdateProfile(ctx, "alice", update))

	p, ok := m.cache.Get("tok-1")
	require.True(t, ok)
	assert.Equal(t, "Alice", p.FirstName)
}

func TestAuthService_UpdateProfile_StoreFailure_CacheUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	m.cache.Put("tok-1", aliceProfile())
	first := "Alice"
	m.profiles.EXPECT().Update(ctx, "alice", gomock.Any()).Return(errBoom)

	err := svc.UpdateProfile(ctx, "alice", models.ProfileUpdate{FirstName: &first})

	require.ErrorIs(t, err, ErrStoreUnavailable)
	p, _ := m.cache.Get("tok-1")
	assert.Empty(t, p.FirstName)
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	m.credentials.EXPECT().UpdatePassword(ctx, "alice", "new").Return(nil)
	require.NoError(t, svc.ChangePassword(ctx, "alice", "new"))

	m.credentials.EXPECT().UpdatePassword(ctx, "ghost", "new").Return(store.ErrNotFound)
	require.ErrorIs(t, svc.ChangePassword(ctx, "ghost", "new"), ErrNotFound)
}

// ── DeleteAccount ────────────────────────────────────────────────────────────

func TestAuthService_DeleteAccount_WrongConfirmation_NoMutation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)

	m.cache.Put("tok-1", aliceProfile())
	// no store expectations: any call fails the test

	err := svc.DeleteAccount(context.Background(), "alice", "wrong")

	require.ErrorIs(t, err, ErrInvalidRequest)
	_, ok := m.cache.Get("tok-1")
	assert.True(t, ok)
}

func TestAuthService_DeleteAccount_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	profile := aliceProfile()
	profile.Avatar = "avatars/alice.png"
	m.cache.Put("tok-1", profile)

	gomock.InOrder(
		m.profiles.EXPECT().Get(ctx, "alice").Return(profile, nil),
		m.tokens.EXPECT().Delete(ctx, "alice").Return(nil),
		m.profiles.EXPECT().Delete(ctx, "alice").Return(nil),
		m.credentials.EXPECT().Delete(ctx, "alice").Return(nil),
	)
	m.sink.EXPECT().Remove(gomock.Any(), "avatars/alice.png").Return(nil)
	m.sink.EXPECT().RemoveAll(gomock.Any(), "files/alice").Return(nil)

	require.NoError(t, svc.DeleteAccount(ctx, "alice", "alice"))

	_, ok := m.cache.Get("tok-1")
	assert.False(t, ok)
}

func TestAuthService_DeleteAccount_TokenStoreDown_NothingDeleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	m.cache.Put("tok-1", aliceProfile())
	m.profiles.EXPECT().Get(ctx, "alice").Return(aliceProfile(), nil)
	m.tokens.EXPECT().Delete(ctx, "alice").Return(errBoom)

	err := svc.DeleteAccount(ctx, "alice", "alice")

	require.ErrorIs(t, err, ErrStoreUnavailable)
	_, ok := m.cache.Get("tok-1")
	assert.True(t, ok, "session survives when the token could not be revoked")
}

func TestAuthService_DeleteAccount_RetryAfterPartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	// first attempt: profile gone, account delete fails
	m.profiles.EXPECT().Get(ctx, "alice").Return(aliceProfile(), nil)
	m.tokens.EXPECT().Delete(ctx, "alice").Return(nil)
	m.profiles.EXPECT().Delete(ctx, "alice").Return(nil)
	m.credentials.EXPECT().Delete(ctx, "alice").Return(errBoom)

	require.ErrorIs(t, svc.DeleteAccount(ctx, "alice", "alice"), ErrStoreUnavailable)

	// retry: profile already missing, account removed
	m.profiles.EXPECT().Get(ctx, "alice").Return(models.Profile{}, store.ErrNotFound)
	m.tokens.EXPECT().Delete(ctx, "alice").Return(nil)
	m.profiles.EXPECT().Delete(ctx, "alice").Return(store.ErrNotFound)
	m.credentials.EXPECT().Delete(ctx, "alice").Return(nil)
	m.sink.EXPECT().RemoveAll(gomock.Any(), "files/alice").Return(nil)

	require.NoError(t, svc.DeleteAccount(ctx, "alice", "alice"))
}

func TestAuthService_DeleteAccount_UnknownUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	m.profiles.EXPECT().Get(ctx, "ghost").Return(models.Profile{}, store.ErrNotFound)
	m.tokens.EXPECT().Delete(ctx, "ghost").Return(nil)
	m.profiles.EXPECT().Delete(ctx, "ghost").Return(store.ErrNotFound)
	m.credentials.EXPECT().Delete(ctx, "ghost").Return(store.ErrNotFound)
	m.sink.EXPECT().RemoveAll(gomock.Any(), "files/ghost").Return(nil)

	require.ErrorIs(t, svc.DeleteAccount(ctx, "ghost", "ghost"), ErrNotFound)
}

func TestAuthService_DeleteAccount_FileCleanupFailureIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	m.profiles.EXPECT().Get(ctx, "alice").Return(aliceProfile(), nil)
	m.tokens.EXPECT().Delete(ctx, "alice").Return(nil)
	m.profiles.EXPECT().Delete(ctx, "alice").Return(nil)
	m.credentials.EXPECT().Delete(ctx, "alice").Return(nil)
	m.sink.EXPECT().RemoveAll(gomock.Any(), "files/alice").Return(errBoom)

	require.NoError(t, svc.DeleteAccount(ctx, "alice", "alice"))
}

func TestAuthService_DeleteAccount_ProfileDeleteFailure_SessionsStillEvicted(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	m.cache.Put("tok-1", aliceProfile())

	m.profiles.EXPECT().Get(ctx, "alice").Return(aliceProfile(), nil)
	m.tokens.EXPECT().Delete(ctx, "alice").Return(nil)
	m.profiles.EXPECT().Delete(ctx, "alice").Return(errBoom)

	require.ErrorIs(t, svc.DeleteAccount(ctx, "alice", "alice"), ErrStoreUnavailable)

	_, ok := m.cache.Get("tok-1")
	assert.False(t, ok, "a revoked token must not stay resolvable")
	assert.Zero(t, svc.locks.len())
}

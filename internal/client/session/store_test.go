package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookify/internal/client/models"
	"github.com/dmitrijs2005/bookify/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bookify/internal/client/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeValidator struct {
	user  *models.User
	err   error
	calls atomic.Int32
	gate  chan struct{}
}

func (f *fakeValidator) Validate(ctx context.Context, token string) (*models.User, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	return f.user, f.err
}

type failingCreds struct {
	MemoryCredentialStore
	saveErr  error
	clearErr error
}

func (f *failingCreds) Save(ctx context.Context, c Credential) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.MemoryCredentialStore.Save(ctx, c)
}

func (f *failingCreds) Clear(ctx context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	return f.MemoryCredentialStore.Clear(ctx)
}

var alice = models.User{Username: "alice", Email: "alice@example.com"}

func persisted(t *testing.T, token string, u models.User) *MemoryCredentialStore {
	t.Helper()
	creds := NewMemoryCredentialStore()
	require.NoError(t, creds.Save(context.Background(), Credential{Token: token, User: u}))
	return creds
}

func TestNewStore_StartsLoggedOut(t *testing.T) {
	s := NewStore(nil, nil, nil)

	assert.Equal(t, LoggedOut{}, s.State())
	assert.Empty(t, s.Token())
	assert.False(t, s.IsLoggedIn())
}

func TestInitialize_NoCredential_SkipsNetwork(t *testing.T) {
	v := &fakeValidator{}
	s := NewStore(NewMemoryCredentialStore(), v, nil)

	st := s.Initialize(context.Background())

	assert.Equal(t, LoggedOut{}, st)
	assert.Zero(t, v.calls.Load())
}

func TestInitialize_ValidToken_RestoresServerIdentity(t *testing.T) {
	server := models.User{Username: "alice", Email: "new@example.com"}
	creds := persisted(t, "tok", alice)
	s := NewStore(creds, &fakeValidator{user: &server}, nil)

	st := s.Initialize(context.Background())

	assert.Equal(t, LoggedIn{User: server}, st)
	assert.Equal(t, "tok", s.Token())

	stored, err := creds.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, server, stored.User)
}

func TestInitialize_BareOK_UsesPersistedIdentity(t *testing.T) {
	s := NewStore(persisted(t, "tok", alice), &fakeValidator{}, nil)

	st := s.Initialize(context.Background())

	u, ok := UserOf(st)
	require.True(t, ok)
	assert.Equal(t, alice, u)
}

func TestInitialize_Rejected_ClearsCredential(t *testing.T) {
	creds := persisted(t, "stale", alice)
	s := NewStore(creds, &fakeValidator{err: errors.New("401")}, nil)

	st := s.Initialize(context.Background())

	assert.Equal(t, LoggedOut{}, st)
	assert.Empty(t, s.Token())
	stored, err := creds.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestInitialize_NoIdentityAnywhere_ClearsCredential(t *testing.T) {
	creds := persisted(t, "tok", models.User{})
	s := NewStore(creds, &fakeValidator{}, nil)

	assert.Equal(t, LoggedOut{}, s.Initialize(context.Background()))
	stored, _ := creds.Load(context.Background())
	assert.Nil(t, stored)
}

func TestInitialize_IdentityWithoutToken_ClearsCredential(t *testing.T) {
	v := &fakeValidator{}
	creds := persisted(t, "", alice)
	s := NewStore(creds, v, nil)

	assert.Equal(t, LoggedOut{}, s.Initialize(context.Background()))
	assert.Zero(t, v.calls.Load())
	stored, err := creds.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestInitialize_ResolvesOnce(t *testing.T) {
	v := &fakeValidator{user: &alice}
	s := NewStore(persisted(t, "tok", alice), v, nil)

	s.Initialize(context.Background())
	s.Initialize(context.Background())

	assert.EqualValues(t, 1, v.calls.Load())
	select {
	case <-s.Ready():
	default:
		t.Fatal("ready channel not closed")
	}
}

func TestInitialize_LoginDuringValidationWins(t *testing.T) {
	v := &fakeValidator{err: errors.New("expired"), gate: make(chan struct{})}
	creds := persisted(t, "old", alice)
	s := NewStore(creds, v, nil)

	done := make(chan State)
	go func() { done <- s.Initialize(context.Background()) }()

	require.Eventually(t, func() bool { return v.calls.Load() == 1 }, time.Second, time.Millisecond)
	bob := models.User{Username: "bob"}
	require.NoError(t, s.Login(context.Background(), "fresh", bob))
	close(v.gate)

	st := <-done
	assert.Equal(t, LoggedIn{User: bob}, st)
	assert.Equal(t, "fresh", s.Token())
	stored, err := creds.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "fresh", stored.Token)
}

func TestLogin(t *testing.T) {
	t.Run("persists and switches state", func(t *testing.T) {
		creds := NewMemoryCredentialStore()
		s := NewStore(creds, nil, nil)

		require.NoError(t, s.Login(context.Background(), "tok", alice))

		assert.Equal(t, LoggedIn{User: alice}, s.State())
		assert.Equal(t, "tok", s.Token())
		stored, _ := creds.Load(context.Background())
		require.NotNil(t, stored)
		assert.Equal(t, Credential{Token: "tok", User: alice}, *stored)
	})

	t.Run("rejects empty token or username", func(t *testing.T) {
		s := NewStore(nil, nil, nil)

		assert.ErrorIs(t, s.Login(context.Background(), "", alice), ErrInvalidCredential)
		assert.ErrorIs(t, s.Login(context.Background(), "tok", models.User{}), ErrInvalidCredential)
		assert.False(t, s.IsLoggedIn())
	})

	t.Run("persistence failure leaves state unchanged", func(t *testing.T) {
		s := NewStore(&failingCreds{saveErr: errors.New("disk full")}, nil, nil)

		require.Error(t, s.Login(context.Background(), "tok", alice))
		assert.False(t, s.IsLoggedIn())
		assert.Empty(t, s.Token())
	})
}

func TestLogout(t *testing.T) {
	t.Run("clears state and credential", func(t *testing.T) {
		creds := NewMemoryCredentialStore()
		s := NewStore(creds, nil, nil)
		require.NoError(t, s.Login(context.Background(), "tok", alice))

		require.NoError(t, s.Logout(context.Background()))

		assert.Equal(t, LoggedOut{}, s.State())
		assert.Empty(t, s.Token())
		stored, _ := creds.Load(context.Background())
		assert.Nil(t, stored)
	})

	t.Run("state cleared even when storage fails", func(t *testing.T) {
		s := NewStore(&failingCreds{clearErr: errors.New("locked")}, nil, nil)
		require.NoError(t, s.Login(context.Background(), "tok", alice))

		require.Error(t, s.Logout(context.Background()))
		assert.False(t, s.IsLoggedIn())
		assert.Empty(t, s.Token())
	})
}

func TestOwns(t *testing.T) {
	s := NewStore(nil, nil, nil)
	assert.False(t, s.Owns("alice"))

	require.NoError(t, s.Login(context.Background(), "tok", alice))
	assert.True(t, s.Owns("alice"))
	assert.False(t, s.Owns("Alice"))
	assert.False(t, s.Owns(" alice"))
	assert.False(t, s.Owns("alice "))
	assert.False(t, s.Owns("bob"))
	assert.False(t, s.Owns(""))
}

func TestMetadataCredentialStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	creds := NewMetadataCredentialStore(db)

	got, err := creds.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, creds.Save(ctx, Credential{Token: "tok", User: alice}))
	got, err = creds.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, Credential{Token: "tok", User: alice}, *got)

	require.NoError(t, creds.Clear(ctx))
	got, err = creds.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_WithMetadataCredentials_RejectedTokenIsGone(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	creds := NewMetadataCredentialStore(db)
	require.NoError(t, creds.Save(ctx, Credential{Token: "stale", User: alice}))

	s := NewStore(creds, &fakeValidator{err: errors.New("invalid")}, nil)
	assert.Equal(t, LoggedOut{}, s.Initialize(ctx))

	got, err := creds.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_WithMetadataCredentials_OrphanIdentityIsGone(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := metadata.NewSQLiteRepository(db)
	require.NoError(t, repo.Set(ctx, KeyUsername, []byte("alice")))
	require.NoError(t, repo.Set(ctx, KeyEmail, []byte("alice@example.com")))

	creds := NewMetadataCredentialStore(db)
	got, err := creds.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Token)

	s := NewStore(creds, &fakeValidator{}, nil)
	assert.Equal(t, LoggedOut{}, s.Initialize(ctx))

	for _, key := range []string{KeyToken, KeyUsername, KeyEmail} {
		v, err := repo.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, v, key)
	}
}

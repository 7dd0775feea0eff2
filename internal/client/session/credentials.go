package session

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/bookify/internal/client/models"
	"github.com/dmitrijs2005/bookify/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bookify/internal/dbx"
)

// Metadata keys of the persisted credential.
const (
	KeyToken    = "token"
	KeyUsername = "username"
	KeyEmail    = "email"
)

// Credential is the bearer token plus the identity it was issued for.
type Credential struct {
	Token string
	User  models.User
}

// CredentialStore persists at most one credential. Load returns (nil, nil)
// when nothing is stored, and a credential with an empty Token when only
// part of it survived.
type CredentialStore interface {
	Load(ctx context.Context) (*Credential, error)
	Save(ctx context.Context, c Credential) error
	Clear(ctx context.Context) error
}

// MetadataCredentialStore keeps the credential in the local sqlite metadata
// table. Token and identity are written and removed together.
type MetadataCredentialStore struct {
	db *sql.DB
}

func NewMetadataCredentialStore(db *sql.DB) *MetadataCredentialStore {
	return &MetadataCredentialStore{db: db}
}

func metadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (s *MetadataCredentialStore) Load(ctx context.Context) (*Credential, error) {
	repo := metadataRepo(s.db)

	token, err := repo.Get(ctx, KeyToken)
	if err != nil {
		return nil, err
	}
	username, err := repo.Get(ctx, KeyUsername)
	if err != nil {
		return nil, err
	}
	email, err := repo.Get(ctx, KeyEmail)
	if err != nil {
		return nil, err
	}
	if len(token) == 0 && len(username) == 0 && len(email) == 0 {
		return nil, nil
	}

	return &Credential{
		Token: string(token),
		User:  models.User{Username: string(username), Email: string(email)},
	}, nil
}

func (s *MetadataCredentialStore) Save(ctx context.Context, c Credential) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadataRepo(tx)
		if err := repo.Set(ctx, KeyToken, []byte(c.Token)); err != nil {
			return err
		}
		if err := repo.Set(ctx, KeyUsername, []byte(c.User.Username)); err != nil {
			return err
		}
		return repo.Set(ctx, KeyEmail, []byte(c.User.Email))
	})
}

func (s *MetadataCredentialStore) Clear(ctx context.Context) error {
	return metadataRepo(s.db).Delete(ctx, KeyToken, KeyUsername, KeyEmail)
}

// MemoryCredentialStore keeps the credential for the lifetime of the process.
type MemoryCredentialStore struct {
	mu   sync.Mutex
	cred *Credential
}

func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{}
}

func (s *MemoryCredentialStore) Load(context.Context) (*Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred == nil {
		return nil, nil
	}
	c := *s.cred
	return &c, nil
}

func (s *MemoryCredentialStore) Save(_ context.Context, c Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = &c
	return nil
}

func (s *MemoryCredentialStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = nil
	return nil
}

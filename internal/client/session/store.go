package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/bookify/internal/client/models"
	"github.com/dmitrijs2005/bookify/internal/logging"
)

var ErrInvalidCredential = errors.New("session: token and username are required")

// Validator confirms a persisted token with the review service. A nil user
// with a nil error means the token is valid but the identity was not echoed.
type Validator interface {
	Validate(ctx context.Context, token string) (*models.User, error)
}

// Store tracks the current user and bearer token. All methods are safe for
// concurrent use; no lock is held across I/O.
type Store struct {
	creds     CredentialStore
	validator Validator
	logger    logging.Logger

	mu    sync.RWMutex
	state State
	token string
	// version is bumped by every Login and Logout so a slow startup
	// validation cannot overwrite a newer decision.
	version uint64

	initOnce sync.Once
	ready    chan struct{}
}

func NewStore(creds CredentialStore, validator Validator, logger logging.Logger) *Store {
	if creds == nil {
		creds = NewMemoryCredentialStore()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{
		creds:     creds,
		validator: validator,
		logger:    logger.With("component", "session"),
		state:     LoggedOut{},
		ready:     make(chan struct{}),
	}
}

// Initialize validates the persisted credential, if any, and resolves the
// startup state. Only the first call does any work; later calls return the
// current state.
func (s *Store) Initialize(ctx context.Context) State {
	s.initOnce.Do(func() {
		defer close(s.ready)
		s.initialize(ctx)
	})
	return s.State()
}

// Ready is closed once Initialize has resolved.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

func (s *Store) initialize(ctx context.Context) {
	s.mu.RLock()
	v := s.version
	s.mu.RUnlock()

	cred, err := s.creds.Load(ctx)
	if err != nil {
		s.logger.Warn(ctx, "failed to load persisted credential", "error", err)
		s.discard(ctx, v)
		return
	}
	if cred == nil {
		s.logger.Debug(ctx, "no persisted credential")
		return
	}
	if cred.Token == "" {
		s.logger.Warn(ctx, "persisted identity has no token")
		s.discard(ctx, v)
		return
	}
	if s.validator == nil {
		s.logger.Warn(ctx, "no validator configured, dropping persisted credential")
		s.discard(ctx, v)
		return
	}

	user, err := s.validator.Validate(ctx, cred.Token)
	if err != nil {
		s.logger.Info(ctx, "persisted credential rejected", "error", err)
		s.discard(ctx, v)
		return
	}
	if user == nil || user.Username == "" {
		user = &cred.User
	}
	if user.Username == "" {
		s.logger.Warn(ctx, "persisted credential has no identity")
		s.discard(ctx, v)
		return
	}

	s.mu.Lock()
	if s.version != v {
		s.mu.Unlock()
		return
	}
	s.state = LoggedIn{User: *user}
	s.token = cred.Token
	s.mu.Unlock()

	if *user != cred.User {
		if err := s.creds.Save(ctx, Credential{Token: cred.Token, User: *user}); err != nil {
			s.logger.Warn(ctx, "failed to refresh persisted identity", "error", err)
		}
	}
	s.logger.Info(ctx, "session restored", "username", user.Username)
}

// discard drops the persisted credential unless a Login or Logout happened
// after version v was read.
func (s *Store) discard(ctx context.Context, v uint64) {
	s.mu.Lock()
	stale := s.version != v
	if !stale {
		s.state = LoggedOut{}
		s.token = ""
	}
	s.mu.Unlock()

	if stale {
		return
	}
	if err := s.creds.Clear(ctx); err != nil {
		s.logger.Error(ctx, "failed to clear persisted credential", "error", err)
	}
}

// Login persists token and user and switches to LoggedIn. On a persistence
// error the session is left unchanged.
func (s *Store) Login(ctx context.Context, token string, user models.User) error {
	if strings.TrimSpace(token) == "" || strings.TrimSpace(user.Username) == "" {
		return ErrInvalidCredential
	}
	if err := s.creds.Save(ctx, Credential{Token: token, User: user}); err != nil {
		return err
	}

	s.mu.Lock()
	s.version++
	s.state = LoggedIn{User: user}
	s.token = token
	s.mu.Unlock()

	s.logger.Info(ctx, "logged in", "username", user.Username)
	return nil
}

// Logout always leaves the session LoggedOut. The returned error only
// reports a failure to remove the persisted credential.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.version++
	s.state = LoggedOut{}
	s.token = ""
	s.mu.Unlock()

	if err := s.creds.Clear(ctx); err != nil {
		s.logger.Error(ctx, "failed to clear persisted credential", "error", err)
		return err
	}
	s.logger.Info(ctx, "logged out")
	return nil
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Token returns the bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) User() (models.User, bool) {
	return UserOf(s.State())
}

func (s *Store) IsLoggedIn() bool {
	return s.State().IsLoggedIn()
}

// Owns reports whether author is the logged-in user's username. The match is
// exact and case sensitive.
func (s *Store) Owns(author string) bool {
	u, ok := s.User()
	return ok && author != "" && u.Username == author
}

package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/bookify/internal/logging"
	"github.com/dmitrijs2005/bookify/internal/server/models"
	"github.com/gorilla/mux"
)

const shutdownTimeout = 10 * time.Second

// Users is the account side of the service as seen by handlers.
type Users interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Identify(ctx context.Context, token string) (*models.User, error)
}

type Reviews interface {
	ListByBook(ctx context.Context, bookID string) ([]models.Review, error)
	ListByUser(ctx context.Context, userID string) ([]models.Review, error)
	Create(ctx context.Context, author *models.User, bookID, text string, rating int) (*models.Review, error)
	Update(ctx context.Context, userID, id, text string, rating *int) error
	Delete(ctx context.Context, userID, id string) error
}

type Server struct {
	address string
	users   Users
	reviews Reviews
	logger  logging.Logger
}

func NewServer(address string, logger logging.Logger, us Users, rs Reviews) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{
		address: address,
		users:   us,
		reviews: rs,
		logger:  logger.With("module", "http_server"),
	}
}

// Handler returns the routed handler with request logging applied.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/validate", s.requireUser(s.handleValidate)).Methods(http.MethodGet)

	r.HandleFunc("/reviews/book/{bookId}", s.handleListForBook).Methods(http.MethodGet)
	r.HandleFunc("/reviews/user", s.requireUser(s.handleListForUser)).Methods(http.MethodGet)
	r.HandleFunc("/reviews", s.requireUser(s.handleCreate)).Methods(http.MethodPost)
	r.HandleFunc("/reviews/{id}", s.requireUser(s.handleUpdate)).Methods(http.MethodPut)
	r.HandleFunc("/reviews/{id}", s.requireUser(s.handleDelete)).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return s.logRequests(r)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	err := srv.Serve(listen)
	if errors.Is(err, http.ErrServerClosed) {
		<-done
		return nil
	}
	return err
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/bookify/internal/client/catalog"
	"github.com/dmitrijs2005/bookify/internal/client/client"
	"github.com/dmitrijs2005/bookify/internal/client/config"
	"github.com/dmitrijs2005/bookify/internal/client/models"
	"github.com/dmitrijs2005/bookify/internal/client/reviews"
	"github.com/dmitrijs2005/bookify/internal/client/services"
	"github.com/dmitrijs2005/bookify/internal/client/session"
	"github.com/dmitrijs2005/bookify/internal/client/storage"
	"github.com/dmitrijs2005/bookify/internal/logging"
)

type view int

const (
	viewHome view = iota
	viewBook
	viewMine
)

type App struct {
	session     *session.Store
	authService services.AuthService
	bookService services.BookService
	reviews     *reviews.Controller
	logger      logging.Logger

	reader  *bufio.Reader
	out     io.Writer
	closeFn func() error

	view    view
	results []models.Book
	book    *models.Book
	titles  map[string]models.Book
}

// Deps are the collaborators of an App. In and Out default to the process
// standard streams.
type Deps struct {
	Session *session.Store
	Auth    services.AuthService
	Books   services.BookService
	Reviews *reviews.Controller
	Logger  logging.Logger
	In      io.Reader
	Out     io.Writer
}

func New(d Deps) *App {
	if d.In == nil {
		d.In = os.Stdin
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}
	return &App{
		session:     d.Session,
		authService: d.Auth,
		bookService: d.Books,
		reviews:     d.Reviews,
		logger:      d.Logger,
		reader:      bufio.NewReader(d.In),
		out:         d.Out,
	}
}

// NewApp opens the local database and builds every client component from c.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	api := client.NewHTTPClient(c.ReviewServiceURL, c.RequestTimeout)
	store := session.NewStore(session.NewMetadataCredentialStore(db), api, logger)
	books := catalog.NewGoogleBooks(
		catalog.WithBaseURL(c.CatalogURL),
		catalog.WithTimeout(c.RequestTimeout),
		catalog.WithLogger(logger),
	)

	a := New(Deps{
		Session: store,
		Auth:    services.NewAuthService(api, store, logger),
		Books:   services.NewBookService(books, c.SearchMaxResults),
		Reviews: reviews.NewController(api, store, logger),
		Logger:  logger,
	})
	a.closeFn = db.Close
	return a, nil
}

// Run restores the previous session and serves commands until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Welcome to Bookify (type 'help' for commands)")

	if err := a.authService.Ping(ctx); err != nil {
		printlnFn("Warning: the review service is not reachable right now.")
	}
	if u, ok := session.UserOf(a.session.Initialize(ctx)); ok {
		printlnFn(fmt.Sprintf("Welcome back, %s!", u.Username))
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	if a.closeFn != nil {
		if err := a.closeFn(); err != nil {
			a.logger.Warn(context.Background(), "error closing database", "error", err)
		}
		a.closeFn = nil
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsLoggedIn()
}

func (a *App) getStatus() string {
	s := ""
	if u, ok := a.session.User(); ok {
		s = u.Username
	}
	switch {
	case a.view == viewBook && a.book != nil:
		s = joinStatus(s, a.book.Title)
	case a.view == viewMine:
		s = joinStatus(s, "my reviews")
	}
	if _, editing := a.reviews.Editing(); editing {
		s = joinStatus(s, "editing")
	}
	if s != "" {
		s = fmt.Sprintf("(%s) ", s)
	}
	return s
}

func joinStatus(a, b string) string {
	if a == "" {
		return b
	}
	return a + " | " + b
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

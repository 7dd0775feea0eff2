// Package reviews keeps a view's list of reviews in step with the review
// service. The server is authoritative: after every successful change the
// list is fetched again rather than patched locally.
package reviews

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/bookify/internal/client/models"
	"github.com/dmitrijs2005/bookify/internal/logging"
	"github.com/dmitrijs2005/bookify/internal/validate"
)

// ReviewAPI is the part of the review service client the controller uses.
type ReviewAPI interface {
	ListReviewsForBook(ctx context.Context, bookID string) ([]models.Review, error)
	ListReviewsForUser(ctx context.Context, token string) ([]models.Review, error)
	CreateReview(ctx context.Context, token, bookID, text string, rating int) (models.Review, error)
	UpdateReview(ctx context.Context, token, id, text string, rating *int) error
	DeleteReview(ctx context.Context, token, id string) error
}

// Session is the read side of the session store.
type Session interface {
	Token() string
	Owns(author string) bool
}

// Item is one row of the rendered list.
type Item struct {
	Review  models.Review
	CanEdit bool
	Editing bool
}

// EditState is an in-progress inline edit. Text and Rating are the draft;
// OriginalText and OriginalRating are what Cancel returns to.
type EditState struct {
	ReviewID       string
	Text           string
	Rating         int
	OriginalText   string
	OriginalRating int
}

type Controller struct {
	api    ReviewAPI
	sess   Session
	logger logging.Logger

	mu         sync.Mutex
	scope      Scope
	mounted    bool
	generation uint64
	reviews    []models.Review
	edit       *EditState
	// stale is set when a reload after a successful change failed; the list
	// no longer reflects the server and must not seed an edit.
	stale bool
}

func NewController(api ReviewAPI, sess Session, logger logging.Logger) *Controller {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Controller{
		api:    api,
		sess:   sess,
		logger: logger.With("component", "reviews"),
	}
}

// Mount points the controller at scope and loads its reviews. A failed load
// keeps the last list of the same scope. A response that arrives after a
// newer Mount is dropped.
func (c *Controller) Mount(ctx context.Context, scope Scope) error {
	token := c.sess.Token()
	if scope.IsUser() && token == "" {
		return ErrNotLoggedIn
	}

	c.mu.Lock()
	if !c.mounted || c.scope != scope {
		c.reviews = nil
		c.edit = nil
		c.stale = false
	}
	c.scope = scope
	c.mounted = true
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	return c.fetch(ctx, gen, scope, token)
}

// Refresh reloads the mounted scope.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.refresh(ctx, c.sess.Token())
}

func (c *Controller) refresh(ctx context.Context, token string) error {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return nil
	}
	scope := c.scope
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	if scope.IsUser() && token == "" {
		return ErrNotLoggedIn
	}
	return c.fetch(ctx, gen, scope, token)
}

func (c *Controller) fetch(ctx context.Context, gen uint64, scope Scope, token string) error {
	var (
		list []models.Review
		err  error
	)
	if scope.IsUser() {
		list, err = c.api.ListReviewsForUser(ctx, token)
	} else {
		list, err = c.api.ListReviewsForBook(ctx, scope.BookID())
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug(ctx, "dropping stale review list", "scope", scope.String())
		return nil
	}
	if err != nil {
		c.logger.Warn(ctx, "failed to load reviews", "scope", scope.String(), "error", err)
		return err
	}

	c.reviews = append([]models.Review(nil), list...)
	c.stale = false
	if c.edit != nil && c.indexOf(c.edit.ReviewID) < 0 {
		c.edit = nil
	}
	c.logger.Debug(ctx, "reviews loaded", "scope", scope.String(), "count", len(list))
	return nil
}

// Scope returns the mounted scope.
func (c *Controller) Scope() (Scope, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scope, c.mounted
}

// Items returns a snapshot of the list in server order.
func (c *Controller) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]Item, 0, len(c.reviews))
	for _, r := range c.reviews {
		owned := c.sess.Owns(r.Author)
		items = append(items, Item{
			Review:  r,
			CanEdit: owned,
			Editing: owned && c.edit != nil && c.edit.ReviewID == r.ID,
		})
	}
	return items
}

// Reviews returns the bare reviews of the current list.
func (c *Controller) Reviews() []models.Review {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Review{}, c.reviews...)
}

// Submit creates a review on the mounted book and reloads the list. It does
// nothing while logged out.
func (c *Controller) Submit(ctx context.Context, text string, rating int) error {
	token := c.sess.Token()
	if token == "" {
		return nil
	}
	if err := validate.Review(text, rating); err != nil {
		return err
	}

	c.mu.Lock()
	scope, mounted := c.scope, c.mounted
	c.mu.Unlock()
	if !mounted || scope.IsUser() || scope.BookID() == "" {
		return ErrNoBook
	}

	created, err := c.api.CreateReview(ctx, token, scope.BookID(), strings.TrimSpace(text), rating)
	if err != nil {
		c.logger.Warn(ctx, "failed to create review", "book_id", scope.BookID(), "error", err)
		return err
	}
	c.logger.Info(ctx, "review created", "book_id", scope.BookID(), "review_id", created.ID)

	return c.reloadAfterChange(ctx, token)
}

// BeginEdit starts an inline edit of review id. Any other edit in progress
// is cancelled. After a change whose reload failed, BeginEdit returns
// ErrStale until Refresh succeeds.
func (c *Controller) BeginEdit(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stale {
		return ErrStale
	}
	i := c.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	r := c.reviews[i]
	if !c.sess.Owns(r.Author) {
		return ErrNotOwner
	}

	c.edit = &EditState{
		ReviewID:       r.ID,
		Text:           r.Text,
		Rating:         r.Rating,
		OriginalText:   r.Text,
		OriginalRating: r.Rating,
	}
	return nil
}

// SetDraft replaces the draft of the edit in progress.
func (c *Controller) SetDraft(text string, rating int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.edit == nil {
		return ErrNotEditing
	}
	c.edit.Text = text
	c.edit.Rating = rating
	return nil
}

// Editing returns a copy of the edit in progress. An edit of a review the
// current user does not own is dropped.
func (c *Controller) Editing() (EditState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.edit == nil {
		return EditState{}, false
	}
	if !c.ownsLocked(c.edit.ReviewID) {
		c.edit = nil
		return EditState{}, false
	}
	return *c.edit, true
}

// Save sends the draft to the service. Text and rating are always sent. On
// a validation or service failure the edit stays open with its draft. If the
// logged-in user no longer owns the review the edit is dropped and
// ErrNotOwner returned without a request.
func (c *Controller) Save(ctx context.Context) error {
	token := c.sess.Token()
	if token == "" {
		return ErrNotLoggedIn
	}

	c.mu.Lock()
	if c.edit == nil {
		c.mu.Unlock()
		return ErrNotEditing
	}
	if !c.ownsLocked(c.edit.ReviewID) {
		c.edit = nil
		c.mu.Unlock()
		return ErrNotOwner
	}
	draft := *c.edit
	c.mu.Unlock()

	if err := validate.Review(draft.Text, draft.Rating); err != nil {
		return err
	}

	rating := draft.Rating
	if err := c.api.UpdateReview(ctx, token, draft.ReviewID, strings.TrimSpace(draft.Text), &rating); err != nil {
		c.logger.Warn(ctx, "failed to update review", "review_id", draft.ReviewID, "error", err)
		return err
	}
	c.logger.Info(ctx, "review updated", "review_id", draft.ReviewID)

	c.mu.Lock()
	if c.edit != nil && c.edit.ReviewID == draft.ReviewID {
		c.edit = nil
	}
	c.mu.Unlock()

	return c.reloadAfterChange(ctx, token)
}

// Cancel abandons the edit in progress. The list still holds the original
// text, so nothing is sent.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.edit = nil
}

// Delete removes review id and reloads the list.
func (c *Controller) Delete(ctx context.Context, id string) error {
	token := c.sess.Token()
	if token == "" {
		return ErrNotLoggedIn
	}

	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return ErrNotFound
	}
	author := c.reviews[i].Author
	c.mu.Unlock()

	if !c.sess.Owns(author) {
		return ErrNotOwner
	}

	if err := c.api.DeleteReview(ctx, token, id); err != nil {
		c.logger.Warn(ctx, "failed to delete review", "review_id", id, "error", err)
		return err
	}
	c.logger.Info(ctx, "review deleted", "review_id", id)

	c.mu.Lock()
	if c.edit != nil && c.edit.ReviewID == id {
		c.edit = nil
	}
	c.mu.Unlock()

	return c.reloadAfterChange(ctx, token)
}

func (c *Controller) reloadAfterChange(ctx context.Context, token string) error {
	if err := c.refresh(ctx, token); err != nil {
		c.mu.Lock()
		c.stale = true
		c.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrRefresh, err)
	}
	return nil
}

// ownsLocked must be called with c.mu held.
func (c *Controller) ownsLocked(id string) bool {
	i := c.indexOf(id)
	return i >= 0 && c.sess.Owns(c.reviews[i].Author)
}

// indexOf must be called with c.mu held.
func (c *Controller) indexOf(id string) int {
	for i, r := range c.reviews {
		if r.ID == id {
			return i
		}
	}
	return -1
}

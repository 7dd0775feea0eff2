package reviews

import "errors"

var (
	ErrNotLoggedIn = errors.New("reviews: not logged in")
	ErrNotOwner    = errors.New("reviews: only the author can change this review")
	ErrNotEditing  = errors.New("reviews: no review is being edited")
	ErrNotFound    = errors.New("reviews: review is not in the current list")
	ErrNoBook      = errors.New("reviews: no book is open")
	// ErrRefresh wraps a failed reload that followed a successful change.
	// The change itself stands.
	ErrRefresh = errors.New("reviews: change saved but the list could not be reloaded")
	ErrStale   = errors.New("reviews: list is out of date, refresh before editing")
)

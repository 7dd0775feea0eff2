package reviews

// Scope selects which reviews a controller shows.
type Scope struct {
	user   bool
	bookID string
}

// ForBook scopes the list to one book's reviews. No login is needed.
func ForBook(bookID string) Scope {
	return Scope{bookID: bookID}
}

// ForUser scopes the list to the logged-in user's own reviews.
func ForUser() Scope {
	return Scope{user: true}
}

func (s Scope) IsUser() bool   { return s.user }
func (s Scope) BookID() string { return s.bookID }

func (s Scope) String() string {
	if s.user {
		return "user"
	}
	return "book:" + s.bookID
}

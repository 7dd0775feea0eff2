// Package session holds the client's single source of truth for "who is
// logged in": the Store, its persisted credential, and the startup
// validation of that credential against the review service.
package session

import "github.com/dmitrijs2005/bookify/internal/client/models"

// State is either LoggedOut or LoggedIn. Use a type switch or IsLoggedIn;
// there is no nullable user field to forget to check.
type State interface {
	IsLoggedIn() bool
	sealed()
}

type LoggedOut struct{}

func (LoggedOut) IsLoggedIn() bool { return false }
func (LoggedOut) sealed()          {}

type LoggedIn struct {
	User models.User
}

func (LoggedIn) IsLoggedIn() bool { return true }
func (LoggedIn) sealed()          {}

// UserOf returns the user of a LoggedIn state.
func UserOf(s State) (models.User, bool) {
	if in, ok := s.(LoggedIn); ok {
		return in.User, true
	}
	return models.User{}, false
}

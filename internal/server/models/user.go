// Package models holds the reference review service's persistent records.
package models

import "time"

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Review is stored with its author's username so list queries need no join.
// UserID never leaves the server.
type Review struct {
	ID        string    `json:"_id"`
	BookID    string    `json:"bookId"`
	UserID    string    `json:"-"`
	Username  string    `json:"username"`
	Text      string    `json:"reviewText"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// Package common contains shared constants and sentinel errors used across
// Bookify components.
package common

// AuthorizationHeader carries the bearer credential on authenticated
// requests to the review service.
const AuthorizationHeader = "Authorization"

// BearerPrefix precedes the token inside AuthorizationHeader.
const BearerPrefix = "Bearer "

// Minimum lengths shared by client-side validation and the reference server.
const (
	MinReviewLetters  = 3
	MinSearchQueryLen = 3
	MinUsernameLen    = 3
	MinPasswordLen    = 6
	MinRating         = 1
	MaxRating         = 5
)

// Package httpapi exposes the review service over REST/JSON. Errors are
// always a JSON object {"message": "..."} whose message is fit for end users.
package httpapi

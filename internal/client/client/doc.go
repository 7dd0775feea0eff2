// Package client is the transport layer between the Bookify CLI and the
// review service.
//
// # Overview
//
// The Client interface lists every call the application makes: session
// validation, login, registration and review CRUD. HTTPClient implements it
// over HTTP/JSON with bearer-token authentication. The client keeps no state
// between calls; the credential is passed explicitly to every authenticated
// operation.
//
// # Error Handling
//
// Transport failures and timeouts are reported as ErrUnavailable. Non-2xx
// responses become *ServerError, which unwraps to ErrUnauthorized for 401
// and 403. Login failures additionally match ErrInvalidCredentials. The only
// response coerced into success is a 404 when listing reviews of a book,
// which means "no reviews yet".
//
// # Timeouts
//
// Every call is bounded by the timeout given to NewHTTPClient, on top of any
// deadline already carried by the caller's context.
package client

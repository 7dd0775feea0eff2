package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookify/internal/client/models"
	"github.com/dmitrijs2005/bookify/internal/common"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 15 * time.Second

const maxResponseBytes = 4 << 20

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client (tests, custom transports).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    timeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type validateResponse struct {
	User *models.User `json:"user"`
}

type createReviewRequest struct {
	BookID string `json:"bookId"`
	Text   string `json:"reviewText"`
	Rating int    `json:"rating"`
}

type updateReviewRequest struct {
	Text   string `json:"reviewText"`
	Rating *int   `json:"rating,omitempty"`
}

type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool { return r.status >= 200 && r.status < 300 }

func (c *HTTPClient) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/health", "", nil)
	if err != nil {
		return err
	}
	if resp.status != http.StatusOK {
		return ErrUnavailable
	}
	return nil
}

// Login exchanges email and password for a bearer token. Only 200 counts as
// success; any other status matches ErrInvalidCredentials.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, models.User, error) {
	resp, err := c.do(ctx, http.MethodPost, "/login", "", loginRequest{Email: email, Password: password})
	if err != nil {
		return "", models.User{}, err
	}
	if resp.status != http.StatusOK {
		return "", models.User{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, statusError(resp))
	}

	var out loginResponse
	if err := json.Unmarshal(resp.body, &out); err != nil {
		return "", models.User{}, fmt.Errorf("decode login response: %w", err)
	}
	if out.Token == "" {
		return "", models.User{}, errors.New("login response carries no token")
	}
	return out.Token, out.User, nil
}

// Register creates an account. Only 201 is success; the server's message is
// kept verbatim in the returned *ServerError.
func (c *HTTPClient) Register(ctx context.Context, username, email, password string) error {
	resp, err := c.do(ctx, http.MethodPost, "/register", "", registerRequest{Username: username, Email: email, Password: password})
	if err != nil {
		return err
	}
	if resp.status != http.StatusCreated {
		return statusError(resp)
	}
	return nil
}

// Validate checks token against the service. A nil user with a nil error
// means the token is valid but the server did not echo the identity.
func (c *HTTPClient) Validate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	resp, err := c.do(ctx, http.MethodGet, "/validate", token, nil)
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusOK {
		return nil, statusError(resp)
	}

	var out validateResponse
	if len(bytes.TrimSpace(resp.body)) == 0 || json.Unmarshal(resp.body, &out) != nil {
		return nil, nil
	}
	if out.User == nil || out.User.Username == "" {
		return nil, nil
	}
	return out.User, nil
}

// ListReviewsForBook returns the reviews of a book. A 404 means the book has
// no reviews and yields an empty list.
func (c *HTTPClient) ListReviewsForBook(ctx context.Context, bookID string) ([]models.Review, error) {
	resp, err := c.do(ctx, http.MethodGet, "/reviews/book/"+url.PathEscape(bookID), "", nil)
	if err != nil {
		return nil, err
	}
	if resp.status == http.StatusNotFound {
		return []models.Review{}, nil
	}
	if !resp.ok() {
		return nil, statusError(resp)
	}
	return decodeReviews(resp.body)
}

func (c *HTTPClient) ListReviewsForUser(ctx context.Context, token string) ([]models.Review, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	resp, err := c.do(ctx, http.MethodGet, "/reviews/user", token, nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, statusError(resp)
	}
	return decodeReviews(resp.body)
}

func (c *HTTPClient) CreateReview(ctx context.Context, token, bookID, text string, rating int) (models.Review, error) {
	if token == "" {
		return models.Review{}, ErrUnauthorized
	}
	resp, err := c.do(ctx, http.MethodPost, "/reviews", token, createReviewRequest{BookID: bookID, Text: text, Rating: rating})
	if err != nil {
		return models.Review{}, err
	}
	if resp.status != http.StatusCreated {
		return models.Review{}, statusError(resp)
	}

	var out models.Review
	if len(bytes.TrimSpace(resp.body)) > 0 {
		if err := json.Unmarshal(resp.body, &out); err != nil {
			return models.Review{}, fmt.Errorf("decode review: %w", err)
		}
	}
	return out, nil
}

// UpdateReview changes text and, when rating is non-nil, the rating.
func (c *HTTPClient) UpdateReview(ctx context.Context, token, id, text string, rating *int) error {
	if token == "" {
		return ErrUnauthorized
	}
	resp, err := c.do(ctx, http.MethodPut, "/reviews/"+url.PathEscape(id), token, updateReviewRequest{Text: text, Rating: rating})
	if err != nil {
		return err
	}
	if !resp.ok() {
		return statusError(resp)
	}
	return nil
}

func (c *HTTPClient) DeleteReview(ctx context.Context, token, id string) error {
	if token == "" {
		return ErrUnauthorized
	}
	resp, err := c.do(ctx, http.MethodDelete, "/reviews/"+url.PathEscape(id), token, nil)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return statusError(resp)
	}
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, payload any) (*response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}
	return &response{status: resp.StatusCode, body: data}, nil
}

func statusError(resp *response) *ServerError {
	var msg struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(resp.body, &msg)

	text := strings.TrimSpace(msg.Message)
	if text == "" {
		text = strings.TrimSpace(msg.Error)
	}
	if text == "" {
		text = http.StatusText(resp.status)
	}
	return &ServerError{Status: resp.status, Message: text}
}

func decodeReviews(body []byte) ([]models.Review, error) {
	reviews := []models.Review{}
	if len(bytes.TrimSpace(body)) == 0 {
		return reviews, nil
	}
	if err := json.Unmarshal(body, &reviews); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

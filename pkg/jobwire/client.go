// Package jobwire is a client for the Jobwire hiring platform REST API.
// All requests go through a single Client that normalises failures into
// *APIError, enforces a per-attempt timeout, and retries retryable
// failures with a linearly increasing delay.
package jobwire

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	slogctx "github.com/veqryn/slog-context"
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultRetries    = 1
	DefaultRetryDelay = 1 * time.Second

	idempotencyHeader = "X-Idempotency-Key"
)

// TokenSource supplies the bearer credential for a single request. The
// credential is threaded into each call rather than held as mutable
// client state, so overlapping login/logout cannot race with in-flight
// requests.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// StaticToken is a fixed-credential TokenSource. The empty string acts
// as an absent credential.
type StaticToken string

func (s StaticToken) Token(_ context.Context) (string, bool) {
	return string(s), s != ""
}

// Client issues requests against the Jobwire backend with consistent
// headers, timeout, retry, and error-normalisation behaviour.
type Client struct {
	baseURL    *url.URL
	httpc      *http.Client
	tokens     TokenSource
	timeout    time.Duration
	retries    int
	retryDelay time.Duration

	// Services are singletons so cached reads and their invalidation go
	// through one cache regardless of which accessor call produced the
	// service handle.
	auth          *AuthService
	candidates    *CandidatesService
	employers     *EmployersService
	organizations *OrganizationsService
	jobs          *JobsService
	applications  *ApplicationsService
	files         *FilesService
	messaging     *MessagingService
}

type Option func(*Client)

func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithTokenSource sets the credential source consulted on every request.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithTimeout sets the per-attempt timeout. A timed-out attempt surfaces
// as an *APIError with status 408.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRetries sets how many additional attempts follow a retryable failure.
func WithRetries(n int) Option {
	return func(c *Client) { c.retries = n }
}

// WithRetryDelay sets the backoff unit: attempt n waits n * delay.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	c := &Client{
		baseURL:    u,
		httpc:      http.DefaultClient,
		tokens:     StaticToken(""),
		timeout:    DefaultTimeout,
		retries:    DefaultRetries,
		retryDelay: DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.auth = &AuthService{client: c}
	c.candidates = &CandidatesService{client: c}
	c.employers = &EmployersService{client: c}
	c.organizations = newOrganizationsService(c)
	c.jobs = newJobsService(c)
	c.applications = &ApplicationsService{client: c}
	c.files = &FilesService{client: c}
	c.messaging = &MessagingService{client: c}

	return c, nil
}

// Auth exposes the authentication endpoints.
func (c *Client) Auth() *AuthService { return c.auth }

// Candidates exposes the candidate profile endpoints.
func (c *Client) Candidates() *CandidatesService { return c.candidates }

// Employers exposes the employer profile endpoints.
func (c *Client) Employers() *EmployersService { return c.employers }

// Organizations exposes the organization profile endpoints.
func (c *Client) Organizations() *OrganizationsService { return c.organizations }

// Jobs exposes the job posting endpoints.
func (c *Client) Jobs() *JobsService { return c.jobs }

// Applications exposes the job application endpoints.
func (c *Client) Applications() *ApplicationsService { return c.applications }

// Files exposes the file upload/delete endpoints.
func (c *Client) Files() *FilesService { return c.files }

// Messaging exposes the REST side of the messaging endpoints.
func (c *Client) Messaging() *MessagingService { return c.messaging }

// Get issues a GET request and returns the raw response body.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, "")
}

// Post issues a POST request with a JSON body and returns the raw response body.
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.doWithJSON(ctx, http.MethodPost, path, nil, body)
}

// Put issues a PUT request with a JSON body and returns the raw response body.
func (c *Client) Put(ctx context.Context, path string, body any) ([]byte, error) {
	return c.doWithJSON(ctx, http.MethodPut, path, nil, body)
}

// Patch issues a PATCH request with a JSON body and returns the raw response body.
func (c *Client) Patch(ctx context.Context, path string, body any) ([]byte, error) {
	return c.doWithJSON(ctx, http.MethodPatch, path, nil, body)
}

// Delete issues a DELETE request and returns the raw response body.
func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "")
}

// Upload issues a multipart POST carrying one file part plus optional
// form fields. The Content-Type header is produced by the multipart
// writer so the boundary is set correctly.
func (c *Client) Upload(ctx context.Context, path, field, filename string, file io.Reader, fields map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copying file into form: %w", err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("writing form field %q: %w", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}

	return c.do(ctx, http.MethodPost, path, nil, buf.Bytes(), mw.FormDataContentType())
}

func (c *Client) doWithJSON(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		payload = b
	}

	return c.do(ctx, method, path, query, payload, "application/json")
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte, contentType string) ([]byte, error) {
	u := c.buildURL(path, query)

	// One logical call keeps one idempotency key across physical retries
	// so the backend can deduplicate a retried mutation.
	var idempotencyKey string
	if method != http.MethodGet {
		idempotencyKey = uuid.NewString()
	}

	var lastErr *APIError
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			delay := c.backoff(attempt, lastErr)
			slogctx.Debug(ctx, "Retrying request",
				slog.String("method", method),
				slog.String("path", path),
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay))

			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			}
		}

		data, apiErr := c.attempt(ctx, method, u, body, contentType, idempotencyKey)
		if apiErr == nil {
			return data, nil
		}
		if !apiErr.Retryable() {
			return nil, apiErr
		}

		lastErr = apiErr
	}

	return nil, lastErr
}

// attempt performs a single request. A nil *APIError means success; the
// returned bytes are the raw response body.
func (c *Client) attempt(ctx context.Context, method, u string, body []byte, contentType, idempotencyKey string) ([]byte, *APIError) {
	actx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(actx, method, u, reader)
	if err != nil {
		return nil, &APIError{Status: 0, Message: fmt.Sprintf("creating request: %v", err)}
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token, ok := c.tokens.Token(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if idempotencyKey != "" {
		req.Header.Set(idempotencyHeader, idempotencyKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		if errors.Is(actx.Err(), context.DeadlineExceeded) {
			return nil, &APIError{Status: http.StatusRequestTimeout, Message: "request timeout"}
		}

		return nil, &APIError{Status: 0, Message: fmt.Sprintf("network error: %v", err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Status: 0, Message: fmt.Sprintf("network error: reading response: %v", err)}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}

	return nil, newHTTPError(resp, data)
}

func (c *Client) buildURL(path string, query url.Values) string {
	u := *c.baseURL
	u.Path, _ = url.JoinPath(u.Path, path)

	q := u.Query()
	for key, values := range query {
		for _, v := range values {
			if v == "" {
				continue
			}
			q.Add(key, v)
		}
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// backoff computes the wait before the given attempt number. The delay
// grows linearly with the attempt; a sane Retry-After on a 429 wins over
// the computed delay.
func (c *Client) backoff(attempt int, lastErr *APIError) time.Duration {
	delay := time.Duration(attempt) * c.retryDelay
	if lastErr != nil && lastErr.Status == http.StatusTooManyRequests && lastErr.retryAfter > 0 {
		delay = lastErr.retryAfter
	}

	return delay
}

func newHTTPError(resp *http.Response, body []byte) *APIError {
	apiErr := &APIError{
		Status:  resp.StatusCode,
		Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}

	var envelope struct {
		Message string          `json:"message"`
		Errors  json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		apiErr.Message = envelope.Message
		apiErr.Fields = envelope.Errors
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && seconds > 0 {
			apiErr.retryAfter = time.Duration(seconds) * time.Second
		}
	}

	return apiErr
}

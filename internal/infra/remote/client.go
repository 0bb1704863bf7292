// Package remote implements the shared client for the backing relational
// data service: connection setup, the auth endpoints, and the table
// endpoints the entity repositories are built on.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"aura/config"
	"aura/internal/domain/entity"
	domainerrors "aura/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Client is the single process-wide handle to the backend. It owns the base
// URL, the API key, the HTTP transport, and the current session; business
// logic lives in the auth controller and the repositories.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger

	mu      sync.RWMutex
	session *entity.Session
}

// Params holds dependencies for the client, injected by Fx.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// New is the constructor used by the Fx container. The base URL and API key
// come from external configuration; construction fails when either is
// missing so the process never runs with empty credentials.
func New(params Params) (*Client, error) {
	return NewClient(
		params.Config.Remote.BaseURL,
		params.Config.Remote.APIKey,
		params.Config.Remote.RequestTimeout,
		params.Logger,
	)
}

// NewClient builds a client from explicit settings.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("remote: base URL must be provided")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, errors.Wrap(err, "remote: invalid base URL")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("remote: API key must be provided")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// SetSession installs a session; its access token is attached to every
// subsequent request.
func (c *Client) SetSession(session *entity.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = session
}

// Session returns the currently installed session, or nil when anonymous.
func (c *Client) Session() *entity.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.session
}

// ClearSession drops the installed session; subsequent requests are
// anonymous again.
func (c *Client) ClearSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
}

// currentUserID returns the user identifier of the installed session.
func (c *Client) currentUserID() (uuid.UUID, error) {
	session := c.Session()
	if session == nil {
		return uuid.Nil, errors.WithStack(domainerrors.ErrNoSession)
	}

	return session.UserID, nil
}

// do performs one JSON request against the backend. Unrecognized response
// fields are ignored by the decoder, keeping the client forward-compatible
// with schema additions.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, prefer string, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "remote: encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.Wrap(err, "remote: build request")
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.bearerToken())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "remote: request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "remote: read response body")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return c.statusError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Warn("Response decode failed",
			slog.String("path", path),
			slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrDecodeFailed.WithDetails(err.Error()), "remote: decode response")
	}

	return nil
}

// bearerToken returns the access token of the installed session, or the API
// key for anonymous requests.
func (c *Client) bearerToken() string {
	if session := c.Session(); session != nil && session.AccessToken != "" {
		return session.AccessToken
	}

	return c.apiKey
}

// errorBody is the lenient superset of the error shapes the backend emits.
type errorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

// statusError translates a non-2xx response into a classified error. The raw
// body stays in the error details for logging; only the human-readable
// message travels further up.
func (c *Client) statusError(statusCode int, raw []byte) error {
	var body errorBody
	// Decode failures here are fine, the raw body still lands in details.
	_ = json.Unmarshal(raw, &body)

	serverMessage := body.ErrorDescription
	for _, candidate := range []string{body.Msg, body.Message, body.Error} {
		if serverMessage != "" {
			break
		}
		serverMessage = candidate
	}

	c.logger.Warn("Request rejected by server",
		slog.Int("status", statusCode),
		slog.String("server_message", serverMessage))

	classified := domainerrors.FromStatus(statusCode, string(raw))
	if serverMessage != "" {
		return errors.Wrap(classified, serverMessage)
	}

	return errors.WithStack(classified)
}

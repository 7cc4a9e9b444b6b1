// Package gridapi is the HTTP client for the shared grid and dice API
package gridapi

//go:generate mockgen -destination=mock/mock_client.go -package=gridapimock github.com/KirkDiggler/rpg-tabletop/internal/clients/gridapi Client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities/grid"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	dicesession "github.com/KirkDiggler/rpg-tabletop/internal/repositories/dice_session"
)

const defaultTimeout = 10 * time.Second

// Client defines the remote API operations
type Client interface {
	// Create shares a grid and returns it with its assigned id
	Create(ctx context.Context, dto grid.DTO) (*grid.DTO, error)

	// Update replaces the shared grid with the given id
	Update(ctx context.Context, id string, dto grid.DTO) (*grid.DTO, error)

	// Get fetches a shared grid
	Get(ctx context.Context, id string) (*grid.DTO, error)

	// List returns every shared grid, most recently modified first
	List(ctx context.Context) ([]grid.DTO, error)

	// Subscribe streams snapshots of a grid until ctx is canceled. The
	// grid channel is closed when the stream ends; a stream that ends for
	// any reason other than cancellation reports why on the error channel.
	Subscribe(ctx context.Context, id string) (<-chan grid.DTO, <-chan error)

	// RollDice rolls an expression into the entity's session
	RollDice(ctx context.Context, req *RollDiceRequest) (*RollDiceResponse, error)

	// GetRollSession fetches an entity's roll history for a context
	GetRollSession(ctx context.Context, entityID, sessionContext string) (*dicesession.DiceSession, error)

	// ClearRollSession drops an entity's roll history for a context
	ClearRollSession(ctx context.Context, entityID, sessionContext string) (int, error)
}

// RollDiceRequest is the body of POST /api/dice/roll
type RollDiceRequest struct {
	EntityID    string `json:"entityId"`
	Context     string `json:"context"`
	Notation    string `json:"notation"`
	Description string `json:"description,omitempty"`
}

// RollDiceResponse is the reply to POST /api/dice/roll
type RollDiceResponse struct {
	Roll    dicesession.DiceRoll    `json:"roll"`
	Session dicesession.DiceSession `json:"session"`
}

type clearSessionResponse struct {
	RollsDeleted int `json:"rollsDeleted"`
}

// Config contains configuration options for the client
type Config struct {
	// BaseURL of the API, e.g. http://localhost:8080
	BaseURL string
	// Timeout for non-streaming requests (optional, defaults to 10 seconds)
	Timeout time.Duration
	// HTTPClient overrides the transport (optional)
	HTTPClient *http.Client
}

// Validate ensures the base URL is usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.BaseURL == "" {
		vb.RequiredField("BaseURL")
	} else if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		vb.InvalidField("BaseURL", "must be an absolute URL")
	}
	if c.Timeout < 0 {
		vb.InvalidField("Timeout", "cannot be negative")
	}
	return vb.Build()
}

type client struct {
	baseURL string
	http    *http.Client
	stream  *http.Client
}

// New creates an API client
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	var transport http.RoundTripper
	if cfg.HTTPClient != nil {
		transport = cfg.HTTPClient.Transport
	}

	return &client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    &http.Client{Transport: transport, Timeout: timeout},
		// streams stay open as long as the caller wants them
		stream: &http.Client{Transport: transport},
	}, nil
}

var _ Client = (*client)(nil)

func (c *client) Create(ctx context.Context, dto grid.DTO) (*grid.DTO, error) {
	var out grid.DTO
	if err := c.do(ctx, http.MethodPost, "/api/grid/", nil, dto, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) Update(ctx context.Context, id string, dto grid.DTO) (*grid.DTO, error) {
	if id == "" {
		return nil, errors.InvalidArgument("grid id is required")
	}
	var out grid.DTO
	if err := c.do(ctx, http.MethodPut, "/api/grid/"+url.PathEscape(id), nil, dto, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) Get(ctx context.Context, id string) (*grid.DTO, error) {
	if id == "" {
		return nil, errors.InvalidArgument("grid id is required")
	}
	var out grid.DTO
	if err := c.do(ctx, http.MethodGet, "/api/grid/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) List(ctx context.Context) ([]grid.DTO, error) {
	out := []grid.DTO{}
	if err := c.do(ctx, http.MethodGet, "/api/grid/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) RollDice(ctx context.Context, req *RollDiceRequest) (*RollDiceResponse, error) {
	if req == nil {
		return nil, errors.InvalidArgument("request is required")
	}
	var out RollDiceResponse
	if err := c.do(ctx, http.MethodPost, "/api/dice/roll", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func sessionQuery(entityID, sessionContext string) url.Values {
	return url.Values{"entityId": {entityID}, "context": {sessionContext}}
}

func (c *client) GetRollSession(ctx context.Context, entityID, sessionContext string) (*dicesession.DiceSession, error) {
	var out dicesession.DiceSession
	if err := c.do(ctx, http.MethodGet, "/api/dice/session", sessionQuery(entityID, sessionContext), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) ClearRollSession(ctx context.Context, entityID, sessionContext string) (int, error) {
	var out clearSessionResponse
	if err := c.do(ctx, http.MethodDelete, "/api/dice/session", sessionQuery(entityID, sessionContext), nil, &out); err != nil {
		return 0, err
	}
	return out.RollsDeleted, nil
}

func (c *client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request")
		}
		reader = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(ctx, err, method, path)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read response")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return errors.FromBody(resp.StatusCode, data).
			WithMeta("method", method).
			WithMeta("path", path)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.WrapWithCode(err, errors.CodeDataLoss, "failed to decode response").
			WithMeta("path", path)
	}
	return nil
}

func transportError(ctx context.Context, err error, method, path string) error {
	code := errors.CodeUnavailable
	if ctx.Err() != nil {
		code = errors.CodeCanceled
	}
	return errors.WrapWithCode(err, code, "request failed").
		WithMeta("method", method).
		WithMeta("path", path)
}

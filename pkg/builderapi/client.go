package builderapi

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
	"sync"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/storeforge/backend/pkg/errors"
	"github.com/storeforge/backend/pkg/types"
)

const defaultTimeout = 15 * time.Second

var errBaseURLRequired = errors.New("builder api base url is required")

// Credentials carries the bearer token pair used against the API.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// Client is a JSON client for the store builder API. On a 401 it refreshes the
// token pair once and retries the original request once; a second 401 surfaces.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.Mutex
	creds Credentials
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient swaps the underlying transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithCredentials seeds the initial token pair.
func WithCredentials(creds Credentials) Option {
	return func(c *Client) {
		c.creds = creds
	}
}

// New builds a client rooted at baseURL (e.g. "https://api.example.com/api/v1").
func New(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	c := &Client{
		baseURL: trimmed,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetCredentials replaces the stored token pair.
func (c *Client) SetCredentials(creds Credentials) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.creds = creds
}

// Credentials returns the current token pair.
func (c *Client) Credentials() Credentials {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.creds
}

// Page is the wire shape of a page resource.
type Page struct {
	ID        uuid.UUID    `json:"id"`
	StoreID   uuid.UUID    `json:"storeId"`
	Slug      string       `json:"slug"`
	Title     string       `json:"title"`
	Blocks    types.Blocks `json:"blocks"`
	IsHome    bool         `json:"isHome"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Store is the wire shape of a store resource.
type Store struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Subdomain   string         `json:"subdomain"`
	Theme       types.Theme    `json:"theme"`
	Settings    types.Settings `json:"settings"`
	IsPublished bool           `json:"isPublished"`
}

// GetPage fetches one page by store and slug.
func (c *Client) GetPage(ctx context.Context, storeID uuid.UUID, slug string) (*Page, error) {
	var page Page
	path := fmt.Sprintf("/stores/%s/pages/%s", storeID, url.PathEscape(slug))
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdatePageBlocks replaces the full block sequence of a page.
func (c *Client) UpdatePageBlocks(ctx context.Context, pageID uuid.UUID, blocks types.Blocks) (*Page, error) {
	var page Page
	path := fmt.Sprintf("/pages/%s/blocks", pageID)
	body := map[string]any{"blocks": blocks}
	if err := c.do(ctx, http.MethodPut, path, body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// PublishStore marks the store live.
func (c *Client) PublishStore(ctx context.Context, storeID uuid.UUID) (*Store, error) {
	var store Store
	path := fmt.Sprintf("/stores/%s/publish", storeID)
	if err := c.do(ctx, http.MethodPost, path, nil, &store); err != nil {
		return nil, err
	}
	return &store, nil
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding request body")
		}
		payload = encoded
	}

	status, raw, err := c.send(ctx, method, path, payload, c.Credentials().AccessToken)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		refreshed, refreshErr := c.refresh(ctx)
		if refreshErr != nil {
			return refreshErr
		}
		status, raw, err = c.send(ctx, method, path, payload, refreshed.AccessToken)
		if err != nil {
			return err
		}
	}

	return decodeEnvelope(status, raw, out)
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, token string) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building request")
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "calling builder api")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading builder api response")
	}
	return resp.StatusCode, raw, nil
}

// refresh exchanges the stored refresh token for a new pair and swaps it in.
func (c *Client) refresh(ctx context.Context) (Credentials, error) {
	creds := c.Credentials()
	if creds.RefreshToken == "" {
		return Credentials{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
	}

	payload, err := json.Marshal(map[string]string{"refreshToken": creds.RefreshToken})
	if err != nil {
		return Credentials{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding refresh request")
	}

	// The refresh endpoint accepts the expired access token; it only needs the
	// jti inside it to locate the session.
	status, raw, err := c.send(ctx, http.MethodPost, "/auth/refresh", payload, creds.AccessToken)
	if err != nil {
		return Credentials{}, err
	}

	var tokens refreshResponse
	if err := decodeEnvelope(status, raw, &tokens); err != nil {
		return Credentials{}, err
	}

	next := Credentials{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}
	c.SetCredentials(next)
	return next, nil
}

func decodeEnvelope(status int, raw []byte, out any) error {
	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("unexpected builder api response (status %d)", status))
		}
	}

	if status >= 400 {
		if env.Error != nil {
			return pkgerrors.New(codeFromWire(env.Error.Code, status), env.Error.Message)
		}
		return pkgerrors.New(codeFromWire("", status), fmt.Sprintf("builder api returned status %d", status))
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding builder api payload")
	}
	return nil
}

func codeFromWire(code string, status int) pkgerrors.Code {
	if parsed := pkgerrors.Code(code); parsed != "" && pkgerrors.KnownCode(parsed) {
		return parsed
	}
	switch status {
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusConflict:
		return pkgerrors.CodeConflict
	case http.StatusUnprocessableEntity, http.StatusBadRequest:
		return pkgerrors.CodeValidation
	default:
		return pkgerrors.CodeDependency
	}
}

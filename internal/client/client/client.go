package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/eventadmin/internal/common"
	"github.com/dmitrijs2005/eventadmin/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// TokenStore is the persistence the client needs from the session layer.
// Getters return "" when nothing is stored.
type TokenStore interface {
	AccessToken(ctx context.Context) (string, error)
	SetAccessToken(ctx context.Context, token string) error
	ClearAccessToken(ctx context.Context) error
	RefreshToken(ctx context.Context) (string, error)
	SetRefreshToken(ctx context.Context, token string) error
}

// Client is safe for concurrent use.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	store    TokenStore
	timeout  time.Duration
	platform string
	debug    bool
	logger   logging.Logger

	// token is the last access token this client obtained through a refresh.
	// The store stays authoritative; token is used only if reading the store
	// fails, and is dropped when the session is found unrecoverable.
	mu    sync.RWMutex
	token string

	refreshGroup singleflight.Group
}

// New builds a Client for baseURL that reads credentials from store.
func New(baseURL string, store TokenStore, opts ...Option) (*Client, error) {
	if store == nil {
		return nil, errors.New("token store cannot be nil")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:  u,
		http:     &http.Client{},
		store:    store,
		timeout:  DefaultTimeout,
		platform: runtime.GOOS,
		logger:   logging.NewNopLogger(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.debug {
		base := c.http.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		c.http.Transport = &debugTransport{base: base, logger: c.logger}
	}

	return c, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Do sends req, transparently refreshing the access token once on 401.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	at := attempt{state: stateInitial, bearer: c.currentToken(ctx)}
	resp, err := c.send(ctx, req, body, at)
	if err == nil {
		return resp, nil
	}
	return c.recover(ctx, req, body, at, err)
}

func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
}

func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
}

func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body})
}

func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path})
}

// send performs exactly one HTTP exchange.
func (c *Client) send(ctx context.Context, req Request, body []byte, at attempt) (*Response, error) {
	ctx, cancel := context.WithTimeout(logging.ContextWithRequestID(ctx, uuid.NewString()), c.timeout)
	defer cancel()

	target, err := c.resolve(req.Path, req.Query)
	if err != nil {
		return nil, err
	}

	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, rdr)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	c.prepare(ctx, httpReq, req, at)

	c.logger.Debug(ctx, "sending request",
		"method", req.Method, "path", req.Path, "state", at.state.String())

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		requestsTotal.WithLabelValues(req.Method, statusClass(0)).Inc()
		return nil, &TransportError{Method: req.Method, Path: req.Path, Timeout: isTimeout(ctx, err), Err: err}
	}
	defer func() { _ = httpResp.Body.Close() }()

	requestsTotal.WithLabelValues(req.Method, statusClass(httpResp.StatusCode)).Inc()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &TransportError{Method: req.Method, Path: req.Path, Timeout: isTimeout(ctx, err), Err: err}
	}

	if httpResp.StatusCode >= http.StatusBadRequest {
		return nil, &StatusError{Method: req.Method, Path: req.Path, StatusCode: httpResp.StatusCode, Body: respBody}
	}

	return &Response{StatusCode: httpResp.StatusCode, Header: httpResp.Header, Body: respBody}, nil
}

// prepare sets the default headers, applies per-call overrides and attaches
// the bearer token. A missing token is not an error.
func (c *Client) prepare(ctx context.Context, httpReq *http.Request, req Request, at attempt) {
	h := httpReq.Header
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	h.Set(common.PlatformHeaderName, c.platform)
	h.Set(common.RequestIDHeaderName, logging.RequestIDFromContext(ctx))

	for k, vs := range req.Header {
		if http.CanonicalHeaderKey(k) == common.AuthorizationHeaderName && !req.OverrideAuth {
			continue
		}
		h.Del(k)
		for _, v := range vs {
			h.Add(k, v)
		}
	}

	// A caller-supplied Authorization only holds for the first attempt.
	if req.OverrideAuth && at.state == stateInitial && h.Get(common.AuthorizationHeaderName) != "" {
		return
	}

	switch {
	case at.bearer != "":
		h.Set(common.AuthorizationHeaderName, common.BearerPrefix+at.bearer)
	case h.Get(common.AuthorizationHeaderName) == "":
		c.logger.Debug(ctx, "no access token found, proceeding without it", "path", req.Path)
	}
}

func (c *Client) currentToken(ctx context.Context) string {
	token, err := c.store.AccessToken(ctx)
	if err == nil {
		return token
	}
	c.logger.Warn(ctx, "reading access token failed, using in-memory token", "error", err)
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// resolve joins path onto the base URL without doubling or dropping slashes.
func (c *Client) resolve(path string, query url.Values) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse path %q: %w", path, err)
	}
	if ref.IsAbs() || ref.Host != "" {
		return "", fmt.Errorf("path %q must be relative", path)
	}

	u := *c.baseURL
	u.Path = strings.TrimRight(c.baseURL.Path, "/") + "/" + strings.TrimLeft(ref.Path, "/")
	u.RawPath = strings.TrimRight(c.baseURL.EscapedPath(), "/") + "/" + strings.TrimLeft(ref.EscapedPath(), "/")

	q := ref.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	u.Fragment = ""

	return u.String(), nil
}

func encodeBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	if raw, ok := body.(json.RawMessage); ok {
		return raw, nil
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return b, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

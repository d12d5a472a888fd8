package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/eventadmin/internal/common"
)

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// recover handles a failed send. Only a first-time 401 leads to one more
// send, with a token stored meanwhile by a concurrent refresh or else with a
// freshly refreshed one; everything else is returned unchanged.
func (c *Client) recover(ctx context.Context, req Request, body []byte, failed attempt, origErr error) (*Response, error) {
	var se *StatusError
	if !errors.As(origErr, &se) || !failed.state.canRefresh(se.StatusCode) {
		return nil, origErr
	}
	state := stateRetried

	if current := c.currentToken(ctx); current != "" && current != failed.bearer {
		c.logger.Debug(ctx, "access token replaced while request was in flight, retrying with it", "path", req.Path)
		retriesTotal.Inc()
		return c.send(ctx, req, body, attempt{state: state, bearer: current})
	}

	refreshToken, err := c.store.RefreshToken(ctx)
	if err != nil {
		c.logger.Warn(ctx, "reading refresh token failed", "error", err)
		return nil, origErr
	}
	if refreshToken == "" {
		tokenRefreshTotal.WithLabelValues(refreshNoToken).Inc()
		c.logger.Info(ctx, "no refresh token stored, giving up", "path", req.Path)
		return nil, origErr
	}

	newToken, err := c.refresh(ctx, refreshToken, failed.bearer)
	if err != nil {
		return nil, origErr
	}

	retriesTotal.Inc()
	return c.send(ctx, req, body, attempt{state: state, bearer: newToken})
}

// refresh exchanges refreshToken for a new access token. Concurrent callers
// holding the same refresh token share a single exchange. rejected is the
// access token the server turned down.
func (c *Client) refresh(ctx context.Context, refreshToken, rejected string) (string, error) {
	v, err, shared := c.refreshGroup.Do(refreshToken, func() (any, error) {
		return c.exchange(context.WithoutCancel(ctx), refreshToken, rejected)
	})
	if shared {
		c.logger.Debug(ctx, "joined in-flight token refresh")
	}
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) exchange(ctx context.Context, refreshToken, rejected string) (string, error) {
	c.logger.Info(ctx, "attempting to refresh access token")

	req := Request{
		Method:       http.MethodPost,
		Path:         common.RefreshTokenPath,
		Body:         refreshRequest{RefreshToken: refreshToken},
		Header:       http.Header{common.AuthorizationHeaderName: {common.BearerPrefix + refreshToken}},
		OverrideAuth: true,
	}
	body, err := encodeBody(req.Body)
	if err != nil {
		return "", err
	}

	// The exchange is sent in stateRetried: a 401 here must not recurse.
	resp, err := c.send(ctx, req, body, attempt{state: stateRetried})
	if err != nil {
		return "", c.refreshFailed(ctx, err, rejected)
	}

	var out refreshResponse
	if err := resp.Decode(&out); err != nil || out.AccessToken == "" {
		tokenRefreshTotal.WithLabelValues(refreshMalformed).Inc()
		c.logger.Warn(ctx, "token refresh failed: invalid response format")
		c.dropSession(ctx, rejected)
		return "", errRefreshMalformed
	}

	if err := c.store.SetAccessToken(ctx, out.AccessToken); err != nil {
		c.logger.Error(ctx, "persisting refreshed access token failed", "error", err)
	}
	if out.RefreshToken != "" && out.RefreshToken != refreshToken {
		if err := c.store.SetRefreshToken(ctx, out.RefreshToken); err != nil {
			c.logger.Error(ctx, "persisting rotated refresh token failed", "error", err)
		}
	}
	c.setToken(out.AccessToken)

	tokenRefreshTotal.WithLabelValues(refreshOK).Inc()
	c.logger.Info(ctx, "token refresh successful")
	return out.AccessToken, nil
}

// refreshFailed classifies a failed exchange. 401/403 mean the refresh token
// is dead and the access token is cleared; anything else is treated as
// transient and storage is left alone.
func (c *Client) refreshFailed(ctx context.Context, err error, rejected string) error {
	switch StatusCode(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		tokenRefreshTotal.WithLabelValues(refreshRejected).Inc()
		c.logger.Warn(ctx, "refresh token rejected, clearing access token", "status", StatusCode(err))
		c.dropSession(ctx, rejected)
		return errRefreshRejected
	default:
		tokenRefreshTotal.WithLabelValues(refreshFailed).Inc()
		c.logger.Warn(ctx, "token refresh failed", "error", err)
		return err
	}
}

// dropSession clears the access token unless it no longer is the rejected
// one, which happens when another refresh stored a new token in the
// meantime. It is best effort: the caller already has an error to return.
func (c *Client) dropSession(ctx context.Context, rejected string) {
	if current := c.currentToken(ctx); current != rejected {
		c.logger.Info(ctx, "access token was replaced concurrently, keeping it")
		return
	}
	if err := c.store.ClearAccessToken(ctx); err != nil {
		c.logger.Error(ctx, "clearing access token failed", "error", err)
	}
	c.setToken("")
}

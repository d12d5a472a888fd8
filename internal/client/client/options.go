package client

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/eventadmin/internal/logging"
)

// DefaultTimeout bounds every single send, including the refresh call.
const DefaultTimeout = 10 * time.Second

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithTimeout sets the per-send timeout. The value must be greater than zero.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be > 0")
		}
		c.timeout = d
		return nil
	}
}

// WithPlatform sets the value of the Platform header.
func WithPlatform(platform string) Option {
	return func(c *Client) error {
		if platform == "" {
			return fmt.Errorf("platform cannot be empty")
		}
		c.platform = platform
		return nil
	}
}

// WithLogger routes client logs to l.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) error {
		c.logger = l
		return nil
	}
}

// WithTransport replaces the underlying RoundTripper, e.g. with
// httptest.Server.Client().Transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) error {
		c.http.Transport = rt
		return nil
	}
}

// WithDebugLogging logs every request and response line with headers when
// enabled is true. Authorization values are masked.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debug = enabled
		return nil
	}
}

package client

import (
	"net/http"
	"net/http/httputil"

	"github.com/dmitrijs2005/eventadmin/internal/common"
	"github.com/dmitrijs2005/eventadmin/internal/logging"
)

// debugTransport logs request and response heads. Bodies are not dumped so
// the original request body is never consumed here.
type debugTransport struct {
	base   http.RoundTripper
	logger logging.Logger
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	masked := req.Clone(ctx)
	if v := masked.Header.Get(common.AuthorizationHeaderName); v != "" {
		masked.Header.Set(common.AuthorizationHeaderName, maskBearer(v))
	}
	if dump, err := httputil.DumpRequestOut(masked, false); err == nil {
		dt.logger.Debug(ctx, "HTTP request", "method", req.Method, "url", req.URL.String(), "request_dump", string(dump))
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		dt.logger.Debug(ctx, "HTTP request failed", "method", req.Method, "url", req.URL.String(), "error", err)
		return nil, err
	}

	if dump, err := httputil.DumpResponse(resp, false); err == nil {
		dt.logger.Debug(ctx, "HTTP response", "method", req.Method, "url", req.URL.String(), "status_code", resp.StatusCode, "response_dump", string(dump))
	}
	return resp, nil
}

func maskBearer(v string) string {
	if len(v) > len(common.BearerPrefix) && v[:len(common.BearerPrefix)] == common.BearerPrefix {
		return common.BearerPrefix + common.MaskToken(v[len(common.BearerPrefix):])
	}
	return common.MaskToken(v)
}

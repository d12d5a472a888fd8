package httpapi

import (
	"context"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/eventadmin/internal/common"
	"github.com/dmitrijs2005/eventadmin/internal/logging"
	"github.com/dmitrijs2005/eventadmin/internal/server/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type ctxKey string

const adminKey ctxKey = "admin"

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "eventadmin_devserver",
		Name:      "requests_total",
		Help:      "Handled API requests by route template and status code.",
	},
	[]string{"route", "code"},
)

func bearerToken(r *http.Request) string {
	token, ok := strings.CutPrefix(r.Header.Get(common.AuthorizationHeaderName), common.BearerPrefix)
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// requireAdmin rejects requests without a valid access token and stores the
// administrator in the request context.
func (s *HTTPServer) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accessToken := bearerToken(r)
		if accessToken == "" {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}

		a, err := s.svc.Admins.Authenticate(r.Context(), accessToken)
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), adminKey, a)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole lets through administrators holding one of roles. It must run
// after requireAdmin.
func requireRole(roles ...string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a, ok := adminFrom(r.Context())
			if !ok || !slices.Contains(roles, a.Role) {
				writeError(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func adminFrom(ctx context.Context) (models.Admin, bool) {
	a, ok := ctx.Value(adminKey).(models.Admin)
	return a, ok
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// requestLogger assigns an X-Request-ID when the caller sent none, puts it
// in the request context for every later log line and counts the request.
func (s *HTTPServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		id := r.Header.Get(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(common.RequestIDHeaderName, id)
		r = r.WithContext(logging.ContextWithRequestID(r.Context(), id))

		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		requestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		s.logger.Info(r.Context(), "Request",
			"method", r.Method,
			"route", route,
			"status", rec.status,
			"duration", time.Since(start),
			"platform", r.Header.Get(common.PlatformHeaderName),
		)
	})
}

func (s *HTTPServer) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				s.logger.Error(r.Context(), "Handler panic", "path", r.URL.Path, "panic", v)
				writeError(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

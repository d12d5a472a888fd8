package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/eventadmin/internal/server/models"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler builds the router. Every API route lives under /api; /metrics
// exposes the Prometheus registry.
func (s *HTTPServer) Handler() http.Handler {
	root := mux.NewRouter()
	root.Use(s.recoverer, s.requestLogger)
	root.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	root.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	root.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := root.PathPrefix("/api").Subrouter()

	// open routes
	api.HandleFunc("/admin/login", s.login).Methods(http.MethodPost)
	api.HandleFunc("/admin/refresh-token", s.refreshToken).Methods(http.MethodPost)
	api.HandleFunc("/admin/forgot-password", s.forgotPassword).Methods(http.MethodPost)
	api.HandleFunc("/admin/verify-otp", s.verifyOTP).Methods(http.MethodPost)
	api.HandleFunc("/admin/reset-password", s.resetPassword).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", s.register).Methods(http.MethodPost)
	api.HandleFunc("/auth/check-username-registration", s.checkUsername).Methods(http.MethodPost)

	// Guarded routes stay on api itself: nested subrouters would reset the
	// method mismatch and turn a 405 into a 404.
	signedIn := s.guard()
	api.Handle("/auth/check-token", signedIn(s.checkToken)).Methods(http.MethodGet)
	api.Handle("/auth/userDetails", signedIn(s.userDetails)).Methods(http.MethodGet)
	api.Handle("/auth/update-user", signedIn(s.updateUser)).Methods(http.MethodPut)
	api.Handle("/event/get-events", signedIn(s.listEvents)).Methods(http.MethodGet)
	api.Handle("/event/get-event-leaderboard/{id}", signedIn(s.leaderboard)).Methods(http.MethodGet)

	events := s.guard(models.RoleSuperAdmin, models.RoleEventAdmin)
	api.Handle("/event/create-event", events(s.createEvent)).Methods(http.MethodPost)
	api.Handle("/event/update-status/ongoing/{id}", events(s.startEvent)).Methods(http.MethodPost)
	api.Handle("/event/update-event/{id}", events(s.editEvent)).Methods(http.MethodPut)
	api.Handle("/event/delete-event/{id}", events(s.deleteEvent)).Methods(http.MethodDelete)

	content := s.guard(models.RoleSuperAdmin, models.RoleContentAdmin)
	api.Handle("/post/create-post", content(s.createPost)).Methods(http.MethodPost)
	api.Handle("/post/get-all-posts", content(s.listPosts)).Methods(http.MethodGet)
	api.Handle("/post/user-posts/{id}", content(s.userPosts)).Methods(http.MethodGet)
	api.Handle("/post/comments/{id}", content(s.commentsCount)).Methods(http.MethodGet)
	api.Handle("/post/reports", content(s.listReports)).Methods(http.MethodGet)
	api.Handle("/post/reports/{id}", content(s.actOnReport)).Methods(http.MethodPost)

	users := s.guard(models.RoleSuperAdmin, models.RoleUserAdmin)
	api.Handle("/v1/auth/users", users(s.listUsers)).Methods(http.MethodGet)
	api.Handle("/v1/auth/banning/{id}", users(s.banUser)).Methods(http.MethodPost)

	super := s.guard(models.RoleSuperAdmin)
	api.Handle("/v1/transactions/admin/get-transactions", super(s.listTransactions)).Methods(http.MethodGet)
	api.Handle("/admin/list", super(s.listAdmins)).Methods(http.MethodGet)
	api.Handle("/admin/add", super(s.addAdmin)).Methods(http.MethodPost)
	api.Handle("/admin/{id}/role", super(s.updateAdminRole)).Methods(http.MethodPut)

	return root
}

// guard wraps a handler in requireAdmin and, when roles are given, in
// requireRole as well.
func (s *HTTPServer) guard(roles ...string) func(http.HandlerFunc) http.Handler {
	return func(h http.HandlerFunc) http.Handler {
		var next http.Handler = h
		if len(roles) > 0 {
			next = requireRole(roles...)(next)
		}
		return s.requireAdmin(next)
	}
}

package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/eventadmin/internal/common"
	"github.com/dmitrijs2005/eventadmin/internal/server/models"
	"github.com/dmitrijs2005/eventadmin/internal/server/services"
	"github.com/gorilla/mux"
)

// Events

func (s *HTTPServer) listEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{"success": true, "events": s.svc.Events.List(r.Context())})
}

func (s *HTTPServer) createEvent(w http.ResponseWriter, r *http.Request) {
	var in models.EventInput
	if err := decodeBody(w, r, &in); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	e, err := s.svc.Events.Create(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{"success": true, "message": "event created", "event": e})
}

func (s *HTTPServer) startEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Events.Start(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeOK(w, "event started", nil)
}

func (s *HTTPServer) editEvent(w http.ResponseWriter, r *http.Request) {
	var in models.EventInput
	if err := decodeBody(w, r, &in); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	e, err := s.svc.Events.Edit(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeOK(w, "event updated", envelope{"event": e})
}

func (s *HTTPServer) deleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Events.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeOK(w, "event deleted", nil)
}

func (s *HTTPServer) leaderboard(w http.ResponseWriter, r *http.Request) {
	lb, err := s.svc.Events.Leaderboard(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lb)
}

// Posts and reports

func (s *HTTPServer) createPost(w http.ResponseWriter, r *http.Request) {
	a, ok := adminFrom(r.Context())
	if !ok {
		s.writeServiceError(w, r, common.ErrorUnauthorized)
		return
	}
	var in models.PostInput
	if err := decodeBody(w, r, &in); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	p, err := s.svc.Posts.Create(r.Context(), a.ID, in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{"success": true, "message": "post created", "post": p})
}

func (s *HTTPServer) listPosts(w http.ResponseWriter, r *http.Request) {
	page, limit, err := pageParams(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	posts, pg := s.svc.Posts.List(r.Context(), page, limit)
	writeJSON(w, http.StatusOK, envelope{"success": true, "posts": posts, "pagination": pg})
}

func (s *HTTPServer) userPosts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{"success": true, "posts": s.svc.Posts.UserPosts(r.Context(), mux.Vars(r)["id"])})
}

func (s *HTTPServer) commentsCount(w http.ResponseWriter, r *http.Request) {
	n, err := s.svc.Posts.CommentsCount(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "count": n})
}

func (s *HTTPServer) listReports(w http.ResponseWriter, r *http.Request) {
	page, limit, err := pageParams(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	reports, pg := s.svc.Posts.Reports(r.Context(), page, limit)
	writeJSON(w, http.StatusOK, envelope{"success": true, "reports": reports, "pagination": pg})
}

func (s *HTTPServer) actOnReport(w http.ResponseWriter, r *http.Request) {
	var d models.ReportDecision
	if err := decodeBody(w, r, &d); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if err := s.svc.Posts.ActOnReport(r.Context(), mux.Vars(r)["id"], d.Action, d.Reason); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeOK(w, "report resolved", nil)
}

// Users

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	var in models.Registration
	if err := decodeBody(w, r, &in); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	u, err := s.svc.Users.Register(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{"success": true, "message": "user registered", "user": u})
}

func (s *HTTPServer) checkUsername(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserName string `json:"userName"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	available := s.svc.Users.UsernameAvailable(r.Context(), req.UserName)
	msg := "username is available"
	if !available {
		msg = "username is taken"
	}
	writeJSON(w, http.StatusOK, envelope{"available": available, "message": msg})
}

func (s *HTTPServer) listUsers(w http.ResponseWriter, r *http.Request) {
	page, limit, err := pageParams(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	users, pg := s.svc.Users.List(r.Context(), page, limit)
	writeJSON(w, http.StatusOK, envelope{"success": true, "users": users, "pagination": pg})
}

func (s *HTTPServer) banUser(w http.ResponseWriter, r *http.Request) {
	var req models.BanRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if err := s.svc.Users.Ban(r.Context(), mux.Vars(r)["id"], req.BanStatus, req.Reason); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeOK(w, "user "+req.BanStatus+"ned", nil)
}

// Transactions

func (s *HTTPServer) listTransactions(w http.ResponseWriter, r *http.Request) {
	page, limit, err := pageParams(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	q := r.URL.Query()
	txs, pg, err := s.svc.Transactions.List(r.Context(), services.TransactionQuery{
		Page:      page,
		Limit:     limit,
		Type:      q.Get("type"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		Search:    q.Get("search"),
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "transactions": txs, "pagination": pg})
}

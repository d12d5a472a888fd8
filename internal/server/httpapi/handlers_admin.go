package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/eventadmin/internal/common"
	"github.com/dmitrijs2005/eventadmin/internal/server/models"
	"github.com/gorilla/mux"
)

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	tokens, a, err := s.svc.Admins.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if statusFor(err) == http.StatusUnauthorized {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		s.writeServiceError(w, r, err)
		return
	}

	writeOK(w, "login successful", envelope{
		"token":        tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
		"data":         envelope{"administrator": a},
	})
}

// refreshToken takes the refresh token from the body, or from the bearer
// header when the body has none.
func (s *HTTPServer) refreshToken(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	token := strings.TrimSpace(req.RefreshToken)
	if token == "" {
		token = bearerToken(r)
	}
	if token == "" {
		writeError(w, http.StatusUnauthorized, "refresh token required")
		return
	}

	tokens, err := s.svc.Admins.RefreshToken(r.Context(), token)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeOK(w, "token refreshed", envelope{
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

func (s *HTTPServer) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if err := s.svc.Admins.ForgotPassword(r.Context(), req.Email); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeOK(w, "otp sent", nil)
}

func (s *HTTPServer) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.OTPVerification
	if err := decodeBody(w, r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if err := s.svc.Admins.VerifyOTP(r.Context(), req.Email, req.OTP); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeOK(w, "otp verified", nil)
}

func (s *HTTPServer) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordReset
	if err := decodeBody(w, r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if err := s.svc.Admins.ResetPassword(r.Context(), req.Email, req.Password); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeOK(w, "password reset", nil)
}

func (s *HTTPServer) checkToken(w http.ResponseWriter, r *http.Request) {
	writeOK(w, "token is valid", nil)
}

// userDetails describes the signed-in administrator in the user shape.
func (s *HTTPServer) userDetails(w http.ResponseWriter, r *http.Request) {
	a, ok := adminFrom(r.Context())
	if !ok {
		s.writeServiceError(w, r, common.ErrorUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "user": adminAsUser(a)})
}

func (s *HTTPServer) updateUser(w http.ResponseWriter, r *http.Request) {
	a, ok := adminFrom(r.Context())
	if !ok {
		s.writeServiceError(w, r, common.ErrorUnauthorized)
		return
	}
	var req models.UserUpdate
	if err := decodeBody(w, r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	name := req.UserName
	if name == "" {
		name = strings.TrimSpace(req.FirstName + " " + req.LastName)
	}
	updated, err := s.svc.Admins.Rename(r.Context(), a.ID, name)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeOK(w, "profile updated", envelope{"user": adminAsUser(updated)})
}

func adminAsUser(a models.Admin) models.User {
	return models.User{ID: a.ID, UserName: a.Name, Email: a.Email, IsActive: true, CreatedAt: a.CreatedAt}
}

func (s *HTTPServer) listAdmins(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{"success": true, "data": s.svc.Admins.List(r.Context())})
}

func (s *HTTPServer) addAdmin(w http.ResponseWriter, r *http.Request) {
	var req models.NewAdmin
	if err := decodeBody(w, r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	a, err := s.svc.Admins.Add(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{"success": true, "message": "admin added", "data": a})
}

func (s *HTTPServer) updateAdminRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := adminFrom(r.Context())
	if !ok {
		s.writeServiceError(w, r, common.ErrorUnauthorized)
		return
	}
	var req models.RoleUpdate
	if err := decodeBody(w, r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if err := s.svc.Admins.UpdateRole(r.Context(), actor, mux.Vars(r)["id"], req.Role); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeOK(w, "role updated", nil)
}

package services

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/eventadmin/internal/client/client"
	"github.com/dmitrijs2005/eventadmin/internal/client/models"
)

// UserService covers the signed-in account and the password reset flow.
type UserService interface {
	UserByToken(ctx context.Context) (*models.User, error)
	CheckUsername(ctx context.Context, userName string) (*models.UsernameCheck, error)
	UpdateUser(ctx context.Context, u models.UserUpdate) error
	ForgotPassword(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, email, password string) error
}

type userService struct {
	api API
}

func NewUserService(api API) UserService {
	return &userService{api: api}
}

func (s *userService) UserByToken(ctx context.Context) (*models.User, error) {
	resp, err := call(ctx, s.api, "user details", client.Request{Method: http.MethodGet, Path: "/auth/userDetails"})
	if err != nil {
		return nil, err
	}
	return decodeObject[models.User](resp.Body, "user", "data")
}

func (s *userService) CheckUsername(ctx context.Context, userName string) (*models.UsernameCheck, error) {
	body := map[string]string{"userName": userName}
	resp, err := call(ctx, s.api, "check username", client.Request{Method: http.MethodPost, Path: "/auth/check-username-registration", Body: body})
	if err != nil {
		return nil, err
	}
	return decodeObject[models.UsernameCheck](resp.Body)
}

func (s *userService) UpdateUser(ctx context.Context, u models.UserUpdate) error {
	_, err := call(ctx, s.api, "update user", client.Request{Method: http.MethodPut, Path: "/auth/update-user", Body: u})
	return err
}

func (s *userService) ForgotPassword(ctx context.Context, email string) error {
	body := models.PasswordResetRequest{Email: email}
	_, err := call(ctx, s.api, "forgot password", client.Request{Method: http.MethodPost, Path: "/admin/forgot-password", Body: body})
	return err
}

func (s *userService) VerifyOTP(ctx context.Context, email, otp string) error {
	return verifyOTP(ctx, s.api, email, otp)
}

func (s *userService) ResetPassword(ctx context.Context, email, password string) error {
	body := models.PasswordReset{Email: email, Password: password}
	_, err := call(ctx, s.api, "reset password", client.Request{Method: http.MethodPost, Path: "/admin/reset-password", Body: body})
	return err
}

func verifyOTP(ctx context.Context, api API, email, otp string) error {
	body := models.OTPVerification{Email: email, OTP: otp}
	_, err := call(ctx, api, "verify otp", client.Request{Method: http.MethodPost, Path: "/admin/verify-otp", Body: body})
	return err
}

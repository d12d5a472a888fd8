package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/eventadmin/internal/common"
	"github.com/dmitrijs2005/eventadmin/internal/cryptox"
	"github.com/dmitrijs2005/eventadmin/internal/logging"
	"github.com/dmitrijs2005/eventadmin/internal/server/auth"
	"github.com/dmitrijs2005/eventadmin/internal/server/config"
	"github.com/dmitrijs2005/eventadmin/internal/server/models"
	"github.com/dmitrijs2005/eventadmin/internal/server/repositories/memory"
	"github.com/google/uuid"
)

const (
	otpValidity = 10 * time.Minute
	saltSize    = 16
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AdminService provides administrator operations:
//   - Login: verify credentials and mint tokens
//   - RefreshToken: rotate refresh tokens and mint new access tokens
//   - Authenticate: resolve an access token to its administrator
//   - ForgotPassword / VerifyOTP / ResetPassword: one-time password reset
//   - List / Add / UpdateRole: administrator management
type AdminService struct {
	store                        *memory.Store
	logger                       logging.Logger
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	now                          func() time.Time
}

func NewAdminService(store *memory.Store, cfg *config.Config, logger logging.Logger) *AdminService {
	return &AdminService{
		store:                        store,
		logger:                       logger.With("module", "admin_service"),
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		now:                          time.Now,
	}
}

// Add creates an administrator. Emails are unique ignoring case.
func (s *AdminService) Add(ctx context.Context, in models.NewAdmin) (models.Admin, error) {
	in.Email = strings.TrimSpace(in.Email)
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return models.Admin{}, fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if in.Password == "" {
		return models.Admin{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	if !models.ValidRole(in.Role) {
		return models.Admin{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, in.Role)
	}
	if in.Name == "" {
		in.Name = strings.Split(in.Email, "@")[0]
	}

	salt := common.GenerateRandByteArray(saltSize)
	a := models.Admin{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Role:      in.Role,
		CreatedAt: s.now(),
		Salt:      salt,
		Verifier:  cryptox.DeriveKey([]byte(in.Password), salt),
	}
	if err := s.store.AddAdmin(a); err != nil {
		if errors.Is(err, memory.ErrDuplicate) {
			return models.Admin{}, fmt.Errorf("admin %s: %w", in.Email, ErrConflict)
		}
		return models.Admin{}, err
	}
	s.logger.Info(ctx, "Admin added", "email", a.Email, "role", a.Role)
	return a, nil
}

// Login verifies the password and, on success, returns a new TokenPair
// together with the administrator.
func (s *AdminService) Login(ctx context.Context, email, password string) (*TokenPair, models.Admin, error) {
	a, err := s.store.AdminByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// spend the same time as a real check
			cryptox.DeriveKey([]byte(password), common.GenerateRandByteArray(saltSize))
			return nil, models.Admin{}, common.ErrorUnauthorized
		}
		return nil, models.Admin{}, common.ErrorInternal
	}

	if !s.checkPassword(a, password) {
		s.logger.Warn(ctx, "Login failed", "email", a.Email)
		return nil, models.Admin{}, common.ErrorUnauthorized
	}

	pair, err := s.generateTokenPair(a.ID)
	if err != nil {
		return nil, models.Admin{}, err
	}
	s.logger.Info(ctx, "Admin logged in", "email", a.Email)
	return pair, a, nil
}

// RefreshToken validates a refresh token, rotates it and returns a fresh
// TokenPair. A token can be exchanged once; expired tokens yield
// common.ErrRefreshTokenExpired, anything else common.ErrorUnauthorized.
func (s *AdminService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	adminID, err := auth.GetAdminIDFromToken(refreshToken, auth.KindRefresh, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			s.store.DeleteRefreshToken(refreshToken)
			return nil, common.ErrRefreshTokenExpired
		}
		return nil, common.ErrorUnauthorized
	}

	token, err := s.store.TakeRefreshToken(refreshToken)
	if err != nil {
		s.logger.Warn(ctx, "Unknown or reused refresh token", "admin", adminID)
		return nil, common.ErrorUnauthorized
	}
	if token.AdminID != adminID {
		return nil, common.ErrorUnauthorized
	}
	if token.Expires.Before(s.now()) {
		return nil, common.ErrRefreshTokenExpired
	}
	if _, err := s.store.AdminByID(adminID); err != nil {
		return nil, common.ErrorUnauthorized
	}

	pair, err := s.generateTokenPair(adminID)
	if err != nil {
		return nil, err
	}
	s.logger.Debug(ctx, "Refresh token rotated", "admin", adminID)
	return pair, nil
}

// Authenticate resolves an access token to the administrator it was issued
// for.
func (s *AdminService) Authenticate(ctx context.Context, accessToken string) (models.Admin, error) {
	id, err := auth.GetAdminIDFromToken(accessToken, auth.KindAccess, s.jwtSecret)
	if err != nil {
		return models.Admin{}, err
	}
	a, err := s.store.AdminByID(id)
	if err != nil {
		return models.Admin{}, common.ErrInvalidToken
	}
	return a, nil
}

// Rename changes the display name of admin id.
func (s *AdminService) Rename(ctx context.Context, id, name string) (models.Admin, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Admin{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := s.store.UpdateAdmin(id, func(a *models.Admin) { a.Name = name }); err != nil {
		return models.Admin{}, err
	}
	return s.store.AdminByID(id)
}

func (s *AdminService) List(ctx context.Context) []models.Admin {
	return s.store.ListAdmins()
}

// UpdateRole changes the role of admin id. Nobody can change their own role,
// so the last super administrator cannot lock everyone out.
func (s *AdminService) UpdateRole(ctx context.Context, actor models.Admin, id, role string) error {
	if !models.ValidRole(role) {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	if actor.ID == id {
		return fmt.Errorf("%w: cannot change your own role", ErrInvalidState)
	}
	if err := s.store.UpdateAdmin(id, func(a *models.Admin) { a.Role = role }); err != nil {
		return err
	}
	s.logger.Info(ctx, "Admin role changed", "admin", id, "role", role, "by", actor.Email)
	return nil
}

// ForgotPassword issues a six digit code for email. There is no mail
// delivery here; the code goes to the log.
func (s *AdminService) ForgotPassword(ctx context.Context, email string) error {
	a, err := s.store.AdminByEmail(strings.TrimSpace(email))
	if err != nil {
		return err
	}
	code, err := otpCode()
	if err != nil {
		return common.ErrorInternal
	}
	s.store.PutOTP(models.OTP{Email: a.Email, Code: code, Expires: s.now().Add(otpValidity)})
	s.logger.Info(ctx, "OTP issued", "email", a.Email, "otp", code)
	return nil
}

func (s *AdminService) VerifyOTP(ctx context.Context, email, code string) error {
	o, err := s.store.GetOTP(strings.TrimSpace(email))
	if err != nil || o.Expires.Before(s.now()) ||
		subtle.ConstantTimeCompare([]byte(o.Code), []byte(strings.TrimSpace(code))) != 1 {
		return fmt.Errorf("%w: invalid or expired otp", ErrInvalidInput)
	}
	o.Verified = true
	s.store.PutOTP(o)
	return nil
}

// ResetPassword sets a new password once the OTP for email was verified.
// Every refresh token of the administrator is revoked.
func (s *AdminService) ResetPassword(ctx context.Context, email, password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	o, err := s.store.GetOTP(strings.TrimSpace(email))
	if err != nil || !o.Verified || o.Expires.Before(s.now()) {
		return fmt.Errorf("%w: otp not verified", ErrInvalidState)
	}
	a, err := s.store.AdminByEmail(o.Email)
	if err != nil {
		return err
	}

	salt := common.GenerateRandByteArray(saltSize)
	verifier := cryptox.DeriveKey([]byte(password), salt)
	if err := s.store.UpdateAdmin(a.ID, func(a *models.Admin) {
		a.Salt = salt
		a.Verifier = verifier
	}); err != nil {
		return err
	}
	s.store.DeleteOTP(o.Email)
	s.store.DeleteRefreshTokens(a.ID)
	s.logger.Info(ctx, "Password reset", "email", a.Email)
	return nil
}

// --- helpers below ---

func (s *AdminService) checkPassword(a models.Admin, password string) bool {
	candidate := cryptox.DeriveKey([]byte(password), a.Salt)
	defer common.WipeByteArray(candidate)
	return subtle.ConstantTimeCompare(a.Verifier, candidate) == 1
}

func (s *AdminService) generateTokenPair(adminID string) (*TokenPair, error) {
	access, err := auth.GenerateToken(adminID, auth.KindAccess, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := auth.GenerateToken(adminID, auth.KindRefresh, s.jwtSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	now := s.now()
	s.store.AddRefreshToken(models.RefreshToken{
		ID:        uuid.NewString(),
		AdminID:   adminID,
		Token:     refresh,
		Expires:   now.Add(s.refreshTokenValidityDuration),
		CreatedAt: now,
	})
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func otpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

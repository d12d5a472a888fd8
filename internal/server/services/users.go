package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/eventadmin/internal/common"
	"github.com/dmitrijs2005/eventadmin/internal/logging"
	"github.com/dmitrijs2005/eventadmin/internal/server/models"
	"github.com/dmitrijs2005/eventadmin/internal/server/repositories/memory"
	"github.com/google/uuid"
)

const (
	BanStatusBan   = "ban"
	BanStatusUnban = "unban"
)

// UserService manages platform (non-admin) accounts.
type UserService struct {
	store  *memory.Store
	logger logging.Logger
	now    func() time.Time
}

func NewUserService(store *memory.Store, logger logging.Logger) *UserService {
	return &UserService{store: store, logger: logger.With("module", "user_service"), now: time.Now}
}

// Register creates an active user. The password is only checked for
// presence; platform users never sign in to this backend.
func (s *UserService) Register(ctx context.Context, in models.Registration) (models.User, error) {
	name := strings.TrimSpace(in.UserName)
	if name == "" {
		return models.User{}, fmt.Errorf("%w: userName is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return models.User{}, fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if in.Password == "" {
		return models.User{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	if !s.UsernameAvailable(ctx, name) {
		return models.User{}, fmt.Errorf("user %s: %w", name, ErrConflict)
	}

	u := models.User{
		ID:        uuid.NewString(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		UserName:  name,
		Email:     in.Email,
		IsActive:  true,
		CreatedAt: s.now(),
	}
	s.store.AddUser(u)
	s.logger.Info(ctx, "User registered", "userName", u.UserName)
	return u, nil
}

func (s *UserService) UsernameAvailable(ctx context.Context, name string) bool {
	_, err := s.store.UserByUserName(strings.TrimSpace(name))
	return errors.Is(err, common.ErrorNotFound)
}

func (s *UserService) List(ctx context.Context, page, limit int) ([]models.User, models.Pagination) {
	return s.store.ListUsers(page, limit)
}

// Ban deactivates or reactivates a user.
func (s *UserService) Ban(ctx context.Context, id, status, reason string) error {
	var active bool
	switch status {
	case BanStatusBan:
		if strings.TrimSpace(reason) == "" {
			return fmt.Errorf("%w: reason is required", ErrInvalidInput)
		}
	case BanStatusUnban:
		active = true
	default:
		return fmt.Errorf("%w: banStatus must be %s or %s", ErrInvalidInput, BanStatusBan, BanStatusUnban)
	}

	err := s.store.UpdateUser(id, func(u *models.User) {
		u.IsActive = active
		u.BanReason = ""
		if !active {
			u.BanReason = reason
		}
	})
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "User ban status changed", "user", id, "status", status)
	return nil
}

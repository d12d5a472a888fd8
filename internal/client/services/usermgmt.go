package services

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/eventadmin/internal/client/client"
	"github.com/dmitrijs2005/eventadmin/internal/client/models"
)

// UserManagementService lists platform users and bans or unbans them.
type UserManagementService interface {
	ListUsers(ctx context.Context, page, limit int) ([]models.User, error)
	BanUser(ctx context.Context, userID string, action models.BanAction, reason string) error
}

type userManagementService struct {
	api API
}

func NewUserManagementService(api API) UserManagementService {
	return &userManagementService{api: api}
}

func (s *userManagementService) ListUsers(ctx context.Context, page, limit int) ([]models.User, error) {
	resp, err := call(ctx, s.api, "list users", client.Request{Method: http.MethodGet, Path: "/v1/auth/users", Query: pageQuery(page, limit)})
	if err != nil {
		return nil, err
	}
	return decodeList[models.User](resp.Body, "users", "data")
}

func (s *userManagementService) BanUser(ctx context.Context, userID string, action models.BanAction, reason string) error {
	seg, err := pathID(userID)
	if err != nil {
		return err
	}
	body := models.BanRequest{BanStatus: action, Reason: reason}
	_, err = call(ctx, s.api, "ban user", client.Request{Method: http.MethodPost, Path: "/v1/auth/banning/" + seg, Body: body})
	return err
}

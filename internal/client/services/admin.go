package services

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/eventadmin/internal/client/client"
	"github.com/dmitrijs2005/eventadmin/internal/client/models"
)

type AdminService interface {
	ListAdmins(ctx context.Context) ([]models.Admin, error)
	AddAdmin(ctx context.Context, a models.NewAdmin) error
	UpdateAdminRole(ctx context.Context, adminID string, role models.Role) error
	VerifyOTP(ctx context.Context, email, otp string) error
}

type adminService struct {
	api API
}

func NewAdminService(api API) AdminService {
	return &adminService{api: api}
}

func (s *adminService) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	resp, err := call(ctx, s.api, "list admins", client.Request{Method: http.MethodGet, Path: "/admin/list"})
	if err != nil {
		return nil, err
	}
	return decodeList[models.Admin](resp.Body, "data", "admins")
}

func (s *adminService) AddAdmin(ctx context.Context, a models.NewAdmin) error {
	_, err := call(ctx, s.api, "add admin", client.Request{Method: http.MethodPost, Path: "/admin/add", Body: a})
	return err
}

func (s *adminService) UpdateAdminRole(ctx context.Context, adminID string, role models.Role) error {
	seg, err := pathID(adminID)
	if err != nil {
		return err
	}
	body := models.RoleUpdate{Role: role}
	_, err = call(ctx, s.api, "update admin role", client.Request{Method: http.MethodPut, Path: "/admin/" + seg + "/role", Body: body})
	return err
}

func (s *adminService) VerifyOTP(ctx context.Context, email, otp string) error {
	return verifyOTP(ctx, s.api, email, otp)
}

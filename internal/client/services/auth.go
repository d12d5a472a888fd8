package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/eventadmin/internal/client/client"
	"github.com/dmitrijs2005/eventadmin/internal/client/models"
	"github.com/dmitrijs2005/eventadmin/internal/client/session"
)

// SessionStore is where a successful login is persisted.
type SessionStore interface {
	Save(ctx context.Context, c session.Credentials) error
	Clear(ctx context.Context) error
}

// AuthService covers login state.
//
// Contract:
//   - Login: authenticate an administrator and persist access token,
//     refresh token and profile in one step.
//   - Logout: drop every stored session value. No server call is made.
//   - CheckToken: ask the server whether the current token is accepted.
//   - Register: create a platform user account.
//   - BaseURL: the API root in use.
type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error)
	Logout(ctx context.Context) error
	CheckToken(ctx context.Context) error
	Register(ctx context.Context, r models.Registration) error
	BaseURL() string
}

type authService struct {
	api   API
	store SessionStore
}

func NewAuthService(api API, store SessionStore) AuthService {
	return &authService{api: api, store: store}
}

type loginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	Data         struct {
		Administrator json.RawMessage `json:"administrator"`
	} `json:"data"`
}

// Login sends the credentials and stores the session on success. Nothing is
// stored when the server rejects the login.
func (a *authService) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	resp, err := call(ctx, a.api, "login", client.Request{Method: http.MethodPost, Path: "/admin/login", Body: creds})
	if err != nil {
		return nil, err
	}

	lr, err := decodeObject[loginResponse](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if lr.Token == "" {
		return nil, fmt.Errorf("login: %w: no token", ErrUnexpectedResponse)
	}

	res := &models.LoginResult{
		AccessToken:  lr.Token,
		RefreshToken: lr.RefreshToken,
		Profile:      lr.Data.Administrator,
	}
	if len(res.Profile) > 0 {
		if err := json.Unmarshal(res.Profile, &res.Admin); err != nil {
			return nil, fmt.Errorf("login: %w: %v", ErrUnexpectedResponse, err)
		}
	}

	err = a.store.Save(ctx, session.Credentials{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		AdminProfile: res.Profile,
	})
	if err != nil {
		return nil, fmt.Errorf("login: saving session: %w", err)
	}
	return res, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (a *authService) CheckToken(ctx context.Context) error {
	_, err := call(ctx, a.api, "check token", client.Request{Method: http.MethodGet, Path: "/auth/check-token"})
	return err
}

func (a *authService) Register(ctx context.Context, r models.Registration) error {
	_, err := call(ctx, a.api, "register", client.Request{Method: http.MethodPost, Path: "/auth/register", Body: r})
	return err
}

func (a *authService) BaseURL() string {
	return a.api.BaseURL()
}

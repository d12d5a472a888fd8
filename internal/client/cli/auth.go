package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/eventadmin/internal/client/client"
	"github.com/dmitrijs2005/eventadmin/internal/client/models"
	"github.com/dmitrijs2005/eventadmin/internal/common"
)

var errLoginFailed = errors.New("login failed: invalid email or password")

// Login asks for credentials, signs in and keeps the returned profile as the
// console identity. Tokens are persisted by the auth service.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	pw, err := GetPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	res, err := a.api.Auth.Login(ctx, models.Credentials{Email: email, Password: string(pw)})
	if err != nil {
		if client.StatusCode(err) == http.StatusUnauthorized {
			return errLoginFailed
		}
		return err
	}

	admin := res.Admin
	if admin.Email == "" {
		admin.Email = email
	}
	a.admin = &admin
	a.logger.Info(ctx, "logged in", "email", admin.Email, "role", admin.Role)
	a.println(fmt.Sprintf("Welcome, %s (%s)", firstNonEmpty(admin.Name, admin.Email), admin.Role.Title()))
	return nil
}

// Logout forgets the stored session. The server is not contacted.
func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Auth.Logout(ctx); err != nil {
		return err
	}
	a.admin = nil
	a.println("Logged out")
	return nil
}

// Status prints what the local session store holds.
func (a *App) Status(ctx context.Context) error {
	st, err := a.session.Status(ctx)
	if err != nil {
		return err
	}

	a.println("API:", a.api.Auth.BaseURL())
	if !st.LoggedIn {
		a.println("Not logged in")
		if st.HasRefreshToken {
			a.println("A refresh token is stored; the next request will try to renew the session")
		}
	} else {
		if a.admin != nil {
			a.println("Admin:", a.admin.Email, "role", a.admin.Role.Title())
		}
		switch {
		case st.ExpiresAt.IsZero():
			a.println("Access token: present")
		case st.Expired(time.Now()):
			a.println("Access token: expired at", st.ExpiresAt.Local().Format(time.DateTime))
		default:
			a.println("Access token: valid until", st.ExpiresAt.Local().Format(time.DateTime))
		}
		a.println("Refresh token:", presence(st.HasRefreshToken))
	}

	if a.config.Debug {
		dump, err := a.session.Dump(ctx)
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(dump))
		for k := range dump {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			a.println(fmt.Sprintf("  %s = %s", k, dump[k]))
		}
	}
	return nil
}

// WhoAmI asks the server who the current token belongs to.
func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.api.Users.UserByToken(ctx)
	if err != nil {
		return err
	}
	a.println(fmt.Sprintf("%s <%s> id=%s", u.DisplayName(), u.Email, u.ID))
	return nil
}

// ResetPassword runs the forgot password flow: request an OTP, verify it,
// then set the new password.
func (a *App) ResetPassword(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	if err := a.api.Users.ForgotPassword(ctx, email); err != nil {
		return err
	}
	a.println("A one-time code was sent to", email)

	otp, err := GetSimpleText(a.reader, "Code", a.out)
	if err != nil {
		return err
	}
	if err := a.api.Users.VerifyOTP(ctx, email, otp); err != nil {
		return err
	}

	pw, err := GetPassword(a.reader, "New password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	again, err := GetPassword(a.reader, "Repeat new password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(again)
	if string(pw) != string(again) {
		return errors.New("passwords do not match")
	}
	if strings.TrimSpace(string(pw)) == "" {
		return errors.New("password cannot be empty")
	}

	if err := a.api.Users.ResetPassword(ctx, email, string(pw)); err != nil {
		return err
	}
	a.println("Password changed, you can login now")
	return nil
}

func presence(ok bool) string {
	if ok {
		return "present"
	}
	return "missing"
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}

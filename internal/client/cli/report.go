package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/eventadmin/internal/client/client"
	"github.com/dmitrijs2005/eventadmin/internal/client/models"
	"github.com/dmitrijs2005/eventadmin/internal/client/services"
)

// report turns a command error into a message for the operator. A 401 that
// survived the refresh attempt means the session is gone, so the local login
// state is dropped as well.
func (a *App) report(ctx context.Context, err error) {
	if err == nil {
		return
	}
	a.logger.Debug(ctx, "command failed", "error", err)

	var se *client.StatusError
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		if a.isLoggedIn() {
			a.println("Session expired, please login again")
			if lerr := a.api.Auth.Logout(ctx); lerr != nil {
				a.logger.Warn(ctx, "clearing session failed", "error", lerr)
			}
			a.admin = nil
			return
		}
		a.println("Not authorized:", messageOf(err))
	case errors.Is(err, client.ErrForbidden):
		a.println("Permission denied: your role cannot do this")
	case errors.Is(err, models.ErrRejected):
		a.println("Rejected:", err)
	case errors.Is(err, client.ErrTimeout):
		a.println("The server did not answer in time, try again")
	case client.IsTransport(err):
		a.println("Server unreachable:", err)
	case errors.As(err, &se):
		a.println(fmt.Sprintf("HTTP %d: %s", se.StatusCode, se.Message()))
	case errors.Is(err, services.ErrEmptyID):
		a.println("An id is required")
	default:
		a.println("Error:", err)
	}
}

func messageOf(err error) string {
	var se *client.StatusError
	if errors.As(err, &se) {
		return se.Message()
	}
	return err.Error()
}

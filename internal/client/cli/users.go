package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/eventadmin/internal/client/models"
	"github.com/dmitrijs2005/eventadmin/internal/common"
)

const pageSize = 20

func (a *App) Users(ctx context.Context, args []string) error {
	page, err := pageArg(args)
	if err != nil {
		return err
	}
	users, err := a.api.UserManagement.ListUsers(ctx, page, pageSize)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		a.println("No users on page", page)
		return nil
	}

	tw := a.table()
	fmt.Fprintln(tw, "ID\tUSERNAME\tNAME\tEMAIL\tBALANCE\tSTATE")
	for _, u := range users {
		state := "active"
		if u.IsActive != nil && !*u.IsActive {
			state = "banned"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%s\n", u.ID, u.UserName, u.DisplayName(), u.Email, u.Balance, state)
	}
	return tw.Flush()
}

// Ban suspends a user. A reason is mandatory.
func (a *App) Ban(ctx context.Context, args []string) error {
	id, err := idArg("ban", args)
	if err != nil {
		return err
	}
	reason, err := GetSimpleText(a.reader, "Reason", a.out)
	if err != nil {
		return err
	}
	if reason == "" {
		return errors.New("a reason is required to ban a user")
	}
	if err := a.api.UserManagement.BanUser(ctx, id, models.Ban, reason); err != nil {
		return err
	}
	a.println("User banned")
	return nil
}

func (a *App) Unban(ctx context.Context, args []string) error {
	id, err := idArg("unban", args)
	if err != nil {
		return err
	}
	if err := a.api.UserManagement.BanUser(ctx, id, models.Unban, ""); err != nil {
		return err
	}
	a.println("User unbanned")
	return nil
}

func (a *App) Admins(ctx context.Context) error {
	admins, err := a.api.Admins.ListAdmins(ctx)
	if err != nil {
		return err
	}
	tw := a.table()
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE")
	for _, ad := range admins {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ad.ID, ad.Name, ad.Email, ad.Role.Title())
	}
	return tw.Flush()
}

// AddAdmin prompts for a new administrator account.
func (a *App) AddAdmin(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	name, err := GetSimpleText(a.reader, "Name (optional)", a.out)
	if err != nil {
		return err
	}
	roleText, err := GetSimpleText(a.reader, "Role ("+roleChoices()+")", a.out)
	if err != nil {
		return err
	}
	role, err := models.ParseRole(roleText)
	if err != nil {
		return err
	}
	pw, err := GetPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	err = a.api.Admins.AddAdmin(ctx, models.NewAdmin{Name: name, Email: email, Password: string(pw), Role: role})
	if err != nil {
		return err
	}
	a.println("Administrator", email, "added as", role.Title())
	return nil
}

func (a *App) SetRole(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: setrole <adminId> <%s>", roleChoices())
	}
	role, err := models.ParseRole(args[1])
	if err != nil {
		return err
	}
	if err := a.api.Admins.UpdateAdminRole(ctx, args[0], role); err != nil {
		return err
	}
	a.println("Role changed to", role.Title())
	return nil
}

func roleChoices() string {
	names := make([]string, len(models.Roles))
	for i, r := range models.Roles {
		names[i] = strings.TrimSuffix(string(r), "_admin")
	}
	return strings.Join(names, "|")
}

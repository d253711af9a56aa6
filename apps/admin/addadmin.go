package main

import (
	"context"
	"time"

	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/user"
)

// addAdmin creates an admin account, or promotes an existing account
// and resets its password. Admins are never created through the public
// registration endpoint.
func (cli *commandLine) addAdmin(name, email, pwd string) error {
	ctx := context.Background()
	name = core.CleanString(name)
	email = core.CleanString(email, true /* lower */)
	now := time.Now().UTC()

	usr, err := cli.usrRepo.GetUser(ctx, user.GetFilter{Email: email})
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		usr = user.User{
			Name:      name,
			Email:     email,
			CreatedAt: now,
		}
	}
	usr.Name = name
	usr.Role = user.RoleAdmin
	usr.UpdatedAt = now
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}

	if usr.ID == 0 {
		_, err = cli.usrRepo.CreateUser(ctx, usr)
	} else {
		_, err = cli.usrRepo.UpdateUser(ctx, usr)
	}
	return err
}

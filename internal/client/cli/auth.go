package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/client/remote"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account fields and creates the account. The
// server's token signs the user in.
func (a *App) Register(ctx context.Context, _ []string) error {
	var req remote.RegisterRequest
	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"Enter full name", &req.FullName},
		{"Enter username", &req.Username},
		{"Enter email", &req.Email},
		{"Enter avatar URL (optional)", &req.Avatar},
	} {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := getPassword("Repeat password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	req.Password, req.ConfirmPassword = string(password), string(confirm)
	return report(ctx, a, "Registration failed", func(ctx context.Context) (string, error) {
		return a.svc.Auth.Register(ctx, req)
	}, func(string) {
		fmt.Fprintln(a.out, "Success!")
	})
}

// Login prompts for credentials and signs in. A failed attempt keeps any
// previous session.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return report(ctx, a, "Login failed", func(ctx context.Context) (string, error) {
		return a.svc.Auth.Login(ctx, email, string(password))
	}, func(string) {
		a.log.Info(ctx, "login successful", "email", email)
		fmt.Fprintln(a.out, "Login successful")
	})
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.svc.Auth.Logout(ctx); err != nil {
		return a.invalid(err)
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI refreshes and prints the signed-in user's profile.
func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	if a.svc.Users == nil {
		return a.unavailable("Profiles")
	}
	a.refreshed(ctx, func(ctx context.Context) error {
		_, err := a.svc.Users.RefreshCurrent(ctx)
		return err
	})
	u, err := first(ctx, a.svc.Users.ObserveCurrent(ctx))
	if err != nil {
		return err
	}
	printUser(a, u)
	a.printLastSync(ctx)
	return nil
}

func (a *App) printLastSync(ctx context.Context) {
	if a.svc.Syncer == nil {
		return
	}
	t, ok, err := a.svc.Syncer.LastSync(ctx)
	switch {
	case err != nil:
		a.log.Warn(ctx, "could not read last sync time", "error", err)
	case !ok:
		fmt.Fprintln(a.out, "Never synced")
	default:
		fmt.Fprintf(a.out, "Last sync: %s\n", t.Local().Format(time.DateTime))
	}
}

func printUser(a *App, u *models.User) {
	if u == nil {
		fmt.Fprintln(a.out, "Profile not cached yet")
		return
	}
	fmt.Fprintf(a.out, "#%d %s (@%s) <%s>\n", u.ID, u.FullName, u.Username, u.Email)
}

// Sync pulls the user's workspaces, members and projects now.
func (a *App) Sync(ctx context.Context, _ []string) error {
	if a.svc.Syncer == nil {
		return a.unavailable("Sync")
	}
	return report(ctx, a, "Sync failed", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, a.svc.Syncer.SyncOnce(ctx)
	}, func(struct{}) {
		fmt.Fprintln(a.out, "Synced")
	})
}

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/client/services"
)

func (a *App) ListWorkspaces(ctx context.Context, _ []string) error {
	owner, err := a.userID()
	if err != nil {
		return a.invalid(err)
	}
	a.refreshed(ctx, func(ctx context.Context) error { return a.svc.Workspaces.Refresh(ctx, owner) })

	list, err := first(ctx, a.svc.Workspaces.ObserveCollection(ctx, owner))
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No workspaces")
	}
	for _, w := range list {
		fmt.Fprintf(a.out, "#%d %s\n", w.ID, w.Title)
	}
	return nil
}

func (a *App) AddWorkspace(ctx context.Context, _ []string) error {
	owner, err := a.userID()
	if err != nil {
		return a.invalid(err)
	}
	title, err := getSimpleText(a.reader, "Enter workspace title", a.out)
	if err != nil {
		return err
	}
	return report(ctx, a, "Could not create workspace", func(ctx context.Context) (*models.Workspace, error) {
		return a.svc.Workspaces.Create(ctx, services.WorkspaceInput{Title: title, OwnerID: owner})
	}, func(w *models.Workspace) {
		fmt.Fprintf(a.out, "Workspace #%d created\n", w.ID)
	})
}

func (a *App) RenameWorkspace(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return a.invalid(err)
	}
	owner, err := a.userID()
	if err != nil {
		return a.invalid(err)
	}
	title, err := getSimpleText(a.reader, "Enter new title", a.out)
	if err != nil {
		return err
	}
	return report(ctx, a, "Could not rename workspace", func(ctx context.Context) (*models.Workspace, error) {
		return a.svc.Workspaces.Update(ctx, id, services.WorkspaceInput{Title: title, OwnerID: owner})
	}, func(w *models.Workspace) {
		fmt.Fprintf(a.out, "Workspace #%d renamed to %s\n", w.ID, w.Title)
	})
}

func (a *App) DeleteWorkspace(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return a.invalid(err)
	}
	return report(ctx, a, "Could not delete workspace", func(ctx context.Context) (bool, error) {
		return a.svc.Workspaces.Delete(ctx, id)
	}, a.printDeleted("Workspace"))
}

func (a *App) ListMembers(ctx context.Context, args []string) error {
	if a.svc.Members == nil {
		return a.unavailable("Members")
	}
	ws, err := parseID(args[0])
	if err != nil {
		return a.invalid(err)
	}
	a.refreshed(ctx, func(ctx context.Context) error { return a.svc.Members.RefreshMembers(ctx, ws) })

	list, err := first(ctx, a.svc.Members.ObserveMembers(ctx, ws))
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No members")
	}
	for _, m := range list {
		fmt.Fprintf(a.out, "user %d: %s\n", m.UserID, roleName(m.RoleID))
	}
	return nil
}

func (a *App) AddMember(ctx context.Context, args []string) error {
	if a.svc.Members == nil {
		return a.unavailable("Members")
	}
	ids, err := parseIDs(args[0], args[1])
	if err != nil {
		return a.invalid(err)
	}
	role, err := parseRole(args[2])
	if err != nil {
		return a.invalid(err)
	}
	return report(ctx, a, "Could not add member", func(ctx context.Context) (*models.WorkspaceMember, error) {
		return a.svc.Members.AddMember(ctx, ids[0], ids[1], role.ID)
	}, func(m *models.WorkspaceMember) {
		fmt.Fprintf(a.out, "User %d added as %s\n", m.UserID, roleName(m.RoleID))
	})
}

func (a *App) ChangeMemberRole(ctx context.Context, args []string) error {
	if a.svc.Members == nil {
		return a.unavailable("Members")
	}
	ids, err := parseIDs(args[0], args[1])
	if err != nil {
		return a.invalid(err)
	}
	role, err := parseRole(args[2])
	if err != nil {
		return a.invalid(err)
	}
	return report(ctx, a, "Could not change role", func(ctx context.Context) (*models.WorkspaceMember, error) {
		return a.svc.Members.UpdateMemberRole(ctx, ids[0], ids[1], role.ID)
	}, func(m *models.WorkspaceMember) {
		fmt.Fprintf(a.out, "User %d is now %s\n", m.UserID, roleName(m.RoleID))
	})
}

func (a *App) RemoveMember(ctx context.Context, args []string) error {
	if a.svc.Members == nil {
		return a.unavailable("Members")
	}
	ids, err := parseIDs(args[0], args[1])
	if err != nil {
		return a.invalid(err)
	}
	return report(ctx, a, "Could not remove member", func(ctx context.Context) (bool, error) {
		return a.svc.Members.RemoveMember(ctx, ids[0], ids[1])
	}, a.printDeleted("Membership"))
}

// parseRole accepts a role name or its numeric id.
func parseRole(s string) (models.MemberRole, error) {
	if id, err := parseID(s); err == nil {
		return models.RoleByID(id)
	}
	return models.RoleByName(strings.ToLower(s))
}

func roleName(id int64) string {
	r, err := models.RoleByID(id)
	if err != nil {
		return fmt.Sprintf("role %d", id)
	}
	return r.Name
}

package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/client/services"
)

func (a *App) ListProjects(ctx context.Context, args []string) error {
	ws, err := parseID(args[0])
	if err != nil {
		return a.invalid(err)
	}
	a.refreshed(ctx, func(ctx context.Context) error { return a.svc.Projects.Refresh(ctx, ws) })

	list, err := first(ctx, a.svc.Projects.ObserveCollection(ctx, ws))
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No projects")
	}
	for _, p := range list {
		fmt.Fprintf(a.out, "#%d %s %s\n", p.ID, p.Icon, p.Title)
	}
	return nil
}

func (a *App) AddProject(ctx context.Context, args []string) error {
	ws, err := parseID(args[0])
	if err != nil {
		return a.invalid(err)
	}
	title, err := getSimpleText(a.reader, "Enter project title", a.out)
	if err != nil {
		return err
	}
	icon, err := GetOptionalText(a.reader, "Enter icon", "", a.out)
	if err != nil {
		return err
	}
	return report(ctx, a, "Could not create project", func(ctx context.Context) (*models.Project, error) {
		return a.svc.Projects.Create(ctx, services.ProjectInput{Title: title, Icon: icon, WorkspaceID: ws})
	}, func(p *models.Project) {
		fmt.Fprintf(a.out, "Project #%d created\n", p.ID)
	})
}

func (a *App) DeleteProject(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return a.invalid(err)
	}
	return report(ctx, a, "Could not delete project", func(ctx context.Context) (bool, error) {
		return a.svc.Projects.Delete(ctx, id)
	}, a.printDeleted("Project"))
}

package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

func (a *App) ListTags(ctx context.Context, _ []string) error {
	if a.svc.Tags == nil {
		return a.unavailable("Tags")
	}
	a.refreshed(ctx, a.svc.Tags.Refresh)

	list, err := first(ctx, a.svc.Tags.ObserveAll(ctx))
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No tags")
	}
	for _, t := range list {
		fmt.Fprintf(a.out, "#%d %s (%s)\n", t.ID, t.Title, t.Color)
	}
	return nil
}

func (a *App) AddTag(ctx context.Context, _ []string) error {
	if a.svc.Tags == nil {
		return a.unavailable("Tags")
	}
	title, err := getSimpleText(a.reader, "Enter tag title", a.out)
	if err != nil {
		return err
	}
	color, err := GetOptionalText(a.reader, "Enter color", "gray", a.out)
	if err != nil {
		return err
	}
	return report(ctx, a, "Could not create tag", func(ctx context.Context) (*models.Tag, error) {
		return a.svc.Tags.Create(ctx, title, color)
	}, func(t *models.Tag) {
		fmt.Fprintf(a.out, "Tag #%d created\n", t.ID)
	})
}

func (a *App) DeleteTag(ctx context.Context, args []string) error {
	if a.svc.Tags == nil {
		return a.unavailable("Tags")
	}
	id, err := parseID(args[0])
	if err != nil {
		return a.invalid(err)
	}
	return report(ctx, a, "Could not delete tag", func(ctx context.Context) (bool, error) {
		return a.svc.Tags.Delete(ctx, id)
	}, a.printDeleted("Tag"))
}

func (a *App) AttachTag(ctx context.Context, args []string) error {
	return a.tagLink(ctx, args, "added to", func(ctx context.Context, task, tag int64) (*models.Task, error) {
		return a.svc.Tags.Attach(ctx, task, tag)
	})
}

func (a *App) DetachTag(ctx context.Context, args []string) error {
	return a.tagLink(ctx, args, "removed from", func(ctx context.Context, task, tag int64) (*models.Task, error) {
		return a.svc.Tags.Detach(ctx, task, tag)
	})
}

func (a *App) tagLink(ctx context.Context, args []string, verb string, fn func(ctx context.Context, task, tag int64) (*models.Task, error)) error {
	if a.svc.Tags == nil {
		return a.unavailable("Tags")
	}
	ids, err := parseIDs(args[0], args[1])
	if err != nil {
		return a.invalid(err)
	}
	return report(ctx, a, "Could not update tags", func(ctx context.Context) (*models.Task, error) {
		return fn(ctx, ids[0], ids[1])
	}, func(t *models.Task) {
		fmt.Fprintf(a.out, "Tag #%d %s task #%d\n", ids[1], verb, t.ID)
	})
}

package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/client/services"
)

func (a *App) ListComments(ctx context.Context, args []string) error {
	task, err := parseID(args[0])
	if err != nil {
		return a.invalid(err)
	}
	a.refreshed(ctx, func(ctx context.Context) error { return a.svc.Comments.Refresh(ctx, task) })

	list, err := first(ctx, a.svc.Comments.ObserveCollection(ctx, task))
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No comments")
	}
	for _, c := range list {
		fmt.Fprintf(a.out, "#%d user %d: %s\n", c.ID, c.AuthorID, c.Content)
	}
	return nil
}

func (a *App) AddComment(ctx context.Context, args []string) error {
	task, err := parseID(args[0])
	if err != nil {
		return a.invalid(err)
	}
	me, err := a.userID()
	if err != nil {
		return a.invalid(err)
	}
	content, err := GetMultiline(a.reader, "Enter comment", a.out)
	if err != nil {
		return err
	}
	return report(ctx, a, "Could not add comment", func(ctx context.Context) (*models.Comment, error) {
		return a.svc.Comments.Create(ctx, services.CommentInput{Content: content, AuthorID: me, TaskID: task})
	}, func(c *models.Comment) {
		fmt.Fprintf(a.out, "Comment #%d added\n", c.ID)
	})
}

func (a *App) DeleteComment(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return a.invalid(err)
	}
	return report(ctx, a, "Could not delete comment", func(ctx context.Context) (bool, error) {
		return a.svc.Comments.Delete(ctx, id)
	}, a.printDeleted("Comment"))
}

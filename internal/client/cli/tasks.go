package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/client/services"
	"github.com/dmitrijs2005/taskkeeper/internal/client/watch"
)

func printTasks(a *App, list []models.Task) {
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No tasks")
	}
	for _, t := range list {
		mark := " "
		if t.Bookmarked {
			mark = "*"
		}
		line := fmt.Sprintf("%s#%d [%s] %s", mark, t.ID, t.Status, t.Title)
		if t.Deadline != nil {
			line += " (due " + *t.Deadline + ")"
		}
		fmt.Fprintln(a.out, line)
	}
}

func (a *App) ListTasks(ctx context.Context, args []string) error {
	project, err := parseID(args[0])
	if err != nil {
		return a.invalid(err)
	}
	a.refreshed(ctx, func(ctx context.Context) error { return a.svc.Tasks.Refresh(ctx, project) })

	list, err := first(ctx, a.svc.Tasks.ObserveCollection(ctx, project))
	if err != nil {
		return err
	}
	printTasks(a, list)
	return nil
}

func (a *App) AddTask(ctx context.Context, args []string) error {
	project, err := parseID(args[0])
	if err != nil {
		return a.invalid(err)
	}
	in := services.TaskInput{ProjectID: project}
	if in.Title, err = getSimpleText(a.reader, "Enter task title", a.out); err != nil {
		return err
	}
	if in.Description, err = GetMultiline(a.reader, "Enter description", a.out); err != nil {
		return err
	}
	deadline, err := GetOptionalText(a.reader, "Enter deadline (RFC 3339, optional)", "", a.out)
	if err != nil {
		return err
	}
	if deadline != "" {
		in.Deadline = &deadline
	}
	timer, err := GetOptionalText(a.reader, "Enter timer in minutes", "0", a.out)
	if err != nil {
		return err
	}
	if in.Timer, err = strconv.ParseInt(timer, 10, 64); err != nil {
		return a.invalid(fmt.Errorf("invalid timer %q", timer))
	}

	return report(ctx, a, "Could not create task", func(ctx context.Context) (*models.Task, error) {
		return a.svc.Tasks.Create(ctx, in)
	}, func(t *models.Task) {
		fmt.Fprintf(a.out, "Task #%d created\n", t.ID)
	})
}

func (a *App) DeleteTask(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return a.invalid(err)
	}
	return report(ctx, a, "Could not delete task", func(ctx context.Context) (bool, error) {
		return a.svc.Tasks.Delete(ctx, id)
	}, a.printDeleted("Task"))
}

func (a *App) SetStatus(ctx context.Context, args []string) error {
	if a.svc.TaskActions == nil {
		return a.unavailable("Task actions")
	}
	id, err := parseID(args[0])
	if err != nil {
		return a.invalid(err)
	}
	status, err := models.ParseStatus(strings.ToLower(args[1]))
	if err != nil {
		return a.invalid(err)
	}
	return report(ctx, a, "Could not change status", func(ctx context.Context) (*models.Task, error) {
		return a.svc.TaskActions.SetStatus(ctx, id, status)
	}, func(t *models.Task) {
		fmt.Fprintf(a.out, "Task #%d is %s\n", t.ID, t.Status)
	})
}

func (a *App) Bookmark(ctx context.Context, args []string) error {
	if a.svc.TaskActions == nil {
		return a.unavailable("Task actions")
	}
	id, err := parseID(args[0])
	if err != nil {
		return a.invalid(err)
	}
	return report(ctx, a, "Could not update bookmark", func(ctx context.Context) (bool, error) {
		return a.svc.TaskActions.Bookmark(ctx, id)
	}, func(on bool) {
		if on {
			fmt.Fprintf(a.out, "Task #%d bookmarked\n", id)
		} else {
			fmt.Fprintf(a.out, "Task #%d bookmark removed\n", id)
		}
	})
}

func (a *App) ListBookmarks(ctx context.Context, _ []string) error {
	if a.svc.TaskActions == nil {
		return a.unavailable("Task actions")
	}
	return a.listTasks(ctx, a.svc.TaskActions.ObserveBookmarked(ctx))
}

// ListMine lists the cached tasks assigned to the signed-in user.
func (a *App) ListMine(ctx context.Context, _ []string) error {
	if a.svc.TaskActions == nil {
		return a.unavailable("Task actions")
	}
	me, err := a.userID()
	if err != nil {
		return a.invalid(err)
	}
	return a.listTasks(ctx, a.svc.TaskActions.ObserveAssignedTo(ctx, me))
}

func (a *App) listTasks(ctx context.Context, s *watch.Stream[[]models.Task]) error {
	list, err := first(ctx, s)
	if err != nil {
		return err
	}
	printTasks(a, list)
	return nil
}

func (a *App) Assign(ctx context.Context, args []string) error {
	return a.assignee(ctx, args, "assigned to", func(ctx context.Context, id, user int64) (*models.Task, error) {
		return a.svc.TaskActions.Assign(ctx, id, user)
	})
}

func (a *App) Unassign(ctx context.Context, args []string) error {
	return a.assignee(ctx, args, "unassigned from", func(ctx context.Context, id, user int64) (*models.Task, error) {
		return a.svc.TaskActions.Unassign(ctx, id, user)
	})
}

func (a *App) assignee(ctx context.Context, args []string, verb string, fn func(ctx context.Context, id, user int64) (*models.Task, error)) error {
	if a.svc.TaskActions == nil {
		return a.unavailable("Task actions")
	}
	ids, err := parseIDs(args[0], args[1])
	if err != nil {
		return a.invalid(err)
	}
	return report(ctx, a, "Could not update assignees", func(ctx context.Context) (*models.Task, error) {
		return fn(ctx, ids[0], ids[1])
	}, func(t *models.Task) {
		fmt.Fprintf(a.out, "User %d %s task #%d\n", ids[1], verb, t.ID)
	})
}

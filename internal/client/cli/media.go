package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

func (a *App) ListMedia(ctx context.Context, args []string) error {
	if a.svc.Media == nil {
		return a.unavailable("Media")
	}
	task, err := parseID(args[0])
	if err != nil {
		return a.invalid(err)
	}
	a.refreshed(ctx, func(ctx context.Context) error { return a.svc.Media.RefreshForTask(ctx, task) })

	list, err := first(ctx, a.svc.Media.ObserveForTask(ctx, task))
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No media")
	}
	for _, m := range list {
		fmt.Fprintf(a.out, "#%d %s [%s] %s\n", m.ID, m.Filename, m.Type, m.URL)
	}
	return nil
}

// Upload sends a local file as an attachment of the task.
func (a *App) Upload(ctx context.Context, args []string) error {
	if a.svc.Media == nil {
		return a.unavailable("Media")
	}
	task, err := parseID(args[0])
	if err != nil {
		return a.invalid(err)
	}

	path := args[1]
	f, err := os.Open(path)
	if err != nil {
		return a.invalid(err)
	}
	defer f.Close()

	name := filepath.Base(path)
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return report(ctx, a, "Upload failed", func(ctx context.Context) (*models.Media, error) {
		return a.svc.Media.Upload(ctx, task, name, contentType, f)
	}, func(m *models.Media) {
		fmt.Fprintf(a.out, "Media #%d uploaded: %s\n", m.ID, m.URL)
	})
}

func (a *App) DeleteMedia(ctx context.Context, args []string) error {
	if a.svc.Media == nil {
		return a.unavailable("Media")
	}
	id, err := parseID(args[0])
	if err != nil {
		return a.invalid(err)
	}
	return report(ctx, a, "Could not delete media", func(ctx context.Context) (bool, error) {
		return a.svc.Media.Delete(ctx, id)
	}, a.printDeleted("Media"))
}

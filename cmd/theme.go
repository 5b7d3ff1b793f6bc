package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/noblex1/moviex/internal/models"
	"github.com/noblex1/moviex/internal/shared"
	"github.com/noblex1/moviex/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Theme prints the stored theme, or stores the one given as argument.
//
// "toggle" switches between light and dark.
func (r *Runner) Theme(ctx context.Context, cmd *cli.Command) error {
	storage, err := r.openStorage()
	if err != nil {
		return err
	}

	current, err := tasks.LoadTheme(ctx, storage, models.ParseTheme(r.config.UI.Theme))
	if err != nil {
		r.logger.Warn("theme unreadable, using default", "error", err)
	}

	var next models.Theme
	switch arg := strings.ToLower(strings.TrimSpace(cmd.Args().First())); arg {
	case "":
		return r.writePlain("Theme: %s\n", current)
	case "toggle":
		next = current.Toggle()
	case string(models.ThemeLight), string(models.ThemeDark):
		next = models.Theme(arg)
	default:
		return fmt.Errorf("%w: theme must be light, dark or toggle, got %q", shared.ErrInvalidArgument, arg)
	}

	if err := tasks.SaveTheme(ctx, storage, next); err != nil {
		return err
	}
	return r.writePlain("Theme: %s\n", next)
}

package tasks

import (
	"context"
	"fmt"

	"github.com/noblex1/moviex/internal/models"
)

// ThemeKey is the storage key of the theme preference.
const ThemeKey = "theme"

// LoadTheme reads the theme preference. A missing, unreadable or unknown value yields fallback,
// and an unreadable value is also reported.
func LoadTheme(ctx context.Context, storage models.Storage, fallback models.Theme) (models.Theme, error) {
	if fallback == "" {
		fallback = models.ThemeLight
	}
	if storage == nil {
		return fallback, nil
	}

	raw, ok, err := storage.Get(ctx, ThemeKey)
	if err != nil {
		return fallback, fmt.Errorf("failed to read theme: %w", err)
	}
	if !ok {
		return fallback, nil
	}

	switch theme := models.Theme(raw); theme {
	case models.ThemeLight, models.ThemeDark:
		return theme, nil
	default:
		return models.ThemeLight, nil
	}
}

// SaveTheme persists the theme preference.
func SaveTheme(ctx context.Context, storage models.Storage, theme models.Theme) error {
	if storage == nil {
		return nil
	}
	if err := storage.Set(ctx, ThemeKey, models.ParseTheme(theme.String()).String()); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

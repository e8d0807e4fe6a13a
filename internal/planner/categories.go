package planner

import (
	"fmt"

	"github.com/julianstephens/daycompass/internal/constants"
	apperrors "github.com/julianstephens/daycompass/internal/errors"
	"github.com/julianstephens/daycompass/internal/logger"
	"github.com/julianstephens/daycompass/internal/models"
	"github.com/julianstephens/daycompass/internal/validation"
)

type SettingsStore interface {
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error
}

// CategoryService edits the ordered list of task categories kept in settings.
type CategoryService struct {
	store SettingsStore
}

func NewCategoryService(store SettingsStore) *CategoryService {
	return &CategoryService{store: store}
}

// List returns the configured categories, or the defaults when settings
// cannot be read.
func (s *CategoryService) List() []string {
	settings, err := s.store.GetSettings()
	if err != nil {
		logger.Warn("Failed to load settings, using default categories", "error", err)
		return append([]string(nil), constants.DefaultCategories...)
	}
	return settings.Categories
}

func (s *CategoryService) edit(fn func(*models.Settings) error) ([]string, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if err := fn(&settings); err != nil {
		return nil, err
	}
	if err := s.store.SaveSettings(settings); err != nil {
		logger.Error("Failed to save categories", "error", err)
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings.Categories, nil
}

func (s *CategoryService) Add(name string) ([]string, error) {
	name, err := validation.ValidateCategoryName(name)
	if err != nil {
		return nil, err
	}
	return s.edit(func(st *models.Settings) error {
		if st.HasCategory(name) {
			return apperrors.Validationf("category %q already exists", name)
		}
		st.Categories = append(st.Categories, name)
		return nil
	})
}

// Remove deletes a category. Tasks already filed under it keep the name.
func (s *CategoryService) Remove(name string) ([]string, error) {
	return s.edit(func(st *models.Settings) error {
		kept := make([]string, 0, len(st.Categories))
		for _, c := range st.Categories {
			if c != name {
				kept = append(kept, c)
			}
		}
		if len(kept) == len(st.Categories) {
			return apperrors.NotFoundf("category %q", name)
		}
		st.Categories = kept
		return nil
	})
}

// Reorder replaces the category list with order, which must contain exactly
// the current categories.
func (s *CategoryService) Reorder(order []string) ([]string, error) {
	return s.edit(func(st *models.Settings) error {
		if len(order) != len(st.Categories) {
			return apperrors.Validationf("reorder must list all %d categories", len(st.Categories))
		}
		seen := make(map[string]bool, len(order))
		for _, c := range order {
			if !st.HasCategory(c) {
				return apperrors.Validationf("unknown category %q", c)
			}
			if seen[c] {
				return apperrors.Validationf("category %q listed twice", c)
			}
			seen[c] = true
		}
		st.Categories = append([]string(nil), order...)
		return nil
	})
}

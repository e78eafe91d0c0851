package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/client/models"
	"github.com/dmitrijs2005/notekeeper/internal/client/repositories/categories"
	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/google/uuid"
)

var defaultCategories = []string{"General", "Work", "Device Repair", "Football", "Personal"}

// DefaultCategories returns a fresh copy of the built-in categories.
func DefaultCategories() []string {
	out := make([]string, len(defaultCategories))
	copy(out, defaultCategories)
	return out
}

func IsDefaultCategory(name string) bool {
	for _, d := range defaultCategories {
		if d == name {
			return true
		}
	}
	return false
}

// MergeCategories returns the defaults followed by remote, without duplicates.
func MergeCategories(remote []string) []string {
	seen := make(map[string]struct{}, len(defaultCategories)+len(remote))
	out := make([]string, 0, len(defaultCategories)+len(remote))
	for _, list := range [][]string{defaultCategories, remote} {
		for _, name := range list {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

type CategoryService interface {
	// List returns the merged category list.
	List(ctx context.Context, userID string) ([]string, error)
	// Add validates name against current and inserts it. It returns the
	// trimmed name.
	Add(ctx context.Context, userID, name string, current []string) (string, error)
	Delete(ctx context.Context, userID, name string) error
}

type categoryService struct {
	repo categories.Repository
}

func NewCategoryService(repo categories.Repository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context, userID string) ([]string, error) {
	names, err := s.repo.Names(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return MergeCategories(names), nil
}

// ValidateNewCategory trims name and checks it is neither blank nor present.
func ValidateNewCategory(name string, current []string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", common.NewUserError(common.ErrValidation, "Category name cannot be empty.")
	}
	for _, c := range current {
		if c == name {
			return "", common.NewUserError(common.ErrAlreadyExists, "Category already exists.")
		}
	}
	return name, nil
}

// ValidateDeleteCategory rejects the built-in categories.
func ValidateDeleteCategory(name string) error {
	if IsDefaultCategory(name) {
		return common.NewUserError(common.ErrDefaultCategory, "Default categories cannot be deleted.")
	}
	return nil
}

func (s *categoryService) Add(ctx context.Context, userID, name string, current []string) (string, error) {
	name, err := ValidateNewCategory(name, current)
	if err != nil {
		return "", err
	}

	err = s.repo.Insert(ctx, &models.Category{ID: uuid.NewString(), UserID: userID, Name: name})
	if errors.Is(err, common.ErrAlreadyExists) {
		return "", common.NewUserError(common.ErrAlreadyExists, "Category already exists.")
	}
	if err != nil {
		return "", fmt.Errorf("failed to add category: %w", err)
	}
	return name, nil
}

func (s *categoryService) Delete(ctx context.Context, userID, name string) error {
	if err := ValidateDeleteCategory(name); err != nil {
		return err
	}
	if err := s.repo.DeleteByName(ctx, userID, name); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

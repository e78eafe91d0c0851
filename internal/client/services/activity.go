package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/client/models"
	"github.com/dmitrijs2005/notekeeper/internal/client/repositories/activity"
)

// RecentLogsLimit caps the activity modal.
const RecentLogsLimit = 20

type ActivityService interface {
	Recent(ctx context.Context, userID string) ([]models.ActivityLogEntry, error)
}

type activityService struct {
	repo activity.Repository
}

func NewActivityService(repo activity.Repository) ActivityService {
	return &activityService{repo: repo}
}

func (s *activityService) Recent(ctx context.Context, userID string) ([]models.ActivityLogEntry, error) {
	entries, err := s.repo.Recent(ctx, userID, RecentLogsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch logs: %w", err)
	}
	return entries, nil
}

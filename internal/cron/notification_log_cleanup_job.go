package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/promopace/promopace-backend/pkg/logger"
)

const notificationRetentionDays = 90

// notificationLogPruner is the slice of the dispatch repository the job needs.
type notificationLogPruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// NotificationLogCleanupJobParams configure the retention job.
type NotificationLogCleanupJobParams struct {
	Logger     *logger.Logger
	Repository notificationLogPruner
	Retention  int
}

// NewNotificationLogCleanupJob builds the job that prunes old notification
// log rows.
func NewNotificationLogCleanupJob(params NotificationLogCleanupJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("notification repository required")
	}
	retention := params.Retention
	if retention <= 0 {
		retention = notificationRetentionDays
	}
	return &notificationLogCleanupJob{
		logg:      params.Logger,
		repo:      params.Repository,
		retention: retention,
		now:       time.Now,
	}, nil
}

type notificationLogCleanupJob struct {
	logg      *logger.Logger
	repo      notificationLogPruner
	retention int
	now       func() time.Time
}

func (j *notificationLogCleanupJob) Name() string { return "notification-log-cleanup" }

func (j *notificationLogCleanupJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.retention) * 24 * time.Hour)
	deleted, err := j.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("prune notification log: %w", err)
	}
	j.logg.Info(j.logg.WithField(ctx, "deleted", deleted), "notification log pruned")
	return nil
}

package cron

import (
	"context"
	"fmt"

	"github.com/promopace/promopace-backend/pkg/logger"
)

// summarySender is the slice of the dispatcher the job needs.
type summarySender interface {
	WeeklySummary(ctx context.Context) (int, error)
}

// WeeklySummaryJobParams configure the weekly summary job.
type WeeklySummaryJobParams struct {
	Logger     *logger.Logger
	Dispatcher summarySender
}

// NewWeeklySummaryJob builds the job that fans the weekly summary out to
// every opted-in rep.
func NewWeeklySummaryJob(params WeeklySummaryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Dispatcher == nil {
		return nil, fmt.Errorf("dispatcher required")
	}
	return &weeklySummaryJob{logg: params.Logger, dispatcher: params.Dispatcher}, nil
}

type weeklySummaryJob struct {
	logg       *logger.Logger
	dispatcher summarySender
}

func (j *weeklySummaryJob) Name() string { return "weekly-summary" }

func (j *weeklySummaryJob) Run(ctx context.Context) error {
	sent, err := j.dispatcher.WeeklySummary(ctx)
	jobCtx := j.logg.WithField(ctx, "sent", sent)
	if err != nil {
		// Partial delivery still counts; the error carries the failures.
		j.logg.Error(jobCtx, "weekly summary completed with failures", err)
		return err
	}
	j.logg.Info(jobCtx, "weekly summary sent")
	return nil
}

package queue

import (
	"context"
	"time"
)

// Job represents a queued plan waiting for generation.
type Job struct {
	PlanID     string
	CampaignID int64
	Version    int
	AIModel    string
	QueuedAt   time.Time
}

// PlanQueue defines the interface for plan queue operations.
type PlanQueue interface {
	// Dequeue atomically claims the next queued plan and marks it
	// IN_PROGRESS; a plan is handed to exactly one caller
	Dequeue(ctx context.Context) (*Job, error)

	// MarkComplete updates plan status to COMPLETE
	MarkComplete(ctx context.Context, planID string) error

	// MarkFailed updates plan status to FAILED and records the error
	MarkFailed(ctx context.Context, planID string, err error) error

	// QueueDepth returns the number of queued plans
	QueueDepth(ctx context.Context) (int64, error)
}

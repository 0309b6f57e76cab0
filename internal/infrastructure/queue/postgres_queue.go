package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"campaign-plan-service/internal/infrastructure/database/entities"
)

// PostgresQueue implements PlanQueue over the campaign_plans table. Plans
// enter the queue by being inserted with status QUEUED, so there is no
// explicit enqueue operation.
type PostgresQueue struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewPostgresQueue creates a new PostgreSQL-backed plan queue.
func NewPostgresQueue(db *gorm.DB, log zerolog.Logger) *PostgresQueue {
	return &PostgresQueue{
		db:  db,
		log: log.With().Str("component", "postgres-queue").Logger(),
	}
}

// Dequeue claims the next queued plan. The claim and the IN_PROGRESS write
// happen in one statement: the FOR UPDATE SKIP LOCKED row lock of a
// standalone SELECT would be released at statement end, letting two workers
// pick up the same plan.
func (q *PostgresQueue) Dequeue(ctx context.Context) (*Job, error) {
	var entity entities.CampaignPlan

	err := q.db.WithContext(ctx).
		Raw(`UPDATE campaign_plans SET status = ?, updated_at = now()
			WHERE id = (
				SELECT id FROM campaign_plans
				WHERE status = ?
				ORDER BY created_at ASC
				LIMIT 1
				FOR UPDATE SKIP LOCKED
			)
			RETURNING *`, "IN_PROGRESS", "QUEUED").
		Scan(&entity).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // No plans available
		}
		return nil, fmt.Errorf("dequeue plan: %w", err)
	}

	// Raw+Scan leaves the entity zero-valued when no rows matched
	if entity.ID == "" {
		return nil, nil
	}

	job := &Job{
		PlanID:     entity.ID,
		CampaignID: entity.CampaignID,
		Version:    entity.Version,
		AIModel:    entity.AIModel,
		QueuedAt:   entity.CreatedAt,
	}

	return job, nil
}

// MarkComplete updates the plan status to COMPLETE.
func (q *PostgresQueue) MarkComplete(ctx context.Context, planID string) error {
	now := time.Now()
	result := q.db.WithContext(ctx).
		Model(&entities.CampaignPlan{}).
		Where("id = ?", planID).
		Updates(map[string]interface{}{
			"status":       "COMPLETE",
			"completed_at": now,
			"updated_at":   now,
		})

	if result.Error != nil {
		return fmt.Errorf("mark complete: %w", result.Error)
	}

	return nil
}

// MarkFailed updates the plan status to FAILED and records the error message.
func (q *PostgresQueue) MarkFailed(ctx context.Context, planID string, jobErr error) error {
	now := time.Now()
	result := q.db.WithContext(ctx).
		Model(&entities.CampaignPlan{}).
		Where("id = ?", planID).
		Updates(map[string]interface{}{
			"status":        "FAILED",
			"error_message": jobErr.Error(),
			"completed_at":  now,
			"updated_at":    now,
		})

	if result.Error != nil {
		return fmt.Errorf("mark failed: %w", result.Error)
	}

	return nil
}

// QueueDepth returns the number of queued plans.
func (q *PostgresQueue) QueueDepth(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.WithContext(ctx).
		Model(&entities.CampaignPlan{}).
		Where("status = ?", "QUEUED").
		Count(&count).Error

	if err != nil {
		return 0, fmt.Errorf("get queue depth: %w", err)
	}

	return count, nil
}

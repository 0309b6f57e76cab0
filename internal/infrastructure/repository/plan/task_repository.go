package plan

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "campaign-plan-service/internal/domain/plan"
	domaintask "campaign-plan-service/internal/domain/task"
	"campaign-plan-service/internal/infrastructure/database/entities"
	"campaign-plan-service/internal/utils/platformerrors"
)

// PlanExists reports whether the parent plan is present. Shared with the
// Exists method of the plan interface; the task service depends on it by
// its own name.
func (r *PostgresRepository) PlanExists(ctx context.Context, planID string) (bool, error) {
	return r.Exists(ctx, planID)
}

// CreateTask inserts a task row under its plan.
func (r *PostgresRepository) CreateTask(ctx context.Context, t *domain.Task) error {
	entity, err := mapTaskToEntity(t)
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeInternal,
			"failed to map task to entity",
			err,
			"task-create-map-001",
		)
	}
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create task",
			err,
			"task-create-db-001",
		)
	}
	return nil
}

// FindTaskByID returns (nil, nil) when no task with the id exists under the
// given plan; task ids never resolve across plans.
func (r *PostgresRepository) FindTaskByID(ctx context.Context, planID, taskID string) (*domain.Task, error) {
	var entity entities.CampaignPlanTask
	err := r.db.WithContext(ctx).
		Where("id = ? AND plan_id = ?", taskID, planID).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find task by id",
			err,
			"task-find-db-001",
		)
	}
	return mapEntityToTask(&entity)
}

// ListTasksByPlanID returns the plan's tasks oldest first.
func (r *PostgresRepository) ListTasksByPlanID(ctx context.Context, planID string) ([]*domain.Task, error) {
	var rows []entities.CampaignPlanTask
	err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list tasks",
			err,
			"task-list-db-001",
		)
	}

	tasks := make([]*domain.Task, 0, len(rows))
	for i := range rows {
		t, err := mapEntityToTask(&rows[i])
		if err != nil {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeInternal,
				"failed to map task entity",
				err,
				"task-list-map-001",
			)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// ReplaceTask overwrites every mutable column of the task row.
func (r *PostgresRepository) ReplaceTask(ctx context.Context, t *domain.Task) error {
	entity, err := mapTaskToEntity(t)
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeInternal,
			"failed to map task to entity",
			err,
			"task-replace-map-001",
		)
	}

	updates := map[string]interface{}{
		"type":        entity.Type,
		"title":       entity.Title,
		"description": entity.Description,
		"due_date":    entity.DueDate,
		"week_index":  entity.WeekIndex,
		"status":      entity.Status,
		"action_url":  entity.ActionURL,
		"priority":    entity.Priority,
		"tags":        entity.Tags,
		"metadata":    entity.Metadata,
		"updated_at":  entity.UpdatedAt,
	}

	err = r.db.WithContext(ctx).
		Model(&entities.CampaignPlanTask{}).
		Where("id = ? AND plan_id = ?", t.ID, t.PlanID).
		Updates(updates).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to replace task",
			err,
			"task-replace-db-001",
		)
	}
	return nil
}

// PatchTask writes only the fields carried by params.
func (r *PostgresRepository) PatchTask(ctx context.Context, planID, taskID string, params domaintask.UpdateParams) error {
	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if params.Type != nil {
		updates["type"] = string(*params.Type)
	}
	if params.Title != nil {
		updates["title"] = *params.Title
	}
	if params.Description != nil {
		updates["description"] = *params.Description
	}
	if params.DueDate != nil {
		updates["due_date"] = *params.DueDate
	}
	if params.WeekIndex != nil {
		updates["week_index"] = *params.WeekIndex
	}
	if params.Status != nil {
		updates["status"] = string(*params.Status)
	}
	if params.ActionURL != nil {
		updates["action_url"] = *params.ActionURL
	}
	if params.Priority != nil {
		updates["priority"] = *params.Priority
	}
	if params.Tags != nil {
		tagsJSON, err := marshalJSONColumn(params.Tags)
		if err != nil {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeInternal,
				"failed to marshal tags",
				err,
				"task-patch-map-001",
			)
		}
		updates["tags"] = tagsJSON
	}
	if params.Metadata != nil {
		metadataJSON, err := marshalJSONColumn(params.Metadata)
		if err != nil {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeInternal,
				"failed to marshal metadata",
				err,
				"task-patch-map-002",
			)
		}
		updates["metadata"] = metadataJSON
	}

	err := r.db.WithContext(ctx).
		Model(&entities.CampaignPlanTask{}).
		Where("id = ? AND plan_id = ?", taskID, planID).
		Updates(updates).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to patch task",
			err,
			"task-patch-db-001",
		)
	}
	return nil
}

// DeleteTask removes the task row scoped to its plan.
func (r *PostgresRepository) DeleteTask(ctx context.Context, planID, taskID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND plan_id = ?", taskID, planID).
		Delete(&entities.CampaignPlanTask{})
	if result.Error != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete task",
			result.Error,
			"task-delete-db-001",
		)
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound,
			"task "+taskID+" not found for plan "+planID,
			nil,
			"task-delete-notfound-001",
		)
	}
	return nil
}

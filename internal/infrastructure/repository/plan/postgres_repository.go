// Package plan provides the PostgreSQL-backed repository for campaign plans
// and their owned tasks and sections.
package plan

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "campaign-plan-service/internal/domain/plan"
	"campaign-plan-service/internal/infrastructure/database/entities"
	"campaign-plan-service/internal/utils/platformerrors"
)

// PostgresRepository provides persistence for plans, tasks and sections.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new plan record. A duplicate idempotency key surfaces as
// a CONFLICT typed error so the service can resolve the race to the row
// that won.
func (r *PostgresRepository) Create(ctx context.Context, p *domain.Plan) error {
	entity, err := mapPlanToEntity(p)
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeInternal,
			"failed to map plan to entity",
			err,
			"plan-create-map-001",
		)
	}

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		if isUniqueViolation(err) {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeConflict,
				"plan with idempotency key already exists",
				err,
				"plan-create-conflict-001",
			)
		}
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create plan",
			err,
			"plan-create-db-001",
		)
	}
	return nil
}

// FindByID loads a plan with its tasks and sections.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*domain.Plan, error) {
	var entity entities.CampaignPlan
	err := r.db.WithContext(ctx).
		Preload("Tasks").
		Preload("Sections").
		Where("id = ?", id).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				"plan "+id+" not found",
				err,
				"plan-find-notfound-001",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find plan by id",
			err,
			"plan-find-db-001",
		)
	}
	return mapEntityToPlan(&entity)
}

// FindByIdempotencyKey returns (nil, nil) when no plan has the key.
func (r *PostgresRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Plan, error) {
	var entity entities.CampaignPlan
	err := r.db.WithContext(ctx).Where("idempotency_key = ?", key).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find plan by idempotency key",
			err,
			"plan-findkey-db-001",
		)
	}
	return mapEntityToPlan(&entity)
}

// Exists reports whether a plan row with the id is present.
func (r *PostgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.CampaignPlan{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to check plan existence",
			err,
			"plan-exists-db-001",
		)
	}
	return count > 0, nil
}

// Update writes only the fields carried by params. The cost_json trigger in
// the store rejects disallowed cost mutations; that rejection is translated
// to an IMMUTABLE_FIELD typed error here.
func (r *PostgresRepository) Update(ctx context.Context, id string, params domain.UpdateParams) error {
	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if params.Status != nil {
		updates["status"] = string(*params.Status)
	}
	if params.Cost != nil {
		costJSON, err := marshalCost(params.Cost)
		if err != nil {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeInternal,
				"failed to marshal cost",
				err,
				"plan-update-map-001",
			)
		}
		updates["cost_json"] = costJSON
	}
	if params.SourceReason != nil {
		updates["source_reason"] = *params.SourceReason
	}
	if params.ErrorMessage != nil {
		updates["error_message"] = *params.ErrorMessage
	}
	if params.CompletedAt != nil {
		updates["completed_at"] = *params.CompletedAt
	}

	result := r.db.WithContext(ctx).
		Model(&entities.CampaignPlan{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		if isCostImmutableViolation(result.Error) {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeImmutable,
				"cost is immutable once set",
				result.Error,
				"plan-update-cost-002",
			)
		}
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update plan",
			result.Error,
			"plan-update-db-001",
		)
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound,
			"plan "+id+" not found",
			nil,
			"plan-update-notfound-001",
		)
	}
	return nil
}

// Delete removes the plan row; tasks and sections cascade inside the same
// statement via the foreign keys.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entities.CampaignPlan{})
	if result.Error != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete plan",
			result.Error,
			"plan-delete-db-001",
		)
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound,
			"plan "+id+" not found",
			nil,
			"plan-delete-notfound-001",
		)
	}
	return nil
}

// CreateSection inserts a section row under its plan.
func (r *PostgresRepository) CreateSection(ctx context.Context, s *domain.Section) error {
	entity := mapSectionToEntity(s)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create section",
			err,
			"section-create-db-001",
		)
	}
	return nil
}

// ListSectionsByPlanID returns the plan's sections ordered by order_index.
func (r *PostgresRepository) ListSectionsByPlanID(ctx context.Context, planID string) ([]*domain.Section, error) {
	var rows []entities.CampaignPlanSection
	err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Order("order_index ASC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list sections",
			err,
			"section-list-db-001",
		)
	}

	sections := make([]*domain.Section, 0, len(rows))
	for i := range rows {
		sections = append(sections, mapEntityToSection(&rows[i]))
	}
	return sections, nil
}

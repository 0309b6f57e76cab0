package plan

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"

	domain "campaign-plan-service/internal/domain/plan"
	"campaign-plan-service/internal/infrastructure/database/entities"
)

const (
	pgUniqueViolation = "23505"
	pgRaiseException  = "P0001"
)

// isUniqueViolation reports whether the error is a postgres unique
// constraint violation (the idempotency key race).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// isCostImmutableViolation reports whether the error came from the
// cost_json guard trigger.
func isCostImmutableViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgRaiseException && strings.Contains(pgErr.Message, "cost_json is immutable")
}

func marshalCost(cost *domain.Cost) (datatypes.JSON, error) {
	raw, err := json.Marshal(cost)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func marshalJSONColumn(value any) (datatypes.JSON, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func mapPlanToEntity(p *domain.Plan) (*entities.CampaignPlan, error) {
	entity := &entities.CampaignPlan{
		ID:             p.ID,
		CampaignID:     p.CampaignID,
		Version:        p.Version,
		IdempotencyKey: p.IdempotencyKey,
		AIModel:        p.AIModel,
		Status:         string(p.Status),
		SourceReason:   p.SourceReason,
		ErrorMessage:   p.ErrorMessage,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		CompletedAt:    p.CompletedAt,
	}
	if p.Cost != nil {
		costJSON, err := marshalCost(p.Cost)
		if err != nil {
			return nil, err
		}
		entity.CostJSON = costJSON
	}
	return entity, nil
}

func mapEntityToPlan(entity *entities.CampaignPlan) (*domain.Plan, error) {
	p := &domain.Plan{
		ID:             entity.ID,
		CampaignID:     entity.CampaignID,
		Version:        entity.Version,
		IdempotencyKey: entity.IdempotencyKey,
		AIModel:        entity.AIModel,
		Status:         domain.Status(entity.Status),
		SourceReason:   entity.SourceReason,
		ErrorMessage:   entity.ErrorMessage,
		CreatedAt:      entity.CreatedAt,
		UpdatedAt:      entity.UpdatedAt,
		CompletedAt:    entity.CompletedAt,
	}

	if len(entity.CostJSON) > 0 {
		var cost domain.Cost
		if err := json.Unmarshal(entity.CostJSON, &cost); err != nil {
			return nil, err
		}
		p.Cost = &cost
	}

	if len(entity.Tasks) > 0 {
		p.Tasks = make([]domain.Task, 0, len(entity.Tasks))
		for i := range entity.Tasks {
			t, err := mapEntityToTask(&entity.Tasks[i])
			if err != nil {
				return nil, err
			}
			p.Tasks = append(p.Tasks, *t)
		}
	}

	if len(entity.Sections) > 0 {
		p.Sections = make([]domain.Section, 0, len(entity.Sections))
		for i := range entity.Sections {
			p.Sections = append(p.Sections, *mapEntityToSection(&entity.Sections[i]))
		}
	}

	return p, nil
}

func mapTaskToEntity(t *domain.Task) (*entities.CampaignPlanTask, error) {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := marshalJSONColumn(tags)
	if err != nil {
		return nil, err
	}

	entity := &entities.CampaignPlanTask{
		ID:          t.ID,
		PlanID:      t.PlanID,
		Type:        string(t.Type),
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		WeekIndex:   t.WeekIndex,
		Status:      string(t.Status),
		ActionURL:   t.ActionURL,
		Priority:    t.Priority,
		Tags:        tagsJSON,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}

	if t.Metadata != nil {
		metadataJSON, err := marshalJSONColumn(t.Metadata)
		if err != nil {
			return nil, err
		}
		entity.Metadata = metadataJSON
	}

	return entity, nil
}

func mapEntityToTask(entity *entities.CampaignPlanTask) (*domain.Task, error) {
	t := &domain.Task{
		ID:          entity.ID,
		PlanID:      entity.PlanID,
		Type:        domain.TaskType(entity.Type),
		Title:       entity.Title,
		Description: entity.Description,
		DueDate:     entity.DueDate,
		WeekIndex:   entity.WeekIndex,
		Status:      domain.TaskStatus(entity.Status),
		ActionURL:   entity.ActionURL,
		Priority:    entity.Priority,
		Tags:        []string{},
		CreatedAt:   entity.CreatedAt,
		UpdatedAt:   entity.UpdatedAt,
	}

	if len(entity.Tags) > 0 {
		if err := json.Unmarshal(entity.Tags, &t.Tags); err != nil {
			return nil, err
		}
	}

	if len(entity.Metadata) > 0 {
		if err := json.Unmarshal(entity.Metadata, &t.Metadata); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func mapSectionToEntity(s *domain.Section) *entities.CampaignPlanSection {
	return &entities.CampaignPlanSection{
		ID:         s.ID,
		PlanID:     s.PlanID,
		Key:        s.Key,
		Title:      s.Title,
		Summary:    s.Summary,
		OrderIndex: s.OrderIndex,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func mapEntityToSection(entity *entities.CampaignPlanSection) *domain.Section {
	return &domain.Section{
		ID:         entity.ID,
		PlanID:     entity.PlanID,
		Key:        entity.Key,
		Title:      entity.Title,
		Summary:    entity.Summary,
		OrderIndex: entity.OrderIndex,
		CreatedAt:  entity.CreatedAt,
		UpdatedAt:  entity.UpdatedAt,
	}
}

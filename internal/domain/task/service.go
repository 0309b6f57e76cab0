// Package task implements the task sub-resource of a campaign plan. Every
// operation verifies the parent plan before touching task rows.
package task

import (
	"context"
	"fmt"
	"time"

	"campaign-plan-service/internal/domain/plan"
	"campaign-plan-service/internal/utils/planid"
	"campaign-plan-service/internal/utils/platformerrors"
)

// Service defines the interface for task business logic.
type Service interface {
	FindAllByPlanID(ctx context.Context, planID string) ([]*plan.Task, error)
	FindOne(ctx context.Context, planID, taskID string) (*plan.Task, error)
	Create(ctx context.Context, planID string, params CreateParams) (*plan.Task, error)
	Replace(ctx context.Context, planID, taskID string, params ReplaceParams) (*plan.Task, error)
	Patch(ctx context.Context, planID, taskID string, params UpdateParams) (*plan.Task, error)
	Remove(ctx context.Context, planID, taskID string) error
}

// DefaultService implements the Service interface.
type DefaultService struct {
	repo Repository
}

// NewService creates a new task service.
func NewService(repo Repository) *DefaultService {
	return &DefaultService{repo: repo}
}

// FindAllByPlanID lists every task under the plan, oldest first.
func (s *DefaultService) FindAllByPlanID(ctx context.Context, planID string) ([]*plan.Task, error) {
	if err := s.requirePlan(ctx, planID); err != nil {
		return nil, err
	}
	return s.repo.ListTasksByPlanID(ctx, planID)
}

// FindOne returns the task, or NotFound when no task with that id exists
// under that specific plan.
func (s *DefaultService) FindOne(ctx context.Context, planID, taskID string) (*plan.Task, error) {
	t, err := s.repo.FindTaskByID(ctx, planID, taskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, taskNotFound(ctx, planID, taskID)
	}
	return t, nil
}

// Create adds a task under an existing plan.
func (s *DefaultService) Create(ctx context.Context, planID string, params CreateParams) (*plan.Task, error) {
	if err := s.requirePlan(ctx, planID); err != nil {
		return nil, err
	}

	status := params.Status
	if status == "" {
		status = plan.TaskStatusNotStarted
	}

	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now().UTC()
	t := &plan.Task{
		ID:          planid.New(),
		PlanID:      planID,
		Type:        params.Type,
		Title:       params.Title,
		Description: params.Description,
		DueDate:     params.DueDate,
		WeekIndex:   params.WeekIndex,
		Status:      status,
		ActionURL:   params.ActionURL,
		Priority:    params.Priority,
		Tags:        tags,
		Metadata:    params.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateTask(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Replace overwrites every mutable field of an existing task.
func (s *DefaultService) Replace(ctx context.Context, planID, taskID string, params ReplaceParams) (*plan.Task, error) {
	existing, err := s.FindOne(ctx, planID, taskID)
	if err != nil {
		return nil, err
	}

	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	updated := &plan.Task{
		ID:          existing.ID,
		PlanID:      existing.PlanID,
		Type:        params.Type,
		Title:       params.Title,
		Description: params.Description,
		DueDate:     params.DueDate,
		WeekIndex:   params.WeekIndex,
		Status:      params.Status,
		ActionURL:   params.ActionURL,
		Priority:    params.Priority,
		Tags:        tags,
		Metadata:    params.Metadata,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}

	if err := s.repo.ReplaceTask(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Patch applies only the supplied fields, leaving the rest untouched.
func (s *DefaultService) Patch(ctx context.Context, planID, taskID string, params UpdateParams) (*plan.Task, error) {
	if _, err := s.FindOne(ctx, planID, taskID); err != nil {
		return nil, err
	}

	if !params.IsEmpty() {
		if err := s.repo.PatchTask(ctx, planID, taskID, params); err != nil {
			return nil, err
		}
	}

	return s.FindOne(ctx, planID, taskID)
}

// Remove verifies existence, then deletes the task.
func (s *DefaultService) Remove(ctx context.Context, planID, taskID string) error {
	if _, err := s.FindOne(ctx, planID, taskID); err != nil {
		return err
	}
	return s.repo.DeleteTask(ctx, planID, taskID)
}

func (s *DefaultService) requirePlan(ctx context.Context, planID string) error {
	exists, err := s.repo.PlanExists(ctx, planID)
	if err != nil {
		return err
	}
	if !exists {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("plan %s not found", planID),
			nil,
			"task-plan-not-found-001",
		)
	}
	return nil
}

func taskNotFound(ctx context.Context, planID, taskID string) *platformerrors.PlatformError {
	return platformerrors.NewError(
		ctx,
		platformerrors.LayerDomain,
		platformerrors.ErrorTypeNotFound,
		fmt.Sprintf("task %s not found for plan %s", taskID, planID),
		nil,
		"task-not-found-001",
	)
}

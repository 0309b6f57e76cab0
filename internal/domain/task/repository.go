package task

import (
	"context"
	"time"

	"campaign-plan-service/internal/domain/plan"
)

// Repository defines the interface for task persistence. Lookups are always
// scoped to a plan so task ids never resolve across plans.
type Repository interface {
	// PlanExists reports whether the parent plan is present.
	PlanExists(ctx context.Context, planID string) (bool, error)

	CreateTask(ctx context.Context, t *plan.Task) error

	// FindTaskByID returns (nil, nil) when no task with the id exists
	// under the given plan.
	FindTaskByID(ctx context.Context, planID, taskID string) (*plan.Task, error)

	ListTasksByPlanID(ctx context.Context, planID string) ([]*plan.Task, error)

	// ReplaceTask overwrites every mutable column of the task row.
	ReplaceTask(ctx context.Context, t *plan.Task) error

	// PatchTask writes only the fields carried by params.
	PatchTask(ctx context.Context, planID, taskID string, params UpdateParams) error

	DeleteTask(ctx context.Context, planID, taskID string) error
}

// CreateParams contains parameters for creating a task under a plan.
type CreateParams struct {
	Type        plan.TaskType
	Title       string
	Description string
	DueDate     *time.Time
	WeekIndex   *int
	Status      plan.TaskStatus
	ActionURL   *string
	Priority    *int
	Tags        []string
	Metadata    map[string]any
}

// ReplaceParams contains a full task replacement: every field is supplied,
// nullable ones explicitly (a nil pointer clears the column).
type ReplaceParams struct {
	Type        plan.TaskType
	Title       string
	Description string
	DueDate     *time.Time
	WeekIndex   *int
	Status      plan.TaskStatus
	ActionURL   *string
	Priority    *int
	Tags        []string
	Metadata    map[string]any
}

// UpdateParams carries a partial task update. Nil fields are left untouched;
// clearing a nullable field goes through Replace.
type UpdateParams struct {
	Type        *plan.TaskType
	Title       *string
	Description *string
	DueDate     *time.Time
	WeekIndex   *int
	Status      *plan.TaskStatus
	ActionURL   *string
	Priority    *int
	Tags        []string
	Metadata    map[string]any
}

// IsEmpty reports whether the update carries no fields at all.
func (p UpdateParams) IsEmpty() bool {
	return p.Type == nil && p.Title == nil && p.Description == nil &&
		p.DueDate == nil && p.WeekIndex == nil && p.Status == nil &&
		p.ActionURL == nil && p.Priority == nil && p.Tags == nil && p.Metadata == nil
}

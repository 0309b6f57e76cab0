package responses

import (
	"time"

	"campaign-plan-service/internal/domain/plan"
)

// TaskResponse represents a task in API responses.
type TaskResponse struct {
	ID          string         `json:"id"`
	Object      string         `json:"object"`
	PlanID      string         `json:"plan_id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	DueDate     *string        `json:"due_date,omitempty"`
	WeekIndex   *int           `json:"week_index,omitempty"`
	Status      string         `json:"status"`
	ActionURL   *string        `json:"action_url,omitempty"`
	Priority    *int           `json:"priority,omitempty"`
	Tags        []string       `json:"tags"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   int64          `json:"created_at"`
	UpdatedAt   int64          `json:"updated_at"`
}

// TaskListResponse wraps a plan's tasks.
type TaskListResponse struct {
	Data []TaskResponse `json:"data"`
}

// MapTaskToResponse converts a domain task to an API response.
func MapTaskToResponse(t *plan.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Object:      "plan_task",
		PlanID:      t.PlanID,
		Type:        string(t.Type),
		Title:       t.Title,
		Description: t.Description,
		WeekIndex:   t.WeekIndex,
		Status:      string(t.Status),
		ActionURL:   t.ActionURL,
		Priority:    t.Priority,
		Tags:        t.Tags,
		Metadata:    t.Metadata,
		CreatedAt:   t.CreatedAt.Unix(),
		UpdatedAt:   t.UpdatedAt.Unix(),
	}

	if resp.Tags == nil {
		resp.Tags = []string{}
	}

	if t.DueDate != nil {
		due := t.DueDate.UTC().Format(time.RFC3339)
		resp.DueDate = &due
	}

	return resp
}

// MapTasksToResponse converts a slice of domain tasks to an API response.
func MapTasksToResponse(tasks []*plan.Task) TaskListResponse {
	resp := TaskListResponse{Data: make([]TaskResponse, 0, len(tasks))}
	for _, t := range tasks {
		resp.Data = append(resp.Data, MapTaskToResponse(t))
	}
	return resp
}

// Helper to convert time.Time to unix timestamp pointer
func timeToUnixPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ts := t.Unix()
	return &ts
}

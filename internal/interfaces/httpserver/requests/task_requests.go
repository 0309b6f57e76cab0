package requests

import "time"

// CreateTaskRequest represents a request to add a task to a plan.
type CreateTaskRequest struct {
	Type        string         `json:"type" binding:"required"`
	Title       string         `json:"title" binding:"required"`
	Description string         `json:"description" binding:"required"`
	DueDate     *time.Time     `json:"dueDate,omitempty"`
	WeekIndex   *int           `json:"weekIndex,omitempty"`
	Status      *string        `json:"status,omitempty"`
	ActionURL   *string        `json:"actionUrl,omitempty"`
	Priority    *int           `json:"priority,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// ReplaceTaskRequest represents a full task replacement. Every column is
// written: nullable fields left out of the payload clear the stored value.
type ReplaceTaskRequest struct {
	Type        string         `json:"type" binding:"required"`
	Title       string         `json:"title" binding:"required"`
	Description string         `json:"description" binding:"required"`
	DueDate     *time.Time     `json:"dueDate"`
	WeekIndex   *int           `json:"weekIndex"`
	Status      string         `json:"status" binding:"required"`
	ActionURL   *string        `json:"actionUrl"`
	Priority    *int           `json:"priority"`
	Tags        []string       `json:"tags"`
	Metadata    map[string]any `json:"metadata"`
}

// PatchTaskRequest represents a partial task update. Only fields present in
// the payload are written.
type PatchTaskRequest struct {
	Type        *string        `json:"type,omitempty"`
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	DueDate     *time.Time     `json:"dueDate,omitempty"`
	WeekIndex   *int           `json:"weekIndex,omitempty"`
	Status      *string        `json:"status,omitempty"`
	ActionURL   *string        `json:"actionUrl,omitempty"`
	Priority    *int           `json:"priority,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Package plan defines the campaign plan aggregate: the plan itself and the
// tasks and sections it owns.
package plan

import (
	"fmt"
	"time"
)

// Plan is the aggregate root for one AI-generated campaign strategy revision.
type Plan struct {
	ID             string     `json:"id"`
	CampaignID     int64      `json:"campaign_id"`
	Version        int        `json:"version"`
	IdempotencyKey string     `json:"idempotency_key"`
	AIModel        string     `json:"ai_model"`
	Status         Status     `json:"status"`
	Cost           *Cost      `json:"cost,omitempty"`
	SourceReason   *string    `json:"source_reason,omitempty"`
	ErrorMessage   *string    `json:"error_message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`

	// Relations (loaded on full fetch)
	Tasks    []Task    `json:"tasks,omitempty"`
	Sections []Section `json:"sections,omitempty"`
}

// IdempotencyKeyFor derives the creation idempotency key. Two requests for
// the same campaign and version always resolve to the same plan row.
func IdempotencyKeyFor(campaignID int64, version int) string {
	return fmt.Sprintf("%d:%d", campaignID, version)
}

// Cost is the write-once accounting of token usage and dollar cost
// attributed to generating a plan.
type Cost struct {
	TotalCost    float64       `json:"totalCost"`
	Currency     string        `json:"currency,omitempty"`
	InputTokens  int64         `json:"inputTokens"`
	OutputTokens int64         `json:"outputTokens"`
	CachedTokens *int64        `json:"cachedTokens,omitempty"`
	Breakdown    CostBreakdown `json:"breakdown"`
	CalculatedAt *time.Time    `json:"calculatedAt,omitempty"`
}

// CostBreakdown splits the total cost by token class.
type CostBreakdown struct {
	InputCost  float64  `json:"inputCost"`
	OutputCost float64  `json:"outputCost"`
	CachedCost *float64 `json:"cachedCost,omitempty"`
}

// Task is an actionable item owned by exactly one plan.
type Task struct {
	ID          string         `json:"id"`
	PlanID      string         `json:"plan_id"`
	Type        TaskType       `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	WeekIndex   *int           `json:"week_index,omitempty"`
	Status      TaskStatus     `json:"status"`
	ActionURL   *string        `json:"action_url,omitempty"`
	Priority    *int           `json:"priority,omitempty"`
	Tags        []string       `json:"tags"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TaskType identifies the outreach channel a task belongs to.
type TaskType string

const (
	TaskTypeText         TaskType = "TEXT"
	TaskTypeRobocall     TaskType = "ROBOCALL"
	TaskTypeDoorKnocking TaskType = "DOOR_KNOCKING"
	TaskTypePhoneBanking TaskType = "PHONE_BANKING"
	TaskTypeSocialMedia  TaskType = "SOCIAL_MEDIA"
	TaskTypeEvents       TaskType = "EVENTS"
	TaskTypeEducation    TaskType = "EDUCATION"
)

// IsValid reports whether the value is a known task type.
func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeText, TaskTypeRobocall, TaskTypeDoorKnocking,
		TaskTypePhoneBanking, TaskTypeSocialMedia, TaskTypeEvents, TaskTypeEducation:
		return true
	}
	return false
}

// String returns the string representation of the task type.
func (t TaskType) String() string {
	return string(t)
}

// TaskStatus tracks whether a task has been carried out.
type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "NOT_STARTED"
	TaskStatusComplete   TaskStatus = "COMPLETE"
)

// IsValid reports whether the value is a known task status.
func (s TaskStatus) IsValid() bool {
	return s == TaskStatusNotStarted || s == TaskStatusComplete
}

// Section is a narrative block of the plan document, owned by exactly one
// plan and listed in orderIndex order.
type Section struct {
	ID         string    `json:"id"`
	PlanID     string    `json:"plan_id"`
	Key        string    `json:"key"`
	Title      string    `json:"title"`
	Summary    *string   `json:"summary,omitempty"`
	OrderIndex int       `json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

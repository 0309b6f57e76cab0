package plan

import "context"

// GenerationRequest carries the plan metadata sent to the generation backend.
type GenerationRequest struct {
	PlanID       string  `json:"planId"`
	CampaignID   int64   `json:"campaignId"`
	Version      int     `json:"version"`
	AIModel      string  `json:"aiModel"`
	SourceReason *string `json:"sourceReason,omitempty"`
}

// GeneratedSection is one narrative section produced by the backend.
type GeneratedSection struct {
	Key        string  `json:"key"`
	Title      string  `json:"title"`
	Summary    *string `json:"summary,omitempty"`
	OrderIndex int     `json:"orderIndex"`
}

// GeneratedTask is one actionable task produced by the backend.
type GeneratedTask struct {
	Type        TaskType       `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	DueDate     *string        `json:"dueDate,omitempty"`
	WeekIndex   *int           `json:"weekIndex,omitempty"`
	ActionURL   *string        `json:"actionUrl,omitempty"`
	Priority    *int           `json:"priority,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// GenerationResult is the backend's full answer for one plan.
type GenerationResult struct {
	Sections []GeneratedSection `json:"sections"`
	Tasks    []GeneratedTask    `json:"tasks"`
	Cost     *Cost              `json:"cost,omitempty"`
}

// Generator produces plan content from campaign metadata.
type Generator interface {
	GeneratePlan(ctx context.Context, req GenerationRequest) (*GenerationResult, error)
}

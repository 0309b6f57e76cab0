package responses

import (
	"campaign-plan-service/internal/domain/plan"
)

// CreatePlanResponse acknowledges a queued plan.
type CreatePlanResponse struct {
	PlanID string `json:"plan_id"`
	Status string `json:"status"`
}

// PlanResponse represents a plan in API responses.
type PlanResponse struct {
	ID           string            `json:"id"`
	Object       string            `json:"object"`
	CampaignID   int64             `json:"campaign_id"`
	Version      int               `json:"version"`
	AIModel      string            `json:"ai_model"`
	Status       string            `json:"status"`
	Cost         *plan.Cost        `json:"cost,omitempty"`
	SourceReason *string           `json:"source_reason,omitempty"`
	Error        *string           `json:"error,omitempty"`
	Sections     []SectionResponse `json:"sections"`
	Tasks        []TaskResponse    `json:"tasks"`
	CreatedAt    int64             `json:"created_at"`
	UpdatedAt    int64             `json:"updated_at"`
	CompletedAt  *int64            `json:"completed_at,omitempty"`
}

// SectionResponse represents a plan section in API responses.
type SectionResponse struct {
	ID         string  `json:"id"`
	Object     string  `json:"object"`
	PlanID     string  `json:"plan_id"`
	Key        string  `json:"key"`
	Title      string  `json:"title"`
	Summary    *string `json:"summary,omitempty"`
	OrderIndex int     `json:"order_index"`
	CreatedAt  int64   `json:"created_at"`
	UpdatedAt  int64   `json:"updated_at"`
}

// SectionListResponse wraps a plan's ordered sections.
type SectionListResponse struct {
	Data []SectionResponse `json:"data"`
}

// MapCreateResultToResponse converts a creation result to an API response.
func MapCreateResultToResponse(r *plan.CreateResult) CreatePlanResponse {
	return CreatePlanResponse{
		PlanID: r.PlanID,
		Status: string(r.Status),
	}
}

// MapPlanToResponse converts a domain plan to an API response.
func MapPlanToResponse(p *plan.Plan) PlanResponse {
	resp := PlanResponse{
		ID:           p.ID,
		Object:       "campaign_plan",
		CampaignID:   p.CampaignID,
		Version:      p.Version,
		AIModel:      p.AIModel,
		Status:       string(p.Status),
		Cost:         p.Cost,
		SourceReason: p.SourceReason,
		Error:        p.ErrorMessage,
		Sections:     make([]SectionResponse, 0, len(p.Sections)),
		Tasks:        make([]TaskResponse, 0, len(p.Tasks)),
		CreatedAt:    p.CreatedAt.Unix(),
		UpdatedAt:    p.UpdatedAt.Unix(),
		CompletedAt:  timeToUnixPtr(p.CompletedAt),
	}

	for i := range p.Sections {
		resp.Sections = append(resp.Sections, MapSectionToResponse(&p.Sections[i]))
	}
	for i := range p.Tasks {
		resp.Tasks = append(resp.Tasks, MapTaskToResponse(&p.Tasks[i]))
	}

	return resp
}

// MapSectionToResponse converts a domain section to an API response.
func MapSectionToResponse(s *plan.Section) SectionResponse {
	return SectionResponse{
		ID:         s.ID,
		Object:     "plan_section",
		PlanID:     s.PlanID,
		Key:        s.Key,
		Title:      s.Title,
		Summary:    s.Summary,
		OrderIndex: s.OrderIndex,
		CreatedAt:  s.CreatedAt.Unix(),
		UpdatedAt:  s.UpdatedAt.Unix(),
	}
}

// MapSectionsToResponse converts a slice of domain sections to an API response.
func MapSectionsToResponse(sections []*plan.Section) SectionListResponse {
	resp := SectionListResponse{Data: make([]SectionResponse, 0, len(sections))}
	for _, s := range sections {
		resp.Data = append(resp.Data, MapSectionToResponse(s))
	}
	return resp
}

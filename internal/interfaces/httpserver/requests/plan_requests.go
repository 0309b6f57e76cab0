package requests

// CreatePlanRequest represents a request to queue a new plan generation.
type CreatePlanRequest struct {
	CampaignID   int64   `json:"campaignId" binding:"required,gt=0"`
	Version      int     `json:"version" binding:"required,gte=1"`
	AIModel      string  `json:"aiModel" binding:"required"`
	SourceReason *string `json:"sourceReason,omitempty"`
}

// CreateSectionRequest represents a request to add a section to a plan.
type CreateSectionRequest struct {
	Key        string  `json:"key" binding:"required"`
	Title      string  `json:"title" binding:"required"`
	Summary    *string `json:"summary,omitempty"`
	OrderIndex int     `json:"orderIndex" binding:"gte=0"`
}

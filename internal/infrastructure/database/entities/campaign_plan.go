package entities

import (
	"time"

	"gorm.io/datatypes"
)

// TableName specifies the table name for CampaignPlan.
func (CampaignPlan) TableName() string {
	return "campaign_plans"
}

// CampaignPlan represents the persisted plan record. The unique index on
// idempotency_key and the cost_json trigger live in the SQL migrations;
// the tags here only mirror them for reference queries.
type CampaignPlan struct {
	ID             string `gorm:"type:varchar(36);primaryKey"`
	CampaignID     int64  `gorm:"not null;index:idx_campaign_plans_campaign"`
	Version        int    `gorm:"not null"`
	IdempotencyKey string `gorm:"type:varchar(128);uniqueIndex:uix_campaign_plans_idempotency_key;not null"`
	AIModel        string `gorm:"column:ai_model;type:varchar(128);not null"`
	Status         string `gorm:"type:varchar(16);not null;index:idx_campaign_plans_status"`
	CostJSON       datatypes.JSON `gorm:"column:cost_json;type:jsonb"`
	SourceReason   *string        `gorm:"type:text"`
	ErrorMessage   *string        `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CompletedAt    *time.Time

	// Relations
	Tasks    []CampaignPlanTask    `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE"`
	Sections []CampaignPlanSection `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE"`
}

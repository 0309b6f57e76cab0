package entities

import "time"

// TableName specifies the table name for CampaignPlanSection.
func (CampaignPlanSection) TableName() string {
	return "campaign_plan_sections"
}

// CampaignPlanSection represents the persisted section record.
type CampaignPlanSection struct {
	ID         string `gorm:"type:varchar(36);primaryKey"`
	PlanID     string `gorm:"type:varchar(36);not null;index:idx_campaign_plan_sections_plan"`
	Key        string `gorm:"type:varchar(128);not null"`
	Title      string `gorm:"type:varchar(256);not null"`
	Summary    *string `gorm:"type:text"`
	OrderIndex int     `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

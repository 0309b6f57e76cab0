package entities

import (
	"time"

	"gorm.io/datatypes"
)

// TableName specifies the table name for CampaignPlanTask.
func (CampaignPlanTask) TableName() string {
	return "campaign_plan_tasks"
}

// CampaignPlanTask represents the persisted task record.
type CampaignPlanTask struct {
	ID          string `gorm:"type:varchar(36);primaryKey"`
	PlanID      string `gorm:"type:varchar(36);not null;index:idx_campaign_plan_tasks_plan"`
	Type        string `gorm:"type:varchar(32);not null"`
	Title       string `gorm:"type:varchar(256);not null"`
	Description string `gorm:"type:text;not null"`
	DueDate     *time.Time
	WeekIndex   *int
	Status      string  `gorm:"type:varchar(16);not null;default:NOT_STARTED"`
	ActionURL   *string `gorm:"column:action_url;type:varchar(2048)"`
	Priority    *int
	Tags        datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	Metadata    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

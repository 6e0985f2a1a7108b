package dbmodels

import "time"

type Goal struct {
	BaseModel
	AppraisalID string `gorm:"type:varchar(36);index"`
	Title       string `gorm:"type:varchar(255)"`
	Description string
	DueDate     *time.Time
	Done        bool
}

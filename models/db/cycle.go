package dbmodels

import "time"

type AppraisalCycle struct {
	BaseModel
	Name      string `gorm:"type:varchar(255)"`
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
}

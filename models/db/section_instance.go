package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
)

type SectionInstance struct {
	BaseModel
	AppraisalID string         `gorm:"type:varchar(36);index"`
	SectionKey  string         `gorm:"type:varchar(100)"`
	Answers     SectionAnswers `gorm:"type:jsonb"`
}

type SectionAnswers map[string]string

func (a SectionAnswers) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}

func (a *SectionAnswers) Scan(value any) error {
	return scanPayload(value, a)
}

package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"appraisal-backend/models"
)

// AppraisalInstance — одна оценка одного сотрудника за цикл.
// Уникальный составной индекс закрывает гонку create-or-update:
// два конкурентных одинаковых сохранения не могут создать дубль.
type AppraisalInstance struct {
	BaseModel
	EmployeeID string                 `gorm:"type:varchar(36);uniqueIndex:idx_appraisal_identity"`
	Employee   *Employee              `gorm:"foreignKey:EmployeeID"`
	CycleID    string                 `gorm:"type:varchar(36);uniqueIndex:idx_appraisal_identity"`
	Cycle      *AppraisalCycle        `gorm:"foreignKey:CycleID"`
	TemplateID string                 `gorm:"type:varchar(36);uniqueIndex:idx_appraisal_identity"`
	Template   *AppraisalTemplate     `gorm:"foreignKey:TemplateID"`
	Status     models.AppraisalStatus `gorm:"type:varchar(50);uniqueIndex:idx_appraisal_identity"`

	SelfAssessment   SelfAssessmentPayload   `gorm:"type:jsonb"`
	ManagerReview    ManagerReviewPayload    `gorm:"type:jsonb"`
	DivisionalReview DivisionalReviewPayload `gorm:"type:jsonb"`
	FinalReview      FinalReviewPayload      `gorm:"type:jsonb"`

	OverallScore float64

	Competencies []AppraisalCompetency `gorm:"foreignKey:AppraisalID"`
}

// Типизированные полезные нагрузки этапов. Хранятся как jsonb,
// по одной структуре на этап жизненного цикла.

type SelfAssessmentPayload struct {
	Answers  map[string]string `json:"answers"`
	Comments string            `json:"comments"`
}

type ManagerReviewPayload struct {
	Ratings    map[string]int `json:"ratings"`
	Notes      string         `json:"notes"`
	ReviewedAt *time.Time     `json:"reviewed_at,omitempty"`
}

type DivisionalReviewPayload struct {
	Decision  string     `json:"decision"`
	Comments  string     `json:"comments"`
	Signature string     `json:"signature"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
}

type FinalReviewPayload struct {
	Decision       string     `json:"decision"` // renew/extend/terminate
	Recommendation string     `json:"recommendation"`
	Signature      string     `json:"signature"`
	DecidedAt      *time.Time `json:"decided_at,omitempty"`
}

func (p SelfAssessmentPayload) Value() (driver.Value, error) {
	valueString, err := json.Marshal(p)
	return string(valueString), err
}

func (p *SelfAssessmentPayload) Scan(value any) error {
	return scanPayload(value, p)
}

func (p ManagerReviewPayload) Value() (driver.Value, error) {
	valueString, err := json.Marshal(p)
	return string(valueString), err
}

func (p *ManagerReviewPayload) Scan(value any) error {
	return scanPayload(value, p)
}

func (p DivisionalReviewPayload) Value() (driver.Value, error) {
	valueString, err := json.Marshal(p)
	return string(valueString), err
}

func (p *DivisionalReviewPayload) Scan(value any) error {
	return scanPayload(value, p)
}

func (p FinalReviewPayload) Value() (driver.Value, error) {
	valueString, err := json.Marshal(p)
	return string(valueString), err
}

func (p *FinalReviewPayload) Scan(value any) error {
	return scanPayload(value, p)
}

func scanPayload(value any, out any) error {
	if value == nil {
		return nil
	}
	switch data := value.(type) {
	case []byte:
		return json.Unmarshal(data, out)
	case string:
		return json.Unmarshal([]byte(data), out)
	}
	return nil
}

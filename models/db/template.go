package dbmodels

import (
	"github.com/lib/pq"

	"appraisal-backend/models"
)

// AppraisalTemplate — схема разделов оценочной формы.
// SectionKeys задаёт какие SectionInstance создаются при первом сохранении.
type AppraisalTemplate struct {
	BaseModel
	TemplateType models.TemplateType `gorm:"type:varchar(50);uniqueIndex"`
	Name         string              `gorm:"type:varchar(255)"`
	SectionKeys  pq.StringArray      `gorm:"type:text[]"`
}

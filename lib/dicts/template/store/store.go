package templatestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"appraisal-backend/models"
	dbmodels "appraisal-backend/models/db"
)

type Provider interface {
	GetByID(id string) (rec *dbmodels.AppraisalTemplate, err error)
	GetByType(templateType models.TemplateType) (rec *dbmodels.AppraisalTemplate, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByID(id string) (*dbmodels.AppraisalTemplate, error) {
	rec := dbmodels.AppraisalTemplate{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByType(templateType models.TemplateType) (*dbmodels.AppraisalTemplate, error) {
	rec := dbmodels.AppraisalTemplate{}
	err := i.db.
		Where("template_type = ?", templateType).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

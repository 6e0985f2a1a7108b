package sectionstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "appraisal-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.SectionInstance) (id string, err error)
	ListByAppraisal(appraisalID string) (list []dbmodels.SectionInstance, err error)
	Update(id string, updMap map[string]interface{}) error
	DeleteByAppraisal(appraisalID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.SectionInstance) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByAppraisal(appraisalID string) (list []dbmodels.SectionInstance, err error) {
	list = []dbmodels.SectionInstance{}
	err = i.db.
		Where("appraisal_id = ?", appraisalID).
		Order("section_key ASC").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.SectionInstance{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) DeleteByAppraisal(appraisalID string) error {
	err := i.db.
		Where("appraisal_id = ?", appraisalID).
		Delete(&dbmodels.SectionInstance{}).
		Error
	if err != nil {
		return err
	}
	return nil
}

package responsestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "appraisal-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.FreeTextResponse) (id string, err error)
	ListByAppraisal(appraisalID string) (list []dbmodels.FreeTextResponse, err error)
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

func (i impl) Create(rec dbmodels.FreeTextResponse) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByAppraisal(appraisalID string) (list []dbmodels.FreeTextResponse, err error) {
	list = []dbmodels.FreeTextResponse{}
	err = i.db.
		Where("appraisal_id = ?", appraisalID).
		Order("created_at ASC").
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

func (i impl) DeleteByAppraisal(appraisalID string) error {
	err := i.db.
		Where("appraisal_id = ?", appraisalID).
		Delete(&dbmodels.FreeTextResponse{}).
		Error
	if err != nil {
		return err
	}
	return nil
}

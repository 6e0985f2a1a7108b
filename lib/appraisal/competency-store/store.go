package appraisalcompetencystore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "appraisal-backend/models/db"
)

type Provider interface {
	CreateBatch(recs []dbmodels.AppraisalCompetency) error
	ListByAppraisal(appraisalID string) (list []dbmodels.AppraisalCompetency, err error)
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

func (i impl) CreateBatch(recs []dbmodels.AppraisalCompetency) error {
	if len(recs) == 0 {
		return nil
	}
	err := i.db.
		Omit("Competency").
		Create(&recs).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) ListByAppraisal(appraisalID string) (list []dbmodels.AppraisalCompetency, err error) {
	list = []dbmodels.AppraisalCompetency{}
	err = i.db.
		Where("appraisal_id = ?", appraisalID).
		Preload("Competency").
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

// DeleteByAppraisal: отсутствие строк не является ошибкой.
func (i impl) DeleteByAppraisal(appraisalID string) error {
	err := i.db.
		Where("appraisal_id = ?", appraisalID).
		Delete(&dbmodels.AppraisalCompetency{}).
		Error
	if err != nil {
		return err
	}
	return nil
}

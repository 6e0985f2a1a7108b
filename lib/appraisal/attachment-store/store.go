package attachmentstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "appraisal-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.AppraisalAttachment) (id string, err error)
	GetByID(id string) (rec *dbmodels.AppraisalAttachment, err error)
	ListByAppraisal(appraisalID string) (list []dbmodels.AppraisalAttachment, err error)
	Delete(id string) error
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

func (i impl) Create(rec dbmodels.AppraisalAttachment) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.AppraisalAttachment, error) {
	rec := dbmodels.AppraisalAttachment{}
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

func (i impl) ListByAppraisal(appraisalID string) (list []dbmodels.AppraisalAttachment, err error) {
	list = []dbmodels.AppraisalAttachment{}
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

func (i impl) Delete(id string) error {
	rec := dbmodels.AppraisalAttachment{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	err := i.db.
		Delete(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) DeleteByAppraisal(appraisalID string) error {
	err := i.db.
		Where("appraisal_id = ?", appraisalID).
		Delete(&dbmodels.AppraisalAttachment{}).
		Error
	if err != nil {
		return err
	}
	return nil
}

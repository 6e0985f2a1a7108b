package cyclestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "appraisal-backend/models/db"
)

type Provider interface {
	GetByID(id string) (rec *dbmodels.AppraisalCycle, err error)
	GetActive() (rec *dbmodels.AppraisalCycle, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByID(id string) (*dbmodels.AppraisalCycle, error) {
	rec := dbmodels.AppraisalCycle{}
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

func (i impl) GetActive() (*dbmodels.AppraisalCycle, error) {
	rec := dbmodels.AppraisalCycle{}
	err := i.db.
		Where("is_active = true").
		Order("start_date DESC").
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

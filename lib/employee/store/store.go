package employeestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "appraisal-backend/models/db"
)

type Provider interface {
	GetByID(id string) (rec *dbmodels.Employee, err error)
	GetByExternalID(externalID string) (rec *dbmodels.Employee, err error)
	ListByManager(managerID string) (list []dbmodels.Employee, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByID(id string) (*dbmodels.Employee, error) {
	rec := dbmodels.Employee{}
	err := i.db.
		Where("id = ?", id).
		Preload("Manager").
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

func (i impl) GetByExternalID(externalID string) (*dbmodels.Employee, error) {
	rec := dbmodels.Employee{}
	err := i.db.
		Where("external_id = ?", externalID).
		Preload("Manager").
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

func (i impl) ListByManager(managerID string) (list []dbmodels.Employee, err error) {
	list = []dbmodels.Employee{}
	err = i.db.
		Where("manager_id = ?", managerID).
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

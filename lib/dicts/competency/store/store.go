package competencystore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "appraisal-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Competency) (id string, err error)
	GetByID(id string) (rec *dbmodels.Competency, err error)
	List() (list []dbmodels.Competency, err error)
	CountByIDs(ids []string) (count int64, err error)
	Delete(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Competency) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Competency, error) {
	rec := dbmodels.Competency{}
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

func (i impl) List() (list []dbmodels.Competency, err error) {
	list = []dbmodels.Competency{}
	err = i.db.
		Order("name ASC").
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

// CountByIDs — сколько из переданных идентификаторов реально существует.
func (i impl) CountByIDs(ids []string) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.Competency{}).
		Where("id IN ?", ids).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.Competency{
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

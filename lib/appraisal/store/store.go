package appraisalstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"appraisal-backend/models"
	appraisalapimodels "appraisal-backend/models/api/appraisal"
	dbmodels "appraisal-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.AppraisalInstance) (id string, err error)
	GetByID(id string) (rec *dbmodels.AppraisalInstance, err error)
	Find(employeeID, cycleID, templateID string, status models.AppraisalStatus) (rec *dbmodels.AppraisalInstance, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	List(filter appraisalapimodels.AppraisalFilter) (list []dbmodels.AppraisalInstance, err error)
	ListCount(filter appraisalapimodels.AppraisalFilter) (count int64, err error)
	ListDraftsOlderThan(days int) (list []dbmodels.AppraisalInstance, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.AppraisalInstance) (id string, err error) {
	err = i.db.
		Omit("Employee", "Cycle", "Template", "Competencies").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.AppraisalInstance, error) {
	rec := dbmodels.AppraisalInstance{}
	err := i.db.
		Where("id = ?", id).
		Preload("Employee").
		Preload("Employee.Manager").
		Preload("Cycle").
		Preload("Template").
		Preload("Competencies").
		Preload("Competencies.Competency").
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

func (i impl) Find(employeeID, cycleID, templateID string, status models.AppraisalStatus) (*dbmodels.AppraisalInstance, error) {
	rec := dbmodels.AppraisalInstance{}
	err := i.db.
		Where("employee_id = ?", employeeID).
		Where("cycle_id = ?", cycleID).
		Where("template_id = ?", templateID).
		Where("status = ?", status).
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.AppraisalInstance{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.AppraisalInstance{
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

// addFilter: статусный фильтр задан явно — исключение SELF_EVALUATION снимается.
func (i impl) addFilter(tx *gorm.DB, filter appraisalapimodels.AppraisalFilter) {
	if filter.Status != "" {
		status, _ := models.ParseAppraisalStatus(filter.Status)
		tx.Where("appraisal_instances.status = ?", status)
	} else {
		tx.Where("appraisal_instances.status <> ?", models.AppraisalStatusSelfEvaluation)
	}
	if filter.EmployeeID != "" {
		tx.Where("appraisal_instances.employee_id = ?", filter.EmployeeID)
	}
	if filter.CycleID != "" {
		tx.Where("appraisal_instances.cycle_id = ?", filter.CycleID)
	}
	if filter.SupervisorID != "" {
		tx.Joins("join employees as e on appraisal_instances.employee_id = e.id").
			Where("e.manager_id = ?", filter.SupervisorID)
	}
}

func (i impl) List(filter appraisalapimodels.AppraisalFilter) (list []dbmodels.AppraisalInstance, err error) {
	list = []dbmodels.AppraisalInstance{}
	tx := i.db.
		Model(&dbmodels.AppraisalInstance{})
	i.addFilter(tx, filter)
	page, limit := filter.GetPage()
	tx.Offset((page - 1) * limit).Limit(limit)
	err = tx.
		Order("appraisal_instances.created_at DESC").
		Preload(clause.Associations).
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

func (i impl) ListCount(filter appraisalapimodels.AppraisalFilter) (count int64, err error) {
	tx := i.db.
		Model(&dbmodels.AppraisalInstance{})
	i.addFilter(tx, filter)
	err = tx.Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) ListDraftsOlderThan(days int) (list []dbmodels.AppraisalInstance, err error) {
	list = []dbmodels.AppraisalInstance{}
	err = i.db.
		Where("status = ?", models.AppraisalStatusDraft).
		Where("updated_at < now() - make_interval(days => ?)", days).
		Preload("Employee").
		Preload("Cycle").
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

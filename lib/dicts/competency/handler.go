package competencyprovider

import (
	"appraisal-backend/db"
	competencystore "appraisal-backend/lib/dicts/competency/store"
	"appraisal-backend/lib/utils/apperror"
	dictapimodels "appraisal-backend/models/api/dict"
	dbmodels "appraisal-backend/models/db"
)

type Provider interface {
	Create(data dictapimodels.CompetencyData) (id string, err error)
	Get(id string) (view dictapimodels.CompetencyView, err error)
	List() (list []dictapimodels.CompetencyView, err error)
	Delete(id string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: competencystore.NewInstance(db.DB),
	}
}

type impl struct {
	store competencystore.Provider
}

func (i impl) Create(data dictapimodels.CompetencyData) (id string, err error) {
	rec := dbmodels.Competency{
		Name:        data.Name,
		Description: data.Description,
		Category:    data.Category,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", apperror.Dependency(err, "failed to create competency")
	}
	return id, nil
}

func (i impl) Get(id string) (view dictapimodels.CompetencyView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return view, apperror.Dependency(err, "failed to get competency")
	}
	if rec == nil {
		return view, apperror.NotFound("competency not found")
	}
	return dictapimodels.CompetencyConvert(*rec), nil
}

func (i impl) List() (list []dictapimodels.CompetencyView, err error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, apperror.Dependency(err, "failed to list competencies")
	}
	list = make([]dictapimodels.CompetencyView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.CompetencyConvert(rec))
	}
	return list, nil
}

func (i impl) Delete(id string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return apperror.Dependency(err, "failed to get competency")
	}
	if rec == nil {
		return apperror.NotFound("competency not found")
	}
	if err = i.store.Delete(id); err != nil {
		return apperror.Dependency(err, "failed to delete competency")
	}
	return nil
}

package competencyassign

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"appraisal-backend/db"
	appraisalcompetencystore "appraisal-backend/lib/appraisal/competency-store"
	appraisalstore "appraisal-backend/lib/appraisal/store"
	competencystore "appraisal-backend/lib/dicts/competency/store"
	"appraisal-backend/lib/utils/apperror"
	appraisalapimodels "appraisal-backend/models/api/appraisal"
	dbmodels "appraisal-backend/models/db"
)

const requiredCompetencies = 3

type Provider interface {
	Assign(appraisalID string, competencyIDs []string) (view appraisalapimodels.AppraisalView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		appraisalStore:  appraisalstore.NewInstance(db.DB),
		competencyStore: competencystore.NewInstance(db.DB),
	}
}

type impl struct {
	appraisalStore  appraisalstore.Provider
	competencyStore competencystore.Provider
}

// Assign заменяет набор компетенций оценки целиком (удалить всё, вставить три).
// Проверки идут строго по порядку: количество, существование оценки,
// этап жизненного цикла, существование компетенций.
func (i impl) Assign(appraisalID string, competencyIDs []string) (view appraisalapimodels.AppraisalView, err error) {
	distinct := distinctIDs(competencyIDs)
	if len(distinct) != requiredCompetencies {
		return view, apperror.Validation("Exactly 3 competencies required.")
	}

	rec, err := i.appraisalStore.GetByID(appraisalID)
	if err != nil {
		return view, apperror.Dependency(err, "failed to get appraisal")
	}
	if rec == nil {
		return view, apperror.NotFound("appraisal not found")
	}
	if !rec.Status.IsDraft() {
		return view, apperror.Forbidden("Cannot modify competencies after submission.")
	}

	count, err := i.competencyStore.CountByIDs(distinct)
	if err != nil {
		return view, apperror.Dependency(err, "failed to check competencies")
	}
	if count != requiredCompetencies {
		return view, apperror.Validation("Invalid competency IDs.")
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := appraisalcompetencystore.NewInstance(tx)
		// удаление старого набора best-effort: таблицы или строк
		// может ещё не быть, это не причина отказывать
		if delErr := store.DeleteByAppraisal(appraisalID); delErr != nil {
			log.
				WithField("appraisal_id", appraisalID).
				WithError(delErr).
				Warn("не удалось удалить прежний набор компетенций, продолжаем")
		}
		recs := make([]dbmodels.AppraisalCompetency, 0, requiredCompetencies)
		for _, competencyID := range distinct {
			recs = append(recs, dbmodels.AppraisalCompetency{
				AppraisalID:  appraisalID,
				CompetencyID: competencyID,
			})
		}
		return store.CreateBatch(recs)
	})
	if err != nil {
		return view, apperror.Dependency(err, "failed to save competencies")
	}

	updated, err := i.appraisalStore.GetByID(appraisalID)
	if err != nil || updated == nil {
		return view, apperror.Dependency(err, "failed to reload appraisal")
	}
	return appraisalapimodels.AppraisalConvert(*updated), nil
}

func distinctIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}

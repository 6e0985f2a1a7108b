package cascade

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"appraisal-backend/db"
	attachmentstore "appraisal-backend/lib/appraisal/attachment-store"
	appraisalcompetencystore "appraisal-backend/lib/appraisal/competency-store"
	goalstore "appraisal-backend/lib/appraisal/goal-store"
	responsestore "appraisal-backend/lib/appraisal/response-store"
	sectionstore "appraisal-backend/lib/appraisal/section-store"
	appraisalstore "appraisal-backend/lib/appraisal/store"
	filestorage "appraisal-backend/lib/file-storage"
	"appraisal-backend/lib/utils/apperror"
	"appraisal-backend/models"
)

// Шаги каскада в фиксированном порядке. Каждый шаг коммитится
// независимо, отката нет: жёсткий сбой останавливает каскад и
// называет упавший шаг, уже удалённые дочерние записи не возвращаются.
const (
	stepSections     = "section instances"
	stepResponses    = "responses"
	stepGoals        = "goals"
	stepCompetencies = "competency assignments"
	stepInstance     = "appraisal instance"
)

type Provider interface {
	Delete(ctx context.Context, appraisalID string, callerRole models.UserRole) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		appraisalStore:  appraisalstore.NewInstance(db.DB),
		sectionStore:    sectionstore.NewInstance(db.DB),
		responseStore:   responsestore.NewInstance(db.DB),
		goalStore:       goalstore.NewInstance(db.DB),
		competencyStore: appraisalcompetencystore.NewInstance(db.DB),
		attachmentStore: attachmentstore.NewInstance(db.DB),
	}
}

type impl struct {
	appraisalStore  appraisalstore.Provider
	sectionStore    sectionstore.Provider
	responseStore   responsestore.Provider
	goalStore       goalstore.Provider
	competencyStore appraisalcompetencystore.Provider
	attachmentStore attachmentstore.Provider
}

func (i impl) Delete(ctx context.Context, appraisalID string, callerRole models.UserRole) error {
	if !callerRole.IsHrAdmin() {
		return apperror.Forbidden("operation not permitted")
	}
	rec, err := i.appraisalStore.GetByID(appraisalID)
	if err != nil {
		return apperror.Dependency(err, "failed to get appraisal")
	}
	if rec == nil {
		return apperror.NotFound("appraisal not found")
	}

	logger := log.WithField("appraisal_id", appraisalID)

	if err = i.sectionStore.DeleteByAppraisal(appraisalID); err != nil {
		return stepFailure(stepSections, err)
	}
	if err = i.responseStore.DeleteByAppraisal(appraisalID); err != nil {
		return stepFailure(stepResponses, err)
	}
	if err = i.goalStore.DeleteByAppraisal(appraisalID); err != nil {
		return stepFailure(stepGoals, err)
	}
	// единственный best-effort шаг: сбой логируем и идём дальше
	if err = i.competencyStore.DeleteByAppraisal(appraisalID); err != nil {
		logger.
			WithField("step", stepCompetencies).
			WithError(err).
			Warn("шаг каскада не удался, пропускаем")
	}
	if err = i.appraisalStore.Delete(appraisalID); err != nil {
		return stepFailure(stepInstance, err)
	}
	logger.Info("оценка удалена каскадом")

	i.cleanupAttachments(ctx, appraisalID, logger)
	return nil
}

// cleanupAttachments подчищает файлы в S3 после удаления записи,
// сбои только логируются.
func (i impl) cleanupAttachments(ctx context.Context, appraisalID string, logger *log.Entry) {
	list, err := i.attachmentStore.ListByAppraisal(appraisalID)
	if err != nil {
		logger.WithError(err).Warn("не удалось получить список вложений для очистки")
		return
	}
	for _, attachment := range list {
		if err = filestorage.Instance.RemoveFile(ctx, attachment.ObjectKey); err != nil {
			logger.
				WithField("object_key", attachment.ObjectKey).
				WithError(err).
				Warn("не удалось удалить файл вложения из S3")
		}
	}
	if err = i.attachmentStore.DeleteByAppraisal(appraisalID); err != nil {
		logger.WithError(err).Warn("не удалось удалить записи вложений")
	}
}

func stepFailure(step string, err error) error {
	return apperror.Dependency(err, fmt.Sprintf("failed to delete %s", step))
}

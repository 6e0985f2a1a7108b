package gpthandler

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"appraisal-backend/config"
	"appraisal-backend/db"
	appraisalstore "appraisal-backend/lib/appraisal/store"
	yagptclient "appraisal-backend/lib/gpt/yagpt-client"
	"appraisal-backend/lib/utils/apperror"
	gptmodels "appraisal-backend/models/api/gpt"
	dbmodels "appraisal-backend/models/db"
)

const summaryPromt = "Ты - HR-специалист. Составь краткое резюме итогов оценки эффективности сотрудника на основе ответов самооценки и комментариев руководителей. Пиши нейтрально и по делу, не более пяти предложений."

type Provider interface {
	GenerateReviewSummary(appraisalID string) (resp gptmodels.ReviewSummaryResponse, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: appraisalstore.NewInstance(db.DB),
	}
}

type impl struct {
	store appraisalstore.Provider
}

func (i impl) GenerateReviewSummary(appraisalID string) (resp gptmodels.ReviewSummaryResponse, err error) {
	rec, err := i.store.GetByID(appraisalID)
	if err != nil {
		return resp, apperror.Dependency(err, "failed to get appraisal")
	}
	if rec == nil {
		return resp, apperror.NotFound("appraisal not found")
	}
	text := buildReviewText(*rec)
	if text == "" {
		return resp, apperror.Validation("appraisal has no review content to summarize")
	}
	resp.Summary, err = yagptclient.
		NewClient(config.Conf.YandexGPT.IAMToken, config.Conf.YandexGPT.CatalogID).
		GenerateByPromtAndText(summaryPromt, text)
	if err != nil {
		log.
			WithField("appraisal_id", appraisalID).
			WithError(err).
			Error("ошибка генерации резюме оценки через YandexGPT")
		return resp, apperror.Dependency(err, "failed to generate summary")
	}
	return resp, nil
}

func buildReviewText(rec dbmodels.AppraisalInstance) string {
	var sb strings.Builder
	if rec.Employee != nil {
		sb.WriteString(fmt.Sprintf("Сотрудник: %s.\n", rec.Employee.GetFullName()))
	}
	for question, answer := range rec.SelfAssessment.Answers {
		sb.WriteString(fmt.Sprintf("Самооценка, %s: %s.\n", question, answer))
	}
	if rec.SelfAssessment.Comments != "" {
		sb.WriteString(fmt.Sprintf("Комментарий сотрудника: %s.\n", rec.SelfAssessment.Comments))
	}
	if rec.ManagerReview.Notes != "" {
		sb.WriteString(fmt.Sprintf("Комментарий руководителя: %s.\n", rec.ManagerReview.Notes))
	}
	if rec.DivisionalReview.Comments != "" {
		sb.WriteString(fmt.Sprintf("Комментарий руководителя дивизиона: %s.\n", rec.DivisionalReview.Comments))
	}
	if rec.OverallScore != 0 {
		sb.WriteString(fmt.Sprintf("Итоговый балл: %.1f.\n", rec.OverallScore))
	}
	return strings.TrimSpace(sb.String())
}

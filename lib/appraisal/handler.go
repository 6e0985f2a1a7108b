package appraisalhandler

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"appraisal-backend/config"
	"appraisal-backend/db"
	sectionstore "appraisal-backend/lib/appraisal/section-store"
	appraisalstore "appraisal-backend/lib/appraisal/store"
	cyclestore "appraisal-backend/lib/dicts/cycle/store"
	templatestore "appraisal-backend/lib/dicts/template/store"
	employeestore "appraisal-backend/lib/employee/store"
	xlsexport "appraisal-backend/lib/export/xls"
	"appraisal-backend/lib/notification"
	"appraisal-backend/lib/utils/apperror"
	"appraisal-backend/lib/utils/lock"
	"appraisal-backend/models"
	appraisalapimodels "appraisal-backend/models/api/appraisal"
	dbmodels "appraisal-backend/models/db"
)

const createLockWait = 2 * time.Second

type Provider interface {
	CreateOrUpdate(data appraisalapimodels.AppraisalData) (view appraisalapimodels.AppraisalView, err error)
	DivisionalReview(id string, callerRole models.UserRole, data appraisalapimodels.DivisionalReviewData) (view appraisalapimodels.AppraisalView, err error)
	FinalReview(id string, callerRole models.UserRole, data appraisalapimodels.FinalReviewData) (view appraisalapimodels.AppraisalView, err error)
	GetByID(id string) (view appraisalapimodels.AppraisalView, err error)
	List(filter appraisalapimodels.AppraisalFilter) (list []appraisalapimodels.AppraisalView, rowCount int64, err error)
	Export(filter appraisalapimodels.AppraisalFilter) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         appraisalstore.NewInstance(db.DB),
		sectionStore:  sectionstore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		cycleStore:    cyclestore.NewInstance(db.DB),
		templateStore: templatestore.NewInstance(db.DB),
	}
}

type impl struct {
	store         appraisalstore.Provider
	sectionStore  sectionstore.Provider
	employeeStore employeestore.Provider
	cycleStore    cyclestore.Provider
	templateStore templatestore.Provider
}

// CreateOrUpdate — идемпотентное сохранение по ключу
// (сотрудник, цикл, шаблон, статус). Повторная отправка тех же данных
// обновляет существующую запись. Гонку двух одинаковых конкурентных
// сохранений закрывают межпроцессный uniqueIndex и локальный лок.
func (i impl) CreateOrUpdate(data appraisalapimodels.AppraisalData) (view appraisalapimodels.AppraisalView, err error) {
	templateType, _ := models.ParseTemplateType(data.TemplateType)
	template, err := i.templateStore.GetByType(templateType)
	if err != nil {
		return view, apperror.Dependency(err, "failed to resolve template")
	}
	if template == nil {
		return view, apperror.NotFound("template not found")
	}

	employee, err := i.employeeStore.GetByExternalID(data.EmployeeID)
	if err != nil {
		return view, apperror.Dependency(err, "failed to resolve employee")
	}
	if employee == nil {
		return view, apperror.NotFound("employee not found")
	}

	cycle, err := i.resolveCycle(data.CycleID)
	if err != nil {
		return view, err
	}

	status := data.GetStatus()
	logger := i.getLogger(employee.ID, "")

	var recID string
	var created bool
	lockKey := fmt.Sprintf("appraisal:%s:%s:%s:%s", employee.ID, cycle.ID, template.ID, status)
	acquired, err := lock.WithDelay(context.Background(), lockKey, createLockWait, func() error {
		recID, created, err = i.upsert(employee.ID, cycle.ID, template, status, data)
		return err
	})
	if err != nil {
		if apperror.KindOf(err) != apperror.KindDependency {
			return view, err
		}
		return view, apperror.Dependency(err, "failed to save appraisal")
	}
	if !acquired {
		return view, apperror.Conflict("concurrent submission for the same appraisal, retry")
	}

	rec, err := i.store.GetByID(recID)
	if err != nil || rec == nil {
		return view, apperror.Dependency(err, "failed to reload appraisal")
	}

	// рассылка после коммита, ответ её не ждёт
	if created && status.InReviewChain() {
		recCopy := *rec
		go func() {
			summary := notification.Instance.SendWorkflowEmails(context.Background(), i.emailContext(recCopy))
			logger.
				WithField("appraisal_id", recCopy.ID).
				WithField("summary", fmt.Sprintf("%+v", summary)).
				Info("рассылка по отправленной оценке завершена")
		}()
	}
	return appraisalapimodels.AppraisalConvert(*rec), nil
}

// errDuplicateRace сигналит, что конкурент вставил запись первым.
var errDuplicateRace = errors.New("duplicate appraisal submission race")

// upsert выполняет lookup-then-write в транзакции. Нарушение уникального
// индекса означает, что конкурент успел первым — после 23505 транзакция
// отравлена (все последующие запросы в ней падают с 25P02), поэтому
// запись конкурента перечитывается и обновляется в новой транзакции.
func (i impl) upsert(employeeID, cycleID string, template *dbmodels.AppraisalTemplate, status models.AppraisalStatus, data appraisalapimodels.AppraisalData) (recID string, created bool, err error) {
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := appraisalstore.NewInstance(tx)
		existing, txErr := store.Find(employeeID, cycleID, template.ID, status)
		if txErr != nil {
			return txErr
		}
		if existing != nil {
			recID = existing.ID
			return store.Update(existing.ID, i.payloadUpdates(data))
		}

		rec := dbmodels.AppraisalInstance{
			EmployeeID:   employeeID,
			CycleID:      cycleID,
			TemplateID:   template.ID,
			Status:       status,
			OverallScore: data.OverallScore,
		}
		if data.SelfAssessment != nil {
			rec.SelfAssessment = *data.SelfAssessment
		}
		if data.ManagerReview != nil {
			rec.ManagerReview = *data.ManagerReview
		}
		newID, txErr := store.Create(rec)
		if txErr != nil {
			if isUniqueViolation(txErr) {
				return errDuplicateRace
			}
			return txErr
		}
		recID = newID
		created = true
		return i.seedSections(tx, newID, template)
	})
	if errors.Is(err, errDuplicateRace) {
		err = db.DB.Transaction(func(tx *gorm.DB) error {
			var txErr error
			recID, txErr = i.adoptRaced(appraisalstore.NewInstance(tx), employeeID, cycleID, template.ID, status, data)
			return txErr
		})
	}
	return recID, created, err
}

// adoptRaced накатывает изменения текущего запроса на запись конкурента.
func (i impl) adoptRaced(store appraisalstore.Provider, employeeID, cycleID, templateID string, status models.AppraisalStatus, data appraisalapimodels.AppraisalData) (string, error) {
	raced, err := store.Find(employeeID, cycleID, templateID, status)
	if err != nil {
		return "", err
	}
	if raced == nil {
		return "", errors.New("duplicate reported but record not found")
	}
	if err = store.Update(raced.ID, i.payloadUpdates(data)); err != nil {
		return "", err
	}
	return raced.ID, nil
}

func (i impl) resolveCycle(cycleID string) (*dbmodels.AppraisalCycle, error) {
	if cycleID == "" {
		return nil, apperror.Validation("cycleId is required")
	}
	cycle, err := i.cycleStore.GetByID(cycleID)
	if err != nil {
		return nil, apperror.Dependency(err, "failed to resolve cycle")
	}
	if cycle == nil {
		return nil, apperror.NotFound("cycle not found")
	}
	return cycle, nil
}

func (i impl) payloadUpdates(data appraisalapimodels.AppraisalData) map[string]interface{} {
	updMap := map[string]interface{}{
		"overall_score": data.OverallScore,
		"updated_at":    time.Now(),
	}
	if data.SelfAssessment != nil {
		updMap["self_assessment"] = *data.SelfAssessment
	}
	if data.ManagerReview != nil {
		updMap["manager_review"] = *data.ManagerReview
	}
	return updMap
}

// seedSections создаёт разделы формы по схеме шаблона.
func (i impl) seedSections(tx *gorm.DB, appraisalID string, template *dbmodels.AppraisalTemplate) error {
	store := sectionstore.NewInstance(tx)
	for _, key := range template.SectionKeys {
		rec := dbmodels.SectionInstance{
			AppraisalID: appraisalID,
			SectionKey:  key,
			Answers:     dbmodels.SectionAnswers{},
		}
		if _, err := store.Create(rec); err != nil {
			return err
		}
	}
	return nil
}

// DivisionalReview записывает решение руководителя дивизиона.
// Переход в AWAITING_HR асинхронно отправляет ровно два письма,
// их исход не влияет на зафиксированный статус.
func (i impl) DivisionalReview(id string, callerRole models.UserRole, data appraisalapimodels.DivisionalReviewData) (view appraisalapimodels.AppraisalView, err error) {
	if callerRole != models.DivisionalHeadRole && !callerRole.IsHrAdmin() {
		return view, apperror.Forbidden("operation not permitted")
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return view, apperror.Dependency(err, "failed to get appraisal")
	}
	if rec == nil {
		return view, apperror.NotFound("appraisal not found")
	}

	newStatus := models.AppraisalStatusAwaitingHr
	if data.Status != "" {
		newStatus, _ = models.ParseAppraisalStatus(data.Status)
	}
	now := time.Now()
	payload := dbmodels.DivisionalReviewPayload{
		Decision:  data.Decision,
		Comments:  data.Comments,
		Signature: data.Signature,
		DecidedAt: &now,
	}
	updMap := map[string]interface{}{
		"divisional_review": payload,
		"status":            newStatus,
		"updated_at":        now,
	}
	if err = i.store.Update(id, updMap); err != nil {
		return view, apperror.Dependency(err, "failed to save divisional review")
	}

	updated, err := i.store.GetByID(id)
	if err != nil || updated == nil {
		return view, apperror.Dependency(err, "failed to reload appraisal")
	}

	if newStatus == models.AppraisalStatusAwaitingHr {
		recCopy := *updated
		logger := i.getLogger("", id)
		go func() {
			summary := notification.Instance.SendHandoffEmails(context.Background(), i.emailContext(recCopy))
			logger.
				WithField("summary", fmt.Sprintf("%+v", summary)).
				Info("рассылка по передаче оценки в HR завершена")
		}()
	}
	return appraisalapimodels.AppraisalConvert(*updated), nil
}

// FinalReview — терминальный этап, рассылок не делает.
func (i impl) FinalReview(id string, callerRole models.UserRole, data appraisalapimodels.FinalReviewData) (view appraisalapimodels.AppraisalView, err error) {
	if !callerRole.IsHrAdmin() {
		return view, apperror.Forbidden("operation not permitted")
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return view, apperror.Dependency(err, "failed to get appraisal")
	}
	if rec == nil {
		return view, apperror.NotFound("appraisal not found")
	}

	now := time.Now()
	payload := dbmodels.FinalReviewPayload{
		Decision:       data.Decision,
		Recommendation: data.Recommendation,
		Signature:      data.Signature,
		DecidedAt:      &now,
	}
	updMap := map[string]interface{}{
		"final_review": payload,
		"status":       models.AppraisalStatusCompleted,
		"updated_at":   now,
	}
	if err = i.store.Update(id, updMap); err != nil {
		return view, apperror.Dependency(err, "failed to save final review")
	}
	updated, err := i.store.GetByID(id)
	if err != nil || updated == nil {
		return view, apperror.Dependency(err, "failed to reload appraisal")
	}
	return appraisalapimodels.AppraisalConvert(*updated), nil
}

func (i impl) GetByID(id string) (view appraisalapimodels.AppraisalView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return view, apperror.Dependency(err, "failed to get appraisal")
	}
	if rec == nil {
		return view, apperror.NotFound("appraisal not found")
	}
	return appraisalapimodels.AppraisalConvert(*rec), nil
}

func (i impl) List(filter appraisalapimodels.AppraisalFilter) (list []appraisalapimodels.AppraisalView, rowCount int64, err error) {
	recList, err := i.store.List(filter)
	if err != nil {
		return nil, 0, apperror.Dependency(err, "failed to list appraisals")
	}
	rowCount, err = i.store.ListCount(filter)
	if err != nil {
		return nil, 0, apperror.Dependency(err, "failed to count appraisals")
	}
	list = make([]appraisalapimodels.AppraisalView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, appraisalapimodels.AppraisalConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) Export(filter appraisalapimodels.AppraisalFilter) (*bytes.Buffer, error) {
	filter.Page = 1
	filter.Limit = 100
	recList, err := i.store.List(filter)
	if err != nil {
		return nil, apperror.Dependency(err, "failed to list appraisals")
	}
	buf, err := xlsexport.Instance.ExportAppraisalList(recList)
	if err != nil {
		return nil, apperror.Dependency(err, "failed to build export file")
	}
	return buf, nil
}

func (i impl) emailContext(rec dbmodels.AppraisalInstance) notification.WorkflowEmailContext {
	wctx := notification.WorkflowEmailContext{
		HrEmail:       config.Conf.Notification.HrEmail,
		Status:        rec.Status,
		AppraisalLink: fmt.Sprintf("%s/appraisals/%s", strings.TrimRight(config.Conf.Notification.AppraisalLinkBase, "/"), rec.ID),
	}
	if rec.Employee != nil {
		wctx.EmployeeEmail = rec.Employee.Email
		wctx.EmployeeName = rec.Employee.GetFullName()
		if rec.Employee.Manager != nil {
			wctx.ManagerEmail = rec.Employee.Manager.Email
			wctx.ManagerName = rec.Employee.Manager.GetFullName()
		}
	}
	if rec.Cycle != nil {
		wctx.CycleName = rec.Cycle.Name
	}
	if rec.Template != nil {
		wctx.TemplateName = rec.Template.Name
	}
	return wctx
}

func (i impl) getLogger(employeeID, appraisalID string) *log.Entry {
	logger := log.NewEntry(log.StandardLogger())
	if employeeID != "" {
		logger = logger.WithField("employee_id", employeeID)
	}
	if appraisalID != "" {
		logger = logger.WithField("appraisal_id", appraisalID)
	}
	return logger
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "(SQLSTATE 23505)")
}

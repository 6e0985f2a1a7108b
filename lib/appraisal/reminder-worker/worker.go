package reminderworker

import (
	"context"
	"fmt"
	"time"

	"appraisal-backend/config"
	"appraisal-backend/db"
	appraisalstore "appraisal-backend/lib/appraisal/store"
	cyclestore "appraisal-backend/lib/dicts/cycle/store"
	messagetemplate "appraisal-backend/lib/message-template"
	"appraisal-backend/lib/notification"
	baseworker "appraisal-backend/lib/utils/base-worker"
	"appraisal-backend/lib/utils/helpers"
	"appraisal-backend/models"
	notificationapimodels "appraisal-backend/models/api/notification"
	dbmodels "appraisal-backend/models/db"
)

func StartWorker(ctx context.Context) {
	i := &impl{
		BaseImpl:   *baseworker.NewInstance("DraftReminderWorker", 30*time.Second, 24*time.Hour),
		store:      appraisalstore.NewInstance(db.DB),
		cycleStore: cyclestore.NewInstance(db.DB),
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	store      appraisalstore.Provider
	cycleStore cyclestore.Provider
}

// handle напоминает сотрудникам о черновиках текущего активного цикла,
// не менявшихся дольше заданного числа дней.
func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	activeCycle, err := i.cycleStore.GetActive()
	if err != nil {
		logger.WithError(err).Error("Ошибка получения активного цикла")
		return
	}
	if activeCycle == nil {
		logger.Info("Активный цикл не найден, напоминания пропущены")
		return
	}
	days := config.Conf.Notification.DraftReminderDays
	list, err := i.store.ListDraftsOlderThan(days)
	if err != nil {
		logger.WithError(err).Error("Ошибка получения списка устаревших черновиков")
		return
	}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		if rec.CycleID != activeCycle.ID {
			continue
		}
		if rec.Employee == nil || rec.Employee.Email == "" {
			continue
		}
		data := models.ReminderTemplateData{
			EmployeeName: rec.Employee.GetFullName(),
			CycleName:    cycleName(rec.Cycle),
			DraftAge:     fmt.Sprintf("%d days", days),
		}
		body, err := messagetemplate.BuildDraftReminderMsg(data)
		if err != nil {
			logger.WithError(err).Error("Ошибка формирования письма-напоминания")
			continue
		}
		msg := notificationapimodels.NotificationMessage{
			Recipient: rec.Employee.Email,
			Subject:   messagetemplate.GetDraftReminderTitle(),
			HtmlBody:  body,
		}
		result, err := notification.Instance.Send(ctx, msg)
		if err != nil {
			logger.
				WithError(err).
				WithField("appraisal_id", rec.ID).
				Error("Ошибка отправки письма-напоминания")
			continue
		}
		logger.
			WithField("appraisal_id", rec.ID).
			WithField("attempts", result.AttemptsUsed).
			Info("Напоминание о черновике отправлено")
	}
}

func cycleName(cycle *dbmodels.AppraisalCycle) string {
	if cycle == nil {
		return ""
	}
	return cycle.Name
}

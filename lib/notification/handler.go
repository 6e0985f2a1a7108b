package notification

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"appraisal-backend/config"
	mailgatewayclient "appraisal-backend/lib/mail-gateway/client"
	messagetemplate "appraisal-backend/lib/message-template"
	"appraisal-backend/lib/smtp"
	"appraisal-backend/models"
	notificationapimodels "appraisal-backend/models/api/notification"
)

const (
	maxAttempts    = 3
	initialBackoff = time.Second
)

// Transport — канал доставки одного письма. Основной — http шлюз,
// при его отсутствии в конфиге письма уходят через smtp.
type Transport interface {
	Deliver(ctx context.Context, msg notificationapimodels.NotificationMessage) error
}

type Provider interface {
	Send(ctx context.Context, msg notificationapimodels.NotificationMessage) (notificationapimodels.SendResult, error)
	SendWorkflowEmails(ctx context.Context, wctx WorkflowEmailContext) notificationapimodels.Summary
	SendHandoffEmails(ctx context.Context, wctx WorkflowEmailContext) notificationapimodels.Summary
}

// WorkflowEmailContext — адресаты и данные писем одного перехода.
type WorkflowEmailContext struct {
	EmployeeEmail string
	EmployeeName  string
	ManagerEmail  string
	ManagerName   string
	HrEmail       string
	CycleName     string
	TemplateName  string
	Status        models.AppraisalStatus
	AppraisalLink string
}

var Instance Provider

func NewHandler() {
	var transport Transport
	if config.Conf.MailGateway.Endpoint != "" {
		transport = gatewayTransport{}
	} else {
		transport = smtpTransport{from: config.Conf.MailGateway.Sender}
	}
	Instance = impl{transport: transport}
}

// NewHandlerWithTransport - для тестов и нестандартных каналов.
func NewHandlerWithTransport(transport Transport) Provider {
	return impl{transport: transport}
}

type impl struct {
	transport Transport
}

// Send делает до трёх попыток доставки. Задержка между попытками
// начинается с секунды и удваивается, состояние задержки живёт только
// внутри вызова. После последней попытки наружу уходит её ошибка.
func (i impl) Send(ctx context.Context, msg notificationapimodels.NotificationMessage) (notificationapimodels.SendResult, error) {
	logger := log.
		WithField("recipient", msg.Recipient).
		WithField("subject", msg.Subject)

	result := notificationapimodels.SendResult{
		Recipient: msg.Recipient,
		Subject:   msg.Subject,
	}
	if err := msg.Validate(); err != nil {
		result.Timestamp = time.Now()
		return result, err
	}

	backoff := initialBackoff
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := i.transport.Deliver(ctx, msg)
		result.AttemptsUsed = attempt
		if err == nil {
			result.Success = true
			result.Timestamp = time.Now()
			logger.WithField("attempts_used", attempt).Info("письмо доставлено")
			return result, nil
		}
		lastErr = err
		logger.
			WithError(err).
			WithField("attempt", attempt).
			Warn("попытка доставки не удалась")
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			result.Timestamp = time.Now()
			return result, errors.Wrap(ctx.Err(), "delivery cancelled")
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	result.Timestamp = time.Now()
	return result, errors.Wrapf(lastErr, "delivery failed after %d attempts", maxAttempts)
}

// SendWorkflowEmails — фиксированный пакет писем при попадании оценки
// в цепочку согласования: подтверждение сотруднику, уведомление
// руководителю, уведомление HR. Сбой одного письма не валит пакет.
func (i impl) SendWorkflowEmails(ctx context.Context, wctx WorkflowEmailContext) notificationapimodels.Summary {
	data := wctx.templateData()
	batch := []plannedMessage{
		{
			recipient: wctx.EmployeeEmail,
			subject:   messagetemplate.GetEmployeeConfirmationTitle(),
			build:     func() (string, error) { return messagetemplate.BuildEmployeeConfirmationMsg(data) },
		},
		{
			recipient: wctx.ManagerEmail,
			subject:   messagetemplate.GetManagerNoticeTitle(),
			build:     func() (string, error) { return messagetemplate.BuildManagerNoticeMsg(data) },
		},
		{
			recipient: wctx.HrEmail,
			subject:   messagetemplate.GetHrNoticeTitle(),
			build:     func() (string, error) { return messagetemplate.BuildHrNoticeMsg(data) },
		},
	}
	return i.sendBatch(ctx, batch)
}

// SendHandoffEmails — ровно два письма при передаче оценки в HR:
// уведомление HR и подтверждение руководителю дивизиона.
func (i impl) SendHandoffEmails(ctx context.Context, wctx WorkflowEmailContext) notificationapimodels.Summary {
	data := wctx.templateData()
	batch := []plannedMessage{
		{
			recipient: wctx.HrEmail,
			subject:   messagetemplate.GetHrNoticeTitle(),
			build:     func() (string, error) { return messagetemplate.BuildHrNoticeMsg(data) },
		},
		{
			recipient: wctx.ManagerEmail,
			subject:   messagetemplate.GetDivisionalConfirmationTitle(),
			build:     func() (string, error) { return messagetemplate.BuildDivisionalConfirmationMsg(data) },
		},
	}
	return i.sendBatch(ctx, batch)
}

type plannedMessage struct {
	recipient string
	subject   string
	build     func() (string, error)
}

func (i impl) sendBatch(ctx context.Context, batch []plannedMessage) notificationapimodels.Summary {
	summary := notificationapimodels.Summary{Total: len(batch)}
	for _, planned := range batch {
		logger := log.
			WithField("recipient", planned.recipient).
			WithField("subject", planned.subject)
		body, err := planned.build()
		if err != nil {
			summary.Failed++
			logger.WithError(err).Error("ошибка сборки письма")
			continue
		}
		msg := notificationapimodels.NotificationMessage{
			Recipient: planned.recipient,
			Subject:   planned.subject,
			HtmlBody:  body,
		}
		if _, err = i.Send(ctx, msg); err != nil {
			summary.Failed++
			logger.WithError(err).Error("письмо не доставлено")
			continue
		}
		summary.Successful++
	}
	return summary
}

func (w WorkflowEmailContext) templateData() models.WorkflowEmailTemplateData {
	return models.WorkflowEmailTemplateData{
		EmployeeName:  w.EmployeeName,
		ManagerName:   w.ManagerName,
		CycleName:     w.CycleName,
		TemplateName:  w.TemplateName,
		Status:        string(w.Status),
		AppraisalLink: w.AppraisalLink,
	}
}

type gatewayTransport struct{}

func (gatewayTransport) Deliver(ctx context.Context, msg notificationapimodels.NotificationMessage) error {
	return mailgatewayclient.Instance.SendMail(ctx, msg)
}

type smtpTransport struct {
	from string
}

func (t smtpTransport) Deliver(ctx context.Context, msg notificationapimodels.NotificationMessage) error {
	return smtp.Instance.SendEMail(t.from, msg.Recipient, msg.Cc, msg.Bcc, msg.HtmlBody, msg.Subject)
}

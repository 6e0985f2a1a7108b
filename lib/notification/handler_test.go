package notification

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"appraisal-backend/models"
	notificationapimodels "appraisal-backend/models/api/notification"
)

// fakeTransport падает первые failFirst попыток, дальше доставляет.
type fakeTransport struct {
	failFirst int
	attempts  int
	delivered []notificationapimodels.NotificationMessage
}

func (t *fakeTransport) Deliver(_ context.Context, msg notificationapimodels.NotificationMessage) error {
	t.attempts++
	if t.attempts <= t.failFirst {
		return errors.New("gateway unavailable")
	}
	t.delivered = append(t.delivered, msg)
	return nil
}

func validMessage() notificationapimodels.NotificationMessage {
	return notificationapimodels.NotificationMessage{
		Recipient: "employee@example.com",
		Subject:   "Your appraisal has been submitted",
		HtmlBody:  "<html><body>ok</body></html>",
	}
}

func TestSend(t *testing.T) {
	t.Run("успех с первой попытки", func(t *testing.T) {
		transport := &fakeTransport{}
		handler := NewHandlerWithTransport(transport)

		result, err := handler.Send(context.Background(), validMessage())
		require.NoError(t, err)
		require.True(t, result.Success)
		require.Equal(t, 1, result.AttemptsUsed)
		require.Len(t, transport.delivered, 1)
	})

	t.Run("успех со второй попытки", func(t *testing.T) {
		transport := &fakeTransport{failFirst: 1}
		handler := NewHandlerWithTransport(transport)

		result, err := handler.Send(context.Background(), validMessage())
		require.NoError(t, err)
		require.True(t, result.Success)
		require.Equal(t, 2, result.AttemptsUsed)
	})

	t.Run("ошибка после трёх попыток", func(t *testing.T) {
		transport := &fakeTransport{failFirst: 100}
		handler := NewHandlerWithTransport(transport)

		result, err := handler.Send(context.Background(), validMessage())
		require.Error(t, err)
		require.Contains(t, err.Error(), "delivery failed after 3 attempts")
		require.False(t, result.Success)
		require.Equal(t, 3, result.AttemptsUsed)
		require.Equal(t, 3, transport.attempts)
	})

	t.Run("невалидное сообщение не доходит до транспорта", func(t *testing.T) {
		transport := &fakeTransport{}
		handler := NewHandlerWithTransport(transport)

		msg := validMessage()
		msg.Recipient = ""
		_, err := handler.Send(context.Background(), msg)
		require.Error(t, err)
		require.Equal(t, 0, transport.attempts)
	})

	t.Run("отмена контекста прерывает повторы", func(t *testing.T) {
		transport := &fakeTransport{failFirst: 100}
		handler := NewHandlerWithTransport(transport)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := handler.Send(ctx, validMessage())
		require.Error(t, err)
		require.Contains(t, err.Error(), "delivery cancelled")
		require.Equal(t, 1, transport.attempts)
	})
}

func TestSendBatch(t *testing.T) {
	t.Run("сбой одного письма не валит пакет", func(t *testing.T) {
		transport := &recipientFailTransport{failFor: "hr@example.com"}
		handler := impl{transport: transport}

		batch := []plannedMessage{
			{
				recipient: "employee@example.com",
				subject:   "subject one",
				build:     func() (string, error) { return "<html>one</html>", nil },
			},
			{
				recipient: "hr@example.com",
				subject:   "subject two",
				build:     func() (string, error) { return "<html>two</html>", nil },
			},
		}
		summary := handler.sendBatch(context.Background(), batch)
		require.Equal(t, 2, summary.Total)
		require.Equal(t, 1, summary.Successful)
		require.Equal(t, 1, summary.Failed)
	})

	t.Run("ошибка сборки письма учитывается как сбой", func(t *testing.T) {
		transport := &fakeTransport{}
		handler := impl{transport: transport}

		batch := []plannedMessage{
			{
				recipient: "employee@example.com",
				subject:   "subject",
				build:     func() (string, error) { return "", errors.New("template missing") },
			},
		}
		summary := handler.sendBatch(context.Background(), batch)
		require.Equal(t, 1, summary.Total)
		require.Equal(t, 0, summary.Successful)
		require.Equal(t, 1, summary.Failed)
		require.Equal(t, 0, transport.attempts)
	})
}

func TestSendHandoffEmails(t *testing.T) {
	setupTemplateDir(t)

	t.Run("уходит ровно два письма, HR и руководителю дивизиона", func(t *testing.T) {
		transport := &countingTransport{}
		handler := impl{transport: transport}

		summary := handler.SendHandoffEmails(context.Background(), handoffContext())
		require.Equal(t, notificationapimodels.Summary{Total: 2, Successful: 2, Failed: 0}, summary)
		require.Equal(t, []string{"hr@example.com", "manager@example.com"}, transport.recipients)
	})

	t.Run("оба адресата получают попытку даже при полном отказе доставки", func(t *testing.T) {
		transport := &countingTransport{fail: true}
		handler := impl{transport: transport}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		summary := handler.SendHandoffEmails(ctx, handoffContext())
		require.Equal(t, notificationapimodels.Summary{Total: 2, Successful: 0, Failed: 2}, summary)
		require.Equal(t, []string{"hr@example.com", "manager@example.com"}, transport.recipients)
	})
}

func TestSendWorkflowEmails(t *testing.T) {
	setupTemplateDir(t)

	transport := &countingTransport{}
	handler := impl{transport: transport}

	summary := handler.SendWorkflowEmails(context.Background(), handoffContext())
	require.Equal(t, notificationapimodels.Summary{Total: 3, Successful: 3, Failed: 0}, summary)
	require.Equal(t, []string{"employee@example.com", "manager@example.com", "hr@example.com"}, transport.recipients)
}

// setupTemplateDir подкладывает файлы шаблонов в рабочий каталог теста.
func setupTemplateDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "static"), 0o755))
	files := []string{"employee_confirmation.html", "manager_notice.html", "hr_notice.html", "divisional_confirmation.html"}
	for _, name := range files {
		err := os.WriteFile(filepath.Join(dir, "static", name), []byte("<p>{{.EmployeeName}}: {{.Status}}</p>"), 0o644)
		require.NoError(t, err)
	}
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })
}

func handoffContext() WorkflowEmailContext {
	return WorkflowEmailContext{
		EmployeeEmail: "employee@example.com",
		EmployeeName:  "Иванов Иван",
		ManagerEmail:  "manager@example.com",
		ManagerName:   "Петров Пётр",
		HrEmail:       "hr@example.com",
		CycleName:     "Annual 2026",
		TemplateName:  "Annual",
		Status:        models.AppraisalStatusAwaitingHr,
	}
}

// countingTransport записывает адресатов всех попыток доставки.
type countingTransport struct {
	fail       bool
	recipients []string
}

func (t *countingTransport) Deliver(_ context.Context, msg notificationapimodels.NotificationMessage) error {
	t.recipients = append(t.recipients, msg.Recipient)
	if t.fail {
		return errors.New("gateway unavailable")
	}
	return nil
}

// recipientFailTransport всегда падает для одного адресата.
type recipientFailTransport struct {
	failFor string
}

func (t *recipientFailTransport) Deliver(_ context.Context, msg notificationapimodels.NotificationMessage) error {
	if msg.Recipient == t.failFor {
		return errors.New("mailbox rejected")
	}
	return nil
}

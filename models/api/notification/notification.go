package notificationapimodels

import (
	"time"

	"appraisal-backend/lib/utils/apperror"
)

// NotificationMessage — конверт письма для шлюза.
type NotificationMessage struct {
	Recipient string   `json:"recipient"`
	Cc        []string `json:"cc,omitempty"`
	Bcc       []string `json:"bcc,omitempty"`
	Subject   string   `json:"subject"`
	HtmlBody  string   `json:"htmlBody"`
}

func (r NotificationMessage) Validate() error {
	if r.Recipient == "" {
		return apperror.Validation("recipient is required")
	}
	if r.Subject == "" {
		return apperror.Validation("subject is required")
	}
	return nil
}

// SendResult — итог одной доставки (сколько попыток ушло).
type SendResult struct {
	Success      bool      `json:"success"`
	Recipient    string    `json:"recipient"`
	Subject      string    `json:"subject"`
	Timestamp    time.Time `json:"timestamp"`
	AttemptsUsed int       `json:"attempts_used"`
}

// Summary — агрегат по пакету писем, частичные сбои не валят пакет.
type Summary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

type TestEmailData struct {
	Recipient string `json:"recipient"`
}

func (r TestEmailData) Validate() error {
	if r.Recipient == "" {
		return apperror.Validation("recipient is required")
	}
	return nil
}

package smtp

import (
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	SendEMail(from, to string, cc, bcc []string, htmlBody, subject string) error
}

func Connect(user, password, host, port string, tlsEnabled bool) error {
	Instance = &impl{
		user:       user,
		password:   password,
		host:       host,
		port:       port,
		tlsEnabled: tlsEnabled,
	}
	return nil
}

type impl struct {
	user       string
	password   string
	host       string
	port       string
	tlsEnabled bool
}

func (i impl) SendEMail(from, to string, cc, bcc []string, htmlBody, subject string) (err error) {
	logger := log.WithField("recipient", to)
	if i.user == "" || i.host == "" || i.port == "" {
		logger.Warn("письмо не отправлено, тк не настроен smtp клиент")
		return nil
	}
	sendTo := append([]string{to}, cc...)
	sendTo = append(sendTo, bcc...)
	body := strings.NewReader(composeMessage(from, to, cc, htmlBody, subject))

	auth := sasl.NewPlainClient("", i.user, i.password)
	if i.tlsEnabled {
		err = smtp.SendMailTLS(i.host+":"+i.port, auth, i.user, sendTo, body)
	} else {
		err = smtp.SendMail(i.host+":"+i.port, auth, i.user, sendTo, body)
	}
	if err != nil {
		logger.WithError(err).Error("ошибка отправки сообщения")
		return err
	}
	logger.Info("письмо отправлено")
	return nil
}

// composeMessage собирает сырое письмо. Скрытые копии в заголовки
// не попадают, они передаются только в конверте.
func composeMessage(from, to string, cc []string, htmlBody, subject string) string {
	headers := fmt.Sprintf("Subject: %s\nFrom: %s\nTo: %s\n", subject, from, to)
	if len(cc) > 0 {
		headers += fmt.Sprintf("Cc: %s\n", strings.Join(cc, ", "))
	}
	headers += "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\r\n"
	return fmt.Sprintf("%s\r\n%s\r\n", headers, htmlBody)
}

package mailgatewayclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	notificationapimodels "appraisal-backend/models/api/notification"
)

// Provider — клиент внешнего почтового шлюза.
// Токен выдаёт отдельный внешний сервис, кэшируем до истечения.
type Provider interface {
	SendMail(ctx context.Context, msg notificationapimodels.NotificationMessage) error
}

var Instance Provider

func NewProvider(endpoint, tokenEndpoint, clientID, clientSecret, sender string) {
	Instance = &impl{
		endpoint:      endpoint,
		tokenEndpoint: tokenEndpoint,
		clientID:      clientID,
		clientSecret:  clientSecret,
		sender:        sender,
	}
}

type impl struct {
	endpoint      string
	tokenEndpoint string
	clientID      string
	clientSecret  string
	sender        string

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Cc      []string `json:"cc,omitempty"`
	Bcc     []string `json:"bcc,omitempty"`
	Subject string   `json:"subject"`
	Html    string   `json:"html"`
}

type errorData struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

func (i *impl) SendMail(ctx context.Context, msg notificationapimodels.NotificationMessage) error {
	token, err := i.getToken(ctx)
	if err != nil {
		return err
	}
	body := sendRequest{
		From:    i.sender,
		To:      []string{msg.Recipient},
		Cc:      msg.Cc,
		Bcc:     msg.Bcc,
		Subject: msg.Subject,
		Html:    msg.HtmlBody,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "ошибка сериализации конверта письма")
	}

	r, _ := http.NewRequestWithContext(ctx, "POST", i.endpoint, bytes.NewReader(payload))
	r.Header.Add("Content-Type", "application/json")
	r.Header.Add("X-Message-Id", uuid.NewString())

	logger := log.
		WithField("external_request", i.endpoint).
		WithField("recipient", msg.Recipient)

	err = i.sendRequest(logger, r, nil, token)
	if err != nil {
		// токен мог протухнуть между запросами, сбрасываем кэш
		i.invalidateToken()
		return err
	}
	return nil
}

func (i *impl) getToken(ctx context.Context) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.accessToken != "" && time.Now().Before(i.expiresAt) {
		return i.accessToken, nil
	}

	data := url.Values{}
	data.Set("client_id", i.clientID)
	data.Set("client_secret", i.clientSecret)
	data.Set("grant_type", "client_credentials")

	r, _ := http.NewRequestWithContext(ctx, "POST", i.tokenEndpoint, strings.NewReader(data.Encode()))
	r.Header.Add("Content-Type", "application/x-www-form-urlencoded")
	resp := tokenResponse{}

	logger := log.WithField("external_request", i.tokenEndpoint)

	err := i.sendRequest(logger, r, &resp, "")
	if err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", errors.New("почтовый шлюз вернул пустой токен")
	}
	i.accessToken = resp.AccessToken
	// обновляем чуть раньше фактического истечения
	i.expiresAt = time.Now().Add(time.Duration(resp.ExpiresIn-30) * time.Second)
	return i.accessToken, nil
}

func (i *impl) invalidateToken() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.accessToken = ""
}

func (i *impl) sendRequest(logger *log.Entry, r *http.Request, resp interface{}, accessToken string) error {
	r.Header.Add("User-Agent", "AppraisalBackend/1.0")
	if accessToken != "" {
		r.Header.Add("Authorization", fmt.Sprintf("Bearer %v", accessToken))
	}
	client := &http.Client{Timeout: 15 * time.Second}
	response, err := client.Do(r)
	if err != nil {
		logger.WithError(err).Error("ошибка отправки запроса в почтовый шлюз")
		return errors.Wrap(err, "mail gateway request failed")
	}
	defer response.Body.Close()
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		if resp != nil {
			responseBody, _ := io.ReadAll(response.Body)
			err = json.Unmarshal(responseBody, resp)
			if err != nil {
				return errors.Wrap(err, "ошибка сериализации ответа")
			}
		}
		return nil
	}

	errorResp := errorData{}
	responseBody, _ := io.ReadAll(response.Body)
	logger = logger.WithField("response_body", string(responseBody))
	if unmErr := json.Unmarshal(responseBody, &errorResp); unmErr != nil {
		logger.WithError(unmErr).Error("ошибка сериализации ответа")
	}
	logger.
		WithField("status_code", response.StatusCode).
		Error("ошибка отправки запроса в почтовый шлюз")
	if errorResp.Error != "" {
		return errors.Errorf("mail gateway responded %v: %v", response.StatusCode, errorResp.Error)
	}
	return errors.Errorf("mail gateway responded %v", response.StatusCode)
}

package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"appraisals" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		// секреты без неявных значений по умолчанию
		JWTSecret string `default:"" env:"AUTH_JWT_SECRET"`
	}
	MailGateway struct {
		Endpoint      string `default:"" env:"MAIL_GATEWAY_ENDPOINT"`
		TokenEndpoint string `default:"" env:"MAIL_GATEWAY_TOKEN_ENDPOINT"`
		ClientID      string `default:"" env:"MAIL_GATEWAY_CLIENT_ID"`
		ClientSecret  string `default:"" env:"MAIL_GATEWAY_CLIENT_SECRET"`
		Sender        string `default:"" env:"MAIL_GATEWAY_SENDER"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	Notification struct {
		HrEmail           string `default:"" env:"NOTIFICATION_HR_EMAIL"`
		AppraisalLinkBase string `default:"http://localhost:8000" env:"NOTIFICATION_APPRAISAL_LINK_BASE"`
		DraftReminderDays int    `default:"14" env:"NOTIFICATION_DRAFT_REMINDER_DAYS"`
	}
	S3 struct {
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		BucketName      string `default:"appraisal-attachments" env:"S3_BUCKET_NAME"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
	}
	YandexGPT struct {
		IAMToken  string `default:"" env:"YANDEX_GPT_IAM_TOKEN"`
		CatalogID string `default:"" env:"YANDEX_GPT_CATALOG_ID"`
	}
	ErrNotify struct {
		Addr string `default:"" env:"ERR_NOTIFY_ADDR"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}

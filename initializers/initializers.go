package initializers

import (
	"context"

	"appraisal-backend/config"
	"appraisal-backend/fiberlog"
	appraisalhandler "appraisal-backend/lib/appraisal"
	attachmenthandler "appraisal-backend/lib/appraisal/attachment"
	"appraisal-backend/lib/appraisal/cascade"
	competencyassign "appraisal-backend/lib/appraisal/competency-assign"
	reminderworker "appraisal-backend/lib/appraisal/reminder-worker"
	competencyprovider "appraisal-backend/lib/dicts/competency"
	xlsexport "appraisal-backend/lib/export/xls"
	gpthandler "appraisal-backend/lib/gpt"
	mailgatewayclient "appraisal-backend/lib/mail-gateway/client"
	"appraisal-backend/lib/notification"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	mailgatewayclient.NewProvider(config.Conf.MailGateway.Endpoint, config.Conf.MailGateway.TokenEndpoint,
		config.Conf.MailGateway.ClientID, config.Conf.MailGateway.ClientSecret, config.Conf.MailGateway.Sender)
	notification.NewHandler()
	competencyprovider.NewHandler()
	appraisalhandler.NewHandler()
	competencyassign.NewHandler()
	cascade.NewHandler()
	attachmenthandler.NewHandler()
	gpthandler.NewHandler()
	xlsexport.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Задача напоминания о залежавшихся черновиках
	reminderworker.StartWorker(ctx)
}

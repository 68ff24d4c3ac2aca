package initializers

import (
	"context"

	"itou-backend/config"
	"itou-backend/db"
	"itou-backend/fiberlog"
	agencyclient "itou-backend/lib/agency/client"
	agencyworker "itou-backend/lib/agency/worker"
	approvalhandler "itou-backend/lib/approval"
	eligibilityhandler "itou-backend/lib/eligibility"
	evaluationhandler "itou-backend/lib/evaluation"
	xlsexport "itou-backend/lib/export/xls"
	filestorage "itou-backend/lib/file-storage"
	gpshandler "itou-backend/lib/gps"
	jobapplicationhandler "itou-backend/lib/jobapplication"
	notificationhandler "itou-backend/lib/notification"
	notificationworker "itou-backend/lib/notification/worker"
	"itou-backend/lib/smtp"
	initchecker "itou-backend/lib/utils/init-checker"
	s3client "itou-backend/s3"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	agencyclient.NewProvider(config.Conf.Agency.APIBaseURL, config.Conf.Agency.APIToken)
	filestorage.NewHandler()
	xlsexport.NewHandler()
	notificationhandler.NewHandler()
	gpshandler.NewHandler()
	eligibilityhandler.NewHandler()
	approvalhandler.NewHandler()
	jobapplicationhandler.NewHandler()
	evaluationhandler.NewHandler()
	initchecker.CheckInit(
		"db", db.DB,
		"smtp", smtp.Instance,
		"s3", s3client.Instance,
		"notifications", notificationhandler.Instance,
		"candidatures", jobapplicationhandler.Instance,
	)
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// envoi des emails en attente dans l'outbox
	notificationworker.StartWorker(ctx)

	// notification des embauches à Pôle emploi
	agencyworker.StartWorker(ctx)
}

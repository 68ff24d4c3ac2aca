package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
		BaseURL    string `default:"http://localhost:8080" env:"APP_BASE_URL"`
		StaffEmail string `default:"" env:"APP_STAFF_EMAIL"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"itou" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret   string `default:"" env:"AUTH_JWT_SECRET"`
		TokenTTLMin int    `default:"720" env:"AUTH_TOKEN_TTL_MIN"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		From       string `default:"noreply@inclusion.gouv.fr" env:"SMTP_FROM"`
	}
	S3 struct {
		Endpoint    string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKey   string `default:"" env:"S3_ACCESS_KEY"`
		SecretKey   string `default:"" env:"S3_SECRET_KEY"`
		UseSSL      *bool  `default:"false" env:"S3_USE_SSL"`
		ProofBucket string `default:"evaluation-proofs" env:"S3_PROOF_BUCKET"`
	}
	Agency struct {
		Enabled       *bool  `default:"false" env:"AGENCY_ENABLED"`
		APIBaseURL    string `default:"" env:"AGENCY_API_BASE_URL"`
		APIToken      string `default:"" env:"AGENCY_API_TOKEN"`
		SendPeriodMin int    `default:"1" env:"AGENCY_SEND_PERIOD_MIN"`
	}
	Outbox struct {
		SendPeriodMin int `default:"1" env:"OUTBOX_SEND_PERIOD_MIN"`
		MaxAttempts   int `default:"5" env:"OUTBOX_MAX_ATTEMPTS"`
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

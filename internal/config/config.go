package config

import (
	"os"
	"strings"
	"time"

	"huddle-backend/internal/pkg/constants"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	SessionSecret       string
	DatabaseURL         string
	RedisURL            string
	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
	HealthAdminKey      string
	AppOrigin           string // origin used to build invite links, e.g. https://app.huddle.team
	BrevoAPIKey         string // BREVO_API_KEY; empty means mail is logged instead of sent
	MailFrom            string
	MailFromName        string
	LogLevel            string
	LogFile             string // optional rotating log file in addition to stdout

	InvitationLifespan  time.Duration
	InviteCreationGrace time.Duration
	UntrustedDomains    []string
	AnalyticsMode       string // "sync" writes analytics rows inline, "queue" enqueues them to asynq
	WorkerConcurrency   int
}

const (
	AnalyticsModeSync  = "sync"
	AnalyticsModeQueue = "queue"
)

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("APP_ORIGIN", "https://app.huddle.team")
	viper.SetDefault("MAIL_FROM", "noreply@huddle.team")
	viper.SetDefault("MAIL_FROM_NAME", "Huddle")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("INVITATION_LIFESPAN", constants.DefaultInvitationLifespan)
	viper.SetDefault("INVITE_CREATION_GRACE", constants.DefaultInviteCreationGrace)
	viper.SetDefault("ANALYTICS_MODE", AnalyticsModeSync)
	viper.SetDefault("WORKER_CONCURRENCY", 5)

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = viper.GetString("NODE_ENV")
	}
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL_DEV")
	if env == "production" {
		dbURL = viper.GetString("DATABASE_URL_PROD")
	} else if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}

	mode := strings.ToLower(strings.TrimSpace(viper.GetString("ANALYTICS_MODE")))
	if mode != AnalyticsModeQueue {
		mode = AnalyticsModeSync
	}

	return &Config{
		Env:                 env,
		Port:                viper.GetString("PORT"),
		SessionSecret:       viper.GetString("SESSION_SECRET"),
		DatabaseURL:         dbURL,
		RedisURL:            viper.GetString("REDIS_URL"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:   strings.EqualFold(viper.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
		HealthAdminKey:      viper.GetString("HEALTH_ADMIN_KEY"),
		AppOrigin:           strings.TrimRight(strings.TrimSpace(viper.GetString("APP_ORIGIN")), "/"),
		BrevoAPIKey:         viper.GetString("BREVO_API_KEY"),
		MailFrom:            viper.GetString("MAIL_FROM"),
		MailFromName:        viper.GetString("MAIL_FROM_NAME"),
		LogLevel:            viper.GetString("LOG_LEVEL"),
		LogFile:             viper.GetString("LOG_FILE"),
		InvitationLifespan:  viper.GetDuration("INVITATION_LIFESPAN"),
		InviteCreationGrace: viper.GetDuration("INVITE_CREATION_GRACE"),
		UntrustedDomains:    untrustedDomains(viper.GetString("INVITE_UNTRUSTED_DOMAINS")),
		AnalyticsMode:       mode,
		WorkerConcurrency:   viper.GetInt("WORKER_CONCURRENCY"),
	}, nil
}

func untrustedDomains(s string) []string {
	if strings.TrimSpace(s) == "" {
		return append([]string(nil), constants.DefaultUntrustedDomains...)
	}
	var out []string
	for _, d := range strings.Split(s, ",") {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}

package router

import (
	"context"
	"errors"

	"huddle-backend/internal/application/analytics"
	authsvc "huddle-backend/internal/application/auth"
	"huddle-backend/internal/application/emails"
	healthsvc "huddle-backend/internal/application/health"
	invsvc "huddle-backend/internal/application/invitations"
	"huddle-backend/internal/application/meetings"
	invitepolicies "huddle-backend/internal/application/policies/invitations"
	"huddle-backend/internal/application/suggestedactions"
	"huddle-backend/internal/config"
	"huddle-backend/internal/infrastructure/database"
	"huddle-backend/internal/infrastructure/pubsub"
	"huddle-backend/internal/infrastructure/queue"
	authhandler "huddle-backend/internal/interfaces/handlers/auth"
	healthhandler "huddle-backend/internal/interfaces/handlers/health"
	invhandler "huddle-backend/internal/interfaces/handlers/invitations"
	"huddle-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Deps are the long-lived handles the HTTP app is built from.
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Redis    redis.UniversalClient
	Mailer   emails.Mailer     // nil logs emails instead of sending them
	Tracker  analytics.Tracker // nil writes events to the database inline
	Registry *prometheus.Registry
}

// CreateApp connects to Postgres and Redis and builds the app from cfg.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, nil, errors.New("database url is not configured")
	}
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	rdb, err := database.OpenRedis(context.Background(), cfg.RedisURL)
	if err != nil {
		database.Close(db)
		return nil, nil, nil, err
	}

	var mailer emails.Mailer = emails.LogMailer{}
	if cfg.BrevoAPIKey != "" {
		mailer = emails.NewBrevoClient(cfg.BrevoAPIKey, cfg.MailFrom, cfg.MailFromName, "")
	} else {
		log.Warn().Msg("BREVO_API_KEY not set, invitation emails will only be logged")
	}

	var tracker analytics.Tracker = &analytics.StoreTracker{DB: db}
	if cfg.AnalyticsMode == config.AnalyticsModeQueue {
		// Shares rdb; it is closed together with the Redis client on shutdown.
		tracker = &analytics.QueueTracker{Client: queue.NewClient(rdb)}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app := NewApp(Deps{
		Config:   cfg,
		DB:       db,
		Redis:    rdb,
		Mailer:   mailer,
		Tracker:  tracker,
		Registry: reg,
	})
	return app, db, rdb, nil
}

// NewApp wires middleware, services and routes.
func NewApp(d Deps) *fiber.App {
	cfg := d.Config
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
		CookieDomain:      cookieDomain(cfg.FrontendURLEndsWith),
	}

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.Session(d.Redis, sessionCfg))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.RequestMetrics(reg))
	app.Use(middleware.TrafficStats(d.Redis))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	var probes []healthsvc.Probe
	if cfg.AppOrigin != "" {
		probes = append(probes, healthsvc.Probe{Name: "frontend", URL: cfg.AppOrigin})
	}
	hh := &healthhandler.Handlers{
		Collector:      &healthsvc.Collector{Redis: d.Redis, DB: &database.Pinger{DB: d.DB}, Probes: probes},
		Rdb:            d.Redis,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/health/json", hh.JSON)
	app.Get("/health/reset", hh.Reset)

	ah := &authhandler.Handlers{
		UserFinder: &authsvc.GormUserFinder{DB: d.DB},
		Rdb:        d.Redis,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)
	authGroup.Delete("/sessions", ah.LogoutAll)

	mailer := d.Mailer
	if mailer == nil {
		mailer = emails.LogMailer{}
	}
	tracker := d.Tracker
	if tracker == nil {
		tracker = &analytics.StoreTracker{DB: d.DB}
	}
	is := &invsvc.Service{
		DB:            d.DB,
		Trust:         &invitepolicies.TrustScorer{DB: d.DB, UntrustedDomains: cfg.UntrustedDomains},
		Approver:      &invitepolicies.OrgDomainApprover{DB: d.DB},
		Tokens:        &invsvc.TokenIssuer{},
		Mailer:        mailer,
		Tracker:       analytics.NewMetricsTracker(tracker, reg),
		Publisher:     &pubsub.RedisPublisher{Client: d.Redis},
		Meetings:      &meetings.Service{DB: d.DB},
		Actions:       &suggestedactions.Service{DB: d.DB},
		AppOrigin:     cfg.AppOrigin,
		Lifespan:      cfg.InvitationLifespan,
		CreationGrace: cfg.InviteCreationGrace,
	}
	ih := &invhandler.Handlers{Service: is}

	tg := app.Group("/api/v1/teams", middleware.RequireAuth())
	tg.Post("/:teamId/invitations", ih.InviteToTeam)
	tg.Get("/:teamId/invitations", middleware.RequireTeamMember(d.DB), ih.ListTeamInvitations)

	app.Post("/api/v1/invitations/public/check-token", ih.CheckToken)
	ig := app.Group("/api/v1/invitations", middleware.RequireAuth())
	ig.Post("/accept", ih.AcceptInvitation)

	return app
}

// cookieDomain turns FRONTEND_URL_ENDS_WITH (".huddle.team") into the shared cookie domain.
func cookieDomain(suffix string) string {
	if suffix == "" || suffix[0] != '.' {
		return ""
	}
	return suffix
}

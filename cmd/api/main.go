package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sivalingapandian/therapist-checkin/cmd/mainconfig"
	"github.com/sivalingapandian/therapist-checkin/internal/api/router"
	appconfig "github.com/sivalingapandian/therapist-checkin/internal/config"
	"github.com/sivalingapandian/therapist-checkin/internal/directory"
	"github.com/sivalingapandian/therapist-checkin/internal/notify"
	"github.com/sivalingapandian/therapist-checkin/internal/observability/metrics"
	"github.com/sivalingapandian/therapist-checkin/internal/scheduling"
	"github.com/sivalingapandian/therapist-checkin/pkg/logging"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting therapist-checkin API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	schedMetrics := metrics.NewSchedulingMetrics(prometheus.DefaultRegisterer)

	var (
		therapistRepo   directory.Repository
		appointmentRepo scheduling.Repository
		emailSender     notify.EmailSender
		smsSender       notify.SMSSender
	)

	if cfg.UseMemoryStore {
		logger.Warn("using in-memory stores; data will not survive restarts")
		therapistRepo = directory.NewInMemoryRepository()
		appointmentRepo = scheduling.NewInMemoryRepository()
		emailSender = notify.NewStubEmailSender(logger)
		smsSender = notify.NewStubSMSSender(logger)
	} else {
		awsCfg, err := mainconfig.LoadAWSConfig(context.Background(), cfg)
		if err != nil {
			logger.Error("failed to load AWS config", "error", err)
			os.Exit(1)
		}

		dynamoClient := dynamodb.NewFromConfig(awsCfg)
		therapistRepo = directory.NewDynamoStore(dynamoClient, cfg.TherapistsTable, logger)
		appointmentRepo = scheduling.NewDynamoStore(dynamoClient, cfg.AppointmentsTable, cfg.TherapistDateIndexName, logger)

		switch cfg.EmailProvider {
		case "sendgrid":
			sg := notify.NewSendGridSender(notify.SendGridConfig{
				APIKey:    cfg.SendGridAPIKey,
				FromEmail: cfg.SendGridFromEmail,
				FromName:  cfg.SendGridFromName,
			}, logger)
			if sg == nil {
				logger.Error("EMAIL_PROVIDER=sendgrid requires SENDGRID_API_KEY")
				os.Exit(1)
			}
			emailSender = sg
		case "stub":
			emailSender = notify.NewStubEmailSender(logger)
		default:
			emailSender = notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
				FromEmail: cfg.NotificationEmail,
				FromName:  cfg.NotificationFromName,
			}, logger)
		}

		smsSender = notify.NewSNSSender(sns.NewFromConfig(awsCfg), cfg.SMSSenderID, logger)
	}

	directorySvc := directory.NewService(therapistRepo, logger)
	dispatcher := notify.NewDispatcher(emailSender, smsSender, schedMetrics, logger)
	engine := scheduling.NewEngine(appointmentRepo, directorySvc, dispatcher, schedMetrics, logger)

	routerCfg := &router.Config{
		Logger:             logger,
		DirectoryHandler:   directory.NewHandler(directorySvc, logger),
		SchedulingHandler:  scheduling.NewHandler(engine, logger),
		APIToken:           cfg.APIToken,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

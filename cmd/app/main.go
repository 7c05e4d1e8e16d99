package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medshop/cmd"
	httpin "medshop/internal/adapters/in/http"
	"medshop/internal/adapters/in/pgnotify"
	"medshop/internal/adapters/out/amqp"
	"medshop/internal/adapters/out/postgres"
	"medshop/internal/jobs"
	"medshop/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs()

	db, err := postgres.Open(configs.DBSettings())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err = postgres.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	m, err := metrics.New(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, db, logger)

	jobManager, publisher := startJobs(app, configs, m, logger)
	e := newWebServer(app, configs, m, logger)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()
	logger.Info("Order desk started", "port", configs.HTTPPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}
	jobManager.StopAll()
	if publisher != nil {
		_ = publisher.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("Order desk stopped")
}

func getConfigs() cmd.Config {
	// A missing .env is fine: the process environment is used as is.
	_ = godotenv.Load(".env")

	config, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return config
}

// startJobs starts the escalation schedule and, when enabled, the care
// listener. The returned publisher is nil unless AMQP_URL is set.
func startJobs(app cmd.CompositionRoot, configs cmd.Config, m *metrics.Metrics, logger *slog.Logger) (*jobs.JobManager, *amqp.CarePublisher) {
	escalate, err := app.CreateEscalateOrdersCommandHandler()
	if err != nil {
		log.Fatalf("Failed to build escalation sweep: %v", err)
	}
	escalationJob := jobs.NewEscalationJob(escalate, configs.EscalationSchedule, m, logger)

	var (
		careListener jobs.BackgroundRunner
		publisher    *amqp.CarePublisher
	)
	if configs.CareListenerEnabled {
		var forwarder pgnotify.Forwarder
		if configs.AMQPURL != "" {
			publisher, err = amqp.Dial(configs.AMQPURL, configs.AMQPQueue)
			if err != nil {
				log.Fatalf("Failed to connect to RabbitMQ: %v", err)
			}
			forwarder = publisher
		}
		careListener = pgnotify.NewListener(configs.DBSettings().DSN(), postgres.CareEventsChannel, forwarder, m, logger)
	}

	jobManager := jobs.NewJobManager(escalationJob, careListener, logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	return jobManager, publisher
}

func newWebServer(app cmd.CompositionRoot, configs cmd.Config, m *metrics.Metrics, logger *slog.Logger) *echo.Echo {
	handlers, err := app.HTTPHandlers()
	if err != nil {
		log.Fatalf("Failed to build HTTP handlers: %v", err)
	}
	server := httpin.NewServer(handlers, configs.StoreRetryAttempts, m, logger)

	e, err := httpin.NewRouter(server, httpin.RouterConfig{
		RequestTimeout: configs.RequestTimeout,
		Metrics:        m,
		Gatherer:       prometheus.DefaultGatherer,
		Logger:         logger,
	})
	if err != nil {
		log.Fatalf("Failed to build HTTP router: %v", err)
	}
	return e
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/lead-intake/internal/config"
	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/infra/database"
	"github.com/xavierca1/lead-intake/internal/infra/http/handlers"
	mw "github.com/xavierca1/lead-intake/internal/infra/http/middleware"
	"github.com/xavierca1/lead-intake/internal/infra/logger"
	"github.com/xavierca1/lead-intake/internal/infra/mail"
	"github.com/xavierca1/lead-intake/internal/infra/metrics"
	"github.com/xavierca1/lead-intake/internal/infra/queue"
	"github.com/xavierca1/lead-intake/internal/infra/worker"
	"github.com/xavierca1/lead-intake/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting server", "addr", cfg.HTTPAddr, "driver", cfg.DatabaseDriver, "notifier", cfg.Notifier)

	// 1. Repository
	repo, db, err := openRepository(ctx, cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	// 2. Notifications
	var rabbitConn *amqp.Connection
	var notifier usecase.Notifier
	switch cfg.Notifier {
	case config.NotifierQueue:
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			return err
		}
		defer rabbitMQ.Close()
		rabbitConn = rabbitMQ.Conn

		// The worker owns the real delivery; the HTTP path only enqueues.
		consumer := queue.NewWorker(rabbitMQ.Ch, metrics.CountNotifications(deliverer(cfg)), log)
		go func() {
			if err := consumer.Start(ctx, queue.QueueName); err != nil {
				log.Error("notification worker stopped", "error", err)
			}
		}()
		notifier = queue.NewProducer(rabbitMQ.Ch)
	default:
		notifier = metrics.CountNotifications(deliverer(cfg))
	}

	if cfg.StatusReportInterval > 0 {
		go worker.NewLeadStatusWorker(repo, cfg.StatusReportInterval, log).Start(ctx)
	}

	// 3. UseCases
	timeouts := usecase.Timeouts{Store: cfg.StoreTimeout, Notify: cfg.NotifyTimeout}
	settings := usecase.NotificationSettings{Recipient: cfg.NotifyRecipient, Subject: cfg.NotifySubject}

	listUC := usecase.NewListLeadsUseCase(repo, timeouts, log)
	acceptUC := usecase.NewAcceptLeadUseCase(repo, notifier, settings, timeouts, log)
	declineUC := usecase.NewDeclineLeadUseCase(repo, timeouts, log)

	// 4. Handlers
	leadHandler := handlers.NewLeadHandler(listUC, acceptUC, declineUC, log)
	healthHandler := handlers.NewHealthHandler(db, rabbitConn)
	limiter := mw.NewRateLimiter(ctx, cfg.RateLimitPerMinute, time.Minute)

	// 5. Router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(mw.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	leadHandler.Routes(r, limiter.Handler)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openRepository(ctx context.Context, cfg *config.Config, log *slog.Logger) (entity.LeadRepositoryInterface, *sql.DB, error) {
	if cfg.DatabaseDriver == config.DriverMemory {
		log.Warn("using in-memory lead store; data is lost on restart")
		return database.NewMemoryLeadRepository(), nil, nil
	}

	dialect, err := database.DialectFor(cfg.DatabaseDriver)
	if err != nil {
		return nil, nil, err
	}

	db, err := database.NewDBConnection(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, db, dialect); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Info("database migrations complete")
	}

	return database.NewLeadRepository(db, dialect, log), db, nil
}

// deliverer is the notifier that actually hands the message off: SMTP when
// configured, otherwise the notification file.
func deliverer(cfg *config.Config) usecase.Notifier {
	if cfg.Notifier == config.NotifierSMTP || (cfg.Notifier == config.NotifierQueue && cfg.MailHost != "") {
		return mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
	}
	return mail.NewFileNotifier(cfg.NotifyFilePath)
}

package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"school-service/internal/auth"
	"school-service/internal/class"
	"school-service/internal/config"
	"school-service/internal/db"
	"school-service/internal/enrollment"
	"school-service/internal/events"
	"school-service/internal/health"
	"school-service/internal/kafka"
	"school-service/internal/logger"
	"school-service/internal/messaging"
	"school-service/internal/metrics"
	"school-service/internal/middleware"
	"school-service/internal/session"
	"school-service/internal/student"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

type App struct {
	config   *config.Config
	router   chi.Router
	server   *http.Server
	logger   *slog.Logger
	database *bun.DB
	producer events.Producer
}

func New() *App {
	slogLogger := logger.NewWithServiceContext(ServiceName, Version)

	// Set as default logger so slog.Info() uses the same handler
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env)

	app := &App{
		config: cfg,
		router: chi.NewRouter(),
		logger: slogLogger,
	}

	app.database = db.New(cfg.Database)

	ctx := context.Background()
	if err := db.RunMigrations(ctx, app.database,
		(*student.Student)(nil),
		(*class.Class)(nil),
		(*enrollment.Enrollment)(nil),
		(*session.AdminUser)(nil),
	); err != nil {
		log.Fatal("failed to run migrations:", err)
	}

	serviceMetrics, err := metrics.New(ServiceName)
	if err != nil {
		log.Fatal("failed to initialize metrics:", err)
	}

	app.router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	// Health endpoints (no auth required)
	healthHandler := health.NewHandler()
	healthHandler.RegisterRoutes(app.router)

	// Domain event producer (optional - the service runs without a broker)
	app.producer = newProducer(cfg.Events, slogLogger)
	publisher := events.NewPublisher(app.producer, slogLogger)

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret)

	studentRepo := student.NewRepository(app.database, serviceMetrics)
	classRepo := class.NewRepository(app.database, serviceMetrics)
	enrollmentRepo := enrollment.NewRepository(app.database, serviceMetrics)
	adminRepo := session.NewRepository(app.database, serviceMetrics)

	studentService := student.NewService(studentRepo, enrollmentRepo, publisher)
	classService := class.NewService(classRepo, enrollmentRepo, publisher)
	sessionService := session.NewService(adminRepo, jwtManager, publisher)

	studentHandler := student.NewHandler(studentService, slogLogger, serviceMetrics)
	classHandler := class.NewHandler(classService, slogLogger, serviceMetrics)
	sessionHandler := session.NewHandler(sessionService, slogLogger, serviceMetrics)

	app.router.Route("/api/v1", func(r chi.Router) {
		// Session creation is the only endpoint reachable without a token
		sessionHandler.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(jwtManager, slogLogger))
			studentHandler.RegisterRoutes(r)
			classHandler.RegisterRoutes(r)
		})
	})

	slogLogger.Info("application initialized successfully")

	return app
}

func newProducer(cfg config.EventsConfig, slogLogger *slog.Logger) events.Producer {
	switch cfg.Broker {
	case "nats":
		producer, err := messaging.NewProducer(cfg.URL, cfg.Subject, slogLogger)
		if err != nil {
			slogLogger.Warn("failed to initialize NATS producer", "error", err)
			return nil
		}
		return producer
	case "kafka":
		producer, err := kafka.NewProducer(cfg.Brokers, cfg.Topic, slogLogger)
		if err != nil {
			slogLogger.Warn("failed to initialize kafka producer", "error", err)
			return nil
		}
		return producer
	default:
		slogLogger.Info("domain events disabled")
		return nil
	}
}

func (a *App) Run() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.config.Server.IdleTimeout) * time.Second,
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("failed to close event producer", "error", err)
		}
	}
	db.Close(a.database)

	return a.server.Shutdown(ctx)
}

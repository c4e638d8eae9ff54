package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"event-manager/internal/analytics"
	analytics_api "event-manager/internal/analytics/api"
	"event-manager/internal/auth"
	auth_api "event-manager/internal/auth/api"
	auth_db "event-manager/internal/auth/db"
	"event-manager/internal/config"
	"event-manager/internal/database/migrations"
	"event-manager/internal/directory"
	directory_api "event-manager/internal/directory/api"
	"event-manager/internal/event"
	event_api "event-manager/internal/event/api"
	event_db "event-manager/internal/event/db"
	"event-manager/internal/kafka"
	"event-manager/internal/logger"
	"event-manager/internal/planning"
	planning_api "event-manager/internal/planning/api"
	"event-manager/internal/registration"
	registration_api "event-manager/internal/registration/api"
	registration_db "event-manager/internal/registration/db"
	"event-manager/internal/registration/qr"
	"event-manager/internal/schedule"
	schedule_api "event-manager/internal/schedule/api"
	schedule_db "event-manager/internal/schedule/db"
)

func connectPostgres(cfg config.DatabaseConfig, log *logger.Logger) *bun.DB {
	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", cfg.DSN())
		if err == nil {
			err = sqldb.Ping()
			if err == nil {
				break
			}
		}
		log.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.MaxLifetime)

	log.Info("DATABASE", "PostgreSQL connection successful")
	return bun.NewDB(sqldb, pgdialect.New())
}

func connectRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Redis connection error: %v", err))
	}
	log.Info("DATABASE", fmt.Sprintf("Redis connection successful to %s", cfg.Addr))
	return client
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting Event Manager initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx := context.Background()

	bunDB := connectPostgres(cfg.Database, log)
	defer bunDB.Close()

	migrator := migrations.NewRunner(bunDB, migrations.Options{
		MigrationsDir: cfg.Database.MigrationsDir,
		SeedData:      cfg.Database.SeedData,
	})
	if err := migrator.Run(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Migration failed: %v", err))
	}
	log.Info("DATABASE", "Schema is up to date")

	redisClient := connectRedis(ctx, cfg.Redis, log)
	defer redisClient.Close()
	sessions := auth.NewSessionStore(redisClient)

	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		requiredTopics := []string{
			cfg.Kafka.Topics.EventCreated,
			cfg.Kafka.Topics.EventDeleted,
			cfg.Kafka.Topics.RegistrationCreated,
			cfg.Kafka.Topics.RegistrationCancelled,
		}
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, requiredTopics); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		} else {
			log.Info("KAFKA", "Required topics ensured successfully")
		}
		producer = kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		log.Info("KAFKA", "Kafka producer initialized successfully")
	} else {
		log.Warn("KAFKA", "Kafka disabled, lifecycle events will not be published")
	}

	var eventPublisher event.Publisher
	var registrationPublisher registration.Publisher
	if producer != nil {
		eventPublisher = producer
		registrationPublisher = producer
	}

	authService := auth.NewService(&auth_db.DB{Bun: bunDB}, sessions,
		cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.BcryptCost)
	eventService := event.NewService(&event_db.DB{Bun: bunDB}, eventPublisher, cfg.Kafka.Topics, log)
	registrationService := registration.NewService(&registration_db.DB{Bun: bunDB},
		registrationPublisher, qr.NewPassGenerator(cfg.Auth.PassSecret), cfg.Kafka.Topics, log)
	scheduleService := schedule.NewService(&schedule_db.DB{Bun: bunDB})
	directoryService := directory.NewService(&directory.DB{Bun: bunDB})
	planningService := planning.NewService(&planning.DB{Bun: bunDB})
	analyticsService := analytics.NewService(analytics.NewDB(bunDB))

	authHandler := auth_api.NewHandler(authService, log)
	eventHandler := event_api.NewHandler(eventService, log)
	registrationHandler := registration_api.NewHandler(registrationService, log)
	scheduleHandler := schedule_api.NewHandler(scheduleService, log)
	directoryHandler := directory_api.NewHandler(directoryService, log)
	planningHandler := planning_api.NewHandler(planningService, log)
	analyticsHandler := analytics_api.NewHandler(analyticsService, log)

	log.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// --- Public Routes ---
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/organizer/signup", authHandler.OrganizerSignup)
		r.Post("/organizer/login", authHandler.OrganizerLogin)
		r.Post("/attendee/signup", authHandler.AttendeeSignup)
		r.Post("/attendee/login", authHandler.AttendeeLogin)
	})
	r.Get("/api/events", eventHandler.ListEvents)
	r.Get("/api/events/{id}", eventHandler.GetEvent)
	r.Get("/api/events/{id}/schedules", eventHandler.ListSchedules)
	r.Get("/api/events/{id}/attendees", eventHandler.ListAttendees)
	r.Get("/api/schedules", scheduleHandler.ListSchedules)
	r.Get("/api/venues", directoryHandler.ListVenues)
	r.Get("/api/vendors", directoryHandler.ListVendors)
	log.Info("ROUTER", "Public routes registered")

	// --- Protected Routes ---
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(cfg.Auth.JWTSecret, sessions))

		r.Post("/api/auth/logout", authHandler.Logout)

		r.Route("/api/events", func(r chi.Router) {
			r.Post("/", eventHandler.CreateEvent)
			r.Put("/{id}", eventHandler.UpdateEvent)
			r.Delete("/{id}", eventHandler.DeleteEvent)
		})

		r.Route("/api/registrations", func(r chi.Router) {
			r.Post("/", registrationHandler.Register)
			r.Delete("/{eventId}", registrationHandler.Unregister)
			r.Get("/{id}/pass", registrationHandler.Pass)
		})

		r.Post("/api/schedules", scheduleHandler.CreateSchedule)
		r.Delete("/api/schedules/{id}", scheduleHandler.DeleteSchedule)

		r.Post("/api/venues", directoryHandler.CreateVenue)
		r.Post("/api/vendors", directoryHandler.CreateVendor)

		r.Post("/api/tasks", planningHandler.CreateTask)
		r.Get("/api/tasks", planningHandler.ListTasks)
		r.Post("/api/budget-items", planningHandler.CreateBudgetItem)
		r.Get("/api/budget-items", planningHandler.ListBudgetItems)

		analyticsHandler.RegisterRoutes(r)
	})
	log.Info("AUTH", "JWT middleware applied to protected API routes")

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("Event Manager running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server shutdown failed: %v", err))
	} else {
		log.Info("HTTP", "Event Manager shutdown complete")
	}
}

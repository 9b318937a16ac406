package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"github.com/bookcase-labs/library-catalog/internal/facades"
	"github.com/bookcase-labs/library-catalog/internal/handlers"
	"github.com/bookcase-labs/library-catalog/internal/jwt"
	"github.com/bookcase-labs/library-catalog/internal/logger"
	"github.com/bookcase-labs/library-catalog/internal/middlewares"
	"github.com/bookcase-labs/library-catalog/internal/migrations"
	"github.com/bookcase-labs/library-catalog/internal/models"
	"github.com/bookcase-labs/library-catalog/internal/repositories"
	"github.com/bookcase-labs/library-catalog/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title library-catalog API
// @version 1.0.0
// @description Service for managing a library catalog of books, authors and categories with user accounts
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// config carries all application settings resolved from the environment.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	PgHost         string
	PgPort         int
	PgUser         string
	PgPassword     string
	PgDB           string
	PgMaxOpenConns int
	PgMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	JWTSecretKey string
	JWTExpSecond int

	HashCost       int
	ResetTTLSecond int
	ResetURLBase   string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	S3Endpoint     string
	S3Region       string
	S3AccessKey    string
	S3SecretKey    string
	S3Bucket       string
	S3URLExpSecond int

	KafkaBrokers []string
	KafkaTopic   string
}

// parseConfig loads environment variables from a file and resolves all
// application, database, Redis, JWT, credential, mail, storage and
// broker configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getEnvInt := func(key, defaultValue string) int {
		if err != nil {
			return 0
		}
		var n int
		n, err = strconv.Atoi(getEnv(key, defaultValue))
		return n
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.PgHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PgUser = getEnv("POSTGRES_USER", "user")
	cfg.PgPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PgDB = getEnv("POSTGRES_DB", "library")
	cfg.PgPort = getEnvInt("POSTGRES_PORT", "5432")
	cfg.PgMaxOpenConns = getEnvInt("POSTGRES_MAX_OPEN_CONNS", "16")
	cfg.PgMaxIdleConns = getEnvInt("POSTGRES_MAX_IDLE_CONNS", "8")

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPort = getEnvInt("REDIS_PORT", "6379")
	cfg.RedisDB = getEnvInt("REDIS_DB", "0")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.RedisPoolSize = getEnvInt("REDIS_POOL_SIZE", "10")
	cfg.RedisMinIdleConns = getEnvInt("REDIS_MIN_IDLE_CONNS", "2")

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	cfg.JWTExpSecond = getEnvInt("JWT_EXP_SECOND", "3600")

	// Credential config
	cfg.HashCost = getEnvInt("HASH_COST", "10")
	cfg.ResetTTLSecond = getEnvInt("RESET_TOKEN_TTL_SECOND", "600")
	cfg.ResetURLBase = getEnv("RESET_URL_BASE", "http://localhost:8080/reset-password")

	// SMTP config
	cfg.SMTPHost = getEnv("SMTP_HOST", "localhost")
	cfg.SMTPPort = getEnvInt("SMTP_PORT", "587")
	cfg.SMTPUsername = getEnv("SMTP_USERNAME", "")
	cfg.SMTPPassword = getEnv("SMTP_PASSWORD", "")
	cfg.SMTPFrom = getEnv("SMTP_FROM", "noreply@localhost")

	// S3 config
	cfg.S3Endpoint = getEnv("S3_ENDPOINT", "http://localhost:9000")
	cfg.S3Region = getEnv("S3_REGION", "us-east-1")
	cfg.S3AccessKey = getEnv("S3_ACCESS_KEY", "minioadmin")
	cfg.S3SecretKey = getEnv("S3_SECRET_KEY", "minioadmin")
	cfg.S3Bucket = getEnv("S3_BUCKET", "books")
	cfg.S3URLExpSecond = getEnvInt("S3_URL_EXP_SECOND", "300")

	// Kafka config
	cfg.KafkaBrokers = strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "library-catalog-events")

	return cfg, err
}

// run initializes the logger, database, Redis, facades, and HTTP server.
// It applies migrations, sets up routes and middleware, and handles
// graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PgUser, cfg.PgPassword, cfg.PgHost, cfg.PgPort, cfg.PgDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PgMaxOpenConns)
	db.SetMaxIdleConns(cfg.PgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("PostgreSQL ping failed: %w", err)
	}

	// Apply schema migrations
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db.DB, "."); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis connection error: %w", err)
	}
	defer rdb.Close()

	// Initialize JWT service
	tokener := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(time.Duration(cfg.JWTExpSecond)*time.Second),
	)

	// Initialize facades
	mailer := facades.NewSMTPMailerFacade(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	storage := facades.NewS3StorageFacade(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, time.Duration(cfg.S3URLExpSecond)*time.Second)
	audit := facades.NewKafkaAuditFacade(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer audit.Close()

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	authorReadRepo := repositories.NewAuthorReadRepository(db)
	authorWriteRepo := repositories.NewAuthorWriteRepository(db)
	categoryReadRepo := repositories.NewCategoryReadRepository(db)
	categoryWriteRepo := repositories.NewCategoryWriteRepository(db)
	bookReadRepo := repositories.NewBookReadRepository(db)
	bookWriteRepo := repositories.NewBookWriteRepository(db)
	resetTokenRepo := repositories.NewResetTokenRepository(rdb, time.Duration(cfg.ResetTTLSecond)*time.Second)

	// Initialize services
	creds := services.NewCredentials(cfg.HashCost)
	authService := services.NewAuthService(userReadRepo, userWriteRepo, resetTokenRepo, tokener,
		mailer, audit, creds, cfg.ResetURLBase)
	userService := services.NewUserService(userReadRepo, userReadRepo, userWriteRepo)
	authorService := services.NewAuthorService(authorReadRepo, authorWriteRepo)
	categoryService := services.NewCategoryService(categoryReadRepo, categoryWriteRepo)
	bookService := services.NewBookService(bookReadRepo, bookWriteRepo, storage, audit)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware())

	auth := middlewares.AuthMiddleware(tokener, userService)
	adminOnly := middlewares.RoleMiddleware(models.RoleAdmin)
	anyRole := middlewares.RoleMiddleware(models.RoleUser, models.RoleAdmin)
	tx := middlewares.TxMiddleware(db)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/signup", handlers.NewSignupHandler(authService))
		r.Post("/auth/login", handlers.NewLoginHandler(authService))
		r.Post("/auth/forgot-password", handlers.NewForgotPasswordHandler(authService))
		r.Post("/auth/reset-password", handlers.NewResetPasswordHandler(authService))

		// Book routes: reads for any authenticated role, writes admin only
		r.Group(func(r chi.Router) {
			r.Use(auth, anyRole)
			r.Get("/books", handlers.NewListBooksHandler(bookService))
			r.Get("/books/{id}", handlers.NewGetBookHandler(bookService))
			r.Get("/books/{id}/download", handlers.NewDownloadBookHandler(bookService))
		})
		r.Group(func(r chi.Router) {
			r.Use(auth, adminOnly, tx)
			r.Post("/books", handlers.NewCreateBookHandler(bookService))
			r.Put("/books/{id}", handlers.NewUpdateBookHandler(bookService))
			r.Delete("/books/{id}", handlers.NewDeleteBookHandler(bookService))
		})

		// Author routes, admin only
		r.Group(func(r chi.Router) {
			r.Use(auth, adminOnly)
			r.Get("/authors", handlers.NewListAuthorsHandler(authorService))
			r.Get("/authors/{id}", handlers.NewGetAuthorHandler(authorService))
		})
		r.Group(func(r chi.Router) {
			r.Use(auth, adminOnly, tx)
			r.Post("/authors", handlers.NewCreateAuthorHandler(authorService))
			r.Put("/authors/{id}", handlers.NewUpdateAuthorHandler(authorService))
			r.Delete("/authors/{id}", handlers.NewDeleteAuthorHandler(authorService))
		})

		// Category routes, admin only
		r.Group(func(r chi.Router) {
			r.Use(auth, adminOnly)
			r.Get("/categories", handlers.NewListCategoriesHandler(categoryService))
			r.Get("/categories/{id}", handlers.NewGetCategoryHandler(categoryService))
		})
		r.Group(func(r chi.Router) {
			r.Use(auth, adminOnly, tx)
			r.Post("/categories", handlers.NewCreateCategoryHandler(categoryService))
			r.Put("/categories/{id}", handlers.NewUpdateCategoryHandler(categoryService))
			r.Delete("/categories/{id}", handlers.NewDeleteCategoryHandler(categoryService))
		})

		// User routes: get allows self-access, the rest are admin only
		r.Group(func(r chi.Router) {
			r.Use(auth, anyRole)
			r.Get("/user/{id}", handlers.NewGetUserHandler(userService))
		})
		r.Group(func(r chi.Router) {
			r.Use(auth, adminOnly)
			r.Get("/user", handlers.NewListUsersHandler(userService))
		})
		r.Group(func(r chi.Router) {
			r.Use(auth, adminOnly, tx)
			r.Put("/user/{id}", handlers.NewUpdateUserHandler(userService))
			r.Delete("/user/{id}", handlers.NewDeleteUserHandler(userService))
		})
	})

	r.Get("/health", handlers.NewHealthHandler(db))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}

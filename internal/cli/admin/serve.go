package admin

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lumina-search/lumina/internal/api/handlers"
	"github.com/lumina-search/lumina/internal/config"
	"github.com/lumina-search/lumina/internal/database"
	"github.com/lumina-search/lumina/internal/domain"
	"github.com/lumina-search/lumina/internal/genai"
	"github.com/lumina-search/lumina/internal/jobs"
	"github.com/lumina-search/lumina/internal/repository"
	"github.com/lumina-search/lumina/internal/server"
	"github.com/lumina-search/lumina/internal/service"
	"github.com/lumina-search/lumina/internal/telemetry"
	"github.com/lumina-search/lumina/internal/websearch"
	"github.com/spf13/cobra"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the lumina API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize Sentry with tracing if SENTRY_DSN is set
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              dsn,
			Environment:      environment,
			TracesSampleRate: sampleRate,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()
	log.Println("connected to database")

	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	if !noMigrate {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	userRepo := repository.NewUserRepository(pool)
	apiKeyRepo := repository.NewAPIKeyRepository(pool)
	historyRepo := repository.NewHistoryRepository(pool)
	savedRepo := repository.NewSavedResultRepository(pool)
	statsRepo := repository.NewStatisticsRepository(pool)

	authSvc := service.NewAuthService(userRepo, apiKeyRepo)

	if cfg.InitUsername != "" {
		if err := bootstrapInitialUser(ctx, cfg, authSvc, userRepo); err != nil {
			return fmt.Errorf("failed to bootstrap initial user: %w", err)
		}
	}

	var generator service.Generator
	if cfg.HasOpenAI() {
		generator = genai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		log.Println("AI enrichment enabled")
	} else {
		log.Println("LUMINA_OPENAI_API_KEY not set, AI enrichment disabled")
	}
	enrichmentSvc := service.NewEnrichmentService(generator)

	var searcher service.WebSearcher
	if cfg.HasGoogleSearch() {
		searcher = websearch.NewClient(cfg.GoogleSearchAPIKey, cfg.GoogleSearchEngineID)
		log.Println("web search enabled")
	} else {
		searcher = &NoOpWebSearcher{}
		log.Println("LUMINA_GOOGLE_SEARCH_API_KEY not set, web search disabled")
	}

	statsSvc := service.NewStatisticsService(statsRepo, historyRepo)
	searchSvc := service.NewSearchService(searcher, enrichmentSvc, historyRepo, statsSvc, userRepo)
	savedSvc := service.NewSavedResultService(savedRepo, historyRepo)
	userSvc := service.NewUserService(userRepo)

	var retentionWorker *jobs.Worker
	if cfg.HistoryRetentionDays > 0 {
		retention := time.Duration(cfg.HistoryRetentionDays) * 24 * time.Hour
		processor := jobs.NewRetentionProcessor(historyRepo, retention)
		retentionWorker = jobs.NewWorker(processor, time.Hour)
		go retentionWorker.Start(ctx)
		log.Printf("history retention worker started (%d days)", cfg.HistoryRetentionDays)
	}

	routerCfg := server.RouterConfig{
		AuthValidator:      authSvc,
		SearchHandler:      handlers.NewSearchHandler(searchSvc),
		SavedResultHandler: handlers.NewSavedResultHandler(savedSvc),
		StatisticsHandler:  handlers.NewStatisticsHandler(statsSvc),
		EnhanceHandler:     handlers.NewEnhanceHandler(enrichmentSvc),
		UserHandler:        handlers.NewUserHandler(userSvc),
	}

	router := server.NewRouter(routerCfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	if retentionWorker != nil {
		retentionWorker.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}

// NoOpWebSearcher stands in when no search provider is configured.
type NoOpWebSearcher struct{}

func (s *NoOpWebSearcher) Search(ctx context.Context, query string, opts websearch.Options) ([]websearch.Result, error) {
	return nil, fmt.Errorf("web search not configured: LUMINA_GOOGLE_SEARCH_API_KEY required")
}

func bootstrapInitialUser(ctx context.Context, cfg *config.Config, authSvc *service.AuthService, userRepo *repository.UserRepository) error {
	if cfg.InitEmail == "" {
		return fmt.Errorf("LUMINA_INIT_EMAIL is required when LUMINA_INIT_USERNAME is set")
	}

	user, err := userRepo.FindConflicting(ctx, cfg.InitUsername, cfg.InitEmail, "")
	if err != nil {
		return fmt.Errorf("failed to check existing user: %w", err)
	}

	if user == nil {
		user, err = authSvc.CreateUser(ctx, cfg.InitUsername, cfg.InitEmail, domain.GenderOther)
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		log.Printf("bootstrap: created user '%s' (id: %s)", user.Username, user.ID)
	} else {
		log.Printf("bootstrap: user '%s' already exists (id: %s)", user.Username, user.ID)
	}

	if cfg.InitAPIKey != "" {
		if !service.IsValidAPIToken(cfg.InitAPIKey) {
			return fmt.Errorf("invalid LUMINA_INIT_API_KEY format (expected 'lmn_<64 hex chars>')")
		}

		if _, err := authSvc.ValidateAPIKey(ctx, cfg.InitAPIKey); err == nil {
			log.Println("bootstrap: API key already exists")
			return nil
		}

		if _, err := authSvc.CreateAPIKeyWithToken(ctx, user.ID, "bootstrap", cfg.InitAPIKey); err != nil {
			return fmt.Errorf("failed to create API key: %w", err)
		}
		log.Println("bootstrap: created API key")
	}

	return nil
}

func runMigrations(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if err == migrate.ErrNilVersion {
		log.Println("migrations: database is up to date (no migrations applied)")
	} else if dirty {
		return fmt.Errorf("migration version %d is dirty - manual intervention required", version)
	} else if err == migrate.ErrNoChange {
		log.Printf("migrations: database is up to date (version %d)", version)
	} else {
		log.Printf("migrations: applied successfully (version %d)", version)
	}

	return nil
}

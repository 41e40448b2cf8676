package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"stackadvisor-backend/internal/catalog"
	"stackadvisor-backend/internal/credentials"
	"stackadvisor-backend/internal/llm"
	openai "stackadvisor-backend/internal/llm/openai"
	"stackadvisor-backend/internal/recommendations"
	"stackadvisor-backend/internal/services/health"
	"stackadvisor-backend/internal/shared/config"
	"stackadvisor-backend/internal/shared/server"
	"stackadvisor-backend/internal/shared/server/middleware"
	"stackadvisor-backend/internal/shared/storage/db"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config                config.Config
	Router                *gin.Engine
	DB                    *sql.DB
	Redis                 *redis.Client
	CredentialStore       credentials.Store
	LLM                   llm.Client
	Catalog               *catalog.Catalog
	Health                *health.Service
	CredentialService     *credentials.Service
	RecommendationService *recommendations.Service
	RecommendationHandler *recommendations.Handler
	CredentialHandler     *credentials.Handler
	CatalogHandler        *catalog.Handler
}

// Build prepares dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	app := &App{
		Config: cfg,
		Health: health.NewService(),
	}

	store, err := buildCredentialStore(ctx, app)
	if err != nil {
		return nil, err
	}
	app.CredentialStore = store

	cat, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	app.Catalog = cat

	app.LLM = BuildLLMClient(cfg)

	app.CredentialService = credentials.NewService(store)
	pipeline := recommendations.NewPipeline(app.LLM)
	app.RecommendationService = recommendations.NewService(pipeline, app.CredentialService, cfg.DefaultCredential)

	app.RecommendationHandler = recommendations.NewHandler(app.RecommendationService)
	app.CredentialHandler = credentials.NewHandler(app.CredentialService)
	app.CatalogHandler = catalog.NewHandler(cat)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:                cfg,
		Health:                app.Health,
		RecommendationHandler: app.RecommendationHandler,
		CredentialHandler:     app.CredentialHandler,
		CatalogHandler:        app.CatalogHandler,
		Limiter:               middleware.NewRateLimiter(nil),
	})

	return app, nil
}

// Close releases database and cache connections.
func (a *App) Close() {
	if a == nil {
		return
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			log.Printf("bootstrap: close database: %v", err)
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			log.Printf("bootstrap: close redis: %v", err)
		}
	}
}

// BuildLLMClient picks the completion client for the configured provider.
func BuildLLMClient(cfg config.Config) llm.Client {
	switch cfg.LLMProvider {
	case "openai":
		return openai.NewClient(cfg.OpenAIAPIURL, cfg.LLMModel)
	default:
		log.Printf("bootstrap: unknown LLM_PROVIDER %q; recommendations will use the fallback set", cfg.LLMProvider)
		return llm.PlaceholderClient{}
	}
}

func buildCredentialStore(ctx context.Context, app *App) (credentials.Store, error) {
	cfg := app.Config
	switch cfg.CredentialStore {
	case "postgres":
		sqlDB, err := buildDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if sqlDB == nil {
			return credentials.NewMemoryStore(), nil
		}
		app.DB = sqlDB
		app.Health.Register("postgres", sqlDB.PingContext)
		return credentials.NewPGStore(sqlDB), nil
	case "redis":
		client, err := buildRedis(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return credentials.NewMemoryStore(), nil
		}
		app.Redis = client
		app.Health.Register("redis", func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
		return credentials.NewRedisStore(client), nil
	default:
		return credentials.NewMemoryStore(), nil
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory credential store")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required for CREDENTIAL_STORE=postgres")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			sqlDB.Close()
			err = fmt.Errorf("run migrations: %w", err)
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database unavailable; using in-memory credential store: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildRedis(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: redis unavailable; using in-memory credential store: %v", err)
			return nil, nil
		}
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}

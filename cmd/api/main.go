package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"lexi-ai/internal/catalog"
	"lexi-ai/internal/config"
	"lexi-ai/internal/db"
	apihttp "lexi-ai/internal/http"
	"lexi-ai/internal/repository"
	"lexi-ai/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	profileRepo := newProfileRepository(ctx, cfg, logger)

	personaSvc := service.NewPersonaService(profileRepo, service.SystemClock, logger)
	recSvc := service.NewRecommendationService(logger)
	registerCatalog(cfg, recSvc, logger)
	guardSvc := service.NewGuardrailsService(service.SystemClock, logger)
	assistantSvc := service.NewAssistantService(personaSvc, recSvc, guardSvc, logger)

	jwtSvc := service.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	authHandler := apihttp.NewAuthHandler(logger, jwtSvc)
	personaHandler := apihttp.NewPersonaHandler(logger, assistantSvc, personaSvc)
	recHandler := apihttp.NewRecommendationHandler(logger, assistantSvc)
	router := apihttp.NewRouter(logger, jwtSvc, authHandler, personaHandler, recHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

// newProfileRepository elige el backend de persistencia: Postgres si hay
// DATABASE_URL, Redis si hay REDIS_ADDR, y si no el store de archivos.
func newProfileRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) repository.ProfileRepository {
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		logger.Info("using postgres profile store")
		return repository.NewPgProfileRepository(pool)
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, falling back to file store", zap.Error(err))
		} else {
			logger.Info("using redis profile store")
			return repository.NewRedisProfileRepository(client)
		}
	}

	logger.Info("using file profile store", zap.String("dir", cfg.DataDir))
	return repository.NewFileProfileRepository(cfg.DataDir)
}

// registerCatalog registra la fuente de candidatos: el archivo configurado
// o el catálogo de muestra.
func registerCatalog(cfg *config.Config, recSvc *service.RecommendationService, logger *zap.Logger) {
	source := catalog.NewSampleCatalog()
	if cfg.CatalogPath != "" {
		loaded, err := catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			logger.Warn("could not load catalog, using samples", zap.Error(err), zap.String("path", cfg.CatalogPath))
		} else {
			source = loaded
		}
	}
	for _, category := range source.Categories() {
		recSvc.RegisterSource(category, source)
	}
}

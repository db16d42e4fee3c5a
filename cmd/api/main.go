package main

import (
	"context"
	"log"

	"live-market/config"
	"live-market/internal/handler"
	"live-market/internal/redis"
	"live-market/internal/repository"
	"live-market/internal/server"
	"live-market/internal/services"
	"live-market/internal/storage"
	"live-market/pkg/database"
	"live-market/pkg/logger"

	"gorm.io/gorm"
)

func main() {
	cfg := config.LoadConfig()

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	defer l.Sync()
	logger.SetGlobalLogger(l)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() { _ = database.Close(db) }()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply GORM migrations: %v", err)
	}

	ctx := context.Background()

	var (
		profileCache services.ProfileCache
		streamCache  services.StreamCache
	)
	if cfg.RedisEnabled() {
		redis.Initialize(redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redis.Ping(ctx, redis.GetClient()); err != nil {
			l.Warnf("redis unavailable, running without cache: %v", err)
		} else {
			store := redis.NewCacheStore(redis.GetClient(), redis.CacheConfig{ProfileTTL: cfg.CacheTTL, StreamTTL: cfg.CacheTTL})
			profileCache, streamCache = store, store
			l.Infof("redis cache enabled at %s:%s", cfg.RedisHost, cfg.RedisPort)
		}
	}

	var presigner services.Presigner
	if cfg.S3Enabled() {
		s3Client, err := storage.NewClient(ctx, storage.S3Config{
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Endpoint:   cfg.S3Endpoint,
			PublicBase: cfg.S3PublicBase,
			PresignTTL: cfg.S3PresignTTL,
		})
		if err != nil {
			l.Warnf("s3 unavailable, image uploads disabled: %v", err)
		} else {
			presigner = s3Client
		}
	}

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, cfg)
	chatService := services.NewChatService(repository.NewChatRepository(db), userRepo, profileCache)
	streamService := services.NewStreamService(repository.NewStreamRepository(db), userRepo, profileCache, streamCache)
	productService := services.NewProductService(repository.NewProductRepository(db))
	uploadService := services.NewUploadService(presigner)

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Chat:    handler.NewChatHandler(chatService),
		Stream:  handler.NewStreamHandler(streamService),
		Product: handler.NewProductHandler(productService),
		User:    handler.NewUserHandler(authService),
		Upload:  handler.NewUploadHandler(uploadService),
	}, authService, healthCheck(db))

	if err := srv.Start(); err != nil {
		l.Errorf("server stopped with error: %v", err)
	}
}

func healthCheck(db *gorm.DB) server.HealthFunc {
	return func(ctx context.Context) error {
		return database.HealthCheck(ctx, db)
	}
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/slaviors/simenu/cache"
	"github.com/slaviors/simenu/controllers"
	"github.com/slaviors/simenu/database"
	"github.com/slaviors/simenu/repository"
	"github.com/slaviors/simenu/routes"
	servicepkg "github.com/slaviors/simenu/services"
	"github.com/slaviors/simenu/storage"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck
	zap.ReplaceGlobals(logger)

	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	if err := database.Connect(logger, cfg.DSN()); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close() //nolint:errcheck

	// Redis for the menu cache
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Warn("Failed to parse REDIS_URL, falling back to default", zap.Error(err))
		redisOpts = &redis.Options{Addr: "localhost:6379", DB: 0}
	}
	redisClient := redis.NewClient(redisOpts)

	// S3 for menu image storage (LocalStack-compatible)
	imageStore := buildImageStore(cfg, logger)

	// Dependency injection
	menuRepo := repository.NewGormMenuRepository(database.DB)
	orderRepo := repository.NewGormOrderRepository(database.DB)
	billRepo := repository.NewGormBillRepository(database.DB)

	menuCache := cache.NewMenuCache(redisClient)
	menuService := servicepkg.NewMenuService(menuRepo, imageStore, menuCache, logger)
	orderService := servicepkg.NewOrderService(orderRepo, menuRepo, logger)
	billService := servicepkg.NewBillService(billRepo, logger)

	menuController := controllers.NewMenuController(menuService)
	orderController := controllers.NewOrderController(orderService)
	billController := controllers.NewBillController(billService)

	r := gin.New()
	r.Use(gin.Recovery())

	// Global request-logging middleware
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})

	// 30-second request timeout
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "simenu"})
	})

	routes.RegisterRoutes(r, menuController, orderController, billController)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	logger.Info("Table ordering service started", zap.String("port", cfg.Port))
	<-quit
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		logger.Error("Failed to close Redis", zap.Error(err))
	}
	logger.Info("Server exited cleanly")
}

// buildImageStore wires the S3 client for menu images. Upload attempts fail
// with a storage error when AWS config cannot be loaded, rather than taking
// the whole service down at startup.
func buildImageStore(cfg *Config, logger *zap.Logger) storage.ImageStore {
	cfgOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.AWSRegion),
	}
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if accessKey != "" || secret != "" {
		cfgOpts = append(cfgOpts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secret, ""),
		))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(context.Background(), cfgOpts...)
	if err != nil {
		logger.Warn("AWS config unavailable, image uploads disabled", zap.Error(err))
		return nil
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.AWSEndpoint != "" {
			o.UsePathStyle = true
			o.BaseEndpoint = aws.String(cfg.AWSEndpoint)
		}
	})

	return storage.NewS3ImageStore(s3Client, cfg.S3Bucket, cfg.S3Prefix, cfg.S3PublicBaseURL, cfg.AWSRegion, cfg.AWSEndpoint)
}

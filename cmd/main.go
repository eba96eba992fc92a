package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"marketplace-service/internal/ai/gemini"
	"marketplace-service/internal/config"
	"marketplace-service/internal/database/minio"
	"marketplace-service/internal/database/postgres"
	redisdb "marketplace-service/internal/database/redis"
	"marketplace-service/internal/event"
	"marketplace-service/internal/geocode"
	"marketplace-service/internal/handlers"
	"marketplace-service/internal/repository"
	"marketplace-service/internal/services"
	"marketplace-service/internal/worker"

	"github.com/gofiber/fiber/v3"
	goredis "github.com/redis/go-redis/v9"
)

func setupLogging() (*os.File, error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic: %v\n", r)
		}
	}()

	logDir := filepath.Join("/agriloop", "log", "marketplace_service")
	err := os.MkdirAll(logDir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	cfg := config.New()

	log.Printf("Connecting to PostgreSQL with: host=%s, port=%s, user=%s, dbname=%s",
		cfg.PostgresCfg.Host, cfg.PostgresCfg.Port, cfg.PostgresCfg.Username, cfg.PostgresCfg.DBname)
	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		log.Printf("error connect to database: %s", err)
		go postgres.RetryConnectOnFailed(30*time.Second, &db, cfg.PostgresCfg)
	}

	var redisClient *goredis.Client
	redisWrapper, err := redisdb.NewRedisClient(cfg.RedisCfg.Host, cfg.RedisCfg.Port, cfg.RedisCfg.Password, cfg.RedisCfg.DB)
	if err != nil {
		log.Printf("error connect to redis, product listing cache disabled: %s", err)
	} else {
		redisClient = redisWrapper.GetClient()
		defer redisWrapper.Close()
	}

	var publisher *event.Publisher
	rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		log.Printf("error connect to rabbitmq, event publishing disabled: %s", err)
	} else {
		publisher = event.NewPublisher(rabbitConn)
		defer rabbitConn.Close()
	}

	minioClient, err := minio.NewMinioClient(cfg.MinioCfg)
	if err != nil {
		log.Printf("error connect to minio, image upload disabled: %s", err)
		minioClient = nil
	}

	var geminiClient *gemini.GeminiClient
	if cfg.GeminiAPICfg.APIKey != "" {
		geminiClient, err = gemini.NewGenAIClient(cfg.GeminiAPICfg.APIKey, cfg.GeminiAPICfg.FlashName, cfg.GeminiAPICfg.ProName)
		if err != nil {
			log.Printf("error init gemini client, using fallback solutions only: %s", err)
			geminiClient = nil
		}
	} else {
		log.Println("GEMINI_KEY not set, using fallback solutions only")
	}

	geocoder := geocode.NewClient(cfg.GeocodeCfg.BaseURL)

	submissionRepo := repository.NewSubmissionRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db, productRepo)

	inventoryService := services.NewInventoryService(productRepo, redisClient)
	submissionService := services.NewSubmissionService(submissionRepo, inventoryService, geocoder, minioClient, publisher)
	orderService := services.NewOrderService(orderRepo, productRepo, inventoryService, publisher)
	recommendationService := services.NewRecommendationService(geminiClient, submissionRepo)

	// Retry loop for orders whose stock decrement failed at checkout
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	var poolWg sync.WaitGroup
	pool := worker.NewWorkingPool(2, 16)
	poolWg.Add(1)
	go pool.Start(workerCtx, &poolWg)

	scheduler := worker.NewJobScheduler("stock-decrement-retry", 1*time.Minute, pool)
	scheduler.AddJob(func(ctx context.Context) error {
		return orderService.RetryPendingStockDecrements(ctx)
	})
	go scheduler.Run(workerCtx)

	app := fiber.New()
	app.Get("/checkhealth", func(c fiber.Ctx) error {
		health := map[string]any{
			"status": "Marketplace service is healthy",
		}
		if publisher != nil {
			health["events"] = publisher.GetMetrics()
		}
		return c.Status(fiber.StatusOK).JSON(health)
	})

	handlers.NewSubmissionHandler(submissionService, recommendationService).Register(app)
	handlers.NewMarketplaceHandler(inventoryService).Register(app)
	handlers.NewOrderHandler(orderService).Register(app)

	log.Printf("Marketplace service listening on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

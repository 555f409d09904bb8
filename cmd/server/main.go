package main

import (
	"context"
	"log"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/labstack/echo/v4"
	"github.com/uideverse/hub/backend/internal/ai"
	"github.com/uideverse/hub/backend/internal/media"
	"github.com/uideverse/hub/backend/internal/repositories"
	"github.com/uideverse/hub/backend/internal/router"
	"github.com/uideverse/hub/backend/pkg/config"
	"github.com/uideverse/hub/backend/pkg/firebase"
	"github.com/uideverse/hub/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := cfg.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Initialize Firebase
	ctx := context.Background()
	authClient, err := firebase.NewAuthClient(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// AI assist; runs in fallback-only mode without an API key
	assistService := ai.NewService(generator(cfg))

	// Media store
	var uploader *media.Uploader
	if cfg.MinioAccessKey != "" {
		uploader, err = media.NewUploader(media.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
			BaseURL:   cfg.MediaBaseURL,
		})
		if err != nil {
			log.Fatalf("Failed to initialize media store: %v", err)
		}
		if err := uploader.EnsureBucket(ctx); err != nil {
			log.Fatalf("Failed to prepare media bucket: %v", err)
		}
	} else {
		log.Println("Media store credentials not set, uploads disabled.")
	}

	// Sensor dashboard time-series store
	var sensorRepo repositories.SensorRepository
	if cfg.InfluxToken != "" {
		influxClient := influxdb2.NewClient(cfg.InfluxURL, cfg.InfluxToken)
		defer influxClient.Close()
		sensorRepo = repositories.NewInfluxSensorRepository(influxClient, cfg.InfluxOrg, cfg.InfluxBucket)
	} else {
		log.Println("InfluxDB token not set, sensor dashboard disabled.")
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, router.Deps{
		FirebaseAuth:  authClient,
		AssistService: assistService,
		Uploader:      uploader,
		SensorRepo:    sensorRepo,
		MongoDatabase: cfg.MongoDatabase,
	})

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

func generator(cfg *config.Config) ai.Generator {
	g := ai.NewOpenAIGenerator(cfg.AIAPIKey, cfg.AIModel)
	if g == nil {
		log.Println("AI API key not set, text assist runs in fallback mode.")
		return nil
	}
	return g
}

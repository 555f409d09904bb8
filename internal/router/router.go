package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/uideverse/hub/backend/internal/ai"
	"github.com/uideverse/hub/backend/internal/badges"
	"github.com/uideverse/hub/backend/internal/handlers"
	"github.com/uideverse/hub/backend/internal/media"
	"github.com/uideverse/hub/backend/internal/middleware"
	"github.com/uideverse/hub/backend/internal/models"
	"github.com/uideverse/hub/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Deps carries the external collaborators the routes need beyond the
// databases.
type Deps struct {
	FirebaseAuth  *auth.Client
	AssistService *ai.Service
	Uploader      *media.Uploader
	SensorRepo    repositories.SensorRepository
	MongoDatabase string
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, deps Deps) {
	// AutoMigrate PostgreSQL models
	if err := pgdb.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	mongoDB := mgClient.Database(deps.MongoDatabase)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	projectRepo := repositories.NewMongoProjectRepository(mongoDB)
	topicRepo := repositories.NewMongoTopicRepository(mongoDB)
	replyRepo := repositories.NewMongoReplyRepository(mongoDB)
	collabRepo := repositories.NewMongoCollaborationRepository(mongoDB)
	notificationRepo := repositories.NewMongoNotificationRepository(mongoDB)
	badgeRepo := repositories.NewMongoBadgeRepository(mongoDB)

	badgeService := badges.NewService(projectRepo, badgeRepo, notificationRepo)

	// --- Protected routes (require Firebase authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.FirebaseAuthMiddleware(deps.FirebaseAuth, userRepo))
	log.Println("Firebase authentication middleware applied to /api/v1 group.")

	// Profile routes
	userHandler := handlers.NewUserHandler(userRepo, badgeRepo)
	userHandler.RegisterUserRoutes(api)
	log.Println("User profile routes configured.")

	// Project routes
	projectHandler := handlers.NewProjectHandler(projectRepo, userRepo, notificationRepo, badgeService)
	projectHandler.RegisterProjectRoutes(api)
	log.Println("Project routes configured.")

	// Forum routes
	forumHandler := handlers.NewForumHandler(topicRepo, replyRepo, userRepo, notificationRepo)
	forumHandler.RegisterForumRoutes(api)
	log.Println("Forum topic routes configured.")

	replyHandler := handlers.NewReplyHandler(replyRepo, topicRepo, notificationRepo)
	replyHandler.RegisterReplyRoutes(api)
	log.Println("Forum reply routes configured.")

	// Collaboration board routes
	collabHandler := handlers.NewCollaborationHandler(collabRepo, notificationRepo)
	collabHandler.RegisterCollaborationRoutes(api)
	log.Println("Collaboration routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// AI assist routes
	assistHandler := handlers.NewAssistHandler(deps.AssistService)
	assistHandler.RegisterAssistRoutes(api)
	log.Println("AI assist routes configured.")

	// Media upload routes
	if deps.Uploader != nil {
		uploadHandler := handlers.NewUploadHandler(deps.Uploader)
		uploadHandler.RegisterUploadRoutes(api)
		log.Println("Media upload routes configured.")
	}

	// Sensor dashboard routes
	if deps.SensorRepo != nil {
		sensorHandler := handlers.NewSensorHandler(deps.SensorRepo)
		sensorHandler.RegisterSensorRoutes(api)
		log.Println("Sensor dashboard routes configured.")
	}

	// --- Admin routes ---
	admin := e.Group("/api/v1")
	admin.Use(middleware.FirebaseAuthMiddleware(deps.FirebaseAuth, userRepo))
	admin.Use(middleware.RequireAdmin())

	moderationHandler := handlers.NewModerationHandler(projectRepo, topicRepo, userRepo, notificationRepo)
	moderationHandler.RegisterModerationRoutes(admin)
	admin.GET("/admin/users", userHandler.GetUsers)
	admin.PUT("/admin/users/:id/role", userHandler.UpdateRole, middleware.RequireSuperadmin())
	log.Println("Admin routes configured.")

	log.Println("All routes configured.")
}

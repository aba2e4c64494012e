package config

import (
	"Taxflow-Backend/internal/api/handlers"
	"Taxflow-Backend/internal/api/routes"
	"Taxflow-Backend/internal/middleware"
	"Taxflow-Backend/internal/utils"
	"Taxflow-Backend/internal/utils/storage"
	"Taxflow-Backend/pkg/analysis"
	"Taxflow-Backend/pkg/deadline"
	"Taxflow-Backend/pkg/document"
	"Taxflow-Backend/pkg/jwt"
	"Taxflow-Backend/pkg/lexoffice"
	"Taxflow-Backend/pkg/reconcile"
	"Taxflow-Backend/pkg/storagelocation"
	"Taxflow-Backend/pkg/task"
	"Taxflow-Backend/pkg/transaction"
	"Taxflow-Backend/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		BodyLimit:         25 * 1024 * 1024,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Europe/Berlin",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	documentRepository := document.NewDocumentRepository(db)
	transactionRepository := transaction.NewTransactionRepository(db)
	taskRepository := task.NewTaskRepository(db)
	locationRepository := storagelocation.NewStorageLocationRepository(db)
	ruleRepository := analysis.NewRuleRepository(db)

	// the syncer keeps document links, transaction links and tasks consistent
	syncer := reconcile.NewSyncer(documentRepository, transactionRepository, taskRepository)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	analysisService := analysis.NewAnalysisService(ruleRepository)
	documentService := document.NewDocumentService(
		documentRepository,
		transactionRepository,
		taskRepository,
		analysisService,
		syncer,
		s3,
	)
	lexofficeClient := lexoffice.NewClient()
	transactionService := transaction.NewTransactionService(
		transactionRepository,
		documentRepository,
		lexofficeClient,
		syncer,
	)
	taskService := task.NewTaskService(taskRepository, syncer)
	locationService := storagelocation.NewStorageLocationService(locationRepository)
	senderService := lexoffice.NewSenderService(lexofficeClient, documentRepository, locationRepository, s3)
	deadlineService := deadline.NewDeadlineService()

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	documentHandler := handlers.NewDocumentHandler(documentService, validator)
	transactionHandler := handlers.NewTransactionHandler(transactionService, validator)
	taskHandler := handlers.NewTaskHandler(taskService, validator)
	locationHandler := handlers.NewStorageLocationHandler(locationService, validator)
	lexofficeHandler := handlers.NewLexofficeHandler(senderService, validator)
	deadlineHandler := handlers.NewDeadlineHandler(deadlineService)
	analysisHandler := handlers.NewAnalysisHandler(analysisService, validator)

	// routes
	routesConfig := routes.Config{
		App:                    app,
		UserHandler:            userHandler,
		DocumentHandler:        documentHandler,
		TransactionHandler:     transactionHandler,
		TaskHandler:            taskHandler,
		StorageLocationHandler: locationHandler,
		LexofficeHandler:       lexofficeHandler,
		DeadlineHandler:        deadlineHandler,
		AnalysisHandler:        analysisHandler,
		Middleware:             middlewares,
		JWTService:             jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

package routes

import (
	"Taxflow-Backend/internal/api/handlers"
	"Taxflow-Backend/internal/middleware"
	"Taxflow-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                    *fiber.App
	UserHandler            handlers.UserHandler
	DocumentHandler        handlers.DocumentHandler
	TransactionHandler     handlers.TransactionHandler
	TaskHandler            handlers.TaskHandler
	StorageLocationHandler handlers.StorageLocationHandler
	LexofficeHandler       handlers.LexofficeHandler
	DeadlineHandler        handlers.DeadlineHandler
	AnalysisHandler        handlers.AnalysisHandler
	Middleware             middleware.Middleware
	JWTService             jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Documents()
	c.Transactions()
	c.Tasks()
	c.StorageLocations()
	c.Lexoffice()
	c.Deadlines()
	c.AnalysisRules()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Documents() {
	documents := c.App.Group("/api/v1/documents", c.Middleware.AuthMiddleware(c.JWTService))
	documents.Get("/dashboard", c.DocumentHandler.GetDashboardStats)

	// Basic CRUD operations
	documents.Post("", c.DocumentHandler.UploadDocument)
	documents.Get("", c.DocumentHandler.GetDocuments)
	documents.Get("/:id", c.DocumentHandler.GetDocumentDetails)
	documents.Patch("/:id", c.DocumentHandler.UpdateDocument)
	documents.Delete("/:id", c.DocumentHandler.DeleteDocument)
	documents.Delete("", c.DocumentHandler.DeleteAllDocuments)

	// Special operations
	documents.Patch("", c.DocumentHandler.BatchPatch)
	documents.Post("/:id/resolve-duplicate", c.DocumentHandler.ResolveDuplicate)
}

func (c *Config) Transactions() {
	transactions := c.App.Group("/api/v1/transactions", c.Middleware.AuthMiddleware(c.JWTService))

	transactions.Get("", c.TransactionHandler.GetTransactions)
	transactions.Post("", c.TransactionHandler.CreateTransaction)
	transactions.Patch("/:id", c.TransactionHandler.UpdateTransaction)
	transactions.Delete("/:id", c.TransactionHandler.DeleteTransaction)
	transactions.Post("/import", c.TransactionHandler.ImportTransactions)
}

func (c *Config) Tasks() {
	tasks := c.App.Group("/api/v1/tasks", c.Middleware.AuthMiddleware(c.JWTService))

	tasks.Get("", c.TaskHandler.GetTasks)
	tasks.Patch("/:id", c.TaskHandler.UpdateTask)
	tasks.Post("/regenerate", c.TaskHandler.RegenerateTasks)
}

func (c *Config) StorageLocations() {
	locations := c.App.Group("/api/v1/storage-locations", c.Middleware.AuthMiddleware(c.JWTService))

	locations.Get("", c.StorageLocationHandler.GetLocations)
	locations.Post("", c.StorageLocationHandler.CreateLocation)
	locations.Patch("/:id", c.StorageLocationHandler.UpdateLocation)
	locations.Delete("/:id", c.StorageLocationHandler.DeleteLocation)
	locations.Post("/:id/default", c.StorageLocationHandler.SetDefaultLocation)
}

func (c *Config) Lexoffice() {
	lexoffice := c.App.Group("/api/v1/lexoffice", c.Middleware.AuthMiddleware(c.JWTService))

	lexoffice.Post("/send", c.LexofficeHandler.SendDocuments)
	lexoffice.Get("/send/progress", c.LexofficeHandler.GetSendProgress)
}

func (c *Config) Deadlines() {
	deadlines := c.App.Group("/api/v1/deadlines", c.Middleware.AuthMiddleware(c.JWTService))

	deadlines.Get("", c.DeadlineHandler.GetDeadlines)
	deadlines.Post("/remind", c.DeadlineHandler.SendReminders)
}

func (c *Config) AnalysisRules() {
	rules := c.App.Group("/api/v1/analysis-rules", c.Middleware.AuthMiddleware(c.JWTService))

	rules.Get("", c.AnalysisHandler.GetRules)
	rules.Post("", c.AnalysisHandler.CreateRule)
	rules.Patch("/:id", c.AnalysisHandler.UpdateRule)
	rules.Delete("/:id", c.AnalysisHandler.DeleteRule)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

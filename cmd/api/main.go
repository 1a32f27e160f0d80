package main

import (
	"context"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/edithub/edithub-api/internal/config"
	"github.com/edithub/edithub-api/internal/db"
	"github.com/edithub/edithub-api/internal/handlers"
	"github.com/edithub/edithub-api/internal/lifecycle"
	"github.com/edithub/edithub-api/internal/middleware"
	"github.com/edithub/edithub-api/internal/models"
	"github.com/edithub/edithub-api/internal/realtime"
	"github.com/edithub/edithub-api/internal/storage"
	"github.com/edithub/edithub-api/internal/utils"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	if err := gdb.AutoMigrate(
		&models.Administrator{},
		&models.Customer{},
		&models.Editor{},
		&models.Category{},
		&models.Post{},
		&models.Bid{},
		&models.Project{},
		&models.Payment{},
		&models.Document{},
		&models.Feedback{},
	); err != nil {
		log.Fatal(err)
	}

	seedAdmin(gdb)

	rdb := realtime.NewRedis(cfg)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Redis not reachable:", err)
	}

	store, err := storage.NewClient(cfg)
	if err != nil {
		log.Fatal(err)
	}

	hub := realtime.NewHub()
	go hub.Run()

	svc := lifecycle.NewService(gdb, store, rdb, hub)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendBaseURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	authH := &handlers.AuthHandler{
		DB:           gdb,
		JWTSecret:    cfg.JWTSecret,
		SessionDays:  cfg.SessionDays,
		RememberDays: cfg.RememberDays,
	}
	googleH := &handlers.GoogleOAuthHandler{
		DB:              gdb,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
		Auth:            authH,
	}
	categoryH := handlers.NewCategoryHandler(svc)
	postH := handlers.NewPostHandler(svc)
	bidH := handlers.NewBidHandler(svc)
	projectH := handlers.NewProjectHandler(svc)
	paymentH := handlers.NewPaymentHandler(svc)
	documentH := handlers.NewDocumentHandler(svc)
	feedbackH := handlers.NewFeedbackHandler(svc)
	eventsH := handlers.NewEventsHandler(hub, cfg.JWTSecret)

	api := app.Group("/api")

	// public
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/google/start", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)
	api.Get("/categories", categoryH.List)
	api.Get("/editors/:id/feedback", feedbackH.ListForEditor)

	// protected (session cookie)
	protected := api.Group("/",
		middleware.JWTFromCookie(cfg.JWTSecret),
		middleware.AttachPrincipal(),
	)

	protected.Get("/me", authH.Me)

	// admin
	protected.Post("/categories",
		middleware.RequireRoles(models.RoleAdmin),
		categoryH.Create,
	)

	// posts
	protected.Get("/posts", postH.ListOpen)
	protected.Get("/posts/:id", postH.GetDetail)
	protected.Post("/posts",
		middleware.RequireRoles(models.RoleCustomer),
		postH.Create,
	)
	protected.Get("/customer/posts",
		middleware.RequireRoles(models.RoleCustomer),
		postH.ListMine,
	)
	protected.Patch("/posts/:id/close",
		middleware.RequireRoles(models.RoleCustomer),
		postH.Close,
	)

	// bids
	protected.Post("/posts/:id/bids",
		middleware.RequireRoles(models.RoleEditor),
		bidH.Submit,
	)
	protected.Get("/posts/:id/bids", bidH.ListForPost)
	protected.Patch("/posts/:id/bids/:bidId",
		middleware.RequireRoles(models.RoleCustomer),
		bidH.Decide,
	)
	protected.Get("/editor/bids",
		middleware.RequireRoles(models.RoleEditor),
		bidH.ListMine,
	)

	// projects
	protected.Get("/projects", projectH.List)
	protected.Get("/projects/:id", projectH.Get)
	protected.Patch("/projects/:id/complete",
		middleware.RequireRoles(models.RoleEditor),
		projectH.MarkComplete,
	)
	protected.Post("/projects/:id/payment",
		middleware.RequireRoles(models.RoleCustomer),
		paymentH.Capture,
	)
	protected.Post("/projects/:id/feedback",
		middleware.RequireRoles(models.RoleCustomer),
		feedbackH.Create,
	)

	// documents (two-phase upload)
	protected.Post("/projects/:id/uploads", documentH.Reserve)
	protected.Post("/documents", documentH.Confirm)
	protected.Get("/projects/:id/documents", documentH.ListForProject)

	// lifecycle event stream (auth via query token, see handler)
	app.Get("/ws/events", websocket.New(eventsH.WebSocketHandler))

	log.Fatal(app.Listen(":" + cfg.AppPort))
}

// seedAdmin creates the initial administrator from the environment. Admins
// are never registered through the public API.
func seedAdmin(gdb *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var existing models.Administrator
	if err := gdb.Where("email = ?", email).First(&existing).Error; err == nil {
		return
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		log.Fatal(err)
	}

	admin := models.Administrator{
		Name:     "Administrator",
		Email:    email,
		Password: hashed,
	}
	if err := gdb.Create(&admin).Error; err != nil {
		log.Fatal(err)
	}
	log.Printf("Seeded administrator %s", email)
}

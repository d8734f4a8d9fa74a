package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/solo-platform/community-api/internal/authz"
	"github.com/solo-platform/community-api/internal/config"
	"github.com/solo-platform/community-api/internal/database"
	"github.com/solo-platform/community-api/internal/handlers"
	"github.com/solo-platform/community-api/internal/middleware"
	"github.com/solo-platform/community-api/internal/repository"
	"github.com/solo-platform/community-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions("solo_session", store))

	// Initialize repositories and the permission resolver
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	eventRepo := repository.NewEventRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	taxonomyRepo := repository.NewTaxonomyRepository(db)
	resolver := authz.NewResolver(orgRepo, eventRepo)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	orgService := services.NewOrganizationService(orgRepo, resolver)
	membershipService := services.NewMembershipService(orgRepo, resolver)
	eventService := services.NewEventService(eventRepo, orgRepo, taxonomyRepo, resolver)
	notificationService := services.NewNotificationService(notificationRepo)
	taxonomyService := services.NewTaxonomyService(taxonomyRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	orgHandler := handlers.NewOrganizationHandler(orgService)
	membershipHandler := handlers.NewMembershipHandler(membershipService)
	eventHandler := handlers.NewEventHandler(eventService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	taxonomyHandler := handlers.NewTaxonomyHandler(taxonomyService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Community API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Organization routes (public reads, gated writes)
		orgs := api.Group("/organizations")
		{
			orgs.GET("", orgHandler.ListOrganizations)
			orgs.GET("/:id", orgHandler.GetOrganization)
			orgs.POST("", middleware.RequireAuth(), orgHandler.CreateOrganization)
			orgs.PUT("/:id", middleware.RequireAuth(), orgHandler.UpdateOrganization)
			orgs.PATCH("/:id", middleware.RequireAuth(), orgHandler.UpdateOrganization)
			orgs.DELETE("/:id", middleware.RequireAuth(), middleware.RequireStaff(), orgHandler.DeleteOrganization)
		}

		// Membership routes (confirmation handshake)
		memberships := api.Group("/memberships")
		memberships.Use(middleware.RequireAuth())
		{
			memberships.GET("", membershipHandler.ListMemberships)
			memberships.GET("/:id", membershipHandler.GetMembership)
			memberships.POST("/join", membershipHandler.JoinOrganization)
			memberships.POST("/invite", membershipHandler.InviteMember)
			memberships.PUT("/:id/confirm", membershipHandler.ConfirmMembership)
			memberships.PATCH("/:id/confirm", membershipHandler.ConfirmMembership)
			memberships.PUT("/:id/review", membershipHandler.ReviewMembership)
			memberships.PATCH("/:id/review", membershipHandler.ReviewMembership)
			memberships.DELETE("/:id", membershipHandler.DeleteMembership)
		}

		// Event taxonomy catalogs (public reads, staff writes)
		categories := api.Group("/event-categories")
		{
			categories.GET("", taxonomyHandler.ListCategories)
			categories.GET("/:id", taxonomyHandler.GetCategory)
			categories.POST("", middleware.RequireAuth(), middleware.RequireStaff(), taxonomyHandler.CreateCategory)
			categories.PUT("/:id", middleware.RequireAuth(), middleware.RequireStaff(), taxonomyHandler.UpdateCategory)
			categories.PATCH("/:id", middleware.RequireAuth(), middleware.RequireStaff(), taxonomyHandler.UpdateCategory)
			categories.DELETE("/:id", middleware.RequireAuth(), middleware.RequireStaff(), taxonomyHandler.DeleteCategory)
		}

		types := api.Group("/event-types")
		{
			types.GET("", taxonomyHandler.ListTypes)
			types.GET("/:id", taxonomyHandler.GetType)
			types.POST("", middleware.RequireAuth(), middleware.RequireStaff(), taxonomyHandler.CreateType)
			types.PUT("/:id", middleware.RequireAuth(), middleware.RequireStaff(), taxonomyHandler.UpdateType)
			types.PATCH("/:id", middleware.RequireAuth(), middleware.RequireStaff(), taxonomyHandler.UpdateType)
			types.DELETE("/:id", middleware.RequireAuth(), middleware.RequireStaff(), taxonomyHandler.DeleteType)
		}

		// Event routes (public reads, gated writes)
		events := api.Group("/events")
		{
			events.GET("", eventHandler.ListEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.GET("/:id/organizers", eventHandler.ListOrganizers)
			events.GET("/:id/guests", middleware.RequireAuth(), eventHandler.ListGuests)
			events.POST("", middleware.RequireAuth(), eventHandler.CreateEvent)
			events.PUT("/:id", middleware.RequireAuth(), eventHandler.UpdateEvent)
			events.PATCH("/:id", middleware.RequireAuth(), eventHandler.UpdateEvent)
			events.DELETE("/:id", middleware.RequireAuth(), middleware.RequireStaff(), eventHandler.DeleteEvent)
		}

		// Event participation routes
		organizers := api.Group("/event-organizers")
		organizers.Use(middleware.RequireAuth())
		{
			organizers.POST("", eventHandler.AddOrganizer)
			organizers.PUT("/:id", eventHandler.UpdateOrganizer)
			organizers.PATCH("/:id", eventHandler.UpdateOrganizer)
			organizers.DELETE("/:id", eventHandler.RemoveOrganizer)
		}

		guests := api.Group("/event-guests")
		guests.Use(middleware.RequireAuth())
		{
			guests.GET("", eventHandler.ListMyRegistrations)
			guests.POST("", eventHandler.RegisterGuest)
			guests.DELETE("/:id", eventHandler.RemoveGuest)
		}

		// Notification routes
		notifications := api.Group("/notifications")
		notifications.Use(middleware.RequireAuth())
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.GET("/:id", notificationHandler.GetNotification)
			notifications.POST("", middleware.RequireStaff(), notificationHandler.CreateNotification)
			notifications.PUT("/:id", notificationHandler.UpdateNotification)
			notifications.PATCH("/:id", notificationHandler.UpdateNotification)
			notifications.DELETE("/:id", notificationHandler.DeleteNotification)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/lexidev/users-backend/internal/config"
	"github.com/lexidev/users-backend/internal/database"
	"github.com/lexidev/users-backend/internal/handlers"
	"github.com/lexidev/users-backend/internal/middleware"
	"github.com/lexidev/users-backend/internal/routes"
	"github.com/lexidev/users-backend/internal/services"
	"github.com/lexidev/users-backend/internal/store"
	"github.com/lexidev/users-backend/pkg/utils"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	if cfg.IsProduction() && cfg.JWTSecret == "change-me-in-production" {
		log.Fatal("JWT_SECRET must be set in production")
	}

	// Connect to MongoDB
	log.Printf("Connecting to MongoDB...")
	if err := database.Connect(cfg.MongoURI, cfg.MongoDatabase); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	// The unique email index is the authoritative duplicate-signup guard;
	// refusing to start without it avoids a silent race window.
	if err := database.EnsureUserIndexes(context.Background()); err != nil {
		log.Fatal("Failed to ensure MongoDB user indexes:", err)
	}
	log.Println("✅ MongoDB user indexes ensured")

	// Connect to Redis (rate limiting fails open without it)
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Printf("⚠️  WARNING: Redis unavailable, rate limiting disabled: %v", err)
	} else {
		defer database.DisconnectRedis()
	}

	// Initialize Cloudinary service
	var uploads *services.CloudinaryService
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		var err error
		uploads, err = services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, "uploads/images")
		if err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("Profile picture uploads will not be available")
		} else {
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. Profile picture uploads will not be available")
	}

	// Wire up services
	users := store.NewMongoUserStore(database.DB)
	hasher := utils.NewArgon2Hasher(cfg.Argon2TimeCost)
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	accounts := services.NewAccountService(users, hasher, tokens, cfg.MaxConcurrentHashes)
	handler := handlers.NewUserHandler(accounts, uploads)

	// Setup router
	r := chi.NewRouter()
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.IsProduction() {
		r.Use(middleware.SecurityHeaders)
	}
	r.Use(middleware.RateLimitMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, handler, tokens)

	log.Println("📋 Registered routes:")
	log.Println("  GET   /health")
	log.Println("  POST  /api/users/signup")
	log.Println("  POST  /api/users/login")
	log.Println("  GET   /api/users/")
	log.Println("  PATCH /api/users/update")
	log.Println("  PATCH /api/users/change-password")
	log.Println("  PATCH /api/users/profile-picture")

	log.Printf("🚀 Users backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

package main

import (
	"log"
	"os"

	"scenespeak/internal/api"
	"scenespeak/internal/config"
	"scenespeak/internal/db"
	"scenespeak/internal/history"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize history storage: Postgres when DATABASE_URL is set,
	// in-memory otherwise
	var store history.Store
	if cfg.DatabaseURL != "" {
		log.Printf("Initializing database connection with DATABASE_URL...")
		if err := db.Init(); err != nil {
			log.Printf("Warning: Failed to initialize database: %v. Falling back to in-memory history.", err)
			store = history.NewMemoryStore()
		} else {
			store, err = history.NewPostgresStore()
			if err != nil {
				log.Printf("Warning: Failed to create history store: %v. Falling back to in-memory history.", err)
				store = history.NewMemoryStore()
			} else {
				log.Println("Database and history store initialized successfully")
			}
		}
	} else {
		log.Println("DATABASE_URL not set, keeping scan history in memory only")
		store = history.NewMemoryStore()
	}
	api.InitHistoryStore(store)

	r := gin.Default()

	// CORS for the browser client
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-User-ID")
	r.Use(cors.New(corsConfig))

	// Register routes
	api.RegisterRoutes(r)

	log.Printf("SceneSpeak backend running on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

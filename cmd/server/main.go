package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/lingo-app/backend/internal/auth"
	"github.com/lingo-app/backend/internal/config"
	"github.com/lingo-app/backend/internal/database"
	"github.com/lingo-app/backend/internal/lessons"
	"github.com/lingo-app/backend/internal/live"
	"github.com/lingo-app/backend/internal/middleware"
	"github.com/lingo-app/backend/internal/progression"
	"github.com/lingo-app/backend/internal/scheduler"
	"github.com/rs/cors"
)

func main() {
	// .env is optional — real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Static lesson content
	catalog, err := lessons.Load()
	if err != nil {
		log.Fatalf("Failed to load lesson catalog: %v", err)
	}
	log.Printf("Loaded %d lessons", catalog.Len())

	// Wiring
	hub := live.NewHub()
	store := progression.NewStore(db)
	service := progression.NewService(store, cfg, hub)

	authHandler := auth.NewHandler(db)
	progressionHandler := progression.NewHandler(service, catalog)
	lessonsHandler := lessons.NewHandler(catalog)
	liveHandler := live.NewHandler(hub, service.ProfileSnapshot, cfg.Server.AllowedOrigins)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	protected.HandleFunc("/profile", progressionHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/lessons", lessonsHandler.ListLessons).Methods("GET")
	protected.HandleFunc("/lessons/{id}", lessonsHandler.GetLesson).Methods("GET")
	protected.HandleFunc("/lessons/{id}/complete", progressionHandler.CompleteLesson).Methods("POST")
	protected.HandleFunc("/practice/complete", progressionHandler.CompletePractice).Methods("POST")
	protected.HandleFunc("/challenge/complete", progressionHandler.CompleteChallenge).Methods("POST")
	protected.HandleFunc("/leaderboard", progressionHandler.Leaderboard).Methods("GET")
	protected.HandleFunc("/notifications", progressionHandler.GetNotifications).Methods("GET")
	protected.HandleFunc("/notifications/{id}/read", progressionHandler.MarkNotificationRead).Methods("POST")
	protected.HandleFunc("/shop/lives", progressionHandler.BuyLives).Methods("POST")
	protected.HandleFunc("/ws", liveHandler.Subscribe).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Background jobs
	jobs := scheduler.New(service, cfg)
	jobs.Start()
	defer jobs.Stop()

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = strconv.Itoa(cfg.Server.Port)
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/highq/crm-backend/database"
	"github.com/highq/crm-backend/handlers"
	"github.com/highq/crm-backend/services"
	"github.com/highq/crm-backend/store"
)

func main() {
	cfg := LoadConfig()

	// Initialize the directory database
	db, err := database.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	directory := database.NewDirectoryService(db)
	if err := directory.Seed(); err != nil {
		log.Fatalf("Failed to seed directory: %v", err)
	}

	// In-memory stores live for the lifetime of the process
	notifications := store.NewNotificationStore()
	tasks := store.NewTaskStore(notifications, directory)
	store.SeedDemoData(tasks, notifications)

	authService := services.NewAuthService(directory, cfg.JWTSecret)

	// Update-signal hub for connected tabs
	hub := services.NewHub()
	go hub.Run()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	teamHandler := handlers.NewTeamHandler(directory)
	taskHandler := handlers.NewTaskHandler(tasks, hub)
	notificationHandler := handlers.NewNotificationHandler(notifications)
	wsHandler := handlers.NewWebSocketHandler(hub)

	// Setup router
	r := mux.NewRouter()

	// Auth routes
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/verify", authHandler.VerifyToken).Methods("GET")
	r.HandleFunc("/api/auth/request-password-reset", authHandler.RequestPasswordReset).Methods("POST")
	r.HandleFunc("/api/auth/reset-password", authHandler.ResetPassword).Methods("POST")

	// Team routes
	r.HandleFunc("/api/team", teamHandler.GetTeamMembers).Methods("GET")
	r.HandleFunc("/api/team/{memberId}", teamHandler.GetTeamMemberByID).Methods("GET")

	// Task routes
	r.HandleFunc("/api/tasks", taskHandler.GetTasks).Methods("GET")
	r.HandleFunc("/api/tasks", taskHandler.CreateTask).Methods("POST")
	r.HandleFunc("/api/tasks/{taskId}/status", taskHandler.UpdateTaskStatus).Methods("PUT")
	r.HandleFunc("/api/tasks/{taskId}/comments", taskHandler.AddComment).Methods("POST")

	// Notification routes
	r.HandleFunc("/api/notifications/{userId}", notificationHandler.GetForUser).Methods("GET")
	r.HandleFunc("/api/notifications/read", notificationHandler.MarkRead).Methods("POST")

	// WebSocket route for update signals
	r.HandleFunc("/api/ws", wsHandler.Handle)

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      c.Handler(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(server.ListenAndServe())
}

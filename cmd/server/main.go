package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/fedcoord/backend/internal/artifacts"
	"github.com/fedcoord/backend/internal/auth"
	"github.com/fedcoord/backend/internal/handlers"
	"github.com/fedcoord/backend/internal/metrics"
	"github.com/fedcoord/backend/internal/middleware"
	"github.com/fedcoord/backend/internal/service"
	"github.com/fedcoord/backend/internal/storage/sqlite"
	"github.com/fedcoord/backend/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, relying on environment variables")
	}
	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/fedcoord.db")
	mediaRoot := getEnv("MEDIA_ROOT", "./media")
	port := getEnv("API_PORT", "8080")

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	artifactStore, err := artifacts.NewDiskStore(mediaRoot)
	if err != nil {
		slog.Error("Failed to initialize media root", "error", err)
		os.Exit(1)
	}
	slog.Info("Media root initialized", "path", mediaRoot)

	authenticator := auth.NewPasswordAuthenticator(store)
	assignments := service.NewAssignmentService(store)
	iterations := service.NewIterationService(store)
	h := handlers.NewHandler(store, authenticator, assignments, iterations, artifactStore)

	gin.SetMode(getEnv("GIN_MODE", gin.ReleaseMode))
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(metrics.Middleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173"), ","),
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	h.Routes(r)

	// Stored artifacts are referenced by path under the media root.
	r.Static("/media", artifactStore.Root())
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	slog.Info("Server starting", "port", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"broker/cmd"
	"broker/internal/adapters/out/fcm"
	"broker/internal/adapters/out/postgres"
	"broker/internal/core/ports"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB, err := gorm.Open(gorm_postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.AutoMigrate(gormDB); err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, createPushSender(configs), nil)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func createPushSender(configs cmd.Config) ports.PushSender {
	if configs.FCMCredentialsPath == "" {
		log.Warn("FCM_CREDENTIALS_PATH is not set, push delivery disabled")
		return fcm.NoopSender{}
	}

	sender, err := fcm.NewSender(context.Background(), configs.FCMCredentialsPath)
	if err != nil {
		log.Fatalf("Error creating FCM sender: %v", err)
	}
	return sender
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warn("No .env file found, reading configuration from environment")
	}

	return cmd.Config{
		HTTPPort:           envVariable("HTTP_PORT", "8080"),
		DBHost:             envVariable("DB_HOST", "localhost"),
		DBPort:             envVariable("DB_PORT", "5432"),
		DBUser:             envVariable("DB_USER", "postgres"),
		DBPassword:         envVariable("DB_PASSWORD", ""),
		DBName:             envVariable("DB_NAME", "broker"),
		DBSslMode:          envVariable("DB_SSLMODE", "disable"),
		JWTSecret:          requireEnvVariable("JWT_SECRET"),
		TokenTTL:           envDuration("TOKEN_TTL_HOURS", 24) * time.Hour,
		FCMCredentialsPath: envVariable("FCM_CREDENTIALS_PATH", ""),
		OutboxBatchSize:    envInt("OUTBOX_BATCH_SIZE", 50),
		OutboxMaxAttempts:  envInt("OUTBOX_MAX_ATTEMPTS", 5),
	}
}

func envVariable(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func requireEnvVariable(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Environment variable %s is required", key)
	}
	return value
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

func envDuration(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback))
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	app.CreateHTTPServer().RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil {
			log.Infof("Web server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Error shutting down web server: %v", err)
	}
}

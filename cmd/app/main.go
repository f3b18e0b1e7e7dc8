package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"optistore/cmd"
	httpin "optistore/internal/adapters/in/http"
	"optistore/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/lib/pq"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	createDBIfNotExists(configs)
	gormDB := mustGormOpen(configs)

	sender, err := cmd.NewEmailSender(ctx, configs, logger)
	if err != nil {
		log.Fatalf("Failed to configure email sender: %v", err)
	}

	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
		sender,
		logger,
	)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config := cmd.Config{
		HTTPPort:           envOrDefault("HTTP_PORT", "8080"),
		DBHost:             os.Getenv("DB_HOST"),
		DBPort:             envOrDefault("DB_PORT", "5432"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		DBSslMode:          envOrDefault("DB_SSLMODE", "disable"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		NotifierDriver:     envOrDefault("NOTIFIER_DRIVER", cmd.NotifierLog),
		AWSRegion:          os.Getenv("AWS_REGION"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		EmailSender:        os.Getenv("EMAIL_SENDER"),
		DispatchSchedule:   envOrDefault("DISPATCH_SCHEDULE", cmd.DefaultDispatchSchedule),
		DispatchBatchSize:  cmd.DefaultDispatchBatchSize,
	}

	if raw := os.Getenv("DISPATCH_BATCH_SIZE"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("Invalid DISPATCH_BATCH_SIZE %q: %v", raw, err)
		}
		config.DispatchBatchSize = size
	}

	if config.JWTSecret == "" {
		log.Fatalf("JWT_SECRET must be set")
	}
	return config
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func makeConnectionString(host string, port string, user string,
	password string, dbName string, sslMode string) string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		host,
		port,
		user,
		password,
		dbName,
		sslMode)
}

// createDBIfNotExists connects to the maintenance database and creates the
// service database when it is missing.
func createDBIfNotExists(configs cmd.Config) {
	dsn := makeConnectionString(configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, "postgres", configs.DBSslMode)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", configs.DBName).Scan(&exists)
	if err != nil {
		log.Fatalf("Failed to check database existence: %v", err)
	}
	if exists {
		return
	}

	if _, err = db.Exec("CREATE DATABASE " + pq.QuoteIdentifier(configs.DBName)); err != nil {
		log.Fatalf("Failed to create database %s: %v", configs.DBName, err)
	}
}

func mustGormOpen(configs cmd.Config) *gorm.DB {
	dsn := makeConnectionString(configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.New(gorm_postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to open database through gorm: %v", err)
	}

	if err = gormDB.AutoMigrate(postgres.Models()...); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	return gormDB
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, configs cmd.Config) {
	e, err := httpin.NewRouter(ctx, app.CreateServer(), httpin.RouterOptions{
		JWTSecret:  configs.JWTSecret,
		LogRequest: true,
	})
	if err != nil {
		log.Fatalf("Failed to build HTTP router: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}

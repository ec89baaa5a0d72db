package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jellyfish/api/api"
	"github.com/jellyfish/api/colors"
	"github.com/jellyfish/api/datastore"
	"github.com/jellyfish/api/logging"
	"github.com/jellyfish/api/metrics"
	"github.com/jellyfish/api/migrations"
	"github.com/jellyfish/api/scheduler"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Get configuration from environment
	config := api.Config{
		HTTPPort:          getEnv("HTTP_PORT", ":5000"),
		DatabaseType:      getEnv("DB_TYPE", "postgres"),
		DatabaseUser:      getEnv("DB_USER", "postgres"),
		DatabasePassword:  getEnv("DB_PASSWORD", ""),
		DatabaseHost:      getEnv("DB_HOST", "localhost"),
		DatabaseName:      getEnv("DB_NAME", "jellyfish"),
		SSLMode:           getEnv("SSL_MODE", "disable"),
		HistoryEnabled:    getEnvBool("HISTORY_ENABLED", false),
		HistoryStore:      getEnv("HISTORY_STORE", "postgres"),
		HistoryRetention:  getEnvInt("HISTORY_RETENTION_HOURS", 24*30),
		JwtSecret:         getEnv("JWT_SECRET", ""),
		JwtAccessDuration: getEnvInt("JWT_ACCESS_DURATION", 900), // 15 minutes
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		AllowedOrigins:    getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		MatchWorkers:      getEnvInt("MATCH_WORKERS", 1),
		LogFile:           getEnv("LOG_FILE", ""),
		LogMaxSizeMB:      getEnvInt("LOG_MAX_SIZE_MB", 10),
		DevMode:           getEnvBool("DEV_MODE", true),
	}

	logCloser := logging.Setup(logging.Config{File: config.LogFile, MaxSizeMB: config.LogMaxSizeMB})
	defer logCloser.Close()

	cache := colors.NewCache(colors.Exact)
	if err := metrics.RegisterCache(prometheus.DefaultRegisterer, cache); err != nil {
		log.Fatalf("Failed to register cache metrics: %v", err)
	}

	app := &api.Application{
		Config: config,
		Batcher: colors.Batcher{
			Matcher: cache,
			Hook:    metrics.BatchHook{},
			Workers: config.MatchWorkers,
		},
	}

	if config.HistoryEnabled {
		historyRepo, closeHistory, err := openHistory(config)
		if err != nil {
			log.Fatalf("Failed to open match history: %v", err)
		}
		defer closeHistory()
		app.HistoryRepo = historyRepo

		// Prune old history in the background
		pruner := scheduler.NewScheduler(historyRepo, time.Duration(config.HistoryRetention)*time.Hour)
		pruner.Start()
		defer pruner.Stop()
	} else {
		log.Println("Match history disabled")
	}

	mux := http.NewServeMux()

	log.Println("Jellyfish API Starting...")
	if err := app.Serve(mux); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// openHistory returns the configured history store and a func that releases it
func openHistory(config api.Config) (datastore.MatchHistoryRepository, func(), error) {
	switch config.HistoryStore {
	case "memory":
		log.Println("Keeping match history in memory")
		return datastore.NewMemoryHistory(), func() {}, nil
	case "postgres", "":
	default:
		return nil, nil, fmt.Errorf("unknown history store %q", config.HistoryStore)
	}

	connStr := datastore.BuildDBConnStr(
		config.DatabasePassword,
		config.DatabaseUser,
		config.DatabaseHost,
		config.DatabaseName,
		config.SSLMode,
	)

	dbConn, err := datastore.NewDB(config.DatabaseType, connStr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Running database migrations...")
	if err := migrations.RunMigrations(dbConn); err != nil {
		dbConn.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	historyRepo, err := datastore.NewMatchHistoryDatabase(dbConn)
	if err != nil {
		dbConn.Close()
		return nil, nil, fmt.Errorf("failed to create match history repository: %w", err)
	}

	return historyRepo, func() { dbConn.Close() }, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intVal
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolVal
}

func getEnvSlice(key, defaultValue string) []string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	return strings.Split(value, ",")
}

package api

import (
	"github.com/jellyfish/api/colors"
	"github.com/jellyfish/api/datastore"
)

type Config struct {
	HTTPPort          string
	DatabaseType      string
	DatabaseUser      string
	DatabasePassword  string
	DatabaseHost      string
	DatabaseName      string
	SSLMode           string
	HistoryEnabled    bool
	HistoryStore      string // "postgres" or "memory"
	HistoryRetention  int // hours
	JwtSecret         string
	JwtAccessDuration int // seconds
	AdminPasswordHash string
	AllowedOrigins    []string
	MatchWorkers      int
	LogFile           string
	LogMaxSizeMB      int
	DevMode           bool
}

type Application struct {
	Config  Config
	Batcher colors.Batcher
	// HistoryRepo is nil when match history is disabled
	HistoryRepo datastore.MatchHistoryRepository
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alimgiray/contribution-analyzer/pkg/logger"
	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	GitHub  GitHubConfig
	Stats   StatsConfig
	Scoring ScoringConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type GitHubConfig struct {
	Token             string
	APIURL            string
	RateLimit         float64
	DetailConcurrency int
}

type StatsConfig struct {
	DefaultSinceDays  int
	DefaultMaxCommits int
	CacheTTL          time.Duration
}

// ScoringConfig mirrors models.ScoringConfig with plain types so the config
// package stays independent from the domain packages
type ScoringConfig struct {
	CommitWeight  float64
	LOCCap        int
	LOCWeight     float64
	IssueRefBonus float64
	TypeBonus     map[string]float64
}

var AppConfig *Config

var defaultTypeBonus = map[string]float64{
	"bugfix":   3.0,
	"feature":  4.0,
	"test":     2.0,
	"refactor": 1.5,
	"docs":     1.0,
	"chore":    0.5,
	"general":  0.0,
}

// Load loads configuration from .env file and environment variables
func Load() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	typeBonus := make(map[string]float64, len(defaultTypeBonus))
	for changeType, bonus := range defaultTypeBonus {
		typeBonus[changeType] = getEnvAsFloat("SCORE_BONUS_"+strings.ToUpper(changeType), bonus)
	}

	AppConfig = &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "5000"),
			Mode:           getEnv("GIN_MODE", "release"),
			ReadTimeout:    getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:   getEnvAsInt("WRITE_TIMEOUT", 120),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		GitHub: GitHubConfig{
			Token:             getEnv("GITHUB_TOKEN", ""),
			APIURL:            getEnv("GITHUB_API_URL", ""),
			RateLimit:         getEnvAsFloat("GITHUB_RATE_LIMIT", 0),
			DetailConcurrency: getEnvAsInt("GITHUB_DETAIL_CONCURRENCY", 1),
		},
		Stats: StatsConfig{
			DefaultSinceDays:  getEnvAsInt("STATS_SINCE_DAYS", 60),
			DefaultMaxCommits: getEnvAsInt("STATS_MAX_COMMITS", 200),
			CacheTTL:          getEnvAsDuration("STATS_CACHE_TTL", 5*time.Minute),
		},
		Scoring: ScoringConfig{
			CommitWeight:  getEnvAsFloat("SCORE_COMMIT_WEIGHT", 5),
			LOCCap:        getEnvAsInt("SCORE_LOC_CAP", 800),
			LOCWeight:     getEnvAsFloat("SCORE_LOC_WEIGHT", 2.0),
			IssueRefBonus: getEnvAsFloat("SCORE_ISSUE_REF_BONUS", 1.0),
			TypeBonus:     typeBonus,
		},
	}

	if AppConfig.GitHub.Token == "" {
		logger.Warn("GITHUB_TOKEN is not set, GitHub API calls will be heavily rate limited")
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		logger.Warnf("Invalid value for %s, using default: %d", key, defaultValue)
	}
	return defaultValue
}

// getEnvAsFloat gets an environment variable as float or returns a default value
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
		logger.Warnf("Invalid value for %s, using default: %v", key, defaultValue)
	}
	return defaultValue
}

// getEnvAsDuration accepts Go duration strings ("5m") or a plain number of seconds
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	logger.Warnf("Invalid value for %s, using default: %s", key, defaultValue)
	return defaultValue
}

// getEnvAsList splits a comma separated environment variable
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}

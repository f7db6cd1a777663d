package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
type Config struct {
	MusicAppName     string        // Scripting name of the player, e.g. "Music"
	OsascriptPath    string        // Path to the osascript binary
	BridgeTimeout    time.Duration // Upper bound for a single bridge round trip
	Strategy         string        // Default snapshot strategy: explicit or passthrough
	ParentDepthLimit int           // Maximum playlist parent chain depth

	LogLevel      string
	LogFile       string // Empty disables the rotating file sink
	LogMaxSize    int    // Megabytes
	LogMaxBackups int
	LogMaxAge     int // Days
	LogCompress   bool

	ServerAddr string
	APISecret  string // HMAC secret for bearer tokens; empty disables auth

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	WatchChannel  string
	WatchInterval time.Duration
	LibraryPath   string // Directory watched for library changes; empty disables
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override existing env vars.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error loading .env, relying on existing environment variables and defaults: %v", err)
	}

	return &Config{
		MusicAppName:     getEnv("MUSIC_APP_NAME", "Music"),
		OsascriptPath:    getEnv("OSASCRIPT_PATH", "osascript"),
		BridgeTimeout:    getEnvDuration("BRIDGE_TIMEOUT", 30*time.Second),
		Strategy:         getEnv("SNAPSHOT_STRATEGY", "explicit"),
		ParentDepthLimit: getEnvInt("PARENT_DEPTH_LIMIT", 64),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       os.Getenv("LOG_FILE"),
		LogMaxSize:    getEnvInt("LOG_MAX_SIZE", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAge:     getEnvInt("LOG_MAX_AGE", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", false),

		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		APISecret:  os.Getenv("API_SECRET"), // no hardcoded default for secrets

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""), // no password by default
		RedisDB:       getEnvInt("REDIS_DB", 0),

		WatchChannel:  getEnv("WATCH_CHANNEL", "musicbridge:player"),
		WatchInterval: getEnvDuration("WATCH_INTERVAL", 2*time.Second),
		LibraryPath:   os.Getenv("LIBRARY_PATH"),
	}
}

// RedisEnabled reports whether a Redis host was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Trips    TripsConfig
	Schedule ScheduleConfig
	Export   ExportConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// TripsConfig governs trip snapshot caching and the debounced autosave loop.
type TripsConfig struct {
	CacheEnabled     bool
	CacheTTL         time.Duration
	AutosaveDebounce time.Duration
	SaveWorkers      int
	SaveRetries      int
	DefaultTravelers int
}

// ScheduleConfig tunes scheduling engine defaults.
type ScheduleConfig struct {
	DayStart        string
	BufferMinutes   int
	DefaultDuration int
	ClusterRadiusKm float64
	MinGapMinutes   int
}

// ExportConfig controls itinerary/budget export artifacts.
type ExportConfig struct {
	StorageDir      string
	SignedURLSecret string
	SignedURLTTL    time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Trips = TripsConfig{
		CacheEnabled:     v.GetBool("TRIPS_CACHE_ENABLED"),
		CacheTTL:         parseDuration(v.GetString("TRIPS_CACHE_TTL"), 10*time.Minute),
		AutosaveDebounce: parseDuration(v.GetString("TRIPS_AUTOSAVE_DEBOUNCE"), 2*time.Second),
		SaveWorkers:      v.GetInt("TRIPS_SAVE_WORKERS"),
		SaveRetries:      v.GetInt("TRIPS_SAVE_RETRIES"),
		DefaultTravelers: v.GetInt("TRIPS_DEFAULT_TRAVELERS"),
	}

	cfg.Schedule = ScheduleConfig{
		DayStart:        v.GetString("SCHEDULE_DAY_START"),
		BufferMinutes:   v.GetInt("SCHEDULE_BUFFER_MINUTES"),
		DefaultDuration: v.GetInt("SCHEDULE_DEFAULT_DURATION_MINUTES"),
		ClusterRadiusKm: v.GetFloat64("SCHEDULE_CLUSTER_RADIUS_KM"),
		MinGapMinutes:   v.GetInt("SCHEDULE_MIN_GAP_MINUTES"),
	}

	cfg.Export = ExportConfig{
		StorageDir:      v.GetString("EXPORT_STORAGE_DIR"),
		SignedURLSecret: v.GetString("EXPORT_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("EXPORT_SIGNED_URL_TTL"), 24*time.Hour),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "wayplan")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("TRIPS_CACHE_ENABLED", false)
	v.SetDefault("TRIPS_CACHE_TTL", "10m")
	v.SetDefault("TRIPS_AUTOSAVE_DEBOUNCE", "2s")
	v.SetDefault("TRIPS_SAVE_WORKERS", 1)
	v.SetDefault("TRIPS_SAVE_RETRIES", 3)
	v.SetDefault("TRIPS_DEFAULT_TRAVELERS", 2)

	v.SetDefault("SCHEDULE_DAY_START", "9:00 AM")
	v.SetDefault("SCHEDULE_BUFFER_MINUTES", 30)
	v.SetDefault("SCHEDULE_DEFAULT_DURATION_MINUTES", 60)
	v.SetDefault("SCHEDULE_CLUSTER_RADIUS_KM", 2.0)
	v.SetDefault("SCHEDULE_MIN_GAP_MINUTES", 60)

	v.SetDefault("EXPORT_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORT_SIGNED_URL_SECRET", "dev_exports_secret")
	v.SetDefault("EXPORT_SIGNED_URL_TTL", "24h")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

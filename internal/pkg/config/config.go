package config

import (
	"os"
	"strings"
	"time"

	"github.com/piresc/angkut/internal/pkg/logger"
	"github.com/piresc/angkut/internal/pkg/models"
	"github.com/spf13/viper"
)

// InitConfig loads configPath (a dotenv file) when present, then overlays the
// process environment. Missing files are not an error outside local runs.
func InitConfig(configPath string) *models.Config {
	v := newViper()
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				logger.Warn("error loading config from file",
					logger.String("path", configPath),
					logger.Err(err))
			}
		} else if v.GetString("APP_ENV") == "local" {
			logger.Warn("config file not found", logger.String("path", configPath))
		}
	}
	return loadConfig(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "angkut")
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 9990)
	v.SetDefault("SERVER_READ_TIMEOUT", 10)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 10)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 10)
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_IDLE_CONNS", 5)
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("MONGO_DATABASE", "angkut")
	v.SetDefault("MONGO_ACTIVITY_COLLECTION", "truck_activity")
	v.SetDefault("NATS_URL", "nats://localhost:4222")
	v.SetDefault("NSQ_ADDRESS", "localhost:4150")
	v.SetDefault("NSQ_NOTIFICATION_TOPIC", "notifications")
	v.SetDefault("JWT_EXPIRATION", 60)
	v.SetDefault("JWT_ISSUER", "angkut")
	v.SetDefault("PRICING_CURRENCY", "IDR")
	v.SetDefault("PRICING_MINOR_DIGITS", 0)
	v.SetDefault("ROUTING_ENABLED", false)
	v.SetDefault("ROUTING_TIMEOUT", "5s")
	v.SetDefault("ROUTING_AVG_SPEED_KMH", 40.0)
	v.SetDefault("ROUTING_PROFILE", "driving")
	v.SetDefault("GEOCODER_TIMEOUT", "5s")
	v.SetDefault("GEOCODER_CACHE_TTL", "24h")
	v.SetDefault("PAYMENT_GATEWAY_TIMEOUT", "15s")
	v.SetDefault("TRACKING_MIN_LATITUDE", -11.0)
	v.SetDefault("TRACKING_MAX_LATITUDE", 6.0)
	v.SetDefault("TRACKING_MIN_LONGITUDE", 95.0)
	v.SetDefault("TRACKING_MAX_LONGITUDE", 141.0)
	v.SetDefault("SEQUENCER_MINUTES_PER_KM", 2.0)
	v.SetDefault("LOCK_TTL", "10s")
	v.SetDefault("LOCK_RETRY_DELAY", "50ms")
	v.SetDefault("LOCK_MAX_WAIT", "5s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE_PATH", "")
	v.SetDefault("LOG_TYPE", "console")
}

func loadConfig(v *viper.Viper) *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = v.GetString("APP_NAME")
	configs.App.Environment = v.GetString("APP_ENV")
	configs.App.Debug = v.GetBool("APP_DEBUG")
	configs.App.Version = v.GetString("APP_VERSION")

	// Server config
	configs.Server.Host = v.GetString("SERVER_HOST")
	configs.Server.Port = v.GetInt("SERVER_PORT")
	configs.Server.ReadTimeout = v.GetInt("SERVER_READ_TIMEOUT")
	configs.Server.WriteTimeout = v.GetInt("SERVER_WRITE_TIMEOUT")
	configs.Server.ShutdownTimeout = v.GetInt("SERVER_SHUTDOWN_TIMEOUT")

	// Database config
	configs.Database.Driver = v.GetString("DB_DRIVER")
	configs.Database.Host = v.GetString("DB_HOST")
	configs.Database.Port = v.GetInt("DB_PORT")
	configs.Database.Username = v.GetString("DB_USERNAME")
	configs.Database.Password = v.GetString("DB_PASSWORD")
	configs.Database.Database = v.GetString("DB_DATABASE")
	configs.Database.SSLMode = v.GetString("DB_SSL_MODE")
	configs.Database.MaxConns = v.GetInt("DB_MAX_CONNS")
	configs.Database.IdleConns = v.GetInt("DB_IDLE_CONNS")

	// Redis config
	configs.Redis.Host = v.GetString("REDIS_HOST")
	configs.Redis.Port = v.GetInt("REDIS_PORT")
	configs.Redis.Password = v.GetString("REDIS_PASSWORD")
	configs.Redis.DB = v.GetInt("REDIS_DB")
	configs.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")

	// Mongo config
	configs.Mongo.URI = v.GetString("MONGO_URI")
	configs.Mongo.Database = v.GetString("MONGO_DATABASE")
	configs.Mongo.Collection = v.GetString("MONGO_ACTIVITY_COLLECTION")

	// Messaging
	configs.NATS.URL = v.GetString("NATS_URL")
	configs.NSQ.Address = v.GetString("NSQ_ADDRESS")
	configs.NSQ.NotificationTopic = v.GetString("NSQ_NOTIFICATION_TOPIC")

	// JWT config
	configs.JWT.Secret = v.GetString("JWT_SECRET")
	configs.JWT.Expiration = v.GetInt("JWT_EXPIRATION")
	configs.JWT.Issuer = v.GetString("JWT_ISSUER")

	configs.APIKey.PaymentGatewayHash = v.GetString("PAYMENT_GATEWAY_API_KEY_HASH")

	configs.Pricing.Currency = v.GetString("PRICING_CURRENCY")
	configs.Pricing.MinorDigits = v.GetInt("PRICING_MINOR_DIGITS")

	configs.Routing.Enabled = v.GetBool("ROUTING_ENABLED")
	configs.Routing.BaseURL = v.GetString("ROUTING_BASE_URL")
	configs.Routing.Timeout = v.GetDuration("ROUTING_TIMEOUT")
	configs.Routing.AvgSpeedKmh = v.GetFloat64("ROUTING_AVG_SPEED_KMH")
	configs.Routing.ProfileRoute = v.GetString("ROUTING_PROFILE")

	configs.Geocoder.BaseURL = v.GetString("GEOCODER_BASE_URL")
	configs.Geocoder.Timeout = v.GetDuration("GEOCODER_TIMEOUT")
	configs.Geocoder.CacheTTL = v.GetDuration("GEOCODER_CACHE_TTL")

	configs.PaymentGateway.BaseURL = v.GetString("PAYMENT_GATEWAY_BASE_URL")
	configs.PaymentGateway.APIKey = v.GetString("PAYMENT_GATEWAY_API_KEY")
	configs.PaymentGateway.CallbackURL = v.GetString("PAYMENT_GATEWAY_CALLBACK_URL")
	configs.PaymentGateway.Timeout = v.GetDuration("PAYMENT_GATEWAY_TIMEOUT")

	configs.Tracking.MinLatitude = v.GetFloat64("TRACKING_MIN_LATITUDE")
	configs.Tracking.MaxLatitude = v.GetFloat64("TRACKING_MAX_LATITUDE")
	configs.Tracking.MinLongitude = v.GetFloat64("TRACKING_MIN_LONGITUDE")
	configs.Tracking.MaxLongitude = v.GetFloat64("TRACKING_MAX_LONGITUDE")
	configs.Tracking.GeohashPrefix = splitList(v.GetString("TRACKING_GEOHASH_PREFIXES"))

	configs.Sequencer.MinutesPerKm = v.GetFloat64("SEQUENCER_MINUTES_PER_KM")

	configs.Lock.TTL = v.GetDuration("LOCK_TTL")
	configs.Lock.RetryDelay = v.GetDuration("LOCK_RETRY_DELAY")
	configs.Lock.MaxWait = v.GetDuration("LOCK_MAX_WAIT")

	// Logger config
	configs.Logger.Level = v.GetString("LOG_LEVEL")
	configs.Logger.FilePath = v.GetString("LOG_FILE_PATH")
	configs.Logger.Type = v.GetString("LOG_TYPE")

	return configs
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Helper functions to get environment variables with different types

func GetEnv(key, defaultValue string) string {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault(key, defaultValue)
	value := v.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault(key, defaultValue)
	return v.GetInt(key)
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault(key, defaultValue)
	return v.GetBool(key)
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault(key, defaultValue)
	return v.GetFloat64(key)
}

func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault(key, defaultValue)
	return v.GetDuration(key)
}

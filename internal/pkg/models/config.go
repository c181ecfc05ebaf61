package models

import "time"

// Config represents application configuration
type Config struct {
	App            AppConfig
	Server         ServerConfig
	Database       DatabaseConfig
	Redis          RedisConfig
	Mongo          MongoConfig
	NATS           NATSConfig
	NSQ            NSQConfig
	JWT            JWTConfig
	APIKey         APIKeyConfig
	Pricing        PricingConfig
	Routing        RoutingConfig
	Geocoder       GeocoderConfig
	PaymentGateway PaymentGatewayConfig
	Tracking       TrackingConfig
	Sequencer      SequencerConfig
	Lock           LockConfig
	Logger         LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// MongoConfig contains MongoDB connection configuration for the activity log
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// NSQConfig contains the nsqd address notifications are published to
type NSQConfig struct {
	Address           string
	NotificationTopic string
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Expiration int // minutes
	Issuer     string
}

// APIKeyConfig holds bcrypt hashes of the keys accepted on internal routes
type APIKeyConfig struct {
	PaymentGatewayHash string
}

// PricingConfig controls how booking amounts are turned into payment amounts
type PricingConfig struct {
	Currency    string
	MinorDigits int // number of decimal digits in the provider's smallest unit
}

// RoutingConfig configures the road-routing distance service
type RoutingConfig struct {
	Enabled      bool
	BaseURL      string
	Timeout      time.Duration
	AvgSpeedKmh  float64
	ProfileRoute string
}

// GeocoderConfig configures the address resolution service
type GeocoderConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// PaymentGatewayConfig configures the external payment provider
type PaymentGatewayConfig struct {
	BaseURL     string
	APIKey      string
	CallbackURL string
	Timeout     time.Duration
}

// TrackingConfig describes the operating area accepted for tracking updates
type TrackingConfig struct {
	MinLatitude   float64
	MaxLatitude   float64
	MinLongitude  float64
	MaxLongitude  float64
	GeohashPrefix []string
}

// SequencerConfig tunes the delivery sequencer
type SequencerConfig struct {
	MinutesPerKm float64
}

// LockConfig tunes the per-booking lock
type LockConfig struct {
	TTL        time.Duration
	RetryDelay time.Duration
	MaxWait    time.Duration
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level    string
	FilePath string
	Type     string
}

package health

import (
	"context"
	"fmt"

	"github.com/piresc/angkut/internal/pkg/database"
	"github.com/piresc/angkut/internal/pkg/nats"
)

// HealthChecker defines the interface for health checking dependencies
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// CheckerFunc adapts a function to HealthChecker
type CheckerFunc func(ctx context.Context) error

// CheckHealth calls f
func (f CheckerFunc) CheckHealth(ctx context.Context) error {
	return f(ctx)
}

// NewPostgresHealthChecker checks PostgreSQL connection health
func NewPostgresHealthChecker(client *database.PostgresClient) HealthChecker {
	return CheckerFunc(func(ctx context.Context) error {
		if client == nil {
			return fmt.Errorf("postgres not configured")
		}
		return client.Ping(ctx)
	})
}

// NewRedisHealthChecker checks Redis connection health
func NewRedisHealthChecker(client *database.RedisClient) HealthChecker {
	return CheckerFunc(func(ctx context.Context) error {
		if client == nil {
			return fmt.Errorf("redis not configured")
		}
		return client.Ping(ctx)
	})
}

// NewMongoHealthChecker checks MongoDB connection health
func NewMongoHealthChecker(client *database.MongoClient) HealthChecker {
	return CheckerFunc(func(ctx context.Context) error {
		if client == nil {
			return fmt.Errorf("mongo not configured")
		}
		return client.Ping(ctx)
	})
}

// NewNATSHealthChecker checks the NATS connection
func NewNATSHealthChecker(client *nats.Client) HealthChecker {
	return CheckerFunc(func(ctx context.Context) error {
		if client == nil {
			return fmt.Errorf("nats not configured")
		}
		return client.Ping()
	})
}

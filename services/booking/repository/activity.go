package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/piresc/angkut/internal/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultActivityCollection holds truck activity entries when none is configured
const DefaultActivityCollection = "truck_activity"

// ActivityRepo is the append-only truck activity log in MongoDB
type ActivityRepo struct {
	col *mongo.Collection
}

// NewActivityRepository creates an activity log on the given collection
func NewActivityRepository(col *mongo.Collection) *ActivityRepo {
	return &ActivityRepo{col: col}
}

// Append inserts one entry. Entries are never updated.
func (r *ActivityRepo) Append(ctx context.Context, entry models.ActivityEntry) error {
	if _, err := r.col.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to append activity: %w", err)
	}
	return nil
}

// ListByTruck returns the truck's newest entries first
func (r *ActivityRepo) ListByTruck(ctx context.Context, truckID uuid.UUID, limit int) ([]models.ActivityEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"truck_id": truckID.String()}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer cur.Close(ctx)

	entries := make([]models.ActivityEntry, 0)
	for cur.Next(ctx) {
		var entry models.ActivityEntry
		if err := cur.Decode(&entry); err != nil {
			return nil, fmt.Errorf("failed to decode activity: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activity: %w", err)
	}
	return entries, nil
}

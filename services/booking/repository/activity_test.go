package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/angkut/internal/pkg/models"
	"github.com/piresc/angkut/services/booking/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestActivityRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	truckID := uuid.New()
	actor := models.Actor{UserID: uuid.New(), Role: models.RoleTrucker}

	mt.Run("append", func(mt *mtest.T) {
		repo := repository.NewActivityRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		entry := models.NewActivityEntry(truckID, uuid.New(), "status_confirmed", actor, nil, time.Now().UTC())
		assert.NoError(t, repo.Append(context.Background(), entry))
	})

	mt.Run("append failure", func(mt *mtest.T) {
		repo := repository.NewActivityRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))

		entry := models.NewActivityEntry(truckID, uuid.New(), "status_confirmed", actor, nil, time.Now().UTC())
		assert.Error(t, repo.Append(context.Background(), entry))
	})

	mt.Run("list newest first", func(mt *mtest.T) {
		repo := repository.NewActivityRepository(mt.Coll)
		now := time.Now().UTC().Truncate(time.Millisecond)
		ns := mt.DB.Name() + "." + mt.Coll.Name()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: "2"},
				{Key: "truck_id", Value: truckID.String()},
				{Key: "action", Value: "status_in-transit"},
				{Key: "timestamp", Value: now},
			},
			bson.D{
				{Key: "_id", Value: "1"},
				{Key: "truck_id", Value: truckID.String()},
				{Key: "action", Value: "status_confirmed"},
				{Key: "timestamp", Value: now.Add(-time.Minute)},
			},
		))

		entries, err := repo.ListByTruck(context.Background(), truckID, 10)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "2", entries[0].ID)
		assert.Equal(t, "status_in-transit", entries[0].Action)
		assert.True(t, entries[0].Timestamp.Equal(now))
	})
}

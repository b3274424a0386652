package blockedRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"petclinic/config"
	"petclinic/database"
	"petclinic/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrBlockedNotFound is returned when no blocked interval matches the given id.
var ErrBlockedNotFound = errors.New("blocked interval not found")

// MongoBlockedRepo implements BlockedRepository using MongoDB.
type MongoBlockedRepo struct {
	coll *mongo.Collection
}

// NewMongoBlockedRepo constructs a new instance of MongoBlockedRepo.
func NewMongoBlockedRepo() BlockedRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoBlockedRepo{
		coll: db.Collection("blocked_intervals"),
	}
}

// Add inserts a new blocked interval document.
func (repo *MongoBlockedRepo) Add(ctx context.Context, block *models.BlockedInterval) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if block.ID == "" {
		block.ID = uuid.New().String()
	}
	block.CreatedAt = time.Now()

	if _, err := repo.coll.InsertOne(ctx, block); err != nil {
		return fmt.Errorf("error creating blocked interval: %w", err)
	}
	return nil
}

// Remove deletes a blocked interval record.
func (repo *MongoBlockedRepo) Remove(ctx context.Context, blockID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"id": blockID})
	if err != nil {
		return fmt.Errorf("error removing blocked interval %s: %w", blockID, err)
	}
	if res.DeletedCount == 0 {
		return ErrBlockedNotFound
	}
	return nil
}

// GetByID retrieves one blocked interval by id.
func (repo *MongoBlockedRepo) GetByID(ctx context.Context, blockID string) (*models.BlockedInterval, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var block models.BlockedInterval
	if err := repo.coll.FindOne(ctx, bson.M{"id": blockID}).Decode(&block); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBlockedNotFound
		}
		return nil, fmt.Errorf("error fetching blocked interval %s: %w", blockID, err)
	}
	return &block, nil
}

// ForVeterinarianInRange retrieves blocked intervals overlapping the query
// range. Recurring intervals are always included: their stored first
// occurrence may be far in the past while still projecting onto the range.
func (repo *MongoBlockedRepo) ForVeterinarianInRange(ctx context.Context, veterinarianID string, rangeStart, rangeEnd time.Time) ([]models.BlockedInterval, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"veterinarianId": veterinarianID,
		"$or": bson.A{
			bson.M{
				"startDateTime": bson.M{"$lt": rangeEnd},
				"endDateTime":   bson.M{"$gt": rangeStart},
			},
			bson.M{"isRecurring": true},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "startDateTime", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching blocked intervals: %w", err)
	}
	defer cursor.Close(ctx)

	var blocks []models.BlockedInterval
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, fmt.Errorf("error decoding blocked intervals: %w", err)
	}
	return blocks, nil
}

package availabilityRepo

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

// ErrTemplateNotFound is returned when no template matches the given id.
var ErrTemplateNotFound = errors.New("availability template not found")

// MongoTemplateRepo implements TemplateRepository using MongoDB.
type MongoTemplateRepo struct {
	coll *mongo.Collection
}

// NewMongoTemplateRepo constructs a new instance of MongoTemplateRepo.
func NewMongoTemplateRepo() TemplateRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoTemplateRepo{
		coll: db.Collection("availability_templates"),
	}
}

// Upsert inserts the template or replaces the stored document with the same id.
func (repo *MongoTemplateRepo) Upsert(ctx context.Context, template *models.AvailabilityTemplate) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	if template.ID == "" {
		template.ID = uuid.New().String()
		template.CreatedAt = now
	}
	template.UpdatedAt = now

	filter := bson.M{"id": template.ID}
	opts := options.Replace().SetUpsert(true)
	if _, err := repo.coll.ReplaceOne(ctx, filter, template, opts); err != nil {
		return fmt.Errorf("error upserting availability template %s: %w", template.ID, err)
	}
	return nil
}

// Deactivate soft-deletes a template by clearing its active flag.
func (repo *MongoTemplateRepo) Deactivate(ctx context.Context, templateID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": templateID}
	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error deactivating availability template %s: %w", templateID, err)
	}
	if res.MatchedCount == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

// GetByID retrieves one template by id.
func (repo *MongoTemplateRepo) GetByID(ctx context.Context, templateID string) (*models.AvailabilityTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var template models.AvailabilityTemplate
	if err := repo.coll.FindOne(ctx, bson.M{"id": templateID}).Decode(&template); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("error fetching availability template %s: %w", templateID, err)
	}
	return &template, nil
}

// ActiveForDay retrieves the active templates for a veterinarian and weekday
// whose effectiveFrom/effectiveUntil window covers asOf.
func (repo *MongoTemplateRepo) ActiveForDay(ctx context.Context, veterinarianID string, day time.Weekday, asOf time.Time) ([]models.AvailabilityTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"veterinarianId": veterinarianID,
		"dayOfWeek":      int(day),
		"isActive":       true,
		"effectiveFrom":  bson.M{"$lte": asOf},
		"$or": bson.A{
			bson.M{"effectiveUntil": bson.M{"$exists": false}},
			bson.M{"effectiveUntil": nil},
			bson.M{"effectiveUntil": bson.M{"$gt": asOf}},
		},
	}
	// Stable order so the slot generator's merge is deterministic.
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "id", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching active templates: %w", err)
	}
	defer cursor.Close(ctx)

	var templates []models.AvailabilityTemplate
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, fmt.Errorf("error decoding active templates: %w", err)
	}
	return templates, nil
}

// ForVeterinarian retrieves all templates (active or not) for a veterinarian.
func (repo *MongoTemplateRepo) ForVeterinarian(ctx context.Context, veterinarianID string) ([]models.AvailabilityTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "dayOfWeek", Value: 1}, {Key: "start", Value: 1}})
	cursor, err := repo.coll.Find(ctx, bson.M{"veterinarianId": veterinarianID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching templates for veterinarian %s: %w", veterinarianID, err)
	}
	defer cursor.Close(ctx)

	var templates []models.AvailabilityTemplate
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, fmt.Errorf("error decoding templates: %w", err)
	}
	return templates, nil
}

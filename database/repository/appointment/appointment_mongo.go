package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"petclinic/config"
	"petclinic/database"
	"petclinic/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new instance of MongoAppointmentRepo.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoAppointmentRepo{
		coll: db.Collection("appointments"),
	}
}

// GetByID retrieves an appointment by its id.
func (repo *MongoAppointmentRepo) GetByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appointment models.Appointment
	if err := repo.coll.FindOne(ctx, bson.M{"id": appointmentID}).Decode(&appointment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("error fetching appointment %s: %w", appointmentID, err)
	}
	return &appointment, nil
}

// ForVeterinarianOnDate retrieves the veterinarian's appointments for a civil
// date, skipping excluded statuses, ordered by start time.
func (repo *MongoAppointmentRepo) ForVeterinarianOnDate(ctx context.Context, veterinarianID, date string, excludeStatuses []models.AppointmentStatus) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"veterinarianId": veterinarianID,
		"date":           date,
	}
	if len(excludeStatuses) > 0 {
		filter["status"] = bson.M{"$nin": excludeStatuses}
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching appointments for veterinarian %s on %s: %w", veterinarianID, date, err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appointments, nil
}

// Update replaces the stored appointment document.
func (repo *MongoAppointmentRepo) Update(ctx context.Context, appointment *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	appointment.UpdatedAt = time.Now()
	filter := bson.M{"id": appointment.ID}
	res, err := repo.coll.ReplaceOne(ctx, filter, appointment)
	if err != nil {
		return fmt.Errorf("error updating appointment %s: %w", appointment.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

// conflictFilter matches occupying appointments overlapping [start, end) for
// the veterinarian and date, using half-open interval semantics.
func conflictFilter(veterinarianID, date string, start, end int, excludeID string) bson.M {
	filter := bson.M{
		"veterinarianId": veterinarianID,
		"date":           date,
		"status":         bson.M{"$nin": models.OccupancyExcludedStatuses()},
		"start":          bson.M{"$lt": end},
		"end":            bson.M{"$gt": start},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	return filter
}

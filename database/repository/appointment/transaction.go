package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"petclinic/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// InsertConflictFree re-validates the non-overlap precondition and inserts
// the appointment inside one transaction, so that of two racing creates for
// the same slot at most one commits.
func (repo *MongoAppointmentRepo) InsertConflictFree(ctx context.Context, appointment *models.Appointment, excludeID string) error {
	client := repo.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		filter := conflictFilter(appointment.VeterinarianID, appointment.Date, appointment.Start, appointment.End, excludeID)
		count, err := repo.coll.CountDocuments(sc, filter)
		if err != nil {
			return fmt.Errorf("conflict check failed: %w", err)
		}
		if count > 0 {
			return ErrAppointmentConflict
		}

		now := time.Now()
		if appointment.CreatedAt.IsZero() {
			appointment.CreatedAt = now
		}
		appointment.UpdatedAt = now
		if _, err := repo.coll.InsertOne(sc, appointment); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	}

	return repo.runInTransaction(ctx, sess, txnFn)
}

// CommitReschedule inserts the replacement appointment (conflict-checked
// against everything except the record being replaced) and terminally marks
// the old record rescheduled, atomically.
func (repo *MongoAppointmentRepo) CommitReschedule(ctx context.Context, old *models.Appointment, replacement *models.Appointment) error {
	client := repo.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		filter := conflictFilter(replacement.VeterinarianID, replacement.Date, replacement.Start, replacement.End, old.ID)
		count, err := repo.coll.CountDocuments(sc, filter)
		if err != nil {
			return fmt.Errorf("conflict check failed: %w", err)
		}
		if count > 0 {
			return ErrAppointmentConflict
		}

		now := time.Now()
		replacement.CreatedAt = now
		replacement.UpdatedAt = now
		if _, err := repo.coll.InsertOne(sc, replacement); err != nil {
			return fmt.Errorf("insert replacement appointment failed: %w", err)
		}

		old.Status = models.StatusRescheduled
		old.RescheduledTo = replacement.ID
		old.UpdatedAt = now
		res, err := repo.coll.ReplaceOne(sc, bson.M{"id": old.ID}, old)
		if err != nil {
			return fmt.Errorf("mark appointment rescheduled failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrAppointmentNotFound
		}
		return nil
	}

	return repo.runInTransaction(ctx, sess, txnFn)
}

func (repo *MongoAppointmentRepo) runInTransaction(ctx context.Context, sess mongo.Session, txnFn func(mongo.SessionContext) error) error {
	err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
	if err == ErrAppointmentConflict || err == ErrAppointmentNotFound {
		return err
	}
	if err != nil {
		return fmt.Errorf("appointment transaction failed: %w", err)
	}
	return nil
}

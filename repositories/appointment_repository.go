package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/drjidental/clinic_backend/models"
)

// AppointmentRepository stores booking requests. The partial unique index
// on (preferredDate, slotTime) makes slot reservation an insert-if-absent:
// the second writer for a slot gets ErrSlotTaken.
type AppointmentRepository struct {
	collection *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Client, dbName string) *AppointmentRepository {
	return &AppointmentRepository{
		collection: db.Database(dbName).Collection("appointments"),
	}
}

func (r *AppointmentRepository) Create(ctx context.Context, appt *models.Appointment) error {
	appt.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, appt)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return err
	}
	appt.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// BookedSlotTimes returns the slot times already held on a date.
func (r *AppointmentRepository) BookedSlotTimes(ctx context.Context, date string) ([]string, error) {
	cursor, err := r.collection.Find(ctx, bson.M{
		"preferredDate": date,
		"slotTime":      bson.M{"$gt": ""},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var times []string
	for cursor.Next(ctx) {
		var appt models.Appointment
		if err := cursor.Decode(&appt); err != nil {
			return nil, err
		}
		times = append(times, appt.SlotTime)
	}
	return times, cursor.Err()
}

// FindByCustomer returns a customer's bookings, newest first.
func (r *AppointmentRepository) FindByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"customerId": customerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	appointments := []models.Appointment{}
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

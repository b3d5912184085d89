package repository

import (
	"context"
	"fmt"
	"time"

	"tabletalk-service/internal/domain/entity"
	"tabletalk-service/internal/domain/repository"
	"tabletalk-service/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Matches canonical YYYY-MM-DD dates only; raw date text is never purged
const canonicalDatePattern = `^\d{4}-\d{2}-\d{2}$`

// MongoReservationRepository implements the ReservationRepository interface
type MongoReservationRepository struct {
	collection *mongo.Collection
	logger     logger.Logger
}

// NewMongoReservationRepository creates a new MongoDB reservation repository
func NewMongoReservationRepository(db *mongo.Database, logger logger.Logger) repository.ReservationRepository {
	collection := db.Collection("reservations")

	// Index on phone for fast lookups. Not unique: the store accepts
	// duplicates, the duplicate policy lives in the dispatcher.
	ctx := context.Background()
	phoneIndex := mongo.IndexModel{
		Keys: bson.M{"phone": 1},
	}
	dateIndex := mongo.IndexModel{
		Keys: bson.M{"date": 1},
	}
	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{phoneIndex, dateIndex})

	return &MongoReservationRepository{
		collection: collection,
		logger:     logger,
	}
}

// Create inserts a reservation unconditionally
func (r *MongoReservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	if reservation.CreatedAt.IsZero() {
		reservation.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, reservation)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	r.logger.Info("Reservation created", "phone", reservation.Phone)
	return nil
}

// FindByPhone finds a reservation by exact phone match
func (r *MongoReservationRepository) FindByPhone(ctx context.Context, phone string) (*entity.Reservation, error) {
	var reservation entity.Reservation
	err := r.collection.FindOne(ctx, bson.M{"phone": phone}).Decode(&reservation)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, entity.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}
	return &reservation, nil
}

// DeleteByPhone removes the first reservation matching the phone
func (r *MongoReservationRepository) DeleteByPhone(ctx context.Context, phone string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"phone": phone})
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	if result.DeletedCount == 0 {
		return entity.ErrNotFound
	}

	r.logger.Info("Reservation deleted", "phone", phone)
	return nil
}

// PurgeBefore removes reservations with a canonical date before the cutoff
func (r *MongoReservationRepository) PurgeBefore(ctx context.Context, cutoff string) (int64, error) {
	filter := bson.M{"date": bson.M{
		"$regex": canonicalDatePattern,
		"$lt":    cutoff,
	}}

	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to purge reservations: %w", err)
	}
	return result.DeletedCount, nil
}

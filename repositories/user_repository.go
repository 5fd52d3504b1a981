package repositories

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/drjidental/clinic_backend/models"
)

// UserRepository stores customer accounts. Emails are normalized to lower
// case on the way in, and the collection carries a unique email index.
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Client, dbName string) *UserRepository {
	return &UserRepository{
		collection: db.Database(dbName).Collection("users"),
	}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts a new account. The unique index on email turns a lost
// race between two signups into ErrEmailTaken instead of a second row.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	user.Email = strings.ToLower(user.Email)
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrEmailTaken
		}
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// Activate marks the account verified so it can sign in.
func (r *UserRepository) Activate(ctx context.Context, email string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"email": strings.ToLower(email)},
		bson.M{"$set": bson.M{"isActive": true, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the stored bcrypt hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"email": strings.ToLower(email)},
		bson.M{"$set": bson.M{"password": passwordHash, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

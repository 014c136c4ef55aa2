package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arzan03/newsroom/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository stores users in the users collection.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository uses the users collection of database.
func NewUserRepository(database *mongo.Database) *UserRepository {
	return &UserRepository{coll: database.Collection(usersCollection)}
}

// Create inserts u and sets its id.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrEmailExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByID returns the user with id.
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByEmail returns the user with an exactly matching email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := r.coll.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// List returns all users, newest first.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("error decoding users: %w", err)
	}
	return users, nil
}

// SetPasswordReset stores a pending reset on the user in a single write.
func (r *UserRepository) SetPasswordReset(ctx context.Context, id primitive.ObjectID, reset models.PasswordReset, now time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"passwordReset": reset, "updatedAt": now}},
	)
	if err != nil {
		return fmt.Errorf("save password reset: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// RedeemPasswordReset atomically swaps in passwordHash for the user whose
// unexpired reset matches tokenHash and clears the reset, so a token can be
// redeemed once.
func (r *UserRepository) RedeemPasswordReset(ctx context.Context, tokenHash, passwordHash string, now time.Time) (*models.User, error) {
	filter := bson.M{
		"passwordReset.hash":      tokenHash,
		"passwordReset.expiresAt": bson.M{"$gt": now},
	}
	update := bson.M{
		"$set":   bson.M{"password": passwordHash, "updatedAt": now},
		"$unset": bson.M{"passwordReset": ""},
	}
	return r.findOneAndUpdate(ctx, filter, update)
}

// UpdatePassword replaces the password hash and drops any pending reset.
func (r *UserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string, now time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$set":   bson.M{"password": passwordHash, "updatedAt": now},
			"$unset": bson.M{"passwordReset": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// SetSuspended sets the suspended flag and returns the updated user.
func (r *UserRepository) SetSuspended(ctx context.Context, id primitive.ObjectID, suspended bool, now time.Time) (*models.User, error) {
	return r.findOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"suspended": suspended, "updatedAt": now}},
	)
}

// Delete removes the user with id.
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *UserRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &u, nil
}

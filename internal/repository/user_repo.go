package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"athletic-metrics/internal/domain"
)

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Replace(ctx context.Context, oldUsername string, user domain.User) error
	Delete(ctx context.Context, username string) error
}

// MongoUserRepository implementa UserRepository usando la colección users.
type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewMongoUserRepository(coll *mongo.Collection) *MongoUserRepository {
	return &MongoUserRepository{coll: coll}
}

func (r *MongoUserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("insert user: %w", translate(err))
	}
	user.ID = insertedID(res)
	return user, nil
}

func (r *MongoUserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	var u domain.User
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&u); err != nil {
		return domain.User{}, fmt.Errorf("find user %q: %w", username, translate(err))
	}
	return u, nil
}

func (r *MongoUserRepository) List(ctx context.Context) ([]domain.User, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]domain.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (r *MongoUserRepository) Replace(ctx context.Context, oldUsername string, user domain.User) error {
	user.ID = zeroID
	res, err := r.coll.ReplaceOne(ctx, bson.M{"username": oldUsername}, user)
	if err != nil {
		return fmt.Errorf("replace user %q: %w", oldUsername, translate(err))
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("replace user %q: %w", oldUsername, ErrNotFound)
	}
	return nil
}

func (r *MongoUserRepository) Delete(ctx context.Context, username string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"username": username})
	if err != nil {
		return fmt.Errorf("delete user %q: %w", username, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete user %q: %w", username, ErrNotFound)
	}
	return nil
}

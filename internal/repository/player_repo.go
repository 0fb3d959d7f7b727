package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"athletic-metrics/internal/domain"
)

// PlayerRepository define el contrato de persistencia para jugadores.
type PlayerRepository interface {
	Create(ctx context.Context, player domain.Player) (domain.Player, error)
	GetByName(ctx context.Context, name string) (domain.Player, error)
	List(ctx context.Context) ([]domain.Player, error)
	Replace(ctx context.Context, originalName string, player domain.Player) error
	Delete(ctx context.Context, name string) error
}

type MongoPlayerRepository struct {
	coll *mongo.Collection
}

func NewMongoPlayerRepository(coll *mongo.Collection) *MongoPlayerRepository {
	return &MongoPlayerRepository{coll: coll}
}

func (r *MongoPlayerRepository) Create(ctx context.Context, player domain.Player) (domain.Player, error) {
	res, err := r.coll.InsertOne(ctx, player)
	if err != nil {
		return domain.Player{}, fmt.Errorf("insert player: %w", translate(err))
	}
	player.ID = insertedID(res)
	return player, nil
}

func (r *MongoPlayerRepository) GetByName(ctx context.Context, name string) (domain.Player, error) {
	var player domain.Player
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&player); err != nil {
		return domain.Player{}, fmt.Errorf("find player %q: %w", name, translate(err))
	}
	return player, nil
}

func (r *MongoPlayerRepository) List(ctx context.Context) ([]domain.Player, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	players := make([]domain.Player, 0)
	if err := cursor.All(ctx, &players); err != nil {
		return nil, fmt.Errorf("decode players: %w", err)
	}
	return players, nil
}

func (r *MongoPlayerRepository) Replace(ctx context.Context, originalName string, player domain.Player) error {
	player.ID = zeroID
	res, err := r.coll.ReplaceOne(ctx, bson.M{"name": originalName}, player)
	if err != nil {
		return fmt.Errorf("replace player %q: %w", originalName, translate(err))
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("replace player %q: %w", originalName, ErrNotFound)
	}
	return nil
}

func (r *MongoPlayerRepository) Delete(ctx context.Context, name string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("delete player %q: %w", name, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete player %q: %w", name, ErrNotFound)
	}
	return nil
}

package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"athletic-metrics/internal/domain"
)

// GameRepository define el contrato de persistencia para partidos. Un partido
// se identifica por fecha y por cualquiera de los dos equipos.
type GameRepository interface {
	Create(ctx context.Context, game domain.Game) (domain.Game, error)
	GetByTeamAndDate(ctx context.Context, team, date string) (domain.Game, error)
	List(ctx context.Context) ([]domain.Game, error)
	Replace(ctx context.Context, team, date string, game domain.Game) error
	Delete(ctx context.Context, team, date string) error
}

type MongoGameRepository struct {
	coll *mongo.Collection
}

func NewMongoGameRepository(coll *mongo.Collection) *MongoGameRepository {
	return &MongoGameRepository{coll: coll}
}

func gameFilter(team, date string) bson.M {
	return bson.M{
		"$or": bson.A{
			bson.M{"winningTeam": team},
			bson.M{"losingTeam": team},
		},
		"date": date,
	}
}

func (r *MongoGameRepository) Create(ctx context.Context, game domain.Game) (domain.Game, error) {
	res, err := r.coll.InsertOne(ctx, game)
	if err != nil {
		return domain.Game{}, fmt.Errorf("insert game: %w", translate(err))
	}
	game.ID = insertedID(res)
	return game, nil
}

func (r *MongoGameRepository) GetByTeamAndDate(ctx context.Context, team, date string) (domain.Game, error) {
	var game domain.Game
	if err := r.coll.FindOne(ctx, gameFilter(team, date)).Decode(&game); err != nil {
		return domain.Game{}, fmt.Errorf("find game %s/%s: %w", team, date, translate(err))
	}
	return game, nil
}

func (r *MongoGameRepository) List(ctx context.Context) ([]domain.Game, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	games := make([]domain.Game, 0)
	if err := cursor.All(ctx, &games); err != nil {
		return nil, fmt.Errorf("decode games: %w", err)
	}
	return games, nil
}

func (r *MongoGameRepository) Replace(ctx context.Context, team, date string, game domain.Game) error {
	game.ID = zeroID
	res, err := r.coll.ReplaceOne(ctx, gameFilter(team, date), game)
	if err != nil {
		return fmt.Errorf("replace game %s/%s: %w", team, date, translate(err))
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("replace game %s/%s: %w", team, date, ErrNotFound)
	}
	return nil
}

func (r *MongoGameRepository) Delete(ctx context.Context, team, date string) error {
	res, err := r.coll.DeleteOne(ctx, gameFilter(team, date))
	if err != nil {
		return fmt.Errorf("delete game %s/%s: %w", team, date, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete game %s/%s: %w", team, date, ErrNotFound)
	}
	return nil
}

package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"athletic-metrics/internal/domain"
)

// TeamRepository define el contrato de persistencia para equipos.
type TeamRepository interface {
	Create(ctx context.Context, team domain.Team) (domain.Team, error)
	GetByName(ctx context.Context, name string) (domain.Team, error)
	List(ctx context.Context) ([]domain.Team, error)
	Replace(ctx context.Context, originalName string, team domain.Team) error
	Delete(ctx context.Context, name string) error
}

// MongoTeamRepository implementa TeamRepository sobre una colección de MongoDB.
type MongoTeamRepository struct {
	coll *mongo.Collection
}

func NewMongoTeamRepository(coll *mongo.Collection) *MongoTeamRepository {
	return &MongoTeamRepository{coll: coll}
}

func (r *MongoTeamRepository) Create(ctx context.Context, team domain.Team) (domain.Team, error) {
	res, err := r.coll.InsertOne(ctx, team)
	if err != nil {
		return domain.Team{}, fmt.Errorf("insert team: %w", translate(err))
	}
	team.ID = insertedID(res)
	return team, nil
}

func (r *MongoTeamRepository) GetByName(ctx context.Context, name string) (domain.Team, error) {
	var team domain.Team
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&team); err != nil {
		return domain.Team{}, fmt.Errorf("find team %q: %w", name, translate(err))
	}
	return team, nil
}

func (r *MongoTeamRepository) List(ctx context.Context) ([]domain.Team, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	teams := make([]domain.Team, 0)
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, fmt.Errorf("decode teams: %w", err)
	}
	return teams, nil
}

func (r *MongoTeamRepository) Replace(ctx context.Context, originalName string, team domain.Team) error {
	team.ID = zeroID
	res, err := r.coll.ReplaceOne(ctx, bson.M{"name": originalName}, team)
	if err != nil {
		return fmt.Errorf("replace team %q: %w", originalName, translate(err))
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("replace team %q: %w", originalName, ErrNotFound)
	}
	return nil
}

func (r *MongoTeamRepository) Delete(ctx context.Context, name string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("delete team %q: %w", name, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete team %q: %w", name, ErrNotFound)
	}
	return nil
}

package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"athletic-metrics/internal/config"
)

// Nombres de las colecciones del servicio.
const (
	TeamsCollection   = "teams"
	PlayersCollection = "players"
	GamesCollection   = "games"
	UsersCollection   = "users"
)

// Collections enumera las colecciones que EnsureCollections prepara.
var Collections = []string{TeamsCollection, PlayersCollection, GamesCollection, UsersCollection}

// NewClient construye el cliente de MongoDB y verifica conectividad.
func NewClient(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURL()).
		SetMaxPoolSize(10).
		SetMinPoolSize(1).
		SetMaxConnIdleTime(5 * time.Minute).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := Ping(ctx, client); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// Ping verifica conectividad con la base de datos.
func Ping(ctx context.Context, client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return client.Ping(ctx, readpref.Primary())
}

// caseInsensitive hace que las búsquedas por nombre ignoren mayúsculas y acentos.
var caseInsensitive = &options.Collation{Locale: "en", Strength: 1}

// EnsureCollections crea las colecciones que falten con collation
// case-insensitive y el índice único de usernames. Con reset las elimina antes.
func EnsureCollections(ctx context.Context, database *mongo.Database, reset bool, logger *zap.Logger) error {
	for _, name := range Collections {
		if reset {
			if err := database.Collection(name).Drop(ctx); err != nil {
				return fmt.Errorf("drop collection %q: %w", name, err)
			}
			logger.Info("collection dropped", zap.String("collection", name))
		}

		existing, err := database.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
		if err != nil {
			return fmt.Errorf("list collections: %w", err)
		}
		if len(existing) > 0 {
			continue
		}

		opts := options.CreateCollection().SetCollation(caseInsensitive)
		if err := database.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("create collection %q: %w", name, err)
		}
		logger.Info("collection created", zap.String("collection", name))
	}

	_, err := database.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetCollation(caseInsensitive),
	})
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}
	return nil
}

package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brandforge/printshop/internal/config"
)

type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongo(ctx context.Context, cfg config.MongoConfig) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	log.Info().Str("database", cfg.Database).Msg("Connected to MongoDB")
	return &Mongo{
		Client:   client,
		Database: client.Database(cfg.Database),
	}, nil
}

func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.Database.Collection(name)
}

func (m *Mongo) Close(ctx context.Context) {
	if err := m.Client.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to disconnect from MongoDB")
		return
	}
	log.Info().Msg("MongoDB connection closed")
}

// Package mongo persists shipments and the carrier configuration record.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	// defaultTimeout bounds every repository operation.
	defaultTimeout = 10 * time.Second
	// indexTimeout is longer: index builds on a populated shipments
	// collection can outlive a normal operation.
	indexTimeout = 30 * time.Second
)

// Config holds the connection settings for the gateway database.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect dials the gateway database and verifies it with a primary ping
// before any repository is built on it. A zero Timeout falls back to
// defaultTimeout.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("dpd-gateway")

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("pinging mongodb: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

// ensureIndexes applies the given index models under the index build
// timeout shared by the repositories.
func ensureIndexes(ctx context.Context, col *mongo.Collection, models []mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := col.Indexes().CreateMany(ctx, models)
	return err
}

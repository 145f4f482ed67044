// Package mongo holds the MongoDB session storage and the development
// backend's user repository.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// Config selects the deployment and database that hold sessions or users.
type Config struct {
	URI      string
	Database string
	// AppName shows up in the server's connection log and currentOp, so the
	// gateway and the dev backend can be told apart on a shared cluster.
	AppName string
	Timeout time.Duration
}

func (c Config) clientOptions(timeout time.Duration) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(c.URI).
		SetServerSelectionTimeout(timeout)
	if c.AppName != "" {
		opts.SetAppName(c.AppName)
	}
	return opts
}

// Connect dials the deployment and returns a client only once the primary
// answers a ping.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	if cfg.Database == "" {
		return nil, nil, fmt.Errorf("mongo: database name is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, cfg.clientOptions(timeout))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo: connect to %s: %w", cfg.AppName, err)
	}
	if err := client.Ping(dialCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo: primary unreachable: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

package database

import (
	"context"
	"cptask-tools/internal/config"
	"cptask-tools/internal/models"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/url"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// MongoDBClient wraps the MongoDB client and the two collections the tools use
type MongoDBClient struct {
	client    *mongo.Client
	database  *mongo.Database
	companies *mongo.Collection
	tasks     *mongo.Collection
	logger    *zap.Logger
}

// NewMongoDBClient connects to MongoDB and pings the primary.
// Any failure is returned wrapped in models.ErrConnection.
func NewMongoDBClient(ctx context.Context, cfg config.MongoDBConfig, logger *zap.Logger) (*MongoDBClient, error) {
	uri, logURI := BuildURI(cfg)
	logger.Info("Attempting to connect to MongoDB", zap.String("uri", logURI))

	opts, err := buildClientOptions(uri, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrConnection, err)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to MongoDB at %s: %w", models.ErrConnection, logURI, err)
	}

	// Ping to verify connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: failed to ping MongoDB at %s: %w", models.ErrConnection, logURI, err)
	}

	database := client.Database(cfg.Database)
	logger.Info("Connected to MongoDB", zap.String("database", cfg.Database))

	return &MongoDBClient{
		client:    client,
		database:  database,
		companies: database.Collection(cfg.CompanyCollection),
		tasks:     database.Collection(cfg.TaskCollection),
		logger:    logger,
	}, nil
}

// Close closes the MongoDB client connection
func (c *MongoDBClient) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

// DatabaseName returns the name of the connected database
func (c *MongoDBClient) DatabaseName() string {
	return c.database.Name()
}

// WithClient connects, runs fn and always disconnects afterwards, including
// when fn returns an error or panics.
func WithClient(ctx context.Context, cfg config.MongoDBConfig, logger *zap.Logger, fn func(*MongoDBClient) error) error {
	client, err := NewMongoDBClient(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			logger.Warn("Failed to close MongoDB connection", zap.Error(cerr))
			return
		}
		logger.Debug("MongoDB connection closed")
	}()

	return fn(client)
}

// BuildURI returns the connection URI and a copy safe to log.
// cfg.URI wins; otherwise the URI is assembled from host, port and credentials.
func BuildURI(cfg config.MongoDBConfig) (uri, logURI string) {
	uri = cfg.URI
	if uri == "" {
		authSource := cfg.AuthSource
		if authSource == "" {
			authSource = "admin"
		}
		if cfg.Username != "" && cfg.Password != "" {
			// Use url.UserPassword to properly encode username and password
			userInfo := url.UserPassword(cfg.Username, cfg.Password)
			uri = fmt.Sprintf("mongodb://%s@%s:%s/%s?authSource=%s",
				userInfo.String(),
				cfg.Host,
				cfg.Port,
				cfg.Database,
				url.QueryEscape(authSource),
			)
		} else {
			uri = fmt.Sprintf("mongodb://%s:%s/%s",
				cfg.Host,
				cfg.Port,
				cfg.Database,
			)
		}
	}

	return uri, redactURI(uri)
}

// redactURI masks the password of a connection URI
func redactURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "<unparseable uri>"
	}
	if _, hasPassword := u.User.Password(); hasPassword {
		u.User = url.UserPassword(u.User.Username(), "***")
	}
	return u.String()
}

func buildClientOptions(uri string, cfg config.MongoDBConfig) (*options.ClientOptions, error) {
	opts := options.Client().ApplyURI(uri).SetRetryWrites(cfg.RetryWrites)
	if cfg.ServerSelectionTimeout > 0 {
		opts.SetServerSelectionTimeout(cfg.ServerSelectionTimeout)
	}
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
	}
	if cfg.SocketTimeout > 0 {
		opts.SetSocketTimeout(cfg.SocketTimeout)
	}
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	if cfg.TLSCAFile != "" {
		pem, err := os.ReadFile(cfg.TLSCAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read TLS CA file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s", cfg.TLSCAFile)
		}
		opts.SetTLSConfig(&tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12})
	}

	return opts, nil
}

package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/sirupsen/logrus"
)

// Client wraps the Neo4j driver with scoped transaction helpers. It is
// the only place the application touches driver sessions; every service
// operation runs inside exactly one transaction obtained through it.
type Client struct {
	driver   neo4j.DriverWithContext
	logger   *logrus.Logger
	database string
}

// NewClient connects to Neo4j and verifies connectivity (fail fast on
// startup).
func NewClient(ctx context.Context, uri, user, password string, logger *logrus.Logger) (*Client, error) {
	return NewClientWithDatabase(ctx, uri, user, password, "neo4j", logger)
}

// NewClientWithDatabase connects to a specific database.
func NewClientWithDatabase(ctx context.Context, uri, user, password, database string, logger *logrus.Logger) (*Client, error) {
	if uri == "" || user == "" || password == "" {
		return nil, fmt.Errorf("neo4j credentials missing: uri=%s, user=%s", uri, user)
	}

	driver, err := neo4j.NewDriverWithContext(uri,
		neo4j.BasicAuth(user, password, ""),
		func(config *neo4j.Config) {
			config.MaxConnectionPoolSize = 50
			config.ConnectionAcquisitionTimeout = 60 * time.Second
			config.MaxConnectionLifetime = 3600 * time.Second
			config.SocketConnectTimeout = 5 * time.Second
			config.SocketKeepalive = true
		})
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to neo4j at %s: %w", uri, err)
	}

	logger.WithFields(logrus.Fields{
		"uri":      uri,
		"user":     user,
		"database": database,
	}).Info("neo4j client connected")

	return &Client{
		driver:   driver,
		logger:   logger,
		database: database,
	}, nil
}

// Close closes the underlying driver.
func (c *Client) Close(ctx context.Context) error {
	if err := c.driver.Close(ctx); err != nil {
		return fmt.Errorf("failed to close neo4j driver: %w", err)
	}
	c.logger.Info("neo4j client closed")
	return nil
}

// HealthCheck verifies connectivity, used by the health endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	if err := c.driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("neo4j health check failed: %w", err)
	}
	return nil
}

// ReadTx runs work inside a single read transaction. The session and
// transaction are released on every exit path; the driver commits on a
// nil error and rolls back otherwise.
func (c *Client) ReadTx(ctx context.Context, work TxWork) (any, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	return session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return work(ctx, managedTx{tx: tx, logger: c.logger})
	})
}

// WriteTx runs work inside a single write transaction.
func (c *Client) WriteTx(ctx context.Context, work TxWork) (any, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.database,
		AccessMode:   neo4j.AccessModeWrite,
	})
	defer session.Close(ctx)

	return session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return work(ctx, managedTx{tx: tx, logger: c.logger})
	})
}

// managedTx adapts a driver transaction to the Tx port, collecting
// results eagerly so no cursor outlives the transaction.
type managedTx struct {
	tx     neo4j.ManagedTransaction
	logger *logrus.Logger
}

func (t managedTx) Run(ctx context.Context, query string, params map[string]any) ([]Record, error) {
	result, err := t.tx.Run(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	raw, err := result.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect records: %w", err)
	}

	records := make([]Record, len(raw))
	for i, rec := range raw {
		records[i] = NewRecord(rec.Keys, rec.AsMap())
	}

	t.logger.WithField("record_count", len(records)).Debug("query executed")
	return records, nil
}

package client

import (
	"campsite/pkg/logger"
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func (c *Client) SetPostgres(log *logger.Logger, url string, maxOpenConns int, connTimeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), connTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		log.Fatal("Failed to connect to Postgres", "error", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxOpenConns / 2)
	db.SetConnMaxLifetime(30 * time.Minute)

	log.Info("Successfully connected to Postgres")
	c.Postgres = db
}

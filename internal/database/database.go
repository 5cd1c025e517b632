package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"retail-concierge/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Service wraps the database connection pool with health reporting.
type Service interface {
	DB() *sql.DB
	Health(ctx context.Context) map[string]string
	Close() error
}

type service struct {
	db *sql.DB
}

// New opens a connection pool against the configured Postgres instance.
func New(cfg config.DatabaseConfig) (Service, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.Schema)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &service{db: db}, nil
}

func (s *service) DB() *sql.DB {
	return s.db
}

// Health pings the database and reports pool statistics.
func (s *service) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return map[string]string{
			"status": "down",
			"error":  err.Error(),
		}
	}

	stats := s.db.Stats()
	return map[string]string{
		"status":           "up",
		"open_connections": fmt.Sprintf("%d", stats.OpenConnections),
		"in_use":           fmt.Sprintf("%d", stats.InUse),
		"idle":             fmt.Sprintf("%d", stats.Idle),
	}
}

func (s *service) Close() error {
	return s.db.Close()
}

// Package db opens and manages the PostgreSQL connection behind the student store.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ddu-connect/backend/config"
	"github.com/ddu-connect/backend/internal/integration/persistence/model"
)

const connectTimeout = 5 * time.Second

// Database owns the pooled GORM connection.
type Database struct {
	conn *gorm.DB
}

// Open connects to PostgreSQL, applies the pool limits and verifies the
// server answers before returning.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Database, error) {
	// TranslateError maps driver unique violations to gorm.ErrDuplicatedKey.
	conn, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := Ping(pingCtx, conn); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	slog.Info("Database connection established",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
	)

	return &Database{conn: conn}, nil
}

// Conn returns the GORM handle shared by the repositories.
func (d *Database) Conn() *gorm.DB {
	return d.conn
}

// Migrate creates or updates the students table.
func (d *Database) Migrate() error {
	if err := d.conn.AutoMigrate(&model.StudentModel{}); err != nil {
		return fmt.Errorf("failed to migrate students table: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (d *Database) Close() error {
	sqlDB, err := d.conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB for closing: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	slog.Info("Database connection closed")
	return nil
}

// Ping checks that conn can still reach its server.
func Ping(ctx context.Context, conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

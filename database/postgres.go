package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/slaviors/simenu/models"
)

var DB *gorm.DB

// openOrderIndex enforces at most one non-terminal order per table. The
// lookup-or-create in the order repository relies on this as its backstop
// against concurrent placements racing past the row lock.
const openOrderIndex = `CREATE UNIQUE INDEX IF NOT EXISTS uniq_open_order_per_table
ON orders (table_number)
WHERE status NOT IN ('completed', 'cancelled')`

// ConnectPostgres opens a pooled GORM connection for the given DSN, retrying
// with backoff, and runs migrations for the given models.
func ConnectPostgres(logger *zap.Logger, dsn string, autoMigrateModels ...interface{}) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty database DSN")
	}

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			sqlDB, poolErr := db.DB()
			if poolErr == nil {
				sqlDB.SetMaxOpenConns(25)
				sqlDB.SetMaxIdleConns(5)
				sqlDB.SetConnMaxLifetime(5 * time.Minute)
			}

			logger.Info("Connected to PostgreSQL successfully")

			if len(autoMigrateModels) > 0 {
				if err := db.AutoMigrate(autoMigrateModels...); err != nil {
					return nil, fmt.Errorf("AutoMigrate failed: %w", err)
				}
			}
			if err := db.Exec(openOrderIndex).Error; err != nil {
				return nil, fmt.Errorf("failed to create open-order index: %w", err)
			}
			return db, nil
		}

		logger.Warn("DB connection failed, retrying",
			zap.Int("attempt", i+1),
			zap.Error(err),
		)
		time.Sleep(time.Duration(i+1) * 2 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect to PostgreSQL after retries: %w", err)
}

// Connect opens the shared connection and migrates the table-ordering schema.
func Connect(logger *zap.Logger, dsn string) error {
	var err error
	DB, err = ConnectPostgres(logger, dsn,
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.BillRequest{},
	)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL", zap.Error(err))
		return err
	}
	return nil
}

// Close releases the underlying connection pool.
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

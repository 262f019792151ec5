// Copyright (c) 2026, WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Package db owns the PostgreSQL connection used by the service.
package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wso2/ai-agent-management-platform/gateway-manager-service/config"
)

var gormDB *gorm.DB

// Init opens the database connection and configures the pool.
// Must be called once at startup before DB is used.
func Init(cfg config.Config) error {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.POSTGRESQL.Host,
		cfg.POSTGRESQL.Port,
		cfg.POSTGRESQL.User,
		cfg.POSTGRESQL.Password,
		cfg.POSTGRESQL.DBName,
	)

	slowThreshold := 200 * time.Millisecond
	if cfg.POSTGRESQL.SlowThresholdMilliseconds > 0 {
		slowThreshold = time.Duration(cfg.POSTGRESQL.SlowThresholdMilliseconds) * time.Millisecond
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             slowThreshold,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: cfg.POSTGRESQL.SkipDefaultTransaction,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB handle: %w", err)
	}

	if cfg.POSTGRESQL.MaxIdleCount != nil {
		sqlDB.SetMaxIdleConns(int(*cfg.POSTGRESQL.MaxIdleCount))
	}
	if cfg.POSTGRESQL.MaxOpenCount != nil {
		sqlDB.SetMaxOpenConns(int(*cfg.POSTGRESQL.MaxOpenCount))
	}
	if cfg.POSTGRESQL.MaxLifetimeSeconds != nil {
		sqlDB.SetConnMaxLifetime(time.Duration(*cfg.POSTGRESQL.MaxLifetimeSeconds) * time.Second)
	}
	if cfg.POSTGRESQL.MaxIdleTimeSeconds != nil {
		sqlDB.SetConnMaxIdleTime(time.Duration(*cfg.POSTGRESQL.MaxIdleTimeSeconds) * time.Second)
	}

	gormDB = db
	return nil
}

// DB returns the database handle bound to the given context
func DB(ctx context.Context) *gorm.DB {
	return gormDB.WithContext(ctx)
}

// GetDB returns the raw database handle
func GetDB() *gorm.DB {
	return gormDB
}

// Close closes the underlying connection pool
func Close() error {
	if gormDB == nil {
		return nil
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB handle: %w", err)
	}
	return sqlDB.Close()
}

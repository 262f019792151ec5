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

// Package dbmigrations applies schema migrations in order at startup.
package dbmigrations

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// migration is a numbered schema change. IDs must be unique and are applied
// in ascending order.
type migration struct {
	ID       int
	Migrate  func(db *gorm.DB) error
	Rollback func(db *gorm.DB) error
}

// allMigrations lists every schema migration. Append only; never renumber.
var allMigrations = []migration{
	migration001,
	migration002,
}

// runSQL executes a raw SQL batch inside the given transaction
func runSQL(tx *gorm.DB, sql string) error {
	return tx.Exec(sql).Error
}

// Migrate applies all pending migrations
func Migrate(db *gorm.DB) error {
	sorted := make([]migration, len(allMigrations))
	copy(sorted, allMigrations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	gms := make([]*gormigrate.Migration, 0, len(sorted))
	for _, m := range sorted {
		m := m
		gm := &gormigrate.Migration{
			ID:      fmt.Sprintf("%03d", m.ID),
			Migrate: gormigrate.MigrateFunc(m.Migrate),
		}
		if m.Rollback != nil {
			gm.Rollback = gormigrate.RollbackFunc(m.Rollback)
		}
		gms = append(gms, gm)
	}

	migrator := gormigrate.New(db, gormigrate.DefaultOptions, gms)
	if err := migrator.Migrate(); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}

	slog.Info("Database migrations applied", "count", len(gms))
	return nil
}

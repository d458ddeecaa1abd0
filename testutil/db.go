/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package testutil opens throwaway databases for tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/tomoncle/roster/database"
	_ "github.com/tomoncle/roster/models"

	"github.com/uptrace/bun"
)

// NewDB connects a private in-memory sqlite database, creates the tables of
// every registered model and closes the connection when the test ends.
func NewDB(t testing.TB) *bun.DB {
	t.Helper()
	manager := NewManager(t)
	if err := manager.RunMigrations(context.Background()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return manager.GetDB()
}

// NewManager returns a connected manager for an in-memory sqlite database
// without running migrations.
func NewManager(t testing.TB) database.AbstractDatabaseManager {
	t.Helper()
	manager := database.NewDatabaseManager(&database.ConnectionConfig{
		Type:           "sqlite",
		DBName:         database.MemoryDBName,
		ConnectTimeout: 5 * time.Second,
	})
	if err := manager.Connect(context.Background()); err != nil {
		t.Fatalf("connect in-memory database: %v", err)
	}
	t.Cleanup(func() { _ = manager.Disconnect() })
	return manager
}

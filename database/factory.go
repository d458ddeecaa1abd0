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

package database

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var supportedTypes = map[string]string{
	"mysql":      "mysql",
	"postgres":   "postgres",
	"postgresql": "postgres",
	"sqlite":     "sqlite",
	"sqlite3":    "sqlite",
}

// BaseDatabaseFactory creates and manages a configured database manager and
// provides helpers for initialization, health checks, and statistics.
type BaseDatabaseFactory struct {
	manager AbstractDatabaseManager
	logger  Logger
}

// NewDatabaseFactory returns a new database factory using the global logger.
func NewDatabaseFactory() *BaseDatabaseFactory {
	return &BaseDatabaseFactory{
		logger: GetLogger(),
	}
}

// CreateFromConfig constructs a database manager from the given connection
// configuration, applying environment overrides and setting the factory logger.
func (f *BaseDatabaseFactory) CreateFromConfig(cfg *ConnectionConfig) (AbstractDatabaseManager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}

	OverrideFromEnv(cfg)

	normalized, ok := supportedTypes[strings.ToLower(strings.TrimSpace(cfg.Type))]
	if !ok {
		return nil, fmt.Errorf("unsupported database type: %s, supported types: [mysql postgres sqlite]", cfg.Type)
	}
	cfg.Type = normalized

	manager := NewDatabaseManager(cfg)
	manager.SetLogger(f.logger)

	f.manager = manager
	return manager, nil
}

// OverrideFromEnv overrides connection settings from DB_* environment variables.
func OverrideFromEnv(cfg *ConnectionConfig) {
	envString("DB_TYPE", &cfg.Type)
	envString("DB_HOST", &cfg.Host)
	envInt("DB_PORT", &cfg.Port)
	envString("DB_USERNAME", &cfg.Username)
	envString("DB_PASSWORD", &cfg.Password)
	envString("DB_NAME", &cfg.DBName)
	envString("DB_SSLMODE", &cfg.SSLMode)

	envInt("DB_MAX_IDLE_CONNS", &cfg.MaxIdleConns)
	envInt("DB_MAX_OPEN_CONNS", &cfg.MaxOpenConns)
	envSeconds("DB_CONN_MAX_LIFETIME", &cfg.ConnMaxLifetime)

	envBool("DB_ENABLE_RECONNECT", &cfg.EnableReconnect)
	envSeconds("DB_RECONNECT_INTERVAL", &cfg.ReconnectInterval)

	envBool("DB_ENABLE_QUERY_LOG", &cfg.EnableQueryLog)
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envSeconds(key string, dst *time.Duration) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = time.Duration(n) * time.Second
		}
	}
}

func envBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "true"
	}
}

// InitializeDatabase connects to the database and optionally runs migrations.
func (f *BaseDatabaseFactory) InitializeDatabase(ctx context.Context, runMigrations bool) error {
	if f.manager == nil {
		return fmt.Errorf("database manager not created")
	}

	if err := f.manager.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if runMigrations {
		if err := f.manager.RunMigrations(ctx); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
	}
	f.logger.Info("Database initialization completed")
	return nil
}

// GetManager returns the underlying database manager.
func (f *BaseDatabaseFactory) GetManager() AbstractDatabaseManager {
	return f.manager
}

// Close closes the database connection managed by the factory.
func (f *BaseDatabaseFactory) Close() error {
	if f.manager == nil {
		return nil
	}
	return f.manager.Disconnect()
}

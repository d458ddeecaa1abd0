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
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

type defaultDatabaseManager struct {
	config         *ConnectionConfig
	db             *bun.DB
	sqlDB          *sql.DB
	logger         Logger
	mu             sync.RWMutex
	connected      bool
	lastError      error
	healthStatus   *HealthStatus
	reconnectTries int
	stopHealth     context.CancelFunc
}

// NewDatabaseManager returns an AbstractDatabaseManager backed by Bun.
// If config is nil, a sensible default configuration is used.
func NewDatabaseManager(config *ConnectionConfig) AbstractDatabaseManager {
	if config == nil {
		config = DefaultConnectionConfig()
	}
	return &defaultDatabaseManager{
		config:       config,
		healthStatus: &HealthStatus{},
		logger:       GetLogger(),
	}
}

func (dm *defaultDatabaseManager) Connect(ctx context.Context) error {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if dm.connected && dm.db != nil {
		return nil
	}

	sqlDB, db, err := dm.createConnection()
	if err != nil {
		dm.lastError = err
		return fmt.Errorf("failed to create database connection: %w", err)
	}
	dm.configureConnectionPool(sqlDB)

	ctxTimeout, cancel := context.WithTimeout(ctx, dm.config.ConnectTimeout)
	defer cancel()

	if err := db.PingContext(ctxTimeout); err != nil {
		_ = db.Close()
		dm.lastError = err
		return fmt.Errorf("database connection test failed: %w", err)
	}

	dm.sqlDB, dm.db = sqlDB, db
	dm.connected = true
	dm.lastError = nil
	dm.reconnectTries = 0

	if dm.config.HealthCheckInterval > 0 && dm.stopHealth == nil {
		dm.startHealthCheck()
	}

	dm.logger.Info("Database connected successfully", "type", dm.config.Type, "host", dm.config.Host, "dbname", dm.config.DBName)
	return nil
}

func (dm *defaultDatabaseManager) createConnection() (*sql.DB, *bun.DB, error) {
	if dm.config.ConnectTimeout <= 0 {
		dm.config.ConnectTimeout = 30 * time.Second
	}

	var (
		sqlDB *sql.DB
		db    *bun.DB
		err   error
	)
	switch dm.config.Type {
	case "mysql":
		sqlDB, err = sql.Open("mysql", dm.mysqlDSN())
		if err == nil {
			db = bun.NewDB(sqlDB, mysqldialect.New())
		}
	case "postgres", "postgresql":
		sqlDB, err = sql.Open("postgres", dm.postgresDSN())
		if err == nil {
			db = bun.NewDB(sqlDB, pgdialect.New())
		}
	case "sqlite", "sqlite3":
		sqlDB, err = sql.Open(sqliteshim.ShimName, dm.sqliteDSN())
		if err == nil {
			db = bun.NewDB(sqlDB, sqlitedialect.New())
		}
	default:
		return nil, nil, fmt.Errorf("unsupported database type: %s", dm.config.Type)
	}
	if err != nil {
		return nil, nil, err
	}

	if dm.config.EnableQueryLog {
		db.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(true),
			bundebug.FromEnv("BUNDEBUG"),
		))
	}
	if dm.config.SlowQueryTime > 0 {
		db.AddQueryHook(NewSlowQueryHook(dm.config.SlowQueryTime, dm.logger))
	}
	return sqlDB, db, nil
}

func (dm *defaultDatabaseManager) mysqlDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%s&readTimeout=%s&writeTimeout=%s",
		dm.config.Username,
		dm.config.Password,
		dm.config.Host,
		dm.config.Port,
		dm.config.DBName,
		dm.config.ConnectTimeout,
		dm.config.ReadTimeout,
		dm.config.WriteTimeout,
	)
}

func (dm *defaultDatabaseManager) postgresDSN() string {
	sslMode := dm.config.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s&connect_timeout=%d",
		dm.config.Username,
		dm.config.Password,
		dm.config.Host,
		dm.config.Port,
		dm.config.DBName,
		sslMode,
		int(dm.config.ConnectTimeout.Seconds()),
	)
}

func (dm *defaultDatabaseManager) sqliteDSN() string {
	if dm.config.IsMemory() {
		return MemoryDBName
	}
	return fmt.Sprintf("%s.db", dm.config.DBName)
}

func (dm *defaultDatabaseManager) configureConnectionPool(sqlDB *sql.DB) {
	// Every new connection to :memory: opens a fresh empty database, so the
	// pool must hold exactly one connection forever.
	if dm.config.IsMemory() {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
		sqlDB.SetConnMaxIdleTime(0)
		return
	}
	sqlDB.SetMaxIdleConns(dm.config.MaxIdleConns)
	sqlDB.SetMaxOpenConns(dm.config.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(dm.config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(dm.config.ConnMaxIdleTime)
}

func (dm *defaultDatabaseManager) Disconnect() error {
	dm.mu.Lock()
	if dm.stopHealth != nil {
		dm.stopHealth()
		dm.stopHealth = nil
	}
	dm.mu.Unlock()
	return dm.closeConnection()
}

func (dm *defaultDatabaseManager) closeConnection() error {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if dm.db == nil {
		return nil
	}
	err := dm.db.Close()
	dm.db = nil
	dm.sqlDB = nil
	dm.connected = false

	if err != nil {
		dm.logger.Error("Failed to close database connection", "error", err)
	} else {
		dm.logger.Info("Database connection closed")
	}
	return err
}

// Reconnect replaces the current connection without stopping the health loop.
func (dm *defaultDatabaseManager) Reconnect(ctx context.Context) error {
	dm.logger.Info("Attempting to reconnect to the database")
	if err := dm.closeConnection(); err != nil {
		dm.logger.Warn("Error disconnecting existing connection", "error", err)
	}
	return dm.Connect(ctx)
}

func (dm *defaultDatabaseManager) Ping(ctx context.Context) error {
	dm.mu.RLock()
	db := dm.db
	dm.mu.RUnlock()

	if db == nil {
		return fmt.Errorf("database not connected")
	}
	return db.PingContext(ctx)
}

func (dm *defaultDatabaseManager) GetDB() *bun.DB {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.db
}

func (dm *defaultDatabaseManager) GetSQLDB() *sql.DB {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.sqlDB
}

func (dm *defaultDatabaseManager) HealthCheck(ctx context.Context) *HealthStatus {
	dm.mu.RLock()
	db, sqlDB, connected := dm.db, dm.sqlDB, dm.connected
	dm.mu.RUnlock()

	start := time.Now()
	status := &HealthStatus{
		LastCheckTime: start,
		Connected:     connected,
	}
	if db == nil {
		status.LastError = "Database not initialized"
		return status
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	err := db.PingContext(ctxTimeout)
	status.ResponseTime = time.Since(start)
	if err != nil {
		status.Connected = false
		status.LastError = err.Error()
	} else {
		status.Healthy = true
		status.Connected = true
	}

	stats := sqlDB.Stats()
	status.ActiveConns = stats.InUse
	status.IdleConns = stats.Idle
	status.MaxOpenConns = stats.MaxOpenConnections

	dm.mu.Lock()
	dm.lastError = err
	dm.healthStatus = status
	dm.mu.Unlock()
	return status
}

// startHealthCheck must be called with dm.mu held.
func (dm *defaultDatabaseManager) startHealthCheck() {
	ctx, cancel := context.WithCancel(context.Background())
	dm.stopHealth = cancel

	go func() {
		ticker := time.NewTicker(dm.config.HealthCheckInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				checkCtx, checkCancel := context.WithTimeout(ctx, time.Second*10)
				status := dm.HealthCheck(checkCtx)
				checkCancel()
				if !status.Healthy && dm.config.EnableReconnect {
					dm.handleReconnect(ctx)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (dm *defaultDatabaseManager) handleReconnect(ctx context.Context) {
	if dm.reconnectTries >= dm.config.MaxReconnectTries {
		dm.logger.Error("Max reconnect attempts reached, stopping", "tries", dm.reconnectTries)
		return
	}

	dm.reconnectTries++
	dm.logger.Info("Starting database reconnect", "try", dm.reconnectTries)

	select {
	case <-time.After(dm.config.ReconnectInterval):
	case <-ctx.Done():
		return
	}

	connectCtx, cancel := context.WithTimeout(ctx, dm.config.ConnectTimeout)
	defer cancel()

	if err := dm.Reconnect(connectCtx); err != nil {
		dm.logger.Error("Reconnect failed", "error", err, "try", dm.reconnectTries)
		return
	}
	dm.logger.Info("Reconnect succeeded")
}

func (dm *defaultDatabaseManager) GetStats() *DBStats {
	dm.mu.RLock()
	sqlDB := dm.sqlDB
	dm.mu.RUnlock()

	if sqlDB == nil {
		return &DBStats{}
	}

	stats := sqlDB.Stats()
	return &DBStats{
		MaxOpenConns:      stats.MaxOpenConnections,
		OpenConns:         stats.OpenConnections,
		InUse:             stats.InUse,
		Idle:              stats.Idle,
		WaitCount:         stats.WaitCount,
		WaitDuration:      stats.WaitDuration,
		MaxIdleClosed:     stats.MaxIdleClosed,
		MaxIdleTimeClosed: stats.MaxIdleTimeClosed,
		MaxLifetimeClosed: stats.MaxLifetimeClosed,
	}
}

func (dm *defaultDatabaseManager) RunMigrations(ctx context.Context) error {
	db := dm.GetDB()
	if db == nil {
		return fmt.Errorf("database not initialized")
	}
	return NewMigrationManager(db, dm.logger).RunMigrations(ctx)
}

func (dm *defaultDatabaseManager) SetLogger(logger Logger) {
	if logger == nil {
		return
	}
	dm.mu.Lock()
	defer dm.mu.Unlock()
	dm.logger = logger
}

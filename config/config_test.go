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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Database.ConnectionConfig.Type != "sqlite" || cfg.Database.ConnectionConfig.DBName != "roster" {
		t.Errorf("Database = %+v, want sqlite roster", cfg.Database.ConnectionConfig)
	}
	if !cfg.Database.DataMigrateConfig.EnableMigrateOnStartup {
		t.Error("migrations should run on startup by default")
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOG_LEVEL", "")
	path := writeConfig(t, `
server:
  port: "9090"
  shutdown_timeout: 3s
log:
  level: debug
  format: json
database:
  type: postgres
  host: db.internal
  port: 5432
  dbname: school
  sslmode: disable
  slow_query_time: 0s
  enable_query_log: true
  migrate_on_startup: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Server.ShutdownTimeout != 3*time.Second {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("ReadTimeout = %v, want default 10s", cfg.Server.ReadTimeout)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	db := cfg.Database.ConnectionConfig
	if db.Type != "postgres" || db.Host != "db.internal" || db.Port != 5432 || db.DBName != "school" {
		t.Errorf("Database = %+v", db)
	}
	if db.SlowQueryTime != 0 {
		t.Errorf("SlowQueryTime = %v, want 0 (disabled)", db.SlowQueryTime)
	}
	if !db.EnableQueryLog {
		t.Error("EnableQueryLog should be true")
	}
	if cfg.Database.DataMigrateConfig.EnableMigrateOnStartup {
		t.Error("migrate_on_startup: false should disable migrations")
	}
}

func TestLoad_PathFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv(PathEnv, writeConfig(t, "server:\n  port: \"7000\"\n"))

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "7000" {
		t.Errorf("Server.Port = %q, want 7000", cfg.Server.Port)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8181")
	t.Setenv("LOG_LEVEL", "warn")
	path := writeConfig(t, "server:\n  port: \"9090\"\nlog:\n  level: debug\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "8181" {
		t.Errorf("Server.Port = %q, want SERVER_PORT value", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want LOG_LEVEL value", cfg.Log.Level)
	}
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOG_LEVEL", "")
	path := writeConfig(t, "server:\n  read_timeout: soon\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("ReadTimeout = %v, want default", cfg.Server.ReadTimeout)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOG_LEVEL", "")
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"malformed yaml", "server: [", "parse config file"},
		{"bad port", "server:\n  port: http\n", "server.port"},
		{"bad log format", "log:\n  format: xml\n", "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatalf("Load() expected error, got %+v", cfg)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want message containing %q", err, tt.want)
			}
		})
	}
}

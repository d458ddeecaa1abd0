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

// Package config loads service configuration from a YAML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tomoncle/roster/database"

	"gopkg.in/yaml.v3"
)

// PathEnv names the environment variable holding the config file path.
const PathEnv = "ROSTER_CONFIG"

// DefaultPath is used when PathEnv is unset.
const DefaultPath = "config/roster.yaml"

// Config holds service configuration loaded from YAML and env.
type Config struct {
	Server   Server
	Log      Log
	Database database.Config
}

type Server struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type Log struct {
	Level  string // trace, debug, info, warn, error
	Format string // console or json
}

type fileConfig struct {
	Server struct {
		Port            string `yaml:"port"`
		ReadTimeout     string `yaml:"read_timeout"`
		WriteTimeout    string `yaml:"write_timeout"`
		ShutdownTimeout string `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	Database struct {
		Type                string `yaml:"type"`
		Host                string `yaml:"host"`
		Port                int    `yaml:"port"`
		Username            string `yaml:"username"`
		Password            string `yaml:"password"`
		DBName              string `yaml:"dbname"`
		SSLMode             string `yaml:"sslmode"`
		MaxIdleConns        int    `yaml:"max_idle_conns"`
		MaxOpenConns        int    `yaml:"max_open_conns"`
		ConnMaxLifetime     string `yaml:"conn_max_lifetime"`
		ConnMaxIdleTime     string `yaml:"conn_max_idle_time"`
		ConnectTimeout      string `yaml:"connect_timeout"`
		HealthCheckInterval string `yaml:"health_check_interval"`
		EnableQueryLog      *bool  `yaml:"enable_query_log"`
		SlowQueryTime       string `yaml:"slow_query_time"`
		MigrateOnStartup    *bool  `yaml:"migrate_on_startup"`
	} `yaml:"database"`
}

// Default returns the configuration used when no file is present: port 8080
// and a local sqlite database migrated on startup.
func Default() *Config {
	return &Config{
		Server: Server{
			Port:            "8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Log: Log{Level: "info", Format: "console"},
		Database: database.Config{
			ConnectionConfig:  *database.DefaultConnectionConfig(),
			DataMigrateConfig: database.DataMigrateConfig{EnableMigrateOnStartup: true},
		},
	}
}

// Load reads configuration from path. An empty path falls back to
// $ROSTER_CONFIG and then DefaultPath. A missing file is not an error: the
// defaults are used. SERVER_PORT and LOG_LEVEL override the file.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(PathEnv)
	}
	if path == "" {
		path = DefaultPath
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
		apply(cfg, &fc)
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if v := os.Getenv("SERVER_PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func apply(cfg *Config, fc *fileConfig) {
	if fc.Server.Port != "" {
		cfg.Server.Port = fc.Server.Port
	}
	cfg.Server.ReadTimeout = parseDuration(fc.Server.ReadTimeout, cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = parseDuration(fc.Server.WriteTimeout, cfg.Server.WriteTimeout)
	cfg.Server.ShutdownTimeout = parseDuration(fc.Server.ShutdownTimeout, cfg.Server.ShutdownTimeout)

	if fc.Log.Level != "" {
		cfg.Log.Level = fc.Log.Level
	}
	if fc.Log.Format != "" {
		cfg.Log.Format = fc.Log.Format
	}

	db := &cfg.Database.ConnectionConfig
	d := fc.Database
	setString(&db.Type, d.Type)
	setString(&db.Host, d.Host)
	setString(&db.Username, d.Username)
	setString(&db.Password, d.Password)
	setString(&db.DBName, d.DBName)
	setString(&db.SSLMode, d.SSLMode)
	if d.Port > 0 {
		db.Port = d.Port
	}
	if d.MaxIdleConns > 0 {
		db.MaxIdleConns = d.MaxIdleConns
	}
	if d.MaxOpenConns > 0 {
		db.MaxOpenConns = d.MaxOpenConns
	}
	db.ConnMaxLifetime = parseDuration(d.ConnMaxLifetime, db.ConnMaxLifetime)
	db.ConnMaxIdleTime = parseDuration(d.ConnMaxIdleTime, db.ConnMaxIdleTime)
	db.ConnectTimeout = parseDuration(d.ConnectTimeout, db.ConnectTimeout)
	// Zero disables the background health check and the slow query hook.
	db.HealthCheckInterval = parseDurationOrZero(d.HealthCheckInterval, db.HealthCheckInterval)
	db.SlowQueryTime = parseDurationOrZero(d.SlowQueryTime, db.SlowQueryTime)
	if d.EnableQueryLog != nil {
		db.EnableQueryLog = *d.EnableQueryLog
	}
	if d.MigrateOnStartup != nil {
		cfg.Database.DataMigrateConfig.EnableMigrateOnStartup = *d.MigrateOnStartup
	}
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

// parseDuration parses a duration string and returns defaultVal if parsing
// fails or the result is <= 0.
func parseDuration(s string, defaultVal time.Duration) time.Duration {
	d := parseDurationOrZero(s, defaultVal)
	if d <= 0 {
		return defaultVal
	}
	return d
}

// parseDurationOrZero parses a duration string, returning defaultVal on an
// empty string or parse error. Zero is kept as-is.
func parseDurationOrZero(s string, defaultVal time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return defaultVal
	}
	return d
}

func validate(cfg *Config) error {
	port, err := strconv.Atoi(cfg.Server.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("server.port must be a valid TCP port, got %q", cfg.Server.Port)
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", cfg.Log.Format)
	}
	return nil
}

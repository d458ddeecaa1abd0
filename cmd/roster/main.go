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

// Command roster serves the student and instructor CRUD API.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomoncle/roster"
	"github.com/tomoncle/roster/config"
	"github.com/tomoncle/roster/database"
	"github.com/tomoncle/roster/utils"
	"github.com/tomoncle/roster/web"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file (default $"+config.PathEnv+" or "+config.DefaultPath+")")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		utils.NewLogger("MAIN").WithError(err).Fatal("Load config")
	}
	utils.ConfigureLogLevel(cfg.Log.Level)
	utils.ConfigureConsoleLogFormat(cfg.Log.Format)
	database.InitLogger(database.NewLogrusLogger(utils.NewLogger("DATABASE")))
	logger := utils.NewLogger("MAIN")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(ctx, &cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("Initialize database")
	}
	defer func() {
		if err := database.CloseDB(); err != nil {
			logger.WithError(err).Error("Close database")
		}
	}()

	router := web.NewRouter(web.RouterOptions{
		Students:    roster.NewStudentService(db),
		Instructors: roster.NewInstructorService(db),
		Health:      database.GetDatabaseManager(),
		Metrics:     web.NewMetrics(),
		Logger:      utils.NewLogger("HTTP"),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.WithField("addr", srv.Addr).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.WithError(err).Error("Server stopped")
		}
	case <-ctx.Done():
		logger.Info("Graceful shutdown triggered")
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server shutdown")
	}
	logger.Info("Shutdown complete")
}

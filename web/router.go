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

package web

import (
	"net/http"

	"github.com/tomoncle/roster"
	"github.com/tomoncle/roster/models"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// RouterOptions holds the dependencies of NewRouter. Nil services leave the
// corresponding routes unmounted.
type RouterOptions struct {
	Students    roster.Service[models.Student, *models.Student]
	Instructors roster.Service[models.Instructor, *models.Instructor]
	Health      HealthChecker
	Metrics     *Metrics
	Logger      *logrus.Logger
}

// NewRouter wires every route and middleware of the service.
func NewRouter(opts RouterOptions) *mux.Router {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	router := mux.NewRouter()
	router.Use(CorrelationIDMiddleware(logger))
	router.Use(LoggingMiddleware(logger))
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware)
		router.Handle("/metrics", opts.Metrics.Handler()).Methods(http.MethodGet)
	}

	router.HandleFunc("/health", HealthHandler(opts.Health)).Methods(http.MethodGet)
	router.HandleFunc("/hello/", HelloHandler).Methods(http.MethodGet)
	router.HandleFunc("/hello/{name}", HelloHandler).Methods(http.MethodGet)

	if opts.Students != nil {
		NewCrudHandler("student", opts.Students, logger).Register(router.PathPrefix("/students").Subrouter())
	}
	if opts.Instructors != nil {
		NewCrudHandler("instructor", opts.Instructors, logger).Register(router.PathPrefix("/instructors").Subrouter())
	}
	return router
}

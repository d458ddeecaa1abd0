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
	"context"
	"net/http"
	"time"

	"github.com/tomoncle/roster/database"
)

// HealthChecker reports store health and pool statistics.
// database.AbstractDatabaseManager satisfies it.
type HealthChecker interface {
	HealthCheck(ctx context.Context) *database.HealthStatus
	GetStats() *database.DBStats
}

// healthCheckTimeout bounds a single /health check.
const healthCheckTimeout = 3 * time.Second

type healthResponse struct {
	Status   string                 `json:"status"`
	Database *database.HealthStatus `json:"database,omitempty"`
	Pool     *database.DBStats      `json:"pool,omitempty"`
}

// HealthHandler serves GET /health: 200 when the store is reachable, 503 otherwise.
func HealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker == nil {
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		status := checker.HealthCheck(ctx)
		resp := healthResponse{Status: "healthy", Database: status, Pool: checker.GetStats()}
		if status == nil || !status.Healthy {
			resp.Status = "unhealthy"
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

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

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

type ctxKey int

const (
	correlationIDKey ctxKey = iota
	loggerKey
)

// CorrelationIDHeader carries the request id in both directions.
const CorrelationIDHeader = "X-Correlation-ID"

// errorBody is the wire format of every error response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId"`
}

// CorrelationID returns the request id stored by the correlation middleware.
func CorrelationID(ctx context.Context) string {
	if v, ok := ctx.Value(correlationIDKey).(string); ok {
		return v
	}
	return ""
}

// requestLogger returns the request scoped logger, or fallback.
func requestLogger(ctx context.Context, fallback *logrus.Logger) logrus.FieldLogger {
	if l, ok := ctx.Value(loggerKey).(*logrus.Entry); ok && l != nil {
		return l
	}
	return fallback
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response carrying the request's correlation id.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{
		Code:      code,
		Message:   message,
		RequestID: CorrelationID(r.Context()),
	}})
}

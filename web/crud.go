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
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/tomoncle/roster"
	"github.com/tomoncle/roster/database"
	"github.com/tomoncle/roster/models"
	"github.com/tomoncle/roster/types"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes bounds request payloads.
const maxBodyBytes = 1 << 20

var errEmptyBody = errors.New("request body is required")

// CrudHandler exposes a roster.Service over HTTP:
//
//	GET    /      list all
//	GET    /{id}  get one
//	PUT    /      create
//	POST   /{id}  partial update
//	DELETE /{id}  delete
type CrudHandler[T any, P models.Record[T]] struct {
	name   string
	svc    roster.Service[T, P]
	logger *logrus.Logger
}

// NewCrudHandler returns a handler for svc; name is used in messages ("student").
func NewCrudHandler[T any, P models.Record[T]](name string, svc roster.Service[T, P], logger *logrus.Logger) *CrudHandler[T, P] {
	return &CrudHandler[T, P]{name: name, svc: svc, logger: logger}
}

// Register mounts the CRUD routes on router, usually a path-prefixed subrouter.
func (h *CrudHandler[T, P]) Register(router *mux.Router) {
	for _, root := range []string{"", "/"} {
		router.HandleFunc(root, h.List).Methods(http.MethodGet)
		router.HandleFunc(root, h.Create).Methods(http.MethodPut)
	}
	router.HandleFunc("/{id}", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/{id}", h.Update).Methods(http.MethodPost)
	router.HandleFunc("/{id}", h.Delete).Methods(http.MethodDelete)
}

func (h *CrudHandler[T, P]) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.ListAll(r.Context())
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *CrudHandler[T, P]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	found, err := h.svc.GetByID(r.Context(), id)
	h.writeResult(w, r, id, found, err)
}

func (h *CrudHandler[T, P]) Create(w http.ResponseWriter, r *http.Request) {
	record, ok := h.decodeBody(w, r)
	if !ok {
		return
	}
	created, err := h.svc.Create(r.Context(), record)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	saved, present := created.Get()
	if !present {
		writeError(w, r, http.StatusBadRequest, "INVALID_BODY", errEmptyBody.Error())
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *CrudHandler[T, P]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	payload, ok := h.decodeBody(w, r)
	if !ok {
		return
	}
	updated, err := h.svc.UpdateByID(r.Context(), id, payload)
	h.writeResult(w, r, id, updated, err)
}

func (h *CrudHandler[T, P]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	deleted, err := h.svc.DeleteByID(r.Context(), id)
	h.writeResult(w, r, id, deleted, err)
}

func (h *CrudHandler[T, P]) writeResult(w http.ResponseWriter, r *http.Request, id int64, result types.Optional[T], err error) {
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	record, ok := result.Get()
	if !ok {
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("%s %d not found", h.name, id))
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// writeStoreError maps constraint violations to 409 and everything else to 500.
func (h *CrudHandler[T, P]) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if database.IsConstraintViolation(err) {
		requestLogger(r.Context(), h.logger).WithError(err).Info("Constraint violation")
		writeError(w, r, http.StatusConflict, "CONFLICT", fmt.Sprintf("%s conflicts with an existing record", h.name))
		return
	}
	requestLogger(r.Context(), h.logger).WithError(err).Error("Store operation failed")
	writeError(w, r, http.StatusInternalServerError, "INTERNAL", "internal server error")
}

func (h *CrudHandler[T, P]) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_ID", fmt.Sprintf("invalid %s id: %q", h.name, raw))
		return 0, false
	}
	return id, true
}

// decodeBody reads a JSON payload. An empty body or a literal null is
// rejected with 400 since neither carries a record.
func (h *CrudHandler[T, P]) decodeBody(w http.ResponseWriter, r *http.Request) (*T, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_BODY", "unable to read request body")
		return nil, false
	}
	if len(bytes.TrimSpace(data)) == 0 {
		writeError(w, r, http.StatusBadRequest, "INVALID_BODY", errEmptyBody.Error())
		return nil, false
	}
	var record *T
	if err := json.Unmarshal(data, &record); err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_BODY", "malformed JSON body")
		return nil, false
	}
	if record == nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_BODY", errEmptyBody.Error())
		return nil, false
	}
	return record, true
}

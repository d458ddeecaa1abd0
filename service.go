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

package roster

import (
	"context"
	"fmt"

	"github.com/tomoncle/roster/database"
	"github.com/tomoncle/roster/models"
	"github.com/tomoncle/roster/repository"
	"github.com/tomoncle/roster/types"

	"github.com/uptrace/bun"
)

// Service exposes identity-addressed CRUD over one entity type. Absent
// results are reported as empty Optionals, never as errors; store errors are
// returned unchanged apart from added context.
type Service[T any, P models.Record[T]] interface {
	// ListAll returns every stored entity, in store order.
	ListAll(ctx context.Context) ([]*T, error)

	// GetByID returns the entity with the given id.
	GetByID(ctx context.Context, id int64) (types.Optional[T], error)

	// Create persists record as a new entity; any id it carries is ignored
	// and the store assigns one. A nil record yields an empty result without
	// touching the store.
	Create(ctx context.Context, record *T) (types.Optional[T], error)

	// UpdateByID merges the non-empty fields of payload into the stored
	// entity and persists it. A nil payload or an unknown id yields an empty
	// result and no write.
	UpdateByID(ctx context.Context, id int64, payload *T) (types.Optional[T], error)

	// DeleteByID removes the entity and returns its pre-deletion value. An
	// unknown id yields an empty result and no delete.
	DeleteByID(ctx context.Context, id int64) (types.Optional[T], error)
}

type baseServiceImpl[T any, P models.Record[T]] struct {
	repo   repository.Repository[T, P]
	logger database.Logger
}

// NewService returns the default Service implementation on top of repo.
func NewService[T any, P models.Record[T]](repo repository.Repository[T, P]) Service[T, P] {
	return &baseServiceImpl[T, P]{repo: repo, logger: database.GetLogger()}
}

// NewStudentService returns a Service for students stored in db.
func NewStudentService(db *bun.DB) Service[models.Student, *models.Student] {
	return NewService(repository.NewRepository[models.Student, *models.Student](db))
}

// NewInstructorService returns a Service for instructors stored in db.
func NewInstructorService(db *bun.DB) Service[models.Instructor, *models.Instructor] {
	return NewService(repository.NewRepository[models.Instructor, *models.Instructor](db))
}

func (s *baseServiceImpl[T, P]) ListAll(ctx context.Context) ([]*T, error) {
	records, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

func (s *baseServiceImpl[T, P]) GetByID(ctx context.Context, id int64) (types.Optional[T], error) {
	return s.loadByID(ctx, id)
}

func (s *baseServiceImpl[T, P]) Create(ctx context.Context, record *T) (types.Optional[T], error) {
	if record == nil {
		return types.Empty[T](), nil
	}
	// The store assigns identity; a client-supplied id must not overwrite an existing row.
	P(record).SetID(0)
	saved, err := s.repo.Save(ctx, record)
	if err != nil {
		return types.Empty[T](), fmt.Errorf("create record: %w", err)
	}
	s.logger.Debug("Record created", "type", fmt.Sprintf("%T", record), "id", P(saved).GetID())
	return types.Of(saved), nil
}

func (s *baseServiceImpl[T, P]) UpdateByID(ctx context.Context, id int64, payload *T) (types.Optional[T], error) {
	if payload == nil {
		return types.Empty[T](), nil
	}
	found, err := s.loadByID(ctx, id)
	if err != nil {
		return types.Empty[T](), err
	}
	current, ok := found.Get()
	if !ok {
		return types.Empty[T](), nil
	}

	merged, err := P(current).UpdateFrom(payload)
	if err != nil {
		return types.Empty[T](), fmt.Errorf("merge record %d: %w", id, err)
	}
	// The addressed row is the one being updated, whatever id the payload carried.
	P(merged).SetID(id)

	updated, err := s.repo.Update(ctx, merged)
	if err != nil {
		return types.Empty[T](), fmt.Errorf("update record %d: %w", id, err)
	}
	if !updated {
		s.logger.Debug("Record removed before update", "type", fmt.Sprintf("%T", merged), "id", id)
		return types.Empty[T](), nil
	}
	s.logger.Debug("Record updated", "type", fmt.Sprintf("%T", merged), "id", id)
	return types.Of(merged), nil
}

func (s *baseServiceImpl[T, P]) DeleteByID(ctx context.Context, id int64) (types.Optional[T], error) {
	found, err := s.loadByID(ctx, id)
	if err != nil {
		return types.Empty[T](), err
	}
	current, ok := found.Get()
	if !ok {
		return types.Empty[T](), nil
	}
	if err := s.repo.Delete(ctx, current); err != nil {
		return types.Empty[T](), fmt.Errorf("delete record %d: %w", id, err)
	}
	s.logger.Debug("Record deleted", "type", fmt.Sprintf("%T", current), "id", id)
	return found, nil
}

func (s *baseServiceImpl[T, P]) loadByID(ctx context.Context, id int64) (types.Optional[T], error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return types.Empty[T](), fmt.Errorf("load record %d: %w", id, err)
	}
	return found, nil
}

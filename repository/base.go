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

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tomoncle/roster/models"
	"github.com/tomoncle/roster/types"

	"github.com/uptrace/bun"
)

// ErrNilEntity is returned when Save or Delete is called without an entity.
var ErrNilEntity = errors.New("entity cannot be nil")

type baseRepositoryImpl[T any, P models.Record[T]] struct {
	db *bun.DB
}

// NewRepository returns a generic repository backed by the provided Bun DB.
func NewRepository[T any, P models.Record[T]](db *bun.DB) Repository[T, P] {
	return &baseRepositoryImpl[T, P]{db: db}
}

func (r *baseRepositoryImpl[T, P]) FindAll(ctx context.Context) ([]*T, error) {
	entities := make([]*T, 0)
	if err := r.db.NewSelect().Model(&entities).Scan(ctx); err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *baseRepositoryImpl[T, P]) FindByID(ctx context.Context, id int64) (types.Optional[T], error) {
	entity := new(T)
	P(entity).SetID(id)
	err := r.db.NewSelect().Model(entity).WherePK().Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Empty[T](), nil
	}
	if err != nil {
		return types.Empty[T](), err
	}
	return types.Of(entity), nil
}

func (r *baseRepositoryImpl[T, P]) Save(ctx context.Context, entity *T) (*T, error) {
	if entity == nil {
		return nil, ErrNilEntity
	}
	if P(entity).GetID() == 0 {
		if _, err := r.db.NewInsert().Model(entity).Exec(ctx); err != nil {
			return nil, err
		}
		return entity, nil
	}
	return r.updateOrInsert(ctx, entity)
}

// updateOrInsert updates the row addressed by the entity's id and inserts it
// under that id when no such row exists yet.
func (r *baseRepositoryImpl[T, P]) updateOrInsert(ctx context.Context, entity *T) (*T, error) {
	updated, err := r.Update(ctx, entity)
	if err != nil {
		return nil, err
	}
	if updated {
		return entity, nil
	}
	if _, insertErr := r.db.NewInsert().Model(entity).Exec(ctx); insertErr != nil {
		return nil, fmt.Errorf("save failed for id %d: %w", P(entity).GetID(), insertErr)
	}
	return entity, nil
}

func (r *baseRepositoryImpl[T, P]) Update(ctx context.Context, entity *T) (bool, error) {
	if entity == nil {
		return false, ErrNilEntity
	}
	res, err := r.db.NewUpdate().Model(entity).WherePK().Exec(ctx)
	if err != nil {
		return false, err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return true, nil
	}
	// MySQL reports zero affected rows when nothing changed.
	return r.db.NewSelect().Model(entity).WherePK().Exists(ctx)
}

func (r *baseRepositoryImpl[T, P]) Delete(ctx context.Context, entity *T) error {
	if entity == nil {
		return ErrNilEntity
	}
	_, err := r.db.NewDelete().Model(entity).WherePK().Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T, P]) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*T)(nil)).Count(ctx)
}

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

	"github.com/tomoncle/roster/models"
	"github.com/tomoncle/roster/types"
)

// CrudRepository defines the persistence operations the CRUD service needs
// for a single entity type.
type CrudRepository[T any, P models.Record[T]] interface {
	// FindAll returns every stored entity in the order the store yields them.
	FindAll(ctx context.Context) ([]*T, error)

	// FindByID returns the entity with the given id, or an empty Optional.
	FindByID(ctx context.Context, id int64) (types.Optional[T], error)

	// Save inserts a new entity (id 0) or updates an existing one, and
	// returns the persisted value with its assigned id.
	Save(ctx context.Context, entity *T) (*T, error)

	// Update overwrites the row with the entity's id. It reports false and
	// writes nothing when that row does not exist.
	Update(ctx context.Context, entity *T) (bool, error)

	// Delete removes the entity by its primary key.
	Delete(ctx context.Context, entity *T) error
}

// Repository combines CRUD operations with counting.
type Repository[T any, P models.Record[T]] interface {
	CrudRepository[T, P]
	Count(ctx context.Context) (int, error)
}

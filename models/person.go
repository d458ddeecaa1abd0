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

package models

import "errors"

// ErrNilUpdate is returned when a merge is attempted without an update payload.
var ErrNilUpdate = errors.New("update payload cannot be nil")

// Record is the constraint shared by every persisted person-like entity. It
// ties the entity struct T to the methods declared on its pointer.
type Record[T any] interface {
	*T
	GetID() int64
	SetID(id int64)
	UpdateFrom(update *T) (*T, error)
}

// Person holds the identity and name fields common to every person-like
// entity. Concrete types embed it and add their own columns.
type Person struct {
	ID        int64  `bun:"id,pk,autoincrement" json:"id"`
	FirstName string `bun:"first_name" json:"firstName"`
	LastName  string `bun:"last_name" json:"lastName"`
}

func (p *Person) GetID() int64 { return p.ID }

func (p *Person) SetID(id int64) { p.ID = id }

// MergeFrom copies every non-empty field of update onto p. Empty fields on
// update leave p untouched, so a merge can never clear a value.
func (p *Person) MergeFrom(update *Person) {
	if update == nil {
		return
	}
	if update.ID != 0 {
		p.ID = update.ID
	}
	if update.FirstName != "" {
		p.FirstName = update.FirstName
	}
	if update.LastName != "" {
		p.LastName = update.LastName
	}
}

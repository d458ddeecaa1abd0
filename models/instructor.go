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

import (
	"github.com/tomoncle/roster/database"

	"github.com/uptrace/bun"
)

func init() {
	database.RegisteredModel(database.NewModelAdapter((*Instructor)(nil), 20))
}

// Instructor is a person teaching within a department.
type Instructor struct {
	bun.BaseModel `bun:"table:instructors,alias:i" json:"-"`
	Person

	Department string `bun:"department" json:"department"`
	Title      string `bun:"title" json:"title"`
}

// NewInstructor returns an empty, not yet persisted instructor.
func NewInstructor() *Instructor {
	return &Instructor{}
}

func (i *Instructor) WithID(id int64) *Instructor {
	i.ID = id
	return i
}

func (i *Instructor) WithFirstName(firstName string) *Instructor {
	i.FirstName = firstName
	return i
}

func (i *Instructor) WithLastName(lastName string) *Instructor {
	i.LastName = lastName
	return i
}

func (i *Instructor) WithDepartment(department string) *Instructor {
	i.Department = department
	return i
}

func (i *Instructor) WithTitle(title string) *Instructor {
	i.Title = title
	return i
}

// UpdateFrom merges the non-empty fields of update into i and returns i.
func (i *Instructor) UpdateFrom(update *Instructor) (*Instructor, error) {
	if update == nil {
		return nil, ErrNilUpdate
	}
	i.Person.MergeFrom(&update.Person)
	if update.Department != "" {
		i.Department = update.Department
	}
	if update.Title != "" {
		i.Title = update.Title
	}
	return i, nil
}

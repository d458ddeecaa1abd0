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
	database.RegisteredModel(database.NewModelAdapter((*Student)(nil), 10))
}

// Student is a person enrolled in a program.
type Student struct {
	bun.BaseModel `bun:"table:students,alias:s" json:"-"`
	Person

	Identifier     string `bun:"identifier" json:"identifier"`
	Major          string `bun:"major" json:"major"`
	GraduationYear int    `bun:"graduation_year" json:"graduationYear"`
}

// NewStudent returns an empty, not yet persisted student.
func NewStudent() *Student {
	return &Student{}
}

func (s *Student) WithID(id int64) *Student {
	s.ID = id
	return s
}

func (s *Student) WithFirstName(firstName string) *Student {
	s.FirstName = firstName
	return s
}

func (s *Student) WithLastName(lastName string) *Student {
	s.LastName = lastName
	return s
}

func (s *Student) WithIdentifier(identifier string) *Student {
	s.Identifier = identifier
	return s
}

func (s *Student) WithMajor(major string) *Student {
	s.Major = major
	return s
}

func (s *Student) WithGraduationYear(year int) *Student {
	s.GraduationYear = year
	return s
}

// UpdateFrom merges the non-empty fields of update into s and returns s.
func (s *Student) UpdateFrom(update *Student) (*Student, error) {
	if update == nil {
		return nil, ErrNilUpdate
	}
	s.Person.MergeFrom(&update.Person)
	if update.Identifier != "" {
		s.Identifier = update.Identifier
	}
	if update.Major != "" {
		s.Major = update.Major
	}
	if update.GraduationYear != 0 {
		s.GraduationYear = update.GraduationYear
	}
	return s, nil
}

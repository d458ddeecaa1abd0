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
	"errors"
	"testing"

	"github.com/tomoncle/roster/models"
	"github.com/tomoncle/roster/testutil"
)

func newStudentRepo(t *testing.T) Repository[models.Student, *models.Student] {
	t.Helper()
	return NewRepository[models.Student, *models.Student](testutil.NewDB(t))
}

func TestRepository_SaveAssignsID(t *testing.T) {
	repo := newStudentRepo(t)
	ctx := context.Background()

	first, err := repo.Save(ctx, models.NewStudent().WithFirstName("Ann").WithLastName("Lee"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	second, err := repo.Save(ctx, models.NewStudent().WithFirstName("Bob"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if first.ID == 0 || second.ID == 0 {
		t.Fatalf("Save() should assign ids, got %d and %d", first.ID, second.ID)
	}
	if first.ID == second.ID {
		t.Errorf("ids should be unique, both = %d", first.ID)
	}
}

func TestRepository_FindByID(t *testing.T) {
	repo := newStudentRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, models.NewStudent().WithFirstName("Ann").WithMajor("Physics").WithGraduationYear(2026))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	found, err := repo.FindByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	got, ok := found.Get()
	if !ok {
		t.Fatal("FindByID() returned empty for a saved id")
	}
	if *got != *saved {
		t.Errorf("FindByID() = %+v, want %+v", *got, *saved)
	}

	missing, err := repo.FindByID(ctx, saved.ID+100)
	if err != nil {
		t.Fatalf("FindByID(missing) error = %v", err)
	}
	if missing.IsPresent() {
		t.Error("FindByID(missing) should be empty")
	}
}

func TestRepository_FindAll(t *testing.T) {
	repo := newStudentRepo(t)
	ctx := context.Background()

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if all == nil || len(all) != 0 {
		t.Fatalf("FindAll() on empty store = %v, want empty non-nil slice", all)
	}

	for _, name := range []string{"Ann", "Bob", "Cy"} {
		if _, err := repo.Save(ctx, models.NewStudent().WithFirstName(name)); err != nil {
			t.Fatalf("Save(%s) error = %v", name, err)
		}
	}
	all, err = repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("FindAll() returned %d records, want 3", len(all))
	}
	if n, err := repo.Count(ctx); err != nil || n != 3 {
		t.Errorf("Count() = %d, %v; want 3", n, err)
	}
}

func TestRepository_SaveExistingUpdates(t *testing.T) {
	repo := newStudentRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, models.NewStudent().WithFirstName("Ann").WithLastName("Lee"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	saved.LastName = "Smith"
	if _, err := repo.Save(ctx, saved); err != nil {
		t.Fatalf("Save(update) error = %v", err)
	}
	// Saving unchanged values must not fall through to an insert.
	if _, err := repo.Save(ctx, saved); err != nil {
		t.Fatalf("Save(unchanged) error = %v", err)
	}

	found, _ := repo.FindByID(ctx, saved.ID)
	got, ok := found.Get()
	if !ok || got.LastName != "Smith" || got.FirstName != "Ann" {
		t.Errorf("after update = %+v, %v", got, ok)
	}
	if n, _ := repo.Count(ctx); n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}

func TestRepository_Update(t *testing.T) {
	repo := newStudentRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, models.NewStudent().WithFirstName("Ann"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	saved.Major = "Physics"
	updated, err := repo.Update(ctx, saved)
	if err != nil || !updated {
		t.Fatalf("Update() = %v, %v; want true", updated, err)
	}
	updated, err = repo.Update(ctx, saved)
	if err != nil || !updated {
		t.Errorf("Update(unchanged) = %v, %v; an existing row counts as updated", updated, err)
	}

	found, _ := repo.FindByID(ctx, saved.ID)
	if got, ok := found.Get(); !ok || got.Major != "Physics" {
		t.Errorf("after Update() = %+v", got)
	}
}

func TestRepository_UpdateMissingRowWritesNothing(t *testing.T) {
	repo := newStudentRepo(t)
	ctx := context.Background()

	updated, err := repo.Update(ctx, models.NewStudent().WithID(42).WithFirstName("Ghost"))
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated {
		t.Error("Update() of a missing row should report false")
	}
	if n, _ := repo.Count(ctx); n != 0 {
		t.Errorf("Count() = %d, want 0", n)
	}
	if _, err := repo.Update(ctx, nil); !errors.Is(err, ErrNilEntity) {
		t.Errorf("Update(nil) error = %v, want ErrNilEntity", err)
	}
}

func TestRepository_SaveWithUnknownIDInserts(t *testing.T) {
	repo := newStudentRepo(t)
	ctx := context.Background()

	if _, err := repo.Save(ctx, models.NewStudent().WithID(42).WithFirstName("Ann")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	found, err := repo.FindByID(ctx, 42)
	if err != nil || !found.IsPresent() {
		t.Fatalf("FindByID(42) = %v, %v; want present", found, err)
	}
}

func TestRepository_Delete(t *testing.T) {
	repo := newStudentRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, models.NewStudent().WithFirstName("Ann"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := repo.Delete(ctx, saved); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	found, err := repo.FindByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.IsPresent() {
		t.Error("record should be gone after Delete()")
	}
}

func TestRepository_NilEntity(t *testing.T) {
	repo := newStudentRepo(t)
	ctx := context.Background()

	if _, err := repo.Save(ctx, nil); !errors.Is(err, ErrNilEntity) {
		t.Errorf("Save(nil) error = %v, want ErrNilEntity", err)
	}
	if err := repo.Delete(ctx, nil); !errors.Is(err, ErrNilEntity) {
		t.Errorf("Delete(nil) error = %v, want ErrNilEntity", err)
	}
}

func TestRepository_InstructorTable(t *testing.T) {
	repo := NewRepository[models.Instructor, *models.Instructor](testutil.NewDB(t))
	ctx := context.Background()

	saved, err := repo.Save(ctx, models.NewInstructor().WithFirstName("Kim").WithDepartment("Math"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	found, err := repo.FindByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got, ok := found.Get(); !ok || got.Department != "Math" {
		t.Errorf("FindByID() = %+v, %v", got, ok)
	}
}

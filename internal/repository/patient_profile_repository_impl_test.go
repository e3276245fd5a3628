package repository

import (
	"testing"

	"mindclinic/internal/domain/entity"
)

func TestPatientCountByMHWP(t *testing.T) {
	db := openDB(t)
	repo := NewPatientProfileRepository()

	seeds := []entity.PatientProfile{
		{PatientID: 1, Name: "A", MHWPID: 10},
		{PatientID: 2, Name: "B", MHWPID: 10},
		{PatientID: 3, Name: "C", MHWPID: 11},
		{PatientID: 4, Name: "D"},
	}
	for i := range seeds {
		if err := repo.Create(db, &seeds[i]); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	count, err := repo.CountByMHWP(db, 10)
	if err != nil {
		t.Fatalf("CountByMHWP: %v", err)
	}
	if count != 2 {
		t.Fatalf("mhwp 10: got %d, want 2", count)
	}

	count, err = repo.CountByMHWP(db, 99)
	if err != nil {
		t.Fatalf("CountByMHWP: %v", err)
	}
	if count != 0 {
		t.Fatalf("unknown mhwp: got %d, want 0", count)
	}
}

func TestPatientUpdateAndDelete(t *testing.T) {
	db := openDB(t)
	repo := NewPatientProfileRepository()

	profile := &entity.PatientProfile{PatientID: 1, Name: "Alice", MHWPID: 10}
	if err := repo.Create(db, profile); err != nil {
		t.Fatalf("Create: %v", err)
	}

	profile.MHWPID = 0
	if err := repo.Update(db, profile); err != nil {
		t.Fatalf("Update: %v", err)
	}
	found, err := repo.FindByID(db, 1)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Assigned() {
		t.Fatalf("unassignment not persisted: %+v", found)
	}

	if err := repo.Delete(db, 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	found, err = repo.FindByID(db, 1)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Fatalf("expected nil after delete, got %+v", found)
	}
}

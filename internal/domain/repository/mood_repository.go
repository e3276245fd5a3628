package repository

import (
	"mindclinic/internal/domain/entity"
	"mindclinic/internal/infrastructure/jsonstore"
)

type MoodRepository interface {
	// FindByPatient returns the patient's mood log newest-first
	FindByPatient(db *jsonstore.DB, patientID int) ([]entity.MoodEntry, error)
	Append(db *jsonstore.DB, entry *entity.MoodEntry) error
	DeleteByPatient(db *jsonstore.DB, patientID int) error
}

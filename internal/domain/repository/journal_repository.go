package repository

import (
	"mindclinic/internal/domain/entity"
	"mindclinic/internal/infrastructure/jsonstore"
)

type JournalRepository interface {
	// FindByPatient returns the patient's journal newest-first
	FindByPatient(db *jsonstore.DB, patientID int) ([]entity.JournalEntry, error)
	Append(db *jsonstore.DB, entry *entity.JournalEntry) error
	// UpdateAt rewrites the index-th entry (1-based, newest-first) among the
	// patient's own entries.
	UpdateAt(db *jsonstore.DB, patientID, index int, text string) error
	// DeleteAt removes the index-th entry (1-based, newest-first)
	DeleteAt(db *jsonstore.DB, patientID, index int) error
	DeleteByPatient(db *jsonstore.DB, patientID int) error
}

package repository

import (
	"mindclinic/internal/domain/entity"
	"mindclinic/internal/infrastructure/jsonstore"
)

type ClinicalRecordRepository interface {
	FindByPatient(db *jsonstore.DB, patientID int) (*entity.ClinicalRecord, error)
	// Upsert creates the patient's record on first write
	Upsert(db *jsonstore.DB, record *entity.ClinicalRecord) error
	DeleteByPatient(db *jsonstore.DB, patientID int) error
}

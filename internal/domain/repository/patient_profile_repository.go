package repository

import (
	"mindclinic/internal/domain/entity"
	"mindclinic/internal/infrastructure/jsonstore"
)

type PatientProfileRepository interface {
	FindAll(db *jsonstore.DB) ([]entity.PatientProfile, error)
	FindByID(db *jsonstore.DB, patientID int) (*entity.PatientProfile, error)
	FindByMHWP(db *jsonstore.DB, mhwpID int) ([]entity.PatientProfile, error)
	Create(db *jsonstore.DB, profile *entity.PatientProfile) error
	Update(db *jsonstore.DB, profile *entity.PatientProfile) error
	Delete(db *jsonstore.DB, patientID int) error
	CountByMHWP(db *jsonstore.DB, mhwpID int) (int, error)
}

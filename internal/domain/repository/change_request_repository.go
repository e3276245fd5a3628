package repository

import (
	"mindclinic/internal/domain/entity"
	"mindclinic/internal/infrastructure/jsonstore"
)

type ChangeRequestRepository interface {
	FindAll(db *jsonstore.DB) ([]entity.ChangeRequest, error)
	FindByID(db *jsonstore.DB, id int) (*entity.ChangeRequest, error)
	FindOpen(db *jsonstore.DB) ([]entity.ChangeRequest, error)
	Create(db *jsonstore.DB, request *entity.ChangeRequest) error
	Update(db *jsonstore.DB, request *entity.ChangeRequest) error
	DeleteByPatient(db *jsonstore.DB, patientID int) error
}

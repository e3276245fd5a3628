package repository

import (
	"mindclinic/internal/domain/entity"
	"mindclinic/internal/infrastructure/jsonstore"
)

type AppointmentRepository interface {
	FindAll(db *jsonstore.DB) ([]entity.Appointment, error)
	FindByID(db *jsonstore.DB, id int) (*entity.Appointment, error)
	FindByPatient(db *jsonstore.DB, patientID int) ([]entity.Appointment, error)
	FindByMHWP(db *jsonstore.DB, mhwpID int) ([]entity.Appointment, error)
	// SlotTaken reports an active (non-cancelled) appointment holding the
	// practitioner's (date, slot) pair.
	SlotTaken(db *jsonstore.DB, mhwpID int, date, slot string) (bool, error)
	Create(db *jsonstore.DB, appointment *entity.Appointment) error
	Update(db *jsonstore.DB, appointment *entity.Appointment) error
	DeleteByPatient(db *jsonstore.DB, patientID int) error
}

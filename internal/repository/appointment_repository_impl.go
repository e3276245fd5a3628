package repository

import (
	"fmt"

	"mindclinic/internal/domain/entity"
	domainRepo "mindclinic/internal/domain/repository"
	"mindclinic/internal/infrastructure/jsonstore"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) FindAll(db *jsonstore.DB) ([]entity.Appointment, error) {
	return loadAll[entity.Appointment](db, CollectionAppointments)
}

func (r *appointmentRepository) FindByID(db *jsonstore.DB, id int) (*entity.Appointment, error) {
	appointments, err := r.FindAll(db)
	if err != nil {
		return nil, err
	}
	for i := range appointments {
		if appointments[i].ID == id {
			return &appointments[i], nil
		}
	}
	return nil, nil
}

func (r *appointmentRepository) FindByPatient(db *jsonstore.DB, patientID int) ([]entity.Appointment, error) {
	appointments, err := r.FindAll(db)
	if err != nil {
		return nil, err
	}
	own := make([]entity.Appointment, 0, len(appointments))
	for i := range appointments {
		if appointments[i].PatientID == patientID {
			own = append(own, appointments[i])
		}
	}
	return own, nil
}

func (r *appointmentRepository) FindByMHWP(db *jsonstore.DB, mhwpID int) ([]entity.Appointment, error) {
	appointments, err := r.FindAll(db)
	if err != nil {
		return nil, err
	}
	own := make([]entity.Appointment, 0, len(appointments))
	for i := range appointments {
		if appointments[i].MHWPID == mhwpID {
			own = append(own, appointments[i])
		}
	}
	return own, nil
}

func (r *appointmentRepository) SlotTaken(db *jsonstore.DB, mhwpID int, date, slot string) (bool, error) {
	appointments, err := r.FindAll(db)
	if err != nil {
		return false, err
	}
	for i := range appointments {
		a := &appointments[i]
		if a.MHWPID == mhwpID && a.Date == date && a.TimeSlot == slot && a.Active() {
			return true, nil
		}
	}
	return false, nil
}

func (r *appointmentRepository) Create(db *jsonstore.DB, appointment *entity.Appointment) error {
	appointments, err := r.FindAll(db)
	if err != nil {
		return err
	}
	next := 1
	for i := range appointments {
		if appointments[i].ID >= next {
			next = appointments[i].ID + 1
		}
	}
	appointment.ID = next
	appointments = append(appointments, *appointment)
	return db.Save(CollectionAppointments, appointments)
}

func (r *appointmentRepository) Update(db *jsonstore.DB, appointment *entity.Appointment) error {
	appointments, err := r.FindAll(db)
	if err != nil {
		return err
	}
	for i := range appointments {
		if appointments[i].ID == appointment.ID {
			appointments[i] = *appointment
			return db.Save(CollectionAppointments, appointments)
		}
	}
	return fmt.Errorf("%w: appointment %d", domainRepo.ErrNotFound, appointment.ID)
}

func (r *appointmentRepository) DeleteByPatient(db *jsonstore.DB, patientID int) error {
	appointments, err := r.FindAll(db)
	if err != nil {
		return err
	}
	kept := appointments[:0]
	for i := range appointments {
		if appointments[i].PatientID != patientID {
			kept = append(kept, appointments[i])
		}
	}
	return db.Save(CollectionAppointments, kept)
}

package repository

import (
	"fmt"

	"mindclinic/internal/domain/entity"
	domainRepo "mindclinic/internal/domain/repository"
	"mindclinic/internal/infrastructure/jsonstore"
)

type patientProfileRepository struct{}

func NewPatientProfileRepository() domainRepo.PatientProfileRepository {
	return &patientProfileRepository{}
}

func (r *patientProfileRepository) FindAll(db *jsonstore.DB) ([]entity.PatientProfile, error) {
	return loadAll[entity.PatientProfile](db, CollectionPatients)
}

func (r *patientProfileRepository) FindByID(db *jsonstore.DB, patientID int) (*entity.PatientProfile, error) {
	profiles, err := r.FindAll(db)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		if profiles[i].PatientID == patientID {
			return &profiles[i], nil
		}
	}
	return nil, nil
}

func (r *patientProfileRepository) FindByMHWP(db *jsonstore.DB, mhwpID int) ([]entity.PatientProfile, error) {
	profiles, err := r.FindAll(db)
	if err != nil {
		return nil, err
	}
	assigned := make([]entity.PatientProfile, 0, len(profiles))
	for i := range profiles {
		if profiles[i].MHWPID == mhwpID {
			assigned = append(assigned, profiles[i])
		}
	}
	return assigned, nil
}

func (r *patientProfileRepository) Create(db *jsonstore.DB, profile *entity.PatientProfile) error {
	profiles, err := r.FindAll(db)
	if err != nil {
		return err
	}
	profiles = append(profiles, *profile)
	return db.Save(CollectionPatients, profiles)
}

func (r *patientProfileRepository) Update(db *jsonstore.DB, profile *entity.PatientProfile) error {
	profiles, err := r.FindAll(db)
	if err != nil {
		return err
	}
	for i := range profiles {
		if profiles[i].PatientID == profile.PatientID {
			profiles[i] = *profile
			return db.Save(CollectionPatients, profiles)
		}
	}
	return fmt.Errorf("%w: patient profile %d", domainRepo.ErrNotFound, profile.PatientID)
}

func (r *patientProfileRepository) Delete(db *jsonstore.DB, patientID int) error {
	profiles, err := r.FindAll(db)
	if err != nil {
		return err
	}
	kept := profiles[:0]
	for i := range profiles {
		if profiles[i].PatientID != patientID {
			kept = append(kept, profiles[i])
		}
	}
	if len(kept) == len(profiles) {
		return fmt.Errorf("%w: patient profile %d", domainRepo.ErrNotFound, patientID)
	}
	return db.Save(CollectionPatients, kept)
}

// CountByMHWP is the pure recount behind every patient_count refresh
func (r *patientProfileRepository) CountByMHWP(db *jsonstore.DB, mhwpID int) (int, error) {
	assigned, err := r.FindByMHWP(db, mhwpID)
	if err != nil {
		return 0, err
	}
	return len(assigned), nil
}

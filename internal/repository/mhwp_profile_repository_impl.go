package repository

import (
	"fmt"

	"mindclinic/internal/domain/entity"
	domainRepo "mindclinic/internal/domain/repository"
	"mindclinic/internal/infrastructure/jsonstore"
)

type mhwpProfileRepository struct{}

func NewMHWPProfileRepository() domainRepo.MHWPProfileRepository {
	return &mhwpProfileRepository{}
}

func (r *mhwpProfileRepository) FindAll(db *jsonstore.DB) ([]entity.MHWPProfile, error) {
	return loadAll[entity.MHWPProfile](db, CollectionMHWP)
}

func (r *mhwpProfileRepository) FindByID(db *jsonstore.DB, mhwpID int) (*entity.MHWPProfile, error) {
	profiles, err := r.FindAll(db)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		if profiles[i].MHWPID == mhwpID {
			return &profiles[i], nil
		}
	}
	return nil, nil
}

func (r *mhwpProfileRepository) Create(db *jsonstore.DB, profile *entity.MHWPProfile) error {
	profiles, err := r.FindAll(db)
	if err != nil {
		return err
	}
	profiles = append(profiles, *profile)
	return db.Save(CollectionMHWP, profiles)
}

func (r *mhwpProfileRepository) Update(db *jsonstore.DB, profile *entity.MHWPProfile) error {
	profiles, err := r.FindAll(db)
	if err != nil {
		return err
	}
	for i := range profiles {
		if profiles[i].MHWPID == profile.MHWPID {
			profiles[i] = *profile
			return db.Save(CollectionMHWP, profiles)
		}
	}
	return fmt.Errorf("%w: practitioner profile %d", domainRepo.ErrNotFound, profile.MHWPID)
}

func (r *mhwpProfileRepository) Delete(db *jsonstore.DB, mhwpID int) error {
	profiles, err := r.FindAll(db)
	if err != nil {
		return err
	}
	kept := profiles[:0]
	for i := range profiles {
		if profiles[i].MHWPID != mhwpID {
			kept = append(kept, profiles[i])
		}
	}
	if len(kept) == len(profiles) {
		return fmt.Errorf("%w: practitioner profile %d", domainRepo.ErrNotFound, mhwpID)
	}
	return db.Save(CollectionMHWP, kept)
}

package repository

import (
	"sort"

	"mindclinic/internal/domain/entity"
	domainRepo "mindclinic/internal/domain/repository"
	"mindclinic/internal/infrastructure/jsonstore"
)

type moodRepository struct{}

func NewMoodRepository() domainRepo.MoodRepository {
	return &moodRepository{}
}

func (r *moodRepository) FindByPatient(db *jsonstore.DB, patientID int) ([]entity.MoodEntry, error) {
	entries, err := loadAll[entity.MoodEntry](db, CollectionMoods)
	if err != nil {
		return nil, err
	}
	own := make([]entity.MoodEntry, 0, len(entries))
	for i := range entries {
		if entries[i].PatientID == patientID {
			own = append(own, entries[i])
		}
	}
	sort.SliceStable(own, func(i, j int) bool {
		return own[i].Timestamp.After(own[j].Timestamp)
	})
	return own, nil
}

func (r *moodRepository) Append(db *jsonstore.DB, entry *entity.MoodEntry) error {
	entries, err := loadAll[entity.MoodEntry](db, CollectionMoods)
	if err != nil {
		return err
	}
	entries = append(entries, *entry)
	return db.Save(CollectionMoods, entries)
}

func (r *moodRepository) DeleteByPatient(db *jsonstore.DB, patientID int) error {
	entries, err := loadAll[entity.MoodEntry](db, CollectionMoods)
	if err != nil {
		return err
	}
	kept := entries[:0]
	for i := range entries {
		if entries[i].PatientID != patientID {
			kept = append(kept, entries[i])
		}
	}
	return db.Save(CollectionMoods, kept)
}

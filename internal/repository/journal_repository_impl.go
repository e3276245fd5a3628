package repository

import (
	"errors"
	"sort"

	"mindclinic/internal/domain/entity"
	domainRepo "mindclinic/internal/domain/repository"
	"mindclinic/internal/infrastructure/jsonstore"
)

// ErrIndexOutOfRange is returned when a 1-based journal index does not land
// on one of the patient's own entries.
var ErrIndexOutOfRange = errors.New("journal index out of range")

type journalRepository struct{}

func NewJournalRepository() domainRepo.JournalRepository {
	return &journalRepository{}
}

func (r *journalRepository) FindByPatient(db *jsonstore.DB, patientID int) ([]entity.JournalEntry, error) {
	entries, err := loadAll[entity.JournalEntry](db, CollectionJournals)
	if err != nil {
		return nil, err
	}
	own := make([]entity.JournalEntry, 0, len(entries))
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

func (r *journalRepository) Append(db *jsonstore.DB, entry *entity.JournalEntry) error {
	entries, err := loadAll[entity.JournalEntry](db, CollectionJournals)
	if err != nil {
		return err
	}
	entries = append(entries, *entry)
	return db.Save(CollectionJournals, entries)
}

// ownIndices maps the patient's newest-first listing onto positions in the
// stored slice, so a user-visible index addresses the right raw entry.
func ownIndices(entries []entity.JournalEntry, patientID int) []int {
	indices := make([]int, 0, len(entries))
	for i := range entries {
		if entries[i].PatientID == patientID {
			indices = append(indices, i)
		}
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return entries[indices[a]].Timestamp.After(entries[indices[b]].Timestamp)
	})
	return indices
}

func (r *journalRepository) UpdateAt(db *jsonstore.DB, patientID, index int, text string) error {
	entries, err := loadAll[entity.JournalEntry](db, CollectionJournals)
	if err != nil {
		return err
	}
	indices := ownIndices(entries, patientID)
	if index < 1 || index > len(indices) {
		return ErrIndexOutOfRange
	}
	entries[indices[index-1]].Text = text
	return db.Save(CollectionJournals, entries)
}

func (r *journalRepository) DeleteAt(db *jsonstore.DB, patientID, index int) error {
	entries, err := loadAll[entity.JournalEntry](db, CollectionJournals)
	if err != nil {
		return err
	}
	indices := ownIndices(entries, patientID)
	if index < 1 || index > len(indices) {
		return ErrIndexOutOfRange
	}
	target := indices[index-1]
	entries = append(entries[:target], entries[target+1:]...)
	return db.Save(CollectionJournals, entries)
}

func (r *journalRepository) DeleteByPatient(db *jsonstore.DB, patientID int) error {
	entries, err := loadAll[entity.JournalEntry](db, CollectionJournals)
	if err != nil {
		return err
	}
	kept := entries[:0]
	for i := range entries {
		if entries[i].PatientID != patientID {
			kept = append(kept, entries[i])
		}
	}
	return db.Save(CollectionJournals, kept)
}

package repository

import "mindclinic/internal/infrastructure/jsonstore"

// Collection file names under the data directory
const (
	CollectionUsers          = "users"
	CollectionPatients       = "patients"
	CollectionMHWP           = "mhwp"
	CollectionAppointments   = "appointments"
	CollectionRecords        = "records"
	CollectionMoods          = "moods"
	CollectionJournals       = "journals"
	CollectionChangeRequests = "change_requests"
)

func loadAll[T any](db *jsonstore.DB, name string) ([]T, error) {
	var items []T
	if err := db.Load(name, &items); err != nil {
		return nil, err
	}
	return items, nil
}

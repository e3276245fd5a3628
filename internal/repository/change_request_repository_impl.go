package repository

import (
	"fmt"

	"mindclinic/internal/domain/entity"
	domainRepo "mindclinic/internal/domain/repository"
	"mindclinic/internal/infrastructure/jsonstore"
)

type changeRequestRepository struct{}

func NewChangeRequestRepository() domainRepo.ChangeRequestRepository {
	return &changeRequestRepository{}
}

func (r *changeRequestRepository) FindAll(db *jsonstore.DB) ([]entity.ChangeRequest, error) {
	return loadAll[entity.ChangeRequest](db, CollectionChangeRequests)
}

func (r *changeRequestRepository) FindByID(db *jsonstore.DB, id int) (*entity.ChangeRequest, error) {
	requests, err := r.FindAll(db)
	if err != nil {
		return nil, err
	}
	for i := range requests {
		if requests[i].ID == id {
			return &requests[i], nil
		}
	}
	return nil, nil
}

func (r *changeRequestRepository) FindOpen(db *jsonstore.DB) ([]entity.ChangeRequest, error) {
	requests, err := r.FindAll(db)
	if err != nil {
		return nil, err
	}
	open := make([]entity.ChangeRequest, 0, len(requests))
	for i := range requests {
		if requests[i].IsOpen() {
			open = append(open, requests[i])
		}
	}
	return open, nil
}

func (r *changeRequestRepository) Create(db *jsonstore.DB, request *entity.ChangeRequest) error {
	requests, err := r.FindAll(db)
	if err != nil {
		return err
	}
	next := 1
	for i := range requests {
		if requests[i].ID >= next {
			next = requests[i].ID + 1
		}
	}
	request.ID = next
	requests = append(requests, *request)
	return db.Save(CollectionChangeRequests, requests)
}

func (r *changeRequestRepository) Update(db *jsonstore.DB, request *entity.ChangeRequest) error {
	requests, err := r.FindAll(db)
	if err != nil {
		return err
	}
	for i := range requests {
		if requests[i].ID == request.ID {
			requests[i] = *request
			return db.Save(CollectionChangeRequests, requests)
		}
	}
	return fmt.Errorf("%w: change request %d", domainRepo.ErrNotFound, request.ID)
}

func (r *changeRequestRepository) DeleteByPatient(db *jsonstore.DB, patientID int) error {
	requests, err := r.FindAll(db)
	if err != nil {
		return err
	}
	kept := requests[:0]
	for i := range requests {
		if requests[i].PatientID != patientID {
			kept = append(kept, requests[i])
		}
	}
	return db.Save(CollectionChangeRequests, kept)
}

package repository

import (
	"fmt"

	"mindclinic/internal/domain/entity"
	domainRepo "mindclinic/internal/domain/repository"
	"mindclinic/internal/infrastructure/jsonstore"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) FindAll(db *jsonstore.DB) ([]entity.User, error) {
	return loadAll[entity.User](db, CollectionUsers)
}

func (r *userRepository) FindByID(db *jsonstore.DB, id int) (*entity.User, error) {
	users, err := r.FindAll(db)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (r *userRepository) FindByUsername(db *jsonstore.DB, username string) (*entity.User, error) {
	users, err := r.FindAll(db)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, nil
}

// Create assigns the next free id and appends the user
func (r *userRepository) Create(db *jsonstore.DB, user *entity.User) error {
	users, err := r.FindAll(db)
	if err != nil {
		return err
	}
	next := 1
	for i := range users {
		if users[i].ID >= next {
			next = users[i].ID + 1
		}
	}
	user.ID = next
	users = append(users, *user)
	return db.Save(CollectionUsers, users)
}

func (r *userRepository) Update(db *jsonstore.DB, user *entity.User) error {
	users, err := r.FindAll(db)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = *user
			return db.Save(CollectionUsers, users)
		}
	}
	return fmt.Errorf("%w: user %d", domainRepo.ErrNotFound, user.ID)
}

func (r *userRepository) Delete(db *jsonstore.DB, id int) error {
	users, err := r.FindAll(db)
	if err != nil {
		return err
	}
	kept := users[:0]
	for i := range users {
		if users[i].ID != id {
			kept = append(kept, users[i])
		}
	}
	if len(kept) == len(users) {
		return fmt.Errorf("%w: user %d", domainRepo.ErrNotFound, id)
	}
	return db.Save(CollectionUsers, kept)
}

package repository

import (
	"mindclinic/internal/domain/entity"
	"mindclinic/internal/infrastructure/jsonstore"
)

type UserRepository interface {
	FindAll(db *jsonstore.DB) ([]entity.User, error)
	FindByID(db *jsonstore.DB, id int) (*entity.User, error)
	FindByUsername(db *jsonstore.DB, username string) (*entity.User, error)
	Create(db *jsonstore.DB, user *entity.User) error
	Update(db *jsonstore.DB, user *entity.User) error
	Delete(db *jsonstore.DB, id int) error
}

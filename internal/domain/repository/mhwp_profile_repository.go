package repository

import (
	"mindclinic/internal/domain/entity"
	"mindclinic/internal/infrastructure/jsonstore"
)

type MHWPProfileRepository interface {
	FindAll(db *jsonstore.DB) ([]entity.MHWPProfile, error)
	FindByID(db *jsonstore.DB, mhwpID int) (*entity.MHWPProfile, error)
	Create(db *jsonstore.DB, profile *entity.MHWPProfile) error
	Update(db *jsonstore.DB, profile *entity.MHWPProfile) error
	Delete(db *jsonstore.DB, mhwpID int) error
}

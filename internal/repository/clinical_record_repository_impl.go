package repository

import (
	"mindclinic/internal/domain/entity"
	domainRepo "mindclinic/internal/domain/repository"
	"mindclinic/internal/infrastructure/jsonstore"
)

type clinicalRecordRepository struct{}

func NewClinicalRecordRepository() domainRepo.ClinicalRecordRepository {
	return &clinicalRecordRepository{}
}

func (r *clinicalRecordRepository) FindByPatient(db *jsonstore.DB, patientID int) (*entity.ClinicalRecord, error) {
	records, err := loadAll[entity.ClinicalRecord](db, CollectionRecords)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].PatientID == patientID {
			return &records[i], nil
		}
	}
	return nil, nil
}

func (r *clinicalRecordRepository) Upsert(db *jsonstore.DB, record *entity.ClinicalRecord) error {
	records, err := loadAll[entity.ClinicalRecord](db, CollectionRecords)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].PatientID == record.PatientID {
			records[i] = *record
			return db.Save(CollectionRecords, records)
		}
	}
	records = append(records, *record)
	return db.Save(CollectionRecords, records)
}

func (r *clinicalRecordRepository) DeleteByPatient(db *jsonstore.DB, patientID int) error {
	records, err := loadAll[entity.ClinicalRecord](db, CollectionRecords)
	if err != nil {
		return err
	}
	kept := records[:0]
	for i := range records {
		if records[i].PatientID != patientID {
			kept = append(kept, records[i])
		}
	}
	return db.Save(CollectionRecords, kept)
}

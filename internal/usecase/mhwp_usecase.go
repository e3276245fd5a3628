package usecase

import (
	"fmt"
	"sort"

	"mindclinic/internal/domain/entity"
	"mindclinic/internal/domain/repository"
	"mindclinic/internal/infrastructure/jsonstore"
	"mindclinic/internal/service"

	"github.com/sirupsen/logrus"
)

// Clinical record fields an MHWP may edit
const (
	FieldCondition = "condition"
	FieldNotes     = "notes"
)

// DashboardRow pairs an assigned patient with their latest mood entry
type DashboardRow struct {
	Profile    entity.PatientProfile
	LatestMood *entity.MoodEntry
}

// PatientSummary joins profile, clinical record and latest mood for one
// assigned patient
type PatientSummary struct {
	Profile    entity.PatientProfile
	Record     *entity.ClinicalRecord
	LatestMood *entity.MoodEntry
}

type MHWPUsecase interface {
	Dashboard(sess *entity.Session) ([]DashboardRow, error)
	// PatientSummary requires that the patient is assigned to this MHWP
	PatientSummary(sess *entity.Session, patientID int) (*PatientSummary, error)
	// UpdateRecord edits condition or notes, creating the record if absent
	UpdateRecord(sess *entity.Session, patientID int, field, value string) error
	Calendar(sess *entity.Session) ([]entity.Appointment, error)
	// DecideAppointment drives PENDING -> CONFIRMED|CANCELLED and
	// CONFIRMED -> CANCELLED|COMPLETED; the patient is mailed on confirm and
	// cancel. Mail failures never roll back the transition.
	DecideAppointment(sess *entity.Session, appointmentID int, next entity.AppointmentStatus) error
}

type mhwpUsecase struct {
	db          *jsonstore.DB
	log         *logrus.Logger
	audit       service.AuditService
	mailer      service.Mailer
	patientRepo repository.PatientProfileRepository
	apptRepo    repository.AppointmentRepository
	recordRepo  repository.ClinicalRecordRepository
	moodRepo    repository.MoodRepository
}

func NewMHWPUsecase(
	db *jsonstore.DB,
	log *logrus.Logger,
	audit service.AuditService,
	mailer service.Mailer,
	patientRepo repository.PatientProfileRepository,
	apptRepo repository.AppointmentRepository,
	recordRepo repository.ClinicalRecordRepository,
	moodRepo repository.MoodRepository,
) MHWPUsecase {
	return &mhwpUsecase{
		db:          db,
		log:         log,
		audit:       audit,
		mailer:      mailer,
		patientRepo: patientRepo,
		apptRepo:    apptRepo,
		recordRepo:  recordRepo,
		moodRepo:    moodRepo,
	}
}

func (u *mhwpUsecase) require(sess *entity.Session) error {
	if sess == nil || sess.Role != entity.RoleMHWP {
		return ErrPermissionDenied
	}
	return nil
}

func (u *mhwpUsecase) latestMood(patientID int) (*entity.MoodEntry, error) {
	moods, err := u.moodRepo.FindByPatient(u.db, patientID)
	if err != nil {
		return nil, err
	}
	if len(moods) == 0 {
		return nil, nil
	}
	return &moods[0], nil
}

func (u *mhwpUsecase) Dashboard(sess *entity.Session) ([]DashboardRow, error) {
	if err := u.require(sess); err != nil {
		return nil, err
	}

	patients, err := u.patientRepo.FindByMHWP(u.db, sess.UserID)
	if err != nil {
		return nil, err
	}

	rows := make([]DashboardRow, 0, len(patients))
	for i := range patients {
		mood, err := u.latestMood(patients[i].PatientID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, DashboardRow{Profile: patients[i], LatestMood: mood})
	}
	return rows, nil
}

// assignedPatient gates per-patient views on the assignment link
func (u *mhwpUsecase) assignedPatient(sess *entity.Session, patientID int) (*entity.PatientProfile, error) {
	profile, err := u.patientRepo.FindByID(u.db, patientID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: patient %d", ErrNotFound, patientID)
	}
	if profile.MHWPID != sess.UserID {
		u.audit.Warning(sess.Username, fmt.Sprintf("denied access to patient %d: not assigned", patientID))
		return nil, ErrPermissionDenied
	}
	return profile, nil
}

func (u *mhwpUsecase) PatientSummary(sess *entity.Session, patientID int) (*PatientSummary, error) {
	if err := u.require(sess); err != nil {
		return nil, err
	}

	profile, err := u.assignedPatient(sess, patientID)
	if err != nil {
		return nil, err
	}

	record, err := u.recordRepo.FindByPatient(u.db, patientID)
	if err != nil {
		return nil, err
	}
	mood, err := u.latestMood(patientID)
	if err != nil {
		return nil, err
	}

	return &PatientSummary{Profile: *profile, Record: record, LatestMood: mood}, nil
}

func (u *mhwpUsecase) UpdateRecord(sess *entity.Session, patientID int, field, value string) error {
	if err := u.require(sess); err != nil {
		return err
	}
	if !sess.Can(entity.CapClinicalWrite) {
		return ErrPermissionDenied
	}

	if _, err := u.assignedPatient(sess, patientID); err != nil {
		return err
	}

	record, err := u.recordRepo.FindByPatient(u.db, patientID)
	if err != nil {
		return err
	}
	if record == nil {
		record = &entity.ClinicalRecord{PatientID: patientID}
	}

	switch field {
	case FieldCondition:
		record.Condition = value
	case FieldNotes:
		record.Notes = value
	default:
		return fmt.Errorf("%w: unknown record field %q", ErrInvalidInput, field)
	}

	if err := u.recordRepo.Upsert(u.db, record); err != nil {
		return err
	}
	u.audit.Info(sess.Username, fmt.Sprintf("%s patient %d %s", service.AuditActionRecordUpdate, patientID, field))
	return nil
}

func (u *mhwpUsecase) Calendar(sess *entity.Session) ([]entity.Appointment, error) {
	if err := u.require(sess); err != nil {
		return nil, err
	}

	appointments, err := u.apptRepo.FindByMHWP(u.db, sess.UserID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(appointments, func(i, j int) bool {
		if appointments[i].Date != appointments[j].Date {
			return appointments[i].Date < appointments[j].Date
		}
		return appointments[i].TimeSlot < appointments[j].TimeSlot
	})
	return appointments, nil
}

func (u *mhwpUsecase) DecideAppointment(sess *entity.Session, appointmentID int, next entity.AppointmentStatus) error {
	if err := u.require(sess); err != nil {
		return err
	}

	appointment, err := u.apptRepo.FindByID(u.db, appointmentID)
	if err != nil {
		return err
	}
	if appointment == nil || appointment.MHWPID != sess.UserID {
		return fmt.Errorf("%w: appointment %d", ErrNotFound, appointmentID)
	}
	if !appointment.CanTransition(next) {
		return ErrIllegalTransition
	}

	appointment.Status = next
	if err := u.apptRepo.Update(u.db, appointment); err != nil {
		return err
	}
	u.audit.Info(sess.Username, fmt.Sprintf("%s %d -> %s", service.AuditActionApptDecide, appointmentID, next))

	if next == entity.AppointmentConfirmed || next == entity.AppointmentCancelled {
		u.notifyPatient(appointment)
	}
	return nil
}

func (u *mhwpUsecase) notifyPatient(appointment *entity.Appointment) {
	profile, err := u.patientRepo.FindByID(u.db, appointment.PatientID)
	if err != nil || profile == nil || profile.Email == "" {
		u.log.Warnf("No reachable email for patient %d", appointment.PatientID)
		return
	}

	verb := "confirmed"
	if appointment.IsCancelled() {
		verb = "cancelled"
	}
	subject := fmt.Sprintf("Appointment %s: %s %s", verb, appointment.Date, appointment.TimeSlot)
	body := fmt.Sprintf("Dear %s,\n\nYour appointment on %s at %s has been %s.\n",
		profile.Name, appointment.Date, appointment.TimeSlot, verb)

	if err := u.mailer.Send(profile.Email, subject, body); err != nil {
		u.log.Warnf("Appointment notification failed for patient %d: %+v", appointment.PatientID, err)
	}
}

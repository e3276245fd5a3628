package usecase

import (
	"errors"
	"fmt"
	"time"

	"mindclinic/internal/domain/entity"
	"mindclinic/internal/domain/repository"
	"mindclinic/internal/infrastructure/jsonstore"
	repoimpl "mindclinic/internal/repository"
	"mindclinic/internal/service"

	"github.com/sirupsen/logrus"
)

type PatientUsecase interface {
	Profile(sess *entity.Session) (*entity.PatientProfile, error)
	// EditProfile changes name, email and emergency contact; everything else
	// in patch is skipped with a warning. A disabled account may not edit
	// its own attributes.
	EditProfile(sess *entity.Session, patch map[string]string) error

	Journals(sess *entity.Session) ([]entity.JournalEntry, error)
	AddJournal(sess *entity.Session, text string) error
	UpdateJournal(sess *entity.Session, index int, text string) error
	DeleteJournal(sess *entity.Session, index int) error

	Moods(sess *entity.Session) ([]entity.MoodEntry, error)
	// AddMood appends a mood entry and mirrors the level onto the profile's
	// mood_code. Level 1 notifies the emergency contact, fire-and-forget.
	AddMood(sess *entity.Session, level int, comment string) error

	Appointments(sess *entity.Session) ([]entity.Appointment, error)
	RequestAppointment(sess *entity.Session, date, slot string) (*entity.Appointment, error)
	CancelAppointment(sess *entity.Session, appointmentID int) error

	AvailableMHWPs(sess *entity.Session) ([]entity.MHWPProfile, error)
	RequestPractitionerChange(sess *entity.Session, newMHWPID int) error
}

type patientUsecase struct {
	db          *jsonstore.DB
	log         *logrus.Logger
	audit       service.AuditService
	mailer      service.Mailer
	userRepo    repository.UserRepository
	patientRepo repository.PatientProfileRepository
	mhwpRepo    repository.MHWPProfileRepository
	apptRepo    repository.AppointmentRepository
	moodRepo    repository.MoodRepository
	journalRepo repository.JournalRepository
	requestRepo repository.ChangeRequestRepository
	now         func() time.Time
}

func NewPatientUsecase(
	db *jsonstore.DB,
	log *logrus.Logger,
	audit service.AuditService,
	mailer service.Mailer,
	userRepo repository.UserRepository,
	patientRepo repository.PatientProfileRepository,
	mhwpRepo repository.MHWPProfileRepository,
	apptRepo repository.AppointmentRepository,
	moodRepo repository.MoodRepository,
	journalRepo repository.JournalRepository,
	requestRepo repository.ChangeRequestRepository,
) PatientUsecase {
	return &patientUsecase{
		db:          db,
		log:         log,
		audit:       audit,
		mailer:      mailer,
		userRepo:    userRepo,
		patientRepo: patientRepo,
		mhwpRepo:    mhwpRepo,
		apptRepo:    apptRepo,
		moodRepo:    moodRepo,
		journalRepo: journalRepo,
		requestRepo: requestRepo,
		now:         time.Now,
	}
}

func (u *patientUsecase) profile(sess *entity.Session) (*entity.PatientProfile, error) {
	if sess == nil || sess.Role != entity.RolePatient {
		return nil, ErrPermissionDenied
	}
	profile, err := u.patientRepo.FindByID(u.db, sess.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: patient profile %d", ErrNotFound, sess.UserID)
	}
	return profile, nil
}

func (u *patientUsecase) Profile(sess *entity.Session) (*entity.PatientProfile, error) {
	return u.profile(sess)
}

func (u *patientUsecase) EditProfile(sess *entity.Session, patch map[string]string) error {
	profile, err := u.profile(sess)
	if err != nil {
		return err
	}
	if !sess.Can(entity.CapEditOwnProfile) {
		return ErrPermissionDenied
	}

	user, err := u.userRepo.FindByID(u.db, sess.UserID)
	if err != nil {
		return err
	}
	if user != nil && user.IsDisabled() {
		u.audit.Warning(sess.Username, service.AuditActionUserEdit+" denied: account disabled")
		return ErrPermissionDenied
	}

	changed := false
	for field, value := range patch {
		switch field {
		case FieldName:
			profile.Name = value
			changed = true
		case FieldEmail:
			profile.Email = value
			changed = true
		case FieldEmergencyEmail:
			profile.EmergencyContactEmail = value
			changed = true
		default:
			u.log.Warnf("Skipping field %q: read-only", field)
		}
	}
	if !changed {
		return nil
	}
	if err := u.patientRepo.Update(u.db, profile); err != nil {
		return err
	}
	u.audit.Info(sess.Username, service.AuditActionUserEdit+" own profile")
	return nil
}

func (u *patientUsecase) Journals(sess *entity.Session) ([]entity.JournalEntry, error) {
	if _, err := u.profile(sess); err != nil {
		return nil, err
	}
	return u.journalRepo.FindByPatient(u.db, sess.UserID)
}

func (u *patientUsecase) AddJournal(sess *entity.Session, text string) error {
	if _, err := u.profile(sess); err != nil {
		return err
	}
	entry := &entity.JournalEntry{
		PatientID: sess.UserID,
		Timestamp: u.now(),
		Text:      text,
	}
	if err := u.journalRepo.Append(u.db, entry); err != nil {
		return err
	}
	u.audit.Info(sess.Username, service.AuditActionJournalWrite+" add")
	return nil
}

func (u *patientUsecase) UpdateJournal(sess *entity.Session, index int, text string) error {
	if _, err := u.profile(sess); err != nil {
		return err
	}
	if err := u.journalRepo.UpdateAt(u.db, sess.UserID, index, text); err != nil {
		if errors.Is(err, repoimpl.ErrIndexOutOfRange) {
			return ErrInvalidIndex
		}
		return err
	}
	u.audit.Info(sess.Username, fmt.Sprintf("%s update #%d", service.AuditActionJournalWrite, index))
	return nil
}

func (u *patientUsecase) DeleteJournal(sess *entity.Session, index int) error {
	if _, err := u.profile(sess); err != nil {
		return err
	}
	if err := u.journalRepo.DeleteAt(u.db, sess.UserID, index); err != nil {
		if errors.Is(err, repoimpl.ErrIndexOutOfRange) {
			return ErrInvalidIndex
		}
		return err
	}
	u.audit.Info(sess.Username, fmt.Sprintf("%s delete #%d", service.AuditActionJournalWrite, index))
	return nil
}

func (u *patientUsecase) Moods(sess *entity.Session) ([]entity.MoodEntry, error) {
	if _, err := u.profile(sess); err != nil {
		return nil, err
	}
	return u.moodRepo.FindByPatient(u.db, sess.UserID)
}

func (u *patientUsecase) AddMood(sess *entity.Session, level int, comment string) error {
	profile, err := u.profile(sess)
	if err != nil {
		return err
	}

	label, ok := entity.MoodLabel(level)
	if !ok {
		return ErrInvalidMoodLevel
	}

	entry := &entity.MoodEntry{
		PatientID:    sess.UserID,
		Timestamp:    u.now(),
		MoodColor:    label,
		MoodComments: comment,
	}
	if err := u.moodRepo.Append(u.db, entry); err != nil {
		return err
	}

	profile.MoodCode = level
	if err := u.patientRepo.Update(u.db, profile); err != nil {
		return err
	}
	u.audit.Info(sess.Username, fmt.Sprintf("%s level %d", service.AuditActionMoodLog, level))

	if level == entity.MoodLevelMin && profile.EmergencyContactEmail != "" {
		if err := u.mailer.Send(
			profile.EmergencyContactEmail,
			"Wellbeing check-in for "+profile.Name,
			profile.Name+" logged a very low mood today. Please consider reaching out.",
		); err != nil {
			u.log.Warnf("Emergency contact notification failed: %+v", err)
		}
	}
	return nil
}

func (u *patientUsecase) Appointments(sess *entity.Session) ([]entity.Appointment, error) {
	if _, err := u.profile(sess); err != nil {
		return nil, err
	}
	return u.apptRepo.FindByPatient(u.db, sess.UserID)
}

func (u *patientUsecase) RequestAppointment(sess *entity.Session, date, slot string) (*entity.Appointment, error) {
	profile, err := u.profile(sess)
	if err != nil {
		return nil, err
	}
	if !profile.Assigned() {
		return nil, ErrUnassigned
	}

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if !entity.IsValidTimeSlot(slot) {
		return nil, fmt.Errorf("%w: unknown time slot %q", ErrInvalidInput, slot)
	}

	taken, err := u.apptRepo.SlotTaken(u.db, profile.MHWPID, date, slot)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlotTaken
	}

	appointment := &entity.Appointment{
		PatientID: sess.UserID,
		MHWPID:    profile.MHWPID,
		Date:      date,
		TimeSlot:  slot,
		Status:    entity.AppointmentPending,
	}
	if err := u.apptRepo.Create(u.db, appointment); err != nil {
		return nil, err
	}
	u.audit.Info(sess.Username, fmt.Sprintf("%s %s %s with mhwp %d", service.AuditActionApptRequest, date, slot, profile.MHWPID))
	return appointment, nil
}

func (u *patientUsecase) CancelAppointment(sess *entity.Session, appointmentID int) error {
	if _, err := u.profile(sess); err != nil {
		return err
	}

	appointment, err := u.apptRepo.FindByID(u.db, appointmentID)
	if err != nil {
		return err
	}
	if appointment == nil || appointment.PatientID != sess.UserID {
		return fmt.Errorf("%w: appointment %d", ErrNotFound, appointmentID)
	}
	if appointment.IsCompleted() || appointment.IsCancelled() {
		return ErrIllegalTransition
	}

	appointment.Status = entity.AppointmentCancelled
	if err := u.apptRepo.Update(u.db, appointment); err != nil {
		return err
	}
	u.audit.Info(sess.Username, fmt.Sprintf("%s cancel %d", service.AuditActionApptDecide, appointmentID))
	return nil
}

func (u *patientUsecase) AvailableMHWPs(sess *entity.Session) ([]entity.MHWPProfile, error) {
	if _, err := u.profile(sess); err != nil {
		return nil, err
	}
	return u.mhwpRepo.FindAll(u.db)
}

func (u *patientUsecase) RequestPractitionerChange(sess *entity.Session, newMHWPID int) error {
	profile, err := u.profile(sess)
	if err != nil {
		return err
	}
	if profile.MHWPID == newMHWPID {
		return ErrAlreadyAssigned
	}

	target, err := u.mhwpRepo.FindByID(u.db, newMHWPID)
	if err != nil {
		return err
	}
	if target == nil {
		return fmt.Errorf("%w: practitioner %d", ErrNotFound, newMHWPID)
	}

	request := &entity.ChangeRequest{
		PatientID: sess.UserID,
		OldMHWPID: profile.MHWPID,
		NewMHWPID: newMHWPID,
		Status:    entity.ChangeRequestOpen,
	}
	if err := u.requestRepo.Create(u.db, request); err != nil {
		return err
	}
	u.audit.Info(sess.Username, fmt.Sprintf("%s mhwp %d -> %d", service.AuditActionRequestRaise, profile.MHWPID, newMHWPID))
	return nil
}

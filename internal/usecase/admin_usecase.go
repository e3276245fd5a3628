package usecase

import (
	"fmt"

	"mindclinic/internal/domain/entity"
	"mindclinic/internal/domain/repository"
	"mindclinic/internal/infrastructure/jsonstore"
	"mindclinic/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Editable profile fields
const (
	FieldName           = "name"
	FieldEmail          = "email"
	FieldEmergencyEmail = "emergency_contact_email"
)

type AdminUsecase interface {
	ListUsers(sess *entity.Session, kind entity.Role, status *entity.UserStatus) ([]AccountView, error)
	ShowUser(sess *entity.Session, id int) (*AccountView, error)
	// EditUser applies the permitted subset of patch to the user's profile.
	// Fields outside the role's permitted set are skipped with a warning.
	EditUser(sess *entity.Session, userID int, patch map[string]string) error
	Disable(sess *entity.Session, userID int) error
	Enable(sess *entity.Session, userID int) error
	// DeleteUser removes the user and cascades: a patient loses profile,
	// record, moods, journals, appointments and change requests; an MHWP's
	// patients are unassigned and their open appointments cancelled.
	DeleteUser(sess *entity.Session, userID int) error
	Reassign(sess *entity.Session, patientID, newMHWPID int) error
	ListChangeRequests(sess *entity.Session) ([]entity.ChangeRequest, error)
	ProcessChangeRequest(sess *entity.Session, requestID int, approve bool) error
	CreatePatient(sess *entity.Session, username, password, name, email, emergencyEmail string) (*entity.User, error)
	CreateMHWP(sess *entity.Session, username, password, name, email string) (*entity.User, error)
}

type adminUsecase struct {
	db          *jsonstore.DB
	log         *logrus.Logger
	audit       service.AuditService
	userRepo    repository.UserRepository
	patientRepo repository.PatientProfileRepository
	mhwpRepo    repository.MHWPProfileRepository
	apptRepo    repository.AppointmentRepository
	recordRepo  repository.ClinicalRecordRepository
	moodRepo    repository.MoodRepository
	journalRepo repository.JournalRepository
	requestRepo repository.ChangeRequestRepository
}

func NewAdminUsecase(
	db *jsonstore.DB,
	log *logrus.Logger,
	audit service.AuditService,
	userRepo repository.UserRepository,
	patientRepo repository.PatientProfileRepository,
	mhwpRepo repository.MHWPProfileRepository,
	apptRepo repository.AppointmentRepository,
	recordRepo repository.ClinicalRecordRepository,
	moodRepo repository.MoodRepository,
	journalRepo repository.JournalRepository,
	requestRepo repository.ChangeRequestRepository,
) AdminUsecase {
	return &adminUsecase{
		db:          db,
		log:         log,
		audit:       audit,
		userRepo:    userRepo,
		patientRepo: patientRepo,
		mhwpRepo:    mhwpRepo,
		apptRepo:    apptRepo,
		recordRepo:  recordRepo,
		moodRepo:    moodRepo,
		journalRepo: journalRepo,
		requestRepo: requestRepo,
	}
}

func (u *adminUsecase) require(sess *entity.Session) error {
	if sess == nil || !sess.Can(entity.CapEditOthers) {
		if sess != nil {
			u.audit.Warning(sess.Username, service.AuditActionUserEdit+" denied")
		}
		return ErrPermissionDenied
	}
	return nil
}

func (u *adminUsecase) ListUsers(sess *entity.Session, kind entity.Role, status *entity.UserStatus) ([]AccountView, error) {
	if err := u.require(sess); err != nil {
		return nil, err
	}

	users, err := u.userRepo.FindAll(u.db)
	if err != nil {
		return nil, err
	}

	views := make([]AccountView, 0, len(users))
	for i := range users {
		user := users[i]
		if kind != "" && user.Role != kind {
			continue
		}
		if status != nil && user.Status != *status {
			continue
		}
		view, err := u.hydrateLoose(user)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// hydrateLoose joins the role-side profile when present; listings tolerate a
// missing profile where login does not.
func (u *adminUsecase) hydrateLoose(user entity.User) (*AccountView, error) {
	view := &AccountView{User: user}
	switch user.Role {
	case entity.RolePatient:
		profile, err := u.patientRepo.FindByID(u.db, user.ID)
		if err != nil {
			return nil, err
		}
		view.Patient = profile
	case entity.RoleMHWP:
		profile, err := u.mhwpRepo.FindByID(u.db, user.ID)
		if err != nil {
			return nil, err
		}
		view.MHWP = profile
	}
	return view, nil
}

func (u *adminUsecase) ShowUser(sess *entity.Session, id int) (*AccountView, error) {
	if err := u.require(sess); err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(u.db, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return u.hydrateLoose(*user)
}

func (u *adminUsecase) EditUser(sess *entity.Session, userID int, patch map[string]string) error {
	if err := u.require(sess); err != nil {
		return err
	}

	user, err := u.userRepo.FindByID(u.db, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	if user.IsDisabled() {
		u.audit.Warning(sess.Username, fmt.Sprintf("%s denied: user %d disabled", service.AuditActionUserEdit, userID))
		return ErrPermissionDenied
	}

	switch user.Role {
	case entity.RolePatient:
		return u.editPatientFields(sess, userID, patch)
	case entity.RoleMHWP:
		return u.editMHWPFields(sess, userID, patch)
	default:
		for field := range patch {
			u.log.Warnf("Skipping field %q: admin accounts have no editable profile", field)
		}
		return nil
	}
}

func (u *adminUsecase) editPatientFields(sess *entity.Session, patientID int, patch map[string]string) error {
	profile, err := u.patientRepo.FindByID(u.db, patientID)
	if err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("%w: patient profile %d", ErrNotFound, patientID)
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
			u.log.Warnf("Skipping field %q: not editable for patients", field)
		}
	}
	if !changed {
		return nil
	}
	if err := u.patientRepo.Update(u.db, profile); err != nil {
		return err
	}
	u.audit.Info(sess.Username, fmt.Sprintf("%s patient %d", service.AuditActionUserEdit, patientID))
	return nil
}

func (u *adminUsecase) editMHWPFields(sess *entity.Session, mhwpID int, patch map[string]string) error {
	profile, err := u.mhwpRepo.FindByID(u.db, mhwpID)
	if err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("%w: practitioner profile %d", ErrNotFound, mhwpID)
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
		default:
			u.log.Warnf("Skipping field %q: not editable for practitioners", field)
		}
	}
	if !changed {
		return nil
	}
	if err := u.mhwpRepo.Update(u.db, profile); err != nil {
		return err
	}
	u.audit.Info(sess.Username, fmt.Sprintf("%s mhwp %d", service.AuditActionUserEdit, mhwpID))
	return nil
}

func (u *adminUsecase) setStatus(sess *entity.Session, userID int, status entity.UserStatus, action string) error {
	if err := u.require(sess); err != nil {
		return err
	}

	user, err := u.userRepo.FindByID(u.db, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}

	user.Status = status
	if err := u.userRepo.Update(u.db, user); err != nil {
		return err
	}
	u.audit.Info(sess.Username, fmt.Sprintf("%s user %d", action, userID))
	return nil
}

func (u *adminUsecase) Disable(sess *entity.Session, userID int) error {
	return u.setStatus(sess, userID, entity.StatusDisabled, service.AuditActionUserDisable)
}

func (u *adminUsecase) Enable(sess *entity.Session, userID int) error {
	return u.setStatus(sess, userID, entity.StatusActive, service.AuditActionUserEnable)
}

func (u *adminUsecase) DeleteUser(sess *entity.Session, userID int) error {
	if err := u.require(sess); err != nil {
		return err
	}

	user, err := u.userRepo.FindByID(u.db, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}

	switch user.Role {
	case entity.RolePatient:
		if err := u.deletePatient(userID); err != nil {
			return err
		}
	case entity.RoleMHWP:
		if err := u.deleteMHWP(userID); err != nil {
			return err
		}
	}

	if err := u.userRepo.Delete(u.db, userID); err != nil {
		return err
	}
	u.audit.Info(sess.Username, fmt.Sprintf("%s user %d (%s)", service.AuditActionUserDelete, userID, user.Role))
	return nil
}

func (u *adminUsecase) deletePatient(patientID int) error {
	profile, err := u.patientRepo.FindByID(u.db, patientID)
	if err != nil {
		return err
	}

	if err := u.journalRepo.DeleteByPatient(u.db, patientID); err != nil {
		return err
	}
	if err := u.moodRepo.DeleteByPatient(u.db, patientID); err != nil {
		return err
	}
	if err := u.recordRepo.DeleteByPatient(u.db, patientID); err != nil {
		return err
	}
	if err := u.apptRepo.DeleteByPatient(u.db, patientID); err != nil {
		return err
	}
	if err := u.requestRepo.DeleteByPatient(u.db, patientID); err != nil {
		return err
	}
	if profile != nil {
		if err := u.patientRepo.Delete(u.db, patientID); err != nil {
			return err
		}
	}

	if profile != nil && profile.Assigned() {
		return u.recountMHWP(profile.MHWPID)
	}
	return nil
}

// deleteMHWP unassigns the practitioner's patients rather than deleting
// them, and cancels any appointment still on the calendar.
func (u *adminUsecase) deleteMHWP(mhwpID int) error {
	profile, err := u.mhwpRepo.FindByID(u.db, mhwpID)
	if err != nil {
		return err
	}

	patients, err := u.patientRepo.FindByMHWP(u.db, mhwpID)
	if err != nil {
		return err
	}
	for i := range patients {
		patients[i].MHWPID = 0
		if err := u.patientRepo.Update(u.db, &patients[i]); err != nil {
			return err
		}
	}

	appointments, err := u.apptRepo.FindByMHWP(u.db, mhwpID)
	if err != nil {
		return err
	}
	for i := range appointments {
		a := appointments[i]
		if a.Status == entity.AppointmentPending || a.Status == entity.AppointmentConfirmed {
			a.Status = entity.AppointmentCancelled
			if err := u.apptRepo.Update(u.db, &a); err != nil {
				return err
			}
		}
	}

	if profile == nil {
		return nil
	}
	return u.mhwpRepo.Delete(u.db, mhwpID)
}

// recountMHWP refreshes the derived patient_count by pure recount from the
// patient collection. Never incremented in place to prevent drift.
func (u *adminUsecase) recountMHWP(mhwpID int) error {
	if mhwpID == 0 {
		return nil
	}
	profile, err := u.mhwpRepo.FindByID(u.db, mhwpID)
	if err != nil {
		return err
	}
	if profile == nil {
		return nil
	}
	count, err := u.patientRepo.CountByMHWP(u.db, mhwpID)
	if err != nil {
		return err
	}
	profile.PatientCount = count
	return u.mhwpRepo.Update(u.db, profile)
}

func (u *adminUsecase) Reassign(sess *entity.Session, patientID, newMHWPID int) error {
	if err := u.require(sess); err != nil {
		return err
	}

	patient, err := u.patientRepo.FindByID(u.db, patientID)
	if err != nil {
		return err
	}
	if patient == nil {
		return fmt.Errorf("%w: patient %d", ErrNotFound, patientID)
	}

	target, err := u.mhwpRepo.FindByID(u.db, newMHWPID)
	if err != nil {
		return err
	}
	if target == nil {
		return fmt.Errorf("%w: practitioner %d", ErrNotFound, newMHWPID)
	}

	if patient.MHWPID == newMHWPID {
		return ErrAlreadyAssigned
	}

	oldMHWPID := patient.MHWPID
	patient.MHWPID = newMHWPID
	if err := u.patientRepo.Update(u.db, patient); err != nil {
		return err
	}
	if err := u.recountMHWP(oldMHWPID); err != nil {
		return err
	}
	if err := u.recountMHWP(newMHWPID); err != nil {
		return err
	}

	u.audit.Info(sess.Username, fmt.Sprintf("%s patient %d: mhwp %d -> %d", service.AuditActionReassign, patientID, oldMHWPID, newMHWPID))
	return nil
}

func (u *adminUsecase) ListChangeRequests(sess *entity.Session) ([]entity.ChangeRequest, error) {
	if err := u.require(sess); err != nil {
		return nil, err
	}
	return u.requestRepo.FindOpen(u.db)
}

func (u *adminUsecase) ProcessChangeRequest(sess *entity.Session, requestID int, approve bool) error {
	if err := u.require(sess); err != nil {
		return err
	}

	request, err := u.requestRepo.FindByID(u.db, requestID)
	if err != nil {
		return err
	}
	if request == nil {
		return fmt.Errorf("%w: change request %d", ErrNotFound, requestID)
	}
	if !request.IsOpen() {
		return ErrIllegalTransition
	}

	if approve {
		err := u.Reassign(sess, request.PatientID, request.NewMHWPID)
		// A request whose target already holds the patient is moot; closing
		// it as approved is still the right resolution.
		if err != nil && err != ErrAlreadyAssigned {
			return err
		}
		request.Status = entity.ChangeRequestApproved
	} else {
		request.Status = entity.ChangeRequestRejected
	}

	if err := u.requestRepo.Update(u.db, request); err != nil {
		return err
	}
	u.audit.Info(sess.Username, fmt.Sprintf("%s request %d: %s", service.AuditActionRequestResolve, requestID, request.Status))
	return nil
}

func (u *adminUsecase) CreatePatient(sess *entity.Session, username, password, name, email, emergencyEmail string) (*entity.User, error) {
	user, err := u.createUser(sess, username, password, entity.RolePatient)
	if err != nil {
		return nil, err
	}

	profile := &entity.PatientProfile{
		PatientID:             user.ID,
		Name:                  name,
		Email:                 email,
		EmergencyContactEmail: emergencyEmail,
	}
	if err := u.patientRepo.Create(u.db, profile); err != nil {
		return nil, err
	}
	u.audit.Info(sess.Username, fmt.Sprintf("%s patient %d", service.AuditActionUserCreate, user.ID))
	return user, nil
}

func (u *adminUsecase) CreateMHWP(sess *entity.Session, username, password, name, email string) (*entity.User, error) {
	user, err := u.createUser(sess, username, password, entity.RoleMHWP)
	if err != nil {
		return nil, err
	}

	profile := &entity.MHWPProfile{
		MHWPID: user.ID,
		Name:   name,
		Email:  email,
	}
	if err := u.mhwpRepo.Create(u.db, profile); err != nil {
		return nil, err
	}
	u.audit.Info(sess.Username, fmt.Sprintf("%s mhwp %d", service.AuditActionUserCreate, user.ID))
	return user, nil
}

func (u *adminUsecase) createUser(sess *entity.Session, username, password string, role entity.Role) (*entity.User, error) {
	if err := u.require(sess); err != nil {
		return nil, err
	}
	if username == "" {
		return nil, fmt.Errorf("%w: username must not be empty", ErrInvalidInput)
	}

	existing, err := u.userRepo.FindByUsername(u.db, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Username: username,
		Password: string(hashed),
		Role:     role,
		Status:   entity.StatusActive,
	}
	if err := u.userRepo.Create(u.db, user); err != nil {
		return nil, err
	}
	return user, nil
}

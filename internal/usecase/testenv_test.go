package usecase

import (
	"io"
	"testing"
	"time"

	"mindclinic/internal/domain/entity"
	domainRepo "mindclinic/internal/domain/repository"
	"mindclinic/internal/infrastructure/jsonstore"
	repoimpl "mindclinic/internal/repository"
	"mindclinic/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// fakeAudit collects audit events in memory
type fakeAudit struct {
	events []string
}

func (a *fakeAudit) Log(level logrus.Level, actor, action string) {
	a.events = append(a.events, action)
}
func (a *fakeAudit) Info(actor, action string)    { a.Log(logrus.InfoLevel, actor, action) }
func (a *fakeAudit) Warning(actor, action string) { a.Log(logrus.WarnLevel, actor, action) }
func (a *fakeAudit) Error(actor, action string)   { a.Log(logrus.ErrorLevel, actor, action) }
func (a *fakeAudit) SetSession(id uuid.UUID)      {}

var _ service.AuditService = (*fakeAudit)(nil)

// fakeMailer records outbound mail instead of sending it
type fakeMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to, subject, body string
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.sent = append(m.sent, sentMail{to, subject, body})
	return m.err
}

var _ service.Mailer = (*fakeMailer)(nil)

// deps wires real repositories over a temp data directory; only the audit
// sink and mailer are faked.
type deps struct {
	db     *jsonstore.DB
	log    *logrus.Logger
	audit  *fakeAudit
	mailer *fakeMailer

	userRepo    domainRepo.UserRepository
	patientRepo domainRepo.PatientProfileRepository
	mhwpRepo    domainRepo.MHWPProfileRepository
	apptRepo    domainRepo.AppointmentRepository
	recordRepo  domainRepo.ClinicalRecordRepository
	moodRepo    domainRepo.MoodRepository
	journalRepo domainRepo.JournalRepository
	requestRepo domainRepo.ChangeRequestRepository
}

func newEnv(t *testing.T) *deps {
	t.Helper()
	db, err := jsonstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	return &deps{
		db:          db,
		log:         log,
		audit:       &fakeAudit{},
		mailer:      &fakeMailer{},
		userRepo:    repoimpl.NewUserRepository(),
		patientRepo: repoimpl.NewPatientProfileRepository(),
		mhwpRepo:    repoimpl.NewMHWPProfileRepository(),
		apptRepo:    repoimpl.NewAppointmentRepository(),
		recordRepo:  repoimpl.NewClinicalRecordRepository(),
		moodRepo:    repoimpl.NewMoodRepository(),
		journalRepo: repoimpl.NewJournalRepository(),
		requestRepo: repoimpl.NewChangeRequestRepository(),
	}
}

func (d *deps) admin() AdminUsecase {
	return NewAdminUsecase(d.db, d.log, d.audit,
		d.userRepo, d.patientRepo, d.mhwpRepo, d.apptRepo,
		d.recordRepo, d.moodRepo, d.journalRepo, d.requestRepo)
}

func (d *deps) patient() PatientUsecase {
	return NewPatientUsecase(d.db, d.log, d.audit, d.mailer,
		d.userRepo, d.patientRepo, d.mhwpRepo, d.apptRepo,
		d.moodRepo, d.journalRepo, d.requestRepo)
}

func (d *deps) mhwp() MHWPUsecase {
	return NewMHWPUsecase(d.db, d.log, d.audit, d.mailer,
		d.patientRepo, d.apptRepo, d.recordRepo, d.moodRepo)
}

func (d *deps) auth() AuthUsecase {
	return NewAuthUsecase(d.db, d.log, d.userRepo, d.patientRepo, d.mhwpRepo)
}

// seedPatient creates a user plus profile and returns the user id
func (d *deps) seedPatient(t *testing.T, name string, mhwpID int) int {
	t.Helper()
	user := &entity.User{Username: name, Password: "pw", Role: entity.RolePatient, Status: entity.StatusActive}
	if err := d.userRepo.Create(d.db, user); err != nil {
		t.Fatalf("seed patient user: %v", err)
	}
	profile := &entity.PatientProfile{
		PatientID:             user.ID,
		Name:                  name,
		Email:                 name + "@example.com",
		EmergencyContactEmail: name + ".next-of-kin@example.com",
		MHWPID:                mhwpID,
	}
	if err := d.patientRepo.Create(d.db, profile); err != nil {
		t.Fatalf("seed patient profile: %v", err)
	}
	return user.ID
}

// seedMHWP creates a practitioner user plus profile and returns the user id
func (d *deps) seedMHWP(t *testing.T, name string) int {
	t.Helper()
	user := &entity.User{Username: name, Password: "pw", Role: entity.RoleMHWP, Status: entity.StatusActive}
	if err := d.userRepo.Create(d.db, user); err != nil {
		t.Fatalf("seed mhwp user: %v", err)
	}
	profile := &entity.MHWPProfile{MHWPID: user.ID, Name: name, Email: name + "@clinic.example.com"}
	if err := d.mhwpRepo.Create(d.db, profile); err != nil {
		t.Fatalf("seed mhwp profile: %v", err)
	}
	return user.ID
}

func adminSession() *entity.Session {
	return &entity.Session{UserID: 100, Username: "admin", Role: entity.RoleAdmin, LastActivity: time.Now()}
}

func patientSession(id int) *entity.Session {
	return &entity.Session{UserID: id, Username: "patient", Role: entity.RolePatient, LastActivity: time.Now()}
}

func mhwpSession(id int) *entity.Session {
	return &entity.Session{UserID: id, Username: "mhwp", Role: entity.RoleMHWP, LastActivity: time.Now()}
}

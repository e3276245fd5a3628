package service

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Common audit actions
const (
	AuditActionLoginOK        = "auth.login.ok"
	AuditActionLoginDisabled  = "auth.login.disabled"
	AuditActionLoginFailLimit = "auth.login.fail_limit"
	AuditActionLogout         = "auth.logout"
	AuditActionSessionExpired = "auth.session.expired"
	AuditActionUserCreate     = "user.create"
	AuditActionUserEdit       = "user.edit"
	AuditActionUserDisable    = "user.disable"
	AuditActionUserEnable     = "user.enable"
	AuditActionUserDelete     = "user.delete"
	AuditActionReassign       = "patient.reassign"
	AuditActionRequestRaise   = "change_request.raise"
	AuditActionRequestResolve = "change_request.resolve"
	AuditActionJournalWrite   = "journal.write"
	AuditActionMoodLog        = "mood.log"
	AuditActionRecordUpdate   = "record.update"
	AuditActionApptRequest    = "appointment.request"
	AuditActionApptDecide     = "appointment.decide"
	AuditActionSeedAdmin      = "system.seed_admin"
)

// AuditService is the append-only audit sink. Every successful mutation and
// every authentication outcome goes through it; it is advisory and never on
// a recovery path.
type AuditService interface {
	Log(level logrus.Level, actor, action string)
	Info(actor, action string)
	Warning(actor, action string)
	Error(actor, action string)
	SetSession(id uuid.UUID)
}

type fileAudit struct {
	log       *logrus.Logger
	sessionID uuid.UUID
}

// NewAuditService opens the audit file for appending and returns the single
// writer over it. The returned closer flushes and closes the file.
func NewAuditService(path string) (AuditService, func() error, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open audit log: %w", err)
	}

	log := logrus.New()
	log.SetOutput(file)
	log.SetLevel(logrus.DebugLevel)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableColors:   true,
	})

	return &fileAudit{log: log}, file.Close, nil
}

func (a *fileAudit) SetSession(id uuid.UUID) {
	a.sessionID = id
}

func (a *fileAudit) Log(level logrus.Level, actor, action string) {
	entry := a.log.WithField("actor", actor)
	if a.sessionID != uuid.Nil {
		entry = entry.WithField("session", a.sessionID.String())
	}
	entry.Log(level, action)
}

func (a *fileAudit) Info(actor, action string)    { a.Log(logrus.InfoLevel, actor, action) }
func (a *fileAudit) Warning(actor, action string) { a.Log(logrus.WarnLevel, actor, action) }
func (a *fileAudit) Error(actor, action string)   { a.Log(logrus.ErrorLevel, actor, action) }

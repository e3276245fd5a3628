package bootstrap

import (
	"fmt"
	"os"

	"mindclinic/config"
	"mindclinic/internal/delivery/cli"
	"mindclinic/internal/delivery/cli/handler"
	"mindclinic/internal/domain/entity"
	domainRepo "mindclinic/internal/domain/repository"
	"mindclinic/internal/infrastructure/jsonstore"
	"mindclinic/internal/repository"
	"mindclinic/internal/service"
	"mindclinic/internal/usecase"
	"mindclinic/pkg/validator"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// App holds all dependencies for the application
type App struct {
	Config     *config.Config
	DB         *jsonstore.DB
	Router     *cli.Router
	closeAudit func() error
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	setupLogger()
	log := logrus.StandardLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	db, err := jsonstore.Open(cfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data store: %w", err)
	}
	app.DB = db

	audit, closeAudit, err := service.NewAuditService(cfg.Data.AuditLog)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	app.closeAudit = closeAudit

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	patientRepo := repository.NewPatientProfileRepository()
	mhwpRepo := repository.NewMHWPProfileRepository()
	apptRepo := repository.NewAppointmentRepository()
	recordRepo := repository.NewClinicalRecordRepository()
	moodRepo := repository.NewMoodRepository()
	journalRepo := repository.NewJournalRepository()
	requestRepo := repository.NewChangeRequestRepository()

	if err := seedDefaultAdmin(db, userRepo, audit, log); err != nil {
		closeAudit()
		db.Close()
		return nil, err
	}

	// Initialize collaborators
	var mailer service.Mailer = service.NopMailer{}
	if cfg.SMTP.Configured() {
		mailer = service.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Sender, cfg.SMTP.Password, log)
	}
	resources := service.NewResourceSearcher(cfg.Resources.URL, log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, patientRepo, mhwpRepo)
	adminUsecase := usecase.NewAdminUsecase(db, log, audit, userRepo, patientRepo, mhwpRepo, apptRepo, recordRepo, moodRepo, journalRepo, requestRepo)
	patientUsecase := usecase.NewPatientUsecase(db, log, audit, mailer, userRepo, patientRepo, mhwpRepo, apptRepo, moodRepo, journalRepo, requestRepo)
	mhwpUsecase := usecase.NewMHWPUsecase(db, log, audit, mailer, patientRepo, apptRepo, recordRepo, moodRepo)

	// Initialize the terminal delivery layer
	out := os.Stdout
	customValidator := validator.NewValidator()
	input := cli.NewInputManager(os.Stdin, out, customValidator, cfg.Session.InactivityTimeout)
	menu := cli.NewMenu(input, out, audit)

	authHandler := handler.NewAuthHandler(authUsecase, input, out, audit, cfg.Session.LoginAttempts)
	adminHandler := handler.NewAdminHandler(adminUsecase, menu, input, out)
	patientHandler := handler.NewPatientHandler(patientUsecase, resources, menu, input, out)
	mhwpHandler := handler.NewMHWPHandler(mhwpUsecase, menu, input, out)

	app.Router = cli.NewRouter(input, out, menu, audit, authHandler, adminHandler, patientHandler, mhwpHandler)
	return app, nil
}

// setupLogger configures the logrus process logger; the audit log has its
// own dedicated instance.
func setupLogger() {
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.WarnLevel)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// seedDefaultAdmin makes a fresh install usable: with no users collection on
// disk an admin/admin123 account is created and the fact audit-logged.
func seedDefaultAdmin(db *jsonstore.DB, userRepo domainRepo.UserRepository, audit service.AuditService, log *logrus.Logger) error {
	if db.Exists(repository.CollectionUsers) {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &entity.User{
		Username: "admin",
		Password: string(hashed),
		Role:     entity.RoleAdmin,
		Status:   entity.StatusActive,
	}
	if err := userRepo.Create(db, admin); err != nil {
		return fmt.Errorf("seed admin account: %w", err)
	}

	audit.Info("system", service.AuditActionSeedAdmin)
	log.Warn("No users found; created default admin account (admin/admin123)")
	return nil
}

// Run executes the REPL and returns the process exit code
func (app *App) Run() int {
	defer app.Close()
	return app.Router.Run()
}

// Close releases the store lock and the audit file
func (app *App) Close() {
	if app.closeAudit != nil {
		app.closeAudit()
	}
	if app.DB != nil {
		app.DB.Close()
	}
}

package usecase

import (
	"fmt"
	"strings"
	"time"

	"mindclinic/internal/domain/entity"
	"mindclinic/internal/domain/repository"
	"mindclinic/internal/infrastructure/jsonstore"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AccountView joins a base user with its role-side profile
type AccountView struct {
	User    entity.User
	Patient *entity.PatientProfile
	MHWP    *entity.MHWPProfile
}

// DisplayName prefers the profile name over the bare username
func (v *AccountView) DisplayName() string {
	switch {
	case v.Patient != nil && v.Patient.Name != "":
		return v.Patient.Name
	case v.MHWP != nil && v.MHWP.Name != "":
		return v.MHWP.Name
	default:
		return v.User.Username
	}
}

type AuthUsecase interface {
	// Authenticate matches a username/password pair. A disabled account still
	// authenticates; the caller inspects user.Status to surface the warning.
	Authenticate(username, password string) (*entity.User, error)
	// Hydrate joins the user with its role-side profile. A missing role-side
	// record is a hard error.
	Hydrate(user *entity.User) (*AccountView, error)
	StartSession(user *entity.User) *entity.Session
}

type authUsecase struct {
	db          *jsonstore.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	patientRepo repository.PatientProfileRepository
	mhwpRepo    repository.MHWPProfileRepository
	now         func() time.Time
}

func NewAuthUsecase(
	db *jsonstore.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientRepo repository.PatientProfileRepository,
	mhwpRepo repository.MHWPProfileRepository,
) AuthUsecase {
	return &authUsecase{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		patientRepo: patientRepo,
		mhwpRepo:    mhwpRepo,
		now:         time.Now,
	}
}

func (u *authUsecase) Authenticate(username, password string) (*entity.User, error) {
	user, err := u.userRepo.FindByUsername(u.db, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if strings.HasPrefix(user.Password, "$2") {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
			return nil, ErrInvalidCredentials
		}
	} else {
		// Legacy plaintext entry; upgrade to a hash on successful login.
		if user.Password != password {
			return nil, ErrInvalidCredentials
		}
		if hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost); err == nil {
			user.Password = string(hashed)
			if err := u.userRepo.Update(u.db, user); err != nil {
				u.log.Warnf("Failed to upgrade password hash for %s: %+v", username, err)
			}
		}
	}

	return user, nil
}

func (u *authUsecase) Hydrate(user *entity.User) (*AccountView, error) {
	view := &AccountView{User: *user}

	switch user.Role {
	case entity.RolePatient:
		profile, err := u.patientRepo.FindByID(u.db, user.ID)
		if err != nil {
			return nil, err
		}
		if profile == nil {
			return nil, fmt.Errorf("%w: patient profile for user %d", ErrNotFound, user.ID)
		}
		view.Patient = profile
	case entity.RoleMHWP:
		profile, err := u.mhwpRepo.FindByID(u.db, user.ID)
		if err != nil {
			return nil, err
		}
		if profile == nil {
			return nil, fmt.Errorf("%w: practitioner profile for user %d", ErrNotFound, user.ID)
		}
		view.MHWP = profile
	}

	return view, nil
}

func (u *authUsecase) StartSession(user *entity.User) *entity.Session {
	return entity.NewSession(user, u.now())
}

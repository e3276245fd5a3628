package cli

import (
	"errors"
	"io"

	"mindclinic/internal/domain/entity"
	"mindclinic/internal/infrastructure/jsonstore"
	"mindclinic/internal/service"
	"mindclinic/internal/usecase"
	"mindclinic/pkg/render"

	"github.com/google/uuid"
)

// Exit codes of the binary
const (
	ExitOK         = 0
	ExitDataError  = 1
	ExitAuthFailed = 2
)

// LoginFlow produces an authenticated session or an auth failure
type LoginFlow interface {
	Login() (*entity.Session, *usecase.AccountView, error)
}

// RoleMenu is the root menu of one role
type RoleMenu interface {
	Menu(sess *entity.Session) error
}

// Router owns the top-level REPL: banner, login, role dispatch, teardown
type Router struct {
	in      *InputManager
	out     io.Writer
	menu    *Menu
	audit   service.AuditService
	login   LoginFlow
	admin   RoleMenu
	patient RoleMenu
	mhwp    RoleMenu
}

func NewRouter(
	in *InputManager,
	out io.Writer,
	menu *Menu,
	audit service.AuditService,
	login LoginFlow,
	admin RoleMenu,
	patient RoleMenu,
	mhwp RoleMenu,
) *Router {
	return &Router{
		in:      in,
		out:     out,
		menu:    menu,
		audit:   audit,
		login:   login,
		admin:   admin,
		patient: patient,
		mhwp:    mhwp,
	}
}

// Run drives the program and returns its exit code. An expired session
// unwinds back to the login prompt; everything else ends the process.
func (r *Router) Run() int {
	render.Banner(r.out)

	for {
		sess, _, err := r.login.Login()
		switch {
		case err == nil:
		case errors.Is(err, usecase.ErrAuthFailed):
			render.Error(r.out, "Too many failed attempts")
			return ExitAuthFailed
		case errors.Is(err, ErrQuit):
			return ExitOK
		default:
			render.Error(r.out, "Unrecoverable data error: %v", err)
			r.audit.Error("system", "login aborted: "+err.Error())
			return ExitDataError
		}

		r.in.Bind(sess)
		r.audit.SetSession(sess.ID)
		r.menu.SetActor(sess.Username)

		menuErr := r.dispatch(sess)

		r.in.Bind(nil)
		r.menu.SetActor("")

		switch {
		case errors.Is(menuErr, ErrSessionExpired):
			render.Warning(r.out, "Session expired after inactivity; please log in again")
			r.audit.Warning(sess.Username, service.AuditActionSessionExpired)
			r.audit.SetSession(uuid.Nil)
			continue
		case menuErr == nil, errors.Is(menuErr, ErrQuit):
			r.audit.Info(sess.Username, service.AuditActionLogout)
			r.audit.SetSession(uuid.Nil)
			render.Success(r.out, "Goodbye")
			return ExitOK
		case errors.Is(menuErr, jsonstore.ErrCorrupted):
			render.Error(r.out, "Unrecoverable data error: %v", menuErr)
			r.audit.Error(sess.Username, "fatal data error: "+menuErr.Error())
			return ExitDataError
		default:
			render.Error(r.out, "Unexpected error: %v", menuErr)
			r.audit.Error(sess.Username, "fatal: "+menuErr.Error())
			return ExitDataError
		}
	}
}

func (r *Router) dispatch(sess *entity.Session) error {
	switch sess.Role {
	case entity.RoleAdmin:
		return r.admin.Menu(sess)
	case entity.RolePatient:
		return r.patient.Menu(sess)
	case entity.RoleMHWP:
		return r.mhwp.Menu(sess)
	default:
		render.Error(r.out, "Unknown role %q", sess.Role)
		return nil
	}
}

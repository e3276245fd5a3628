package handler

import (
	"errors"
	"fmt"
	"io"

	"mindclinic/internal/delivery/cli"
	"mindclinic/internal/domain/entity"
	"mindclinic/internal/service"
	"mindclinic/internal/usecase"
	"mindclinic/pkg/render"
)

type AuthHandler struct {
	auth     usecase.AuthUsecase
	in       *cli.InputManager
	out      io.Writer
	audit    service.AuditService
	attempts int
}

func NewAuthHandler(auth usecase.AuthUsecase, in *cli.InputManager, out io.Writer, audit service.AuditService, attempts int) *AuthHandler {
	return &AuthHandler{auth: auth, in: in, out: out, audit: audit, attempts: attempts}
}

// Login prompts for credentials up to the configured attempt budget.
// Returns usecase.ErrAuthFailed once the budget is spent; a correct login on
// the final attempt still succeeds.
func (h *AuthHandler) Login() (*entity.Session, *usecase.AccountView, error) {
	for attempt := 1; attempt <= h.attempts; attempt++ {
		values, err := h.in.Collect([]cli.Prompt{
			{Label: "Username", Tag: "required"},
			{Label: "Password", Tag: "required"},
		})
		if errors.Is(err, cli.ErrBack) {
			return nil, nil, cli.ErrQuit
		}
		if err != nil {
			return nil, nil, err
		}
		username, password := values[0], values[1]

		user, err := h.auth.Authenticate(username, password)
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			remaining := h.attempts - attempt
			if remaining > 0 {
				render.Error(h.out, "Invalid username or password. %d attempt(s) remaining", remaining)
			}
			continue
		}
		if err != nil {
			return nil, nil, err
		}

		if user.IsDisabled() {
			render.Warning(h.out, "This account is disabled; some actions will be blocked")
			h.audit.Warning(username, service.AuditActionLoginDisabled)
		}

		view, err := h.auth.Hydrate(user)
		if err != nil {
			return nil, nil, fmt.Errorf("hydrate user %d: %w", user.ID, err)
		}

		sess := h.auth.StartSession(user)
		h.audit.Info(username, service.AuditActionLoginOK)
		render.Success(h.out, "Welcome, %s", view.DisplayName())
		return sess, view, nil
	}

	h.audit.Warning("unknown", service.AuditActionLoginFailLimit)
	return nil, nil, usecase.ErrAuthFailed
}

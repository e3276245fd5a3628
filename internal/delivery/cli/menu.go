package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mindclinic/internal/infrastructure/jsonstore"
	"mindclinic/internal/service"
	"mindclinic/pkg/render"
)

// Action runs one menu option. Returning nil keeps the current frame;
// control signals and store errors steer the stack.
type Action func() error

// Menu is the pushdown automaton every interactive flow runs on. One frame
// is rendered at a time; breadcrumbs mirror the stack of frame titles.
type Menu struct {
	in          *InputManager
	out         io.Writer
	audit       service.AuditService
	actor       string
	breadcrumbs []string
}

func NewMenu(in *InputManager, out io.Writer, audit service.AuditService) *Menu {
	return &Menu{in: in, out: out, audit: audit, actor: "system"}
}

// SetActor names the audit actor for error events raised inside menus
func (m *Menu) SetActor(actor string) {
	if actor == "" {
		actor = "system"
	}
	m.actor = actor
}

// Breadcrumbs returns the titles from root to the current frame
func (m *Menu) Breadcrumbs() []string {
	return append([]string(nil), m.breadcrumbs...)
}

// Navigate pushes a frame and blocks until it pops. The last option always
// returns to the parent frame, or exits the program at the root. A nil
// return means one frame popped; ErrMainMenu unwinds until the root.
func (m *Menu) Navigate(title string, options []string, actions map[int]Action) error {
	m.breadcrumbs = append(m.breadcrumbs, title)
	defer func() {
		m.breadcrumbs = m.breadcrumbs[:len(m.breadcrumbs)-1]
	}()
	atRoot := len(m.breadcrumbs) == 1

	for {
		m.renderFrame(options)

		line, err := m.in.ReadLine("> ")
		if err != nil {
			return err
		}

		if strings.EqualFold(line, "back") {
			if atRoot {
				return ErrQuit
			}
			return nil
		}

		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(options) {
			render.Error(m.out, "Please enter a number between 1 and %d, or 'back'", len(options))
			continue
		}

		if n == len(options) {
			if atRoot {
				return ErrQuit
			}
			return nil
		}

		action := actions[n]
		if action == nil {
			continue
		}

		pop, fatal := m.dispatch(action, atRoot)
		if fatal != nil {
			return fatal
		}
		if pop {
			return nil
		}
	}
}

// dispatch runs one action and classifies its outcome: stay on this frame,
// pop to the parent, or unwind with a fatal signal.
func (m *Menu) dispatch(action Action, atRoot bool) (pop bool, fatal error) {
	err := action()
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, ErrBack):
		// A prompt or child frame was abandoned; stay here.
		return false, nil
	case errors.Is(err, ErrMainMenu):
		if atRoot {
			return false, nil
		}
		return false, err
	case errors.Is(err, jsonstore.ErrCorrupted):
		render.Error(m.out, "Data error: %v", err)
		m.audit.Error(m.actor, fmt.Sprintf("data error: %v", err))
		return !atRoot, nil
	case errors.Is(err, jsonstore.ErrSaveFailed):
		render.Error(m.out, "Save failed, your change was not stored: %v", err)
		m.audit.Error(m.actor, fmt.Sprintf("save error: %v", err))
		return false, nil
	case errors.Is(err, ErrQuit), errors.Is(err, ErrSessionExpired):
		return false, err
	default:
		// Domain rejection: report and keep the frame.
		render.Error(m.out, "%v", err)
		m.audit.Warning(m.actor, err.Error())
		return false, nil
	}
}

func (m *Menu) renderFrame(options []string) {
	fmt.Fprintln(m.out)
	render.Title(m.out, strings.Join(m.breadcrumbs, " > "))
	for i, option := range options {
		fmt.Fprintf(m.out, "  %d. %s\n", i+1, option)
	}
}

package handler

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"mindclinic/internal/delivery/cli"
	"mindclinic/internal/domain/entity"
	"mindclinic/internal/usecase"
	"mindclinic/pkg/render"
)

type AdminHandler struct {
	admin usecase.AdminUsecase
	menu  *cli.Menu
	in    *cli.InputManager
	out   io.Writer
}

func NewAdminHandler(admin usecase.AdminUsecase, menu *cli.Menu, in *cli.InputManager, out io.Writer) *AdminHandler {
	return &AdminHandler{admin: admin, menu: menu, in: in, out: out}
}

// Menu runs the admin root frame until logout
func (h *AdminHandler) Menu(sess *entity.Session) error {
	options := []string{
		"Manage patients",
		"Manage practitioners",
		"Review change requests",
		"Create patient account",
		"Create practitioner account",
		"Logout",
	}
	actions := map[int]cli.Action{
		1: func() error { return h.manageUsers(sess, entity.RolePatient, "Patients") },
		2: func() error { return h.manageUsers(sess, entity.RoleMHWP, "Practitioners") },
		3: func() error { return h.changeRequests(sess) },
		4: func() error { return h.createPatient(sess) },
		5: func() error { return h.createMHWP(sess) },
	}
	return h.menu.Navigate("Admin", options, actions)
}

func (h *AdminHandler) manageUsers(sess *entity.Session, kind entity.Role, title string) error {
	options := []string{
		"List all",
		"List active",
		"List disabled",
		"Inspect user",
		"Edit user",
		"Disable user",
		"Enable user",
		"Delete user",
	}
	actions := map[int]cli.Action{
		1: func() error { return h.listUsers(sess, kind, nil) },
		2: func() error { return h.listUsersWithStatus(sess, kind, entity.StatusActive) },
		3: func() error { return h.listUsersWithStatus(sess, kind, entity.StatusDisabled) },
		4: func() error { return h.inspectUser(sess) },
		5: func() error { return h.editUser(sess, kind) },
		6: func() error { return h.toggleUser(sess, true) },
		7: func() error { return h.toggleUser(sess, false) },
		8: func() error { return h.deleteUser(sess) },
	}
	if kind == entity.RolePatient {
		options = append(options, "Reassign patient")
		actions[len(options)] = func() error { return h.reassign(sess) }
	}
	options = append(options, "Main menu")
	actions[len(options)] = func() error { return cli.ErrMainMenu }
	options = append(options, "Back")

	return h.menu.Navigate(title, options, actions)
}

func (h *AdminHandler) promptID(label string) (int, error) {
	values, err := h.in.Collect([]cli.Prompt{{Label: label, Tag: "required,number"}})
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(values[0])
}

func (h *AdminHandler) listUsersWithStatus(sess *entity.Session, kind entity.Role, status entity.UserStatus) error {
	return h.listUsers(sess, kind, &status)
}

func (h *AdminHandler) listUsers(sess *entity.Session, kind entity.Role, status *entity.UserStatus) error {
	views, err := h.admin.ListUsers(sess, kind, status)
	if err != nil {
		return err
	}
	if len(views) == 0 {
		render.Warning(h.out, "No matching users")
		return nil
	}

	headers := []string{"ID", "Username", "Name", "Email", "Status", "Detail"}
	rows := make([][]string, 0, len(views))
	for i := range views {
		v := &views[i]
		detail := ""
		switch {
		case v.Patient != nil && v.Patient.Assigned():
			detail = fmt.Sprintf("mhwp %d", v.Patient.MHWPID)
		case v.Patient != nil:
			detail = "unassigned"
		case v.MHWP != nil:
			detail = fmt.Sprintf("%d patient(s)", v.MHWP.PatientCount)
		}
		rows = append(rows, []string{
			strconv.Itoa(v.User.ID),
			v.User.Username,
			v.DisplayName(),
			viewEmail(v),
			string(v.User.Status),
			detail,
		})
	}
	render.Rows(h.out, roleTitle(kind), headers, rows, false)
	return nil
}

func roleTitle(kind entity.Role) string {
	switch kind {
	case entity.RolePatient:
		return "Patient accounts"
	case entity.RoleMHWP:
		return "Practitioner accounts"
	default:
		return "Accounts"
	}
}

func viewEmail(v *usecase.AccountView) string {
	switch {
	case v.Patient != nil:
		return v.Patient.Email
	case v.MHWP != nil:
		return v.MHWP.Email
	default:
		return ""
	}
}

func (h *AdminHandler) inspectUser(sess *entity.Session) error {
	id, err := h.promptID("User id")
	if err != nil {
		return err
	}
	view, err := h.admin.ShowUser(sess, id)
	if err != nil {
		return err
	}

	rows := [][]string{
		{"user_id", strconv.Itoa(view.User.ID)},
		{"username", view.User.Username},
		{"role", string(view.User.Role)},
		{"status", string(view.User.Status)},
	}
	if view.Patient != nil {
		rows = append(rows,
			[]string{"name", view.Patient.Name},
			[]string{"email", view.Patient.Email},
			[]string{"emergency_contact_email", view.Patient.EmergencyContactEmail},
			[]string{"mhwp_id", strconv.Itoa(view.Patient.MHWPID)},
			[]string{"mood_code", strconv.Itoa(view.Patient.MoodCode)},
		)
	}
	if view.MHWP != nil {
		rows = append(rows,
			[]string{"name", view.MHWP.Name},
			[]string{"email", view.MHWP.Email},
			[]string{"patient_count", strconv.Itoa(view.MHWP.PatientCount)},
		)
	}
	render.Rows(h.out, "User "+strconv.Itoa(view.User.ID), []string{"Field", "Value"}, rows, false)
	return nil
}

// editUser collects the permitted fields; an empty answer keeps the current
// value.
func (h *AdminHandler) editUser(sess *entity.Session, kind entity.Role) error {
	id, err := h.promptID("User id")
	if err != nil {
		return err
	}

	prompts := []cli.Prompt{
		{Label: "New name (blank keeps current)"},
		{Label: "New email (blank keeps current)", Tag: "omitempty,email"},
	}
	if kind == entity.RolePatient {
		prompts = append(prompts, cli.Prompt{Label: "New emergency contact email (blank keeps current)", Tag: "omitempty,email"})
	}
	values, err := h.in.Collect(prompts)
	if err != nil {
		return err
	}

	patch := map[string]string{}
	if values[0] != "" {
		patch[usecase.FieldName] = values[0]
	}
	if values[1] != "" {
		patch[usecase.FieldEmail] = values[1]
	}
	if kind == entity.RolePatient && values[2] != "" {
		patch[usecase.FieldEmergencyEmail] = values[2]
	}
	if len(patch) == 0 {
		render.Warning(h.out, "Nothing to change")
		return nil
	}

	if err := h.admin.EditUser(sess, id, patch); err != nil {
		return err
	}
	render.Success(h.out, "User %d updated", id)
	return nil
}

func (h *AdminHandler) toggleUser(sess *entity.Session, disable bool) error {
	id, err := h.promptID("User id")
	if err != nil {
		return err
	}
	if disable {
		if err := h.admin.Disable(sess, id); err != nil {
			return err
		}
		render.Success(h.out, "User %d disabled", id)
		return nil
	}
	if err := h.admin.Enable(sess, id); err != nil {
		return err
	}
	render.Success(h.out, "User %d enabled", id)
	return nil
}

func (h *AdminHandler) deleteUser(sess *entity.Session) error {
	id, err := h.promptID("User id")
	if err != nil {
		return err
	}
	values, err := h.in.Collect([]cli.Prompt{{
		Label:   "Really delete? This removes all their data",
		Choices: []string{"yes", "no"},
	}})
	if err != nil {
		return err
	}
	if !strings.EqualFold(values[0], "yes") {
		return nil
	}

	if err := h.admin.DeleteUser(sess, id); err != nil {
		return err
	}
	render.Success(h.out, "User %d deleted", id)
	return nil
}

func (h *AdminHandler) reassign(sess *entity.Session) error {
	patientID, err := h.promptID("Patient id")
	if err != nil {
		return err
	}
	mhwpID, err := h.promptID("New practitioner id")
	if err != nil {
		return err
	}

	if err := h.admin.Reassign(sess, patientID, mhwpID); err != nil {
		return err
	}
	render.Success(h.out, "Patient %d reassigned to practitioner %d", patientID, mhwpID)
	return nil
}

func (h *AdminHandler) changeRequests(sess *entity.Session) error {
	requests, err := h.admin.ListChangeRequests(sess)
	if err != nil {
		return err
	}
	if len(requests) == 0 {
		render.Warning(h.out, "No open change requests")
		return nil
	}

	rows := make([][]string, 0, len(requests))
	for _, r := range requests {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			strconv.Itoa(r.PatientID),
			strconv.Itoa(r.OldMHWPID),
			strconv.Itoa(r.NewMHWPID),
		})
	}
	render.Rows(h.out, "Open change requests", []string{"Request", "Patient", "From", "To"}, rows, false)

	id, err := h.promptID("Request id")
	if err != nil {
		return err
	}
	values, err := h.in.Collect([]cli.Prompt{{
		Label:   "Decision",
		Choices: []string{"approve", "reject"},
	}})
	if err != nil {
		return err
	}

	if err := h.admin.ProcessChangeRequest(sess, id, strings.EqualFold(values[0], "approve")); err != nil {
		return err
	}
	render.Success(h.out, "Request %d resolved", id)
	return nil
}

func (h *AdminHandler) createPatient(sess *entity.Session) error {
	values, err := h.in.Collect([]cli.Prompt{
		{Label: "Username", Tag: "required"},
		{Label: "Password", Tag: "required,min=6"},
		{Label: "Full name", Tag: "required"},
		{Label: "Email", Tag: "required,email"},
		{Label: "Emergency contact email", Tag: "omitempty,email"},
	})
	if err != nil {
		return err
	}

	user, err := h.admin.CreatePatient(sess, values[0], values[1], values[2], values[3], values[4])
	if err != nil {
		return err
	}
	render.Success(h.out, "Patient account %d created", user.ID)
	return nil
}

func (h *AdminHandler) createMHWP(sess *entity.Session) error {
	values, err := h.in.Collect([]cli.Prompt{
		{Label: "Username", Tag: "required"},
		{Label: "Password", Tag: "required,min=6"},
		{Label: "Full name", Tag: "required"},
		{Label: "Email", Tag: "required,email"},
	})
	if err != nil {
		return err
	}

	user, err := h.admin.CreateMHWP(sess, values[0], values[1], values[2], values[3])
	if err != nil {
		return err
	}
	render.Success(h.out, "Practitioner account %d created", user.ID)
	return nil
}

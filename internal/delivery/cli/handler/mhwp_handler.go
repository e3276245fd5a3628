package handler

import (
	"io"
	"strconv"
	"strings"

	"mindclinic/internal/delivery/cli"
	"mindclinic/internal/domain/entity"
	"mindclinic/internal/usecase"
	"mindclinic/pkg/render"
)

type MHWPHandler struct {
	mhwp usecase.MHWPUsecase
	menu *cli.Menu
	in   *cli.InputManager
	out  io.Writer
}

func NewMHWPHandler(mhwp usecase.MHWPUsecase, menu *cli.Menu, in *cli.InputManager, out io.Writer) *MHWPHandler {
	return &MHWPHandler{mhwp: mhwp, menu: menu, in: in, out: out}
}

// Menu runs the practitioner root frame until logout
func (h *MHWPHandler) Menu(sess *entity.Session) error {
	options := []string{
		"Patient dashboard",
		"Patient summary",
		"Update clinical record",
		"Calendar",
		"Decide on an appointment",
		"Logout",
	}
	actions := map[int]cli.Action{
		1: func() error { return h.dashboard(sess) },
		2: func() error { return h.patientSummary(sess) },
		3: func() error { return h.updateRecord(sess) },
		4: func() error { return h.calendar(sess) },
		5: func() error { return h.decideAppointment(sess) },
	}
	return h.menu.Navigate("Practitioner", options, actions)
}

func (h *MHWPHandler) dashboard(sess *entity.Session) error {
	rows, err := h.mhwp.Dashboard(sess)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		render.Warning(h.out, "No patients assigned")
		return nil
	}

	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		mood := "-"
		if row.LatestMood != nil {
			mood = entity.MoodEmoji(row.LatestMood.Level()) + " " + row.LatestMood.MoodColor
		}
		table = append(table, []string{
			strconv.Itoa(row.Profile.PatientID),
			row.Profile.Name,
			row.Profile.Email,
			mood,
		})
	}
	render.Rows(h.out, "My patients", []string{"ID", "Name", "Email", "Latest mood"}, table, false)
	return nil
}

func (h *MHWPHandler) promptPatientID() (int, error) {
	values, err := h.in.Collect([]cli.Prompt{{Label: "Patient id", Tag: "required,number"}})
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(values[0])
}

func (h *MHWPHandler) patientSummary(sess *entity.Session) error {
	patientID, err := h.promptPatientID()
	if err != nil {
		return err
	}

	summary, err := h.mhwp.PatientSummary(sess, patientID)
	if err != nil {
		return err
	}

	condition, notes := "-", "-"
	if summary.Record != nil {
		condition, notes = summary.Record.Condition, summary.Record.Notes
	}
	mood := "-"
	if summary.LatestMood != nil {
		mood = summary.LatestMood.MoodColor + " " + entity.MoodEmoji(summary.LatestMood.Level())
	}
	rows := [][]string{
		{"name", summary.Profile.Name},
		{"email", summary.Profile.Email},
		{"emergency contact", summary.Profile.EmergencyContactEmail},
		{"condition", condition},
		{"notes", notes},
		{"latest mood", mood},
	}
	render.Rows(h.out, "Patient "+strconv.Itoa(patientID), []string{"Field", "Value"}, rows, false)
	return nil
}

func (h *MHWPHandler) updateRecord(sess *entity.Session) error {
	patientID, err := h.promptPatientID()
	if err != nil {
		return err
	}

	values, err := h.in.Collect([]cli.Prompt{
		{Label: "Field", Choices: []string{usecase.FieldCondition, usecase.FieldNotes}},
		{Label: "Value", Tag: "required"},
	})
	if err != nil {
		return err
	}

	if err := h.mhwp.UpdateRecord(sess, patientID, strings.ToLower(values[0]), values[1]); err != nil {
		return err
	}
	render.Success(h.out, "Record updated for patient %d", patientID)
	return nil
}

func (h *MHWPHandler) calendar(sess *entity.Session) error {
	appointments, err := h.mhwp.Calendar(sess)
	if err != nil {
		return err
	}
	if len(appointments) == 0 {
		render.Warning(h.out, "Calendar is empty")
		return nil
	}

	rows := make([][]string, 0, len(appointments))
	for _, a := range appointments {
		rows = append(rows, []string{
			strconv.Itoa(a.ID),
			a.Date,
			a.TimeSlot,
			strconv.Itoa(a.PatientID),
			string(a.Status),
		})
	}
	render.Rows(h.out, "My calendar", []string{"ID", "Date", "Slot", "Patient", "Status"}, rows, false)
	return nil
}

func (h *MHWPHandler) decideAppointment(sess *entity.Session) error {
	values, err := h.in.Collect([]cli.Prompt{
		{Label: "Appointment id", Tag: "required,number"},
		{Label: "Action", Choices: []string{"confirm", "cancel", "complete"}},
	})
	if err != nil {
		return err
	}
	id, _ := strconv.Atoi(values[0])

	var next entity.AppointmentStatus
	switch strings.ToLower(values[1]) {
	case "confirm":
		next = entity.AppointmentConfirmed
	case "cancel":
		next = entity.AppointmentCancelled
	case "complete":
		next = entity.AppointmentCompleted
	}

	if err := h.mhwp.DecideAppointment(sess, id, next); err != nil {
		return err
	}
	render.Success(h.out, "Appointment %d is now %s", id, next)
	return nil
}

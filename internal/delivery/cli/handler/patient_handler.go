package handler

import (
	"io"
	"strconv"
	"time"

	"mindclinic/internal/delivery/cli"
	"mindclinic/internal/domain/entity"
	"mindclinic/internal/service"
	"mindclinic/internal/usecase"
	"mindclinic/pkg/render"
)

type PatientHandler struct {
	patient   usecase.PatientUsecase
	resources service.ResourceSearcher
	menu      *cli.Menu
	in        *cli.InputManager
	out       io.Writer
}

func NewPatientHandler(patient usecase.PatientUsecase, resources service.ResourceSearcher, menu *cli.Menu, in *cli.InputManager, out io.Writer) *PatientHandler {
	return &PatientHandler{patient: patient, resources: resources, menu: menu, in: in, out: out}
}

// Menu runs the patient root frame until logout
func (h *PatientHandler) Menu(sess *entity.Session) error {
	options := []string{
		"View profile",
		"Edit profile",
		"Journal",
		"Mood log",
		"Appointments",
		"Request a different practitioner",
		"Browse wellbeing resources",
		"Logout",
	}
	actions := map[int]cli.Action{
		1: func() error { return h.viewProfile(sess) },
		2: func() error { return h.editProfile(sess) },
		3: func() error { return h.journalMenu(sess) },
		4: func() error { return h.moodMenu(sess) },
		5: func() error { return h.appointmentMenu(sess) },
		6: func() error { return h.requestChange(sess) },
		7: func() error { return h.browseResources() },
	}
	return h.menu.Navigate("Patient", options, actions)
}

func (h *PatientHandler) viewProfile(sess *entity.Session) error {
	profile, err := h.patient.Profile(sess)
	if err != nil {
		return err
	}

	assigned := "unassigned"
	if profile.Assigned() {
		assigned = strconv.Itoa(profile.MHWPID)
	}
	mood := "-"
	if label, ok := entity.MoodLabel(profile.MoodCode); ok {
		mood = label + " " + entity.MoodEmoji(profile.MoodCode)
	}
	rows := [][]string{
		{"patient_id", strconv.Itoa(profile.PatientID)},
		{"name", profile.Name},
		{"email", profile.Email},
		{"emergency_contact_email", profile.EmergencyContactEmail},
		{"practitioner", assigned},
		{"latest mood", mood},
	}
	render.Rows(h.out, "My profile", []string{"Field", "Value"}, rows, false)
	return nil
}

func (h *PatientHandler) editProfile(sess *entity.Session) error {
	values, err := h.in.Collect([]cli.Prompt{
		{Label: "New name (blank keeps current)"},
		{Label: "New email (blank keeps current)", Tag: "omitempty,email"},
		{Label: "New emergency contact email (blank keeps current)", Tag: "omitempty,email"},
	})
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
	if values[2] != "" {
		patch[usecase.FieldEmergencyEmail] = values[2]
	}
	if len(patch) == 0 {
		render.Warning(h.out, "Nothing to change")
		return nil
	}

	if err := h.patient.EditProfile(sess, patch); err != nil {
		return err
	}
	render.Success(h.out, "Profile updated")
	return nil
}

func (h *PatientHandler) journalMenu(sess *entity.Session) error {
	options := []string{
		"List entries",
		"Add entry",
		"Edit entry",
		"Delete entry",
		"Main menu",
		"Back",
	}
	actions := map[int]cli.Action{
		1: func() error { return h.listJournals(sess) },
		2: func() error { return h.addJournal(sess) },
		3: func() error { return h.updateJournal(sess) },
		4: func() error { return h.deleteJournal(sess) },
		5: func() error { return cli.ErrMainMenu },
	}
	return h.menu.Navigate("Journal", options, actions)
}

func (h *PatientHandler) listJournals(sess *entity.Session) error {
	entries, err := h.patient.Journals(sess)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		render.Warning(h.out, "No journal entries yet")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Timestamp.Format(time.RFC822), e.Text})
	}
	render.Rows(h.out, "My journal", []string{"When", "Entry"}, rows, true)
	return nil
}

func (h *PatientHandler) addJournal(sess *entity.Session) error {
	values, err := h.in.Collect([]cli.Prompt{{Label: "Journal entry", Tag: "required"}})
	if err != nil {
		return err
	}
	if err := h.patient.AddJournal(sess, values[0]); err != nil {
		return err
	}
	render.Success(h.out, "Entry saved")
	return nil
}

func (h *PatientHandler) updateJournal(sess *entity.Session) error {
	values, err := h.in.Collect([]cli.Prompt{
		{Label: "Entry number", Tag: "required,number"},
		{Label: "New text", Tag: "required"},
	})
	if err != nil {
		return err
	}
	index, _ := strconv.Atoi(values[0])
	if err := h.patient.UpdateJournal(sess, index, values[1]); err != nil {
		return err
	}
	render.Success(h.out, "Entry %d updated", index)
	return nil
}

func (h *PatientHandler) deleteJournal(sess *entity.Session) error {
	values, err := h.in.Collect([]cli.Prompt{{Label: "Entry number", Tag: "required,number"}})
	if err != nil {
		return err
	}
	index, _ := strconv.Atoi(values[0])
	if err := h.patient.DeleteJournal(sess, index); err != nil {
		return err
	}
	render.Success(h.out, "Entry %d deleted", index)
	return nil
}

func (h *PatientHandler) moodMenu(sess *entity.Session) error {
	options := []string{
		"List moods",
		"Log a mood",
		"Main menu",
		"Back",
	}
	actions := map[int]cli.Action{
		1: func() error { return h.listMoods(sess) },
		2: func() error { return h.addMood(sess) },
		3: func() error { return cli.ErrMainMenu },
	}
	return h.menu.Navigate("Mood log", options, actions)
}

func (h *PatientHandler) listMoods(sess *entity.Session) error {
	moods, err := h.patient.Moods(sess)
	if err != nil {
		return err
	}
	if len(moods) == 0 {
		render.Warning(h.out, "No moods logged yet")
		return nil
	}

	rows := make([][]string, 0, len(moods))
	for _, m := range moods {
		rows = append(rows, []string{
			m.Timestamp.Format(time.RFC822),
			m.MoodColor + " " + entity.MoodEmoji(m.Level()),
			m.MoodComments,
		})
	}
	render.Rows(h.out, "My moods", []string{"When", "Mood", "Comments"}, rows, false)
	return nil
}

func (h *PatientHandler) addMood(sess *entity.Session) error {
	values, err := h.in.Collect([]cli.Prompt{
		{Label: "Mood level (1 lowest .. 6 best)", Tag: "required,oneof=1 2 3 4 5 6"},
		{Label: "Comments"},
	})
	if err != nil {
		return err
	}
	level, _ := strconv.Atoi(values[0])
	if err := h.patient.AddMood(sess, level, values[1]); err != nil {
		return err
	}
	render.Success(h.out, "Mood logged %s", entity.MoodEmoji(level))
	return nil
}

func (h *PatientHandler) appointmentMenu(sess *entity.Session) error {
	options := []string{
		"View my appointments",
		"Request an appointment",
		"Cancel an appointment",
		"Main menu",
		"Back",
	}
	actions := map[int]cli.Action{
		1: func() error { return h.listAppointments(sess) },
		2: func() error { return h.requestAppointment(sess) },
		3: func() error { return h.cancelAppointment(sess) },
		4: func() error { return cli.ErrMainMenu },
	}
	return h.menu.Navigate("Appointments", options, actions)
}

func (h *PatientHandler) listAppointments(sess *entity.Session) error {
	appointments, err := h.patient.Appointments(sess)
	if err != nil {
		return err
	}
	if len(appointments) == 0 {
		render.Warning(h.out, "No appointments")
		return nil
	}

	rows := make([][]string, 0, len(appointments))
	for _, a := range appointments {
		rows = append(rows, []string{
			strconv.Itoa(a.ID),
			a.Date,
			a.TimeSlot,
			strconv.Itoa(a.MHWPID),
			string(a.Status),
		})
	}
	render.Rows(h.out, "My appointments", []string{"ID", "Date", "Slot", "Practitioner", "Status"}, rows, false)
	return nil
}

func (h *PatientHandler) requestAppointment(sess *entity.Session) error {
	values, err := h.in.Collect([]cli.Prompt{
		{Label: "Date (YYYY-MM-DD)", Tag: "required,datetime=2006-01-02"},
		{Label: "Time slot", Choices: entity.TimeSlots},
	})
	if err != nil {
		return err
	}

	appointment, err := h.patient.RequestAppointment(sess, values[0], values[1])
	if err != nil {
		return err
	}
	render.Success(h.out, "Appointment %d requested for %s %s", appointment.ID, appointment.Date, appointment.TimeSlot)
	return nil
}

func (h *PatientHandler) cancelAppointment(sess *entity.Session) error {
	values, err := h.in.Collect([]cli.Prompt{{Label: "Appointment id", Tag: "required,number"}})
	if err != nil {
		return err
	}
	id, _ := strconv.Atoi(values[0])
	if err := h.patient.CancelAppointment(sess, id); err != nil {
		return err
	}
	render.Success(h.out, "Appointment %d cancelled", id)
	return nil
}

func (h *PatientHandler) requestChange(sess *entity.Session) error {
	mhwps, err := h.patient.AvailableMHWPs(sess)
	if err != nil {
		return err
	}
	if len(mhwps) == 0 {
		render.Warning(h.out, "No practitioners available")
		return nil
	}

	rows := make([][]string, 0, len(mhwps))
	for _, m := range mhwps {
		rows = append(rows, []string{strconv.Itoa(m.MHWPID), m.Name, strconv.Itoa(m.PatientCount)})
	}
	render.Rows(h.out, "Practitioners", []string{"ID", "Name", "Patients"}, rows, false)

	values, err := h.in.Collect([]cli.Prompt{{Label: "Preferred practitioner id", Tag: "required,number"}})
	if err != nil {
		return err
	}
	id, _ := strconv.Atoi(values[0])
	if err := h.patient.RequestPractitionerChange(sess, id); err != nil {
		return err
	}
	render.Success(h.out, "Change request raised; an administrator will review it")
	return nil
}

func (h *PatientHandler) browseResources() error {
	values, err := h.in.Collect([]cli.Prompt{{Label: "Search keyword"}})
	if err != nil {
		return err
	}

	results := h.resources.Search(values[0])
	if len(results) == 0 {
		render.Warning(h.out, "No resources found right now")
		return nil
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{r.Title, r.URL})
	}
	render.Rows(h.out, "Wellbeing resources", []string{"Title", "Link"}, rows, true)
	return nil
}

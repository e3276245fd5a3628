package usecase

import (
	"errors"
	"testing"
	"time"

	"mindclinic/internal/domain/entity"
)

func TestPatientMoodLevelBounds(t *testing.T) {
	d := newEnv(t)
	patientID := d.seedPatient(t, "alice", 0)
	sess := patientSession(patientID)
	patient := d.patient()

	for _, level := range []int{0, 7, -1} {
		if err := patient.AddMood(sess, level, ""); !errors.Is(err, ErrInvalidMoodLevel) {
			t.Errorf("level %d: got %v, want ErrInvalidMoodLevel", level, err)
		}
	}
	for _, level := range []int{1, 6} {
		if err := patient.AddMood(sess, level, "boundary"); err != nil {
			t.Errorf("level %d: %v", level, err)
		}
	}
}

func TestPatientMoodMirrorsProfileCode(t *testing.T) {
	d := newEnv(t)
	patientID := d.seedPatient(t, "alice", 0)
	sess := patientSession(patientID)
	patient := d.patient()

	u := patient.(*patientUsecase)
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	u.now = func() time.Time { return base }
	if err := patient.AddMood(sess, 3, "meh"); err != nil {
		t.Fatalf("AddMood: %v", err)
	}
	u.now = func() time.Time { return base.Add(time.Hour) }
	if err := patient.AddMood(sess, 5, "better"); err != nil {
		t.Fatalf("AddMood: %v", err)
	}

	profile, _ := d.patientRepo.FindByID(d.db, patientID)
	if profile.MoodCode != 5 {
		t.Fatalf("mood_code: got %d, want 5", profile.MoodCode)
	}

	moods, err := patient.Moods(sess)
	if err != nil {
		t.Fatalf("Moods: %v", err)
	}
	if len(moods) != 2 || moods[0].MoodColor != "5_light_green" {
		t.Fatalf("latest mood first: %+v", moods)
	}
}

func TestPatientLowestMoodNotifiesEmergencyContact(t *testing.T) {
	d := newEnv(t)
	patientID := d.seedPatient(t, "alice", 0)
	sess := patientSession(patientID)
	patient := d.patient()

	if err := patient.AddMood(sess, 1, "very low"); err != nil {
		t.Fatalf("AddMood: %v", err)
	}
	if len(d.mailer.sent) != 1 {
		t.Fatalf("emergency mails: got %d, want 1", len(d.mailer.sent))
	}
	if d.mailer.sent[0].to != "alice.next-of-kin@example.com" {
		t.Fatalf("wrong recipient: %q", d.mailer.sent[0].to)
	}

	// Higher levels never mail.
	if err := patient.AddMood(sess, 2, "low"); err != nil {
		t.Fatalf("AddMood: %v", err)
	}
	if len(d.mailer.sent) != 1 {
		t.Fatalf("level 2 must not mail, got %d sends", len(d.mailer.sent))
	}
}

func TestPatientMoodMailFailureDoesNotRollBack(t *testing.T) {
	d := newEnv(t)
	patientID := d.seedPatient(t, "alice", 0)
	sess := patientSession(patientID)
	d.mailer.err = errors.New("smtp down")

	if err := d.patient().AddMood(sess, 1, ""); err != nil {
		t.Fatalf("AddMood must not surface mail errors: %v", err)
	}
	moods, _ := d.moodRepo.FindByPatient(d.db, patientID)
	if len(moods) != 1 {
		t.Fatalf("entry not persisted: %+v", moods)
	}
}

func TestPatientJournalLifecycle(t *testing.T) {
	d := newEnv(t)
	patientID := d.seedPatient(t, "alice", 0)
	sess := patientSession(patientID)
	patient := d.patient()

	u := patient.(*patientUsecase)
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	u.now = func() time.Time { return base }
	if err := patient.AddJournal(sess, "first"); err != nil {
		t.Fatalf("AddJournal: %v", err)
	}
	u.now = func() time.Time { return base.Add(time.Hour) }
	if err := patient.AddJournal(sess, "second"); err != nil {
		t.Fatalf("AddJournal: %v", err)
	}

	if err := patient.UpdateJournal(sess, 1, "second, edited"); err != nil {
		t.Fatalf("UpdateJournal: %v", err)
	}
	if err := patient.UpdateJournal(sess, 3, "x"); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("out of range update: got %v", err)
	}
	if err := patient.DeleteJournal(sess, 0); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("index 0 delete: got %v", err)
	}

	if err := patient.DeleteJournal(sess, 2); err != nil {
		t.Fatalf("DeleteJournal: %v", err)
	}
	entries, err := patient.Journals(sess)
	if err != nil {
		t.Fatalf("Journals: %v", err)
	}
	if len(entries) != 1 || entries[0].Text != "second, edited" {
		t.Fatalf("got %+v", entries)
	}
}

func TestPatientAppointmentRequest(t *testing.T) {
	d := newEnv(t)
	mhwpID := d.seedMHWP(t, "carol")
	patientID := d.seedPatient(t, "alice", mhwpID)
	sess := patientSession(patientID)
	patient := d.patient()

	appointment, err := patient.RequestAppointment(sess, "2026-06-01", "10:00")
	if err != nil {
		t.Fatalf("RequestAppointment: %v", err)
	}
	if appointment.Status != entity.AppointmentPending || appointment.MHWPID != mhwpID {
		t.Fatalf("got %+v", appointment)
	}

	if _, err := patient.RequestAppointment(sess, "06/01/2026", "10:00"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad date: got %v", err)
	}
	if _, err := patient.RequestAppointment(sess, "2026-06-01", "10:30"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad slot: got %v", err)
	}
}

func TestPatientUnassignedCannotBook(t *testing.T) {
	d := newEnv(t)
	patientID := d.seedPatient(t, "alice", 0)
	sess := patientSession(patientID)

	if _, err := d.patient().RequestAppointment(sess, "2026-06-01", "10:00"); !errors.Is(err, ErrUnassigned) {
		t.Fatalf("got %v, want ErrUnassigned", err)
	}
}

func TestPatientSlotConflict(t *testing.T) {
	d := newEnv(t)
	mhwpID := d.seedMHWP(t, "carol")
	aliceID := d.seedPatient(t, "alice", mhwpID)
	bobID := d.seedPatient(t, "bob", mhwpID)
	patient := d.patient()

	if _, err := patient.RequestAppointment(patientSession(aliceID), "2026-06-01", "10:00"); err != nil {
		t.Fatalf("RequestAppointment: %v", err)
	}
	if _, err := patient.RequestAppointment(patientSession(bobID), "2026-06-01", "10:00"); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("conflicting slot: got %v, want ErrSlotTaken", err)
	}

	// The same day at another hour is fine.
	if _, err := patient.RequestAppointment(patientSession(bobID), "2026-06-01", "11:00"); err != nil {
		t.Fatalf("free slot rejected: %v", err)
	}
}

func TestPatientCancelAppointment(t *testing.T) {
	d := newEnv(t)
	mhwpID := d.seedMHWP(t, "carol")
	patientID := d.seedPatient(t, "alice", mhwpID)
	sess := patientSession(patientID)
	patient := d.patient()

	appointment, err := patient.RequestAppointment(sess, "2026-06-01", "10:00")
	if err != nil {
		t.Fatalf("RequestAppointment: %v", err)
	}
	if err := patient.CancelAppointment(sess, appointment.ID); err != nil {
		t.Fatalf("CancelAppointment: %v", err)
	}
	if err := patient.CancelAppointment(sess, appointment.ID); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("cancel twice: got %v", err)
	}

	// The freed slot is bookable again.
	if _, err := patient.RequestAppointment(sess, "2026-06-01", "10:00"); err != nil {
		t.Fatalf("rebooking freed slot: %v", err)
	}
}

func TestPatientCannotCancelOthersAppointment(t *testing.T) {
	d := newEnv(t)
	mhwpID := d.seedMHWP(t, "carol")
	aliceID := d.seedPatient(t, "alice", mhwpID)
	bobID := d.seedPatient(t, "bob", mhwpID)
	patient := d.patient()

	appointment, err := patient.RequestAppointment(patientSession(aliceID), "2026-06-01", "10:00")
	if err != nil {
		t.Fatalf("RequestAppointment: %v", err)
	}
	if err := patient.CancelAppointment(patientSession(bobID), appointment.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign appointment: got %v, want ErrNotFound", err)
	}
}

func TestPatientEditProfile(t *testing.T) {
	d := newEnv(t)
	patientID := d.seedPatient(t, "alice", 0)
	sess := patientSession(patientID)
	patient := d.patient()

	patch := map[string]string{
		FieldName:  "Alice B",
		FieldEmail: "alice.b@example.com",
		"mhwp_id":  "9",
	}
	if err := patient.EditProfile(sess, patch); err != nil {
		t.Fatalf("EditProfile: %v", err)
	}

	profile, _ := d.patientRepo.FindByID(d.db, patientID)
	if profile.Name != "Alice B" || profile.Email != "alice.b@example.com" {
		t.Fatalf("edit not applied: %+v", profile)
	}
	if profile.MHWPID != 0 {
		t.Fatalf("assignment is not self-editable: %+v", profile)
	}
}

func TestPatientDisabledCannotEditProfile(t *testing.T) {
	d := newEnv(t)
	patientID := d.seedPatient(t, "alice", 0)

	if err := d.admin().Disable(adminSession(), patientID); err != nil {
		t.Fatalf("Disable: %v", err)
	}
	err := d.patient().EditProfile(patientSession(patientID), map[string]string{FieldName: "Eve"})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("got %v, want ErrPermissionDenied", err)
	}
}

func TestPatientChangeRequestValidation(t *testing.T) {
	d := newEnv(t)
	mhwpID := d.seedMHWP(t, "carol")
	patientID := d.seedPatient(t, "alice", mhwpID)
	sess := patientSession(patientID)
	patient := d.patient()

	if err := patient.RequestPractitionerChange(sess, mhwpID); !errors.Is(err, ErrAlreadyAssigned) {
		t.Fatalf("same practitioner: got %v", err)
	}
	if err := patient.RequestPractitionerChange(sess, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown practitioner: got %v", err)
	}
}

func TestPatientGateRejectsOtherRoles(t *testing.T) {
	d := newEnv(t)
	patient := d.patient()

	if _, err := patient.Profile(mhwpSession(1)); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("mhwp session: got %v", err)
	}
	if _, err := patient.Profile(nil); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("nil session: got %v", err)
	}
}

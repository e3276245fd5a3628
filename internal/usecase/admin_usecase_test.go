package usecase

import (
	"errors"
	"os"
	"testing"

	"mindclinic/internal/domain/entity"
)

func TestAdminRequiresCapability(t *testing.T) {
	d := newEnv(t)
	admin := d.admin()

	sess := patientSession(1)
	if _, err := admin.ListUsers(sess, "", nil); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("ListUsers as patient: got %v", err)
	}
	if err := admin.Disable(sess, 1); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("Disable as patient: got %v", err)
	}
	if err := admin.DeleteUser(nil, 1); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("DeleteUser without session: got %v", err)
	}
}

func TestAdminListUsersFilters(t *testing.T) {
	d := newEnv(t)
	admin := d.admin()
	sess := adminSession()

	d.seedPatient(t, "alice", 0)
	bobID := d.seedPatient(t, "bob", 0)
	d.seedMHWP(t, "carol")

	if err := admin.Disable(sess, bobID); err != nil {
		t.Fatalf("Disable: %v", err)
	}

	patients, err := admin.ListUsers(sess, entity.RolePatient, nil)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(patients) != 2 {
		t.Fatalf("patients: got %d, want 2", len(patients))
	}

	disabled := entity.StatusDisabled
	got, err := admin.ListUsers(sess, entity.RolePatient, &disabled)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(got) != 1 || got[0].User.ID != bobID {
		t.Fatalf("disabled filter: %+v", got)
	}
}

func TestAdminReassignRecountsBothSides(t *testing.T) {
	d := newEnv(t)
	admin := d.admin()
	sess := adminSession()

	oldMHWP := d.seedMHWP(t, "old")
	newMHWP := d.seedMHWP(t, "new")
	patientID := d.seedPatient(t, "alice", oldMHWP)
	if err := admin.Reassign(sess, patientID, oldMHWP); !errors.Is(err, ErrAlreadyAssigned) {
		t.Fatalf("reassign to current mhwp: got %v", err)
	}

	if err := admin.Reassign(sess, patientID, newMHWP); err != nil {
		t.Fatalf("Reassign: %v", err)
	}

	patient, err := d.patientRepo.FindByID(d.db, patientID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if patient.MHWPID != newMHWP {
		t.Fatalf("assignment not persisted: %+v", patient)
	}

	oldProfile, _ := d.mhwpRepo.FindByID(d.db, oldMHWP)
	newProfile, _ := d.mhwpRepo.FindByID(d.db, newMHWP)
	if oldProfile.PatientCount != 0 {
		t.Fatalf("old practitioner count: got %d, want 0", oldProfile.PatientCount)
	}
	if newProfile.PatientCount != 1 {
		t.Fatalf("new practitioner count: got %d, want 1", newProfile.PatientCount)
	}
}

func TestAdminReassignUnknownTargets(t *testing.T) {
	d := newEnv(t)
	admin := d.admin()
	sess := adminSession()

	mhwpID := d.seedMHWP(t, "carol")
	patientID := d.seedPatient(t, "alice", 0)

	if err := admin.Reassign(sess, 999, mhwpID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown patient: got %v", err)
	}
	if err := admin.Reassign(sess, patientID, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown practitioner: got %v", err)
	}
}

func TestAdminEditDisabledUserBlocked(t *testing.T) {
	d := newEnv(t)
	admin := d.admin()
	sess := adminSession()

	patientID := d.seedPatient(t, "alice", 0)
	if err := admin.Disable(sess, patientID); err != nil {
		t.Fatalf("Disable: %v", err)
	}

	before, err := os.ReadFile(d.db.Path("patients"))
	if err != nil {
		t.Fatalf("read patients: %v", err)
	}

	err = admin.EditUser(sess, patientID, map[string]string{FieldName: "Eve"})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("edit disabled: got %v, want ErrPermissionDenied", err)
	}

	after, err := os.ReadFile(d.db.Path("patients"))
	if err != nil {
		t.Fatalf("read patients: %v", err)
	}
	if string(before) != string(after) {
		t.Fatal("profile file changed despite the rejected edit")
	}
}

func TestAdminEnableRestoresEdit(t *testing.T) {
	d := newEnv(t)
	admin := d.admin()
	sess := adminSession()

	patientID := d.seedPatient(t, "alice", 0)
	if err := admin.Disable(sess, patientID); err != nil {
		t.Fatalf("Disable: %v", err)
	}
	if err := admin.Enable(sess, patientID); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	if err := admin.EditUser(sess, patientID, map[string]string{FieldName: "Alice B"}); err != nil {
		t.Fatalf("EditUser after enable: %v", err)
	}

	profile, _ := d.patientRepo.FindByID(d.db, patientID)
	if profile.Name != "Alice B" {
		t.Fatalf("edit not applied: %+v", profile)
	}
}

func TestAdminEditIsIdempotent(t *testing.T) {
	d := newEnv(t)
	admin := d.admin()
	sess := adminSession()

	patientID := d.seedPatient(t, "alice", 0)
	patch := map[string]string{FieldEmail: "new@example.com"}
	if err := admin.EditUser(sess, patientID, patch); err != nil {
		t.Fatalf("EditUser: %v", err)
	}
	if err := admin.EditUser(sess, patientID, patch); err != nil {
		t.Fatalf("EditUser twice: %v", err)
	}

	profile, _ := d.patientRepo.FindByID(d.db, patientID)
	if profile.Email != "new@example.com" {
		t.Fatalf("got %+v", profile)
	}
}

func TestAdminEditSkipsUnknownFields(t *testing.T) {
	d := newEnv(t)
	admin := d.admin()
	sess := adminSession()

	patientID := d.seedPatient(t, "alice", 0)
	if err := admin.EditUser(sess, patientID, map[string]string{"mood_code": "6"}); err != nil {
		t.Fatalf("EditUser: %v", err)
	}

	profile, _ := d.patientRepo.FindByID(d.db, patientID)
	if profile.MoodCode != 0 {
		t.Fatalf("read-only field changed: %+v", profile)
	}
}

func TestAdminDeletePatientCascades(t *testing.T) {
	d := newEnv(t)
	admin := d.admin()
	sess := adminSession()

	mhwpID := d.seedMHWP(t, "carol")
	patientID := d.seedPatient(t, "alice", 0)
	if err := admin.Reassign(sess, patientID, mhwpID); err != nil {
		t.Fatalf("Reassign: %v", err)
	}

	psess := patientSession(patientID)
	patient := d.patient()
	if err := patient.AddJournal(psess, "an entry"); err != nil {
		t.Fatalf("AddJournal: %v", err)
	}
	if err := patient.AddMood(psess, 4, ""); err != nil {
		t.Fatalf("AddMood: %v", err)
	}
	if _, err := patient.RequestAppointment(psess, "2026-06-01", "10:00"); err != nil {
		t.Fatalf("RequestAppointment: %v", err)
	}
	otherMHWP := d.seedMHWP(t, "dan")
	if err := patient.RequestPractitionerChange(psess, otherMHWP); err != nil {
		t.Fatalf("RequestPractitionerChange: %v", err)
	}

	if err := admin.DeleteUser(sess, patientID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	if user, _ := d.userRepo.FindByID(d.db, patientID); user != nil {
		t.Fatal("user record survived the delete")
	}
	if profile, _ := d.patientRepo.FindByID(d.db, patientID); profile != nil {
		t.Fatal("patient profile survived the delete")
	}
	if entries, _ := d.journalRepo.FindByPatient(d.db, patientID); len(entries) != 0 {
		t.Fatal("journal entries survived the delete")
	}
	if moods, _ := d.moodRepo.FindByPatient(d.db, patientID); len(moods) != 0 {
		t.Fatal("mood entries survived the delete")
	}
	if appts, _ := d.apptRepo.FindByPatient(d.db, patientID); len(appts) != 0 {
		t.Fatal("appointments survived the delete")
	}
	if open, _ := admin.ListChangeRequests(sess); len(open) != 0 {
		t.Fatalf("change requests survived the delete: %+v", open)
	}
	if requests, _ := d.requestRepo.FindAll(d.db); len(requests) != 0 {
		t.Fatalf("change request records survived the delete: %+v", requests)
	}

	mhwp, _ := d.mhwpRepo.FindByID(d.db, mhwpID)
	if mhwp.PatientCount != 0 {
		t.Fatalf("practitioner count not recounted: %d", mhwp.PatientCount)
	}
}

func TestAdminDeleteMHWPUnassignsPatients(t *testing.T) {
	d := newEnv(t)
	admin := d.admin()
	sess := adminSession()

	mhwpID := d.seedMHWP(t, "carol")
	patientID := d.seedPatient(t, "alice", 0)
	if err := admin.Reassign(sess, patientID, mhwpID); err != nil {
		t.Fatalf("Reassign: %v", err)
	}
	psess := patientSession(patientID)
	if _, err := d.patient().RequestAppointment(psess, "2026-06-01", "10:00"); err != nil {
		t.Fatalf("RequestAppointment: %v", err)
	}

	if err := admin.DeleteUser(sess, mhwpID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	profile, _ := d.patientRepo.FindByID(d.db, patientID)
	if profile == nil || profile.Assigned() {
		t.Fatalf("patient should survive unassigned, got %+v", profile)
	}

	appts, _ := d.apptRepo.FindByPatient(d.db, patientID)
	if len(appts) != 1 || !appts[0].IsCancelled() {
		t.Fatalf("open appointment should be cancelled, got %+v", appts)
	}
}

func TestAdminProcessChangeRequest(t *testing.T) {
	d := newEnv(t)
	admin := d.admin()
	sess := adminSession()

	oldMHWP := d.seedMHWP(t, "old")
	newMHWP := d.seedMHWP(t, "new")
	patientID := d.seedPatient(t, "alice", oldMHWP)

	psess := patientSession(patientID)
	if err := d.patient().RequestPractitionerChange(psess, newMHWP); err != nil {
		t.Fatalf("RequestPractitionerChange: %v", err)
	}

	open, err := admin.ListChangeRequests(sess)
	if err != nil {
		t.Fatalf("ListChangeRequests: %v", err)
	}
	if len(open) != 1 {
		t.Fatalf("open requests: got %d, want 1", len(open))
	}

	if err := admin.ProcessChangeRequest(sess, open[0].ID, true); err != nil {
		t.Fatalf("ProcessChangeRequest: %v", err)
	}

	patient, _ := d.patientRepo.FindByID(d.db, patientID)
	if patient.MHWPID != newMHWP {
		t.Fatalf("approval did not reassign: %+v", patient)
	}

	// Deciding a closed request again is an illegal transition.
	if err := admin.ProcessChangeRequest(sess, open[0].ID, false); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("re-decide: got %v, want ErrIllegalTransition", err)
	}
}

func TestAdminRejectChangeRequestLeavesAssignment(t *testing.T) {
	d := newEnv(t)
	admin := d.admin()
	sess := adminSession()

	oldMHWP := d.seedMHWP(t, "old")
	newMHWP := d.seedMHWP(t, "new")
	patientID := d.seedPatient(t, "alice", oldMHWP)

	if err := d.patient().RequestPractitionerChange(patientSession(patientID), newMHWP); err != nil {
		t.Fatalf("RequestPractitionerChange: %v", err)
	}
	open, _ := admin.ListChangeRequests(sess)
	if err := admin.ProcessChangeRequest(sess, open[0].ID, false); err != nil {
		t.Fatalf("ProcessChangeRequest: %v", err)
	}

	patient, _ := d.patientRepo.FindByID(d.db, patientID)
	if patient.MHWPID != oldMHWP {
		t.Fatalf("rejection must not move the patient: %+v", patient)
	}
	if remaining, _ := admin.ListChangeRequests(sess); len(remaining) != 0 {
		t.Fatalf("request still open: %+v", remaining)
	}
}

func TestAdminCreateAccounts(t *testing.T) {
	d := newEnv(t)
	admin := d.admin()
	sess := adminSession()

	user, err := admin.CreatePatient(sess, "alice", "pw", "Alice", "a@example.com", "kin@example.com")
	if err != nil {
		t.Fatalf("CreatePatient: %v", err)
	}
	profile, _ := d.patientRepo.FindByID(d.db, user.ID)
	if profile == nil || profile.EmergencyContactEmail != "kin@example.com" {
		t.Fatalf("profile not created: %+v", profile)
	}

	if _, err := admin.CreatePatient(sess, "alice", "pw", "Alice", "", ""); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("duplicate username: got %v", err)
	}
	if _, err := admin.CreateMHWP(sess, "", "pw", "Nameless", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty username: got %v", err)
	}

	mhwpUser, err := admin.CreateMHWP(sess, "carol", "pw", "Carol", "c@example.com")
	if err != nil {
		t.Fatalf("CreateMHWP: %v", err)
	}
	if mp, _ := d.mhwpRepo.FindByID(d.db, mhwpUser.ID); mp == nil {
		t.Fatal("practitioner profile not created")
	}
}

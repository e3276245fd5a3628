package entity

// PatientProfile represents patient-specific profile data.
// The key equals the user id of the owning account. MHWPID zero means the
// patient is currently unassigned.
type PatientProfile struct {
	PatientID             int    `json:"patient_id"`
	Name                  string `json:"name"`
	Email                 string `json:"email"`
	EmergencyContactEmail string `json:"emergency_contact_email"`
	MHWPID                int    `json:"mhwp_id"`
	MoodCode              int    `json:"mood_code"`
}

// Assigned checks if the patient currently has a practitioner
func (p *PatientProfile) Assigned() bool {
	return p.MHWPID != 0
}

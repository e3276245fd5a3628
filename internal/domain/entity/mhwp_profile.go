package entity

// MHWPProfile represents practitioner-specific profile data.
// PatientCount mirrors the number of patients whose mhwp_id points here; it
// must always be recomputed from the patient collection, never incremented.
type MHWPProfile struct {
	MHWPID       int    `json:"mhwp_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PatientCount int    `json:"patient_count"`
}

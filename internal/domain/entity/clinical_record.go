package entity

// ClinicalRecord holds the condition and notes an MHWP keeps per patient.
// At most one record exists per patient; it is created lazily on first edit.
type ClinicalRecord struct {
	PatientID int    `json:"patient_id"`
	Condition string `json:"condition"`
	Notes     string `json:"notes"`
}

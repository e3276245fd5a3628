package entity

// ChangeRequestStatus represents the lifecycle of a reassignment request
type ChangeRequestStatus string

const (
	ChangeRequestOpen     ChangeRequestStatus = "OPEN"
	ChangeRequestApproved ChangeRequestStatus = "APPROVED"
	ChangeRequestRejected ChangeRequestStatus = "REJECTED"
)

// ChangeRequest represents a patient's pending practitioner reassignment,
// resolved by an administrator
type ChangeRequest struct {
	ID        int                 `json:"request_id"`
	PatientID int                 `json:"patient_id"`
	OldMHWPID int                 `json:"old_mhwp_id"`
	NewMHWPID int                 `json:"new_mhwp_id"`
	Status    ChangeRequestStatus `json:"status"`
}

// IsOpen checks if the request still awaits an admin decision
func (c *ChangeRequest) IsOpen() bool {
	return c.Status == ChangeRequestOpen
}

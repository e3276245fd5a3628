package entity

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "PENDING"
	AppointmentConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
)

// TimeSlots are the bookable hourly slots on a practitioner calendar
var TimeSlots = []string{
	"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00",
}

// IsValidTimeSlot checks slot against the bookable calendar slots
func IsValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// Appointment represents a booking between a patient and a practitioner
type Appointment struct {
	ID        int               `json:"appointment_id"`
	PatientID int               `json:"patient_id"`
	MHWPID    int               `json:"mhwp_id"`
	Date      string            `json:"date"`
	TimeSlot  string            `json:"time_slot"`
	Status    AppointmentStatus `json:"status"`
}

// IsPending checks if the appointment awaits a practitioner decision
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentPending
}

// IsCancelled checks if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentCancelled
}

// IsCompleted checks if the appointment has taken place
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentCompleted
}

// Active reports whether the appointment still occupies its calendar slot.
// Cancelled appointments free the slot for rebooking.
func (a *Appointment) Active() bool {
	return a.Status != AppointmentCancelled
}

// CanTransition checks the status machine:
// PENDING -> CONFIRMED | CANCELLED, CONFIRMED -> CANCELLED | COMPLETED.
func (a *Appointment) CanTransition(next AppointmentStatus) bool {
	switch a.Status {
	case AppointmentPending:
		return next == AppointmentConfirmed || next == AppointmentCancelled
	case AppointmentConfirmed:
		return next == AppointmentCancelled || next == AppointmentCompleted
	default:
		return false
	}
}

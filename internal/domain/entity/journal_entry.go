package entity

import "time"

// JournalEntry represents one free-text journal line owned by a patient
type JournalEntry struct {
	PatientID int       `json:"patient_id"`
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"journal_text"`
}

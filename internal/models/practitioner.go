package models

import "time"

type NoteCategory string

const (
	NoteConsultation NoteCategory = "CONSULTATION"
	NoteSuivi        NoteCategory = "SUIVI"
	NotePrescription NoteCategory = "PRESCRIPTION"
	NoteAutre        NoteCategory = "AUTRE"
)

func (c NoteCategory) Valid() bool {
	switch c {
	case NoteConsultation, NoteSuivi, NotePrescription, NoteAutre:
		return true
	}
	return false
}

// Patient is a user as seen from a practitioner's follow-up list.
type Patient struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PatientSince time.Time
}

type FollowUpNote struct {
	ID             string
	PractitionerID string
	PatientID      string
	Content        string
	Category       NoteCategory
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

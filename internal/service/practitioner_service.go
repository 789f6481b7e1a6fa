package service

import (
	"context"

	"cesizen/api/internal/ids"
	"cesizen/api/internal/models"
	"cesizen/api/internal/repository"
)

type PractitionerService struct {
	store repository.PractitionerStore
	users repository.UserStore
}

func NewPractitionerService(store repository.PractitionerStore, users repository.UserStore) *PractitionerService {
	return &PractitionerService{store: store, users: users}
}

func (s *PractitionerService) Patients(ctx context.Context, practitionerID string) ([]models.Patient, error) {
	return s.store.Patients(ctx, practitionerID)
}

func (s *PractitionerService) AddPatient(ctx context.Context, practitionerID, patientID string) error {
	if _, err := s.users.GetByID(ctx, patientID); err != nil {
		return err
	}
	return s.store.Link(ctx, practitionerID, patientID)
}

func (s *PractitionerService) PatientNotes(ctx context.Context, practitionerID, patientID string) ([]models.FollowUpNote, error) {
	return s.store.Notes(ctx, practitionerID, patientID)
}

func (s *PractitionerService) AddNote(ctx context.Context, practitionerID, patientID, content string, category models.NoteCategory) (models.FollowUpNote, error) {
	note := models.FollowUpNote{
		ID:             ids.New(),
		PractitionerID: practitionerID,
		PatientID:      patientID,
		Content:        content,
		Category:       category,
	}
	if err := s.store.CreateNote(ctx, &note); err != nil {
		return models.FollowUpNote{}, err
	}
	return note, nil
}

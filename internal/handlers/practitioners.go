package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cesizen/api/internal/middleware"
	"cesizen/api/internal/models"
)

type patientResponse struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PatientSince time.Time `json:"patientSince"`
}

func (h HandlerSet) ListPatients(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentification requise")
		return
	}

	patients, err := h.practitionerService.Patients(c.Request.Context(), user.ID)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	out := make([]patientResponse, 0, len(patients))
	for _, p := range patients {
		out = append(out, patientResponse{
			ID:           p.ID,
			FirstName:    p.FirstName,
			LastName:     p.LastName,
			Email:        p.Email,
			PatientSince: p.PatientSince,
		})
	}
	respondData(c, http.StatusOK, out)
}

type addPatientRequest struct {
	PatientID string `json:"patientId" binding:"required"`
}

func (h HandlerSet) AddPatient(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentification requise")
		return
	}

	var req addPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}

	if err := h.practitionerService.AddPatient(c.Request.Context(), user.ID, req.PatientID); err != nil {
		h.serviceError(c, err)
		return
	}

	respondMessage(c, http.StatusCreated, "Patient ajouté au suivi")
}

type noteResponse struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patientId"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h HandlerSet) PatientNotes(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentification requise")
		return
	}

	notes, err := h.practitionerService.PatientNotes(c.Request.Context(), user.ID, c.Param("patientId"))
	if err != nil {
		h.serviceError(c, err)
		return
	}

	out := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, noteResponse{
			ID:        n.ID,
			PatientID: n.PatientID,
			Content:   n.Content,
			Category:  string(n.Category),
			CreatedAt: n.CreatedAt,
		})
	}
	respondData(c, http.StatusOK, out)
}

type addNoteRequest struct {
	PatientID string `json:"patientId" binding:"required"`
	Content   string `json:"content" binding:"required"`
	Category  string `json:"category" binding:"required"`
}

func (h HandlerSet) AddNote(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentification requise")
		return
	}

	var req addNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}

	category := models.NoteCategory(req.Category)
	if !category.Valid() {
		respondValidation(c, []fieldError{{Field: "category", Message: "Catégorie de note invalide"}})
		return
	}

	note, err := h.practitionerService.AddNote(c.Request.Context(), user.ID, req.PatientID, req.Content, category)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	respondData(c, http.StatusCreated, noteResponse{
		ID:        note.ID,
		PatientID: note.PatientID,
		Content:   note.Content,
		Category:  string(note.Category),
		CreatedAt: note.CreatedAt,
	})
}

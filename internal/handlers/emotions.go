package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cesizen/api/internal/middleware"
	"cesizen/api/internal/models"
)

type emotionCategoryResponse struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Emotions    []models.Emotion `json:"emotions"`
}

func (h HandlerSet) EmotionCategories(c *gin.Context) {
	categories, err := h.emotionService.Taxonomy(c.Request.Context())
	if err != nil {
		h.serviceError(c, err)
		return
	}

	out := make([]emotionCategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, emotionCategoryResponse{
			ID:          cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
			Emotions:    cat.Emotions,
		})
	}
	respondData(c, http.StatusOK, out)
}

type journalEntryResponse struct {
	ID          string    `json:"id"`
	EmotionID   int       `json:"emotionId"`
	EmotionName string    `json:"emotionName,omitempty"`
	Category    string    `json:"category,omitempty"`
	Intensity   int       `json:"intensity"`
	Note        *string   `json:"note"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toJournalEntryResponse(e models.JournalEntry) journalEntryResponse {
	return journalEntryResponse{
		ID:          e.ID,
		EmotionID:   e.EmotionID,
		EmotionName: e.EmotionName,
		Category:    e.CategoryName,
		Intensity:   e.Intensity,
		Note:        e.Note,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// parseDateParam accepts YYYY-MM-DD or RFC 3339 timestamps.
func parseDateParam(raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, true
		}
	}
	return nil, false
}

func (h HandlerSet) ListJournal(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentification requise")
		return
	}

	start, ok := parseDateParam(c.Query("startDate"))
	if !ok {
		respondError(c, http.StatusBadRequest, "Date de début invalide")
		return
	}
	end, ok := parseDateParam(c.Query("endDate"))
	if !ok {
		respondError(c, http.StatusBadRequest, "Date de fin invalide")
		return
	}

	entries, err := h.emotionService.List(c.Request.Context(), user.ID, start, end)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	out := make([]journalEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toJournalEntryResponse(e))
	}
	respondData(c, http.StatusOK, out)
}

type addEntryRequest struct {
	EmotionID int     `json:"emotionId" binding:"required"`
	Intensity int     `json:"intensity" binding:"required,min=1,max=5"`
	Note      *string `json:"note"`
}

func (h HandlerSet) AddJournalEntry(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentification requise")
		return
	}

	var req addEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}

	entry, err := h.emotionService.Add(c.Request.Context(), user.ID, req.EmotionID, req.Intensity, req.Note)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	respondData(c, http.StatusCreated, toJournalEntryResponse(entry))
}

type updateEntryRequest struct {
	Intensity int     `json:"intensity" binding:"required,min=1,max=5"`
	Note      *string `json:"note"`
}

func (h HandlerSet) UpdateJournalEntry(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentification requise")
		return
	}

	var req updateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}

	entry, err := h.emotionService.Update(c.Request.Context(), c.Param("id"), user.ID, req.Intensity, req.Note)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	respondData(c, http.StatusOK, toJournalEntryResponse(entry))
}

func (h HandlerSet) DeleteJournalEntry(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentification requise")
		return
	}

	if err := h.emotionService.Delete(c.Request.Context(), c.Param("id"), user.ID); err != nil {
		h.serviceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Émotion supprimée avec succès")
}

type categoryCountResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type emotionCountResponse struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type dailyCountResponse struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type statsResponse struct {
	CategoryStats []categoryCountResponse `json:"categoryStats"`
	TopEmotions   []emotionCountResponse  `json:"topEmotions"`
	TimeData      []dailyCountResponse    `json:"timeData"`
}

func (h HandlerSet) EmotionStats(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentification requise")
		return
	}

	stats, err := h.emotionService.Stats(c.Request.Context(), user.ID, c.DefaultQuery("period", "week"))
	if err != nil {
		h.serviceError(c, err)
		return
	}

	resp := statsResponse{
		CategoryStats: make([]categoryCountResponse, 0, len(stats.CategoryStats)),
		TopEmotions:   make([]emotionCountResponse, 0, len(stats.TopEmotions)),
		TimeData:      make([]dailyCountResponse, 0, len(stats.TimeData)),
	}
	for _, s := range stats.CategoryStats {
		resp.CategoryStats = append(resp.CategoryStats, categoryCountResponse{Name: s.Name, Count: s.Count})
	}
	for _, s := range stats.TopEmotions {
		resp.TopEmotions = append(resp.TopEmotions, emotionCountResponse{Name: s.Name, Category: s.Category, Count: s.Count})
	}
	for _, s := range stats.TimeData {
		resp.TimeData = append(resp.TimeData, dailyCountResponse{
			Date:     s.Date.Format("2006-01-02"),
			Category: s.Category,
			Count:    s.Count,
		})
	}

	respondData(c, http.StatusOK, resp)
}

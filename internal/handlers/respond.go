package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"cesizen/api/internal/repository"
	"cesizen/api/internal/service"
)

// Every response uses the same envelope: {success, data?, message?, errors?}.

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func respondValidation(c *gin.Context, errs []fieldError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Données invalides",
		"errors":  errs,
	})
}

// bindingErrors flattens a gin binding failure into per-field errors.
func bindingErrors(err error) []fieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []fieldError{{Field: "body", Message: "Corps de requête invalide"}}
	}

	out := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg := "Champ invalide"
		switch fe.Tag() {
		case "required":
			msg = "Ce champ est requis"
		case "email":
			msg = "Email invalide"
		case "min":
			msg = "Valeur trop courte"
		case "max":
			msg = "Valeur trop longue"
		}
		out = append(out, fieldError{Field: fe.Field(), Message: msg})
	}
	return out
}

type paginationMeta struct {
	Total       int `json:"total"`
	Pages       int `json:"pages"`
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
}

func respondPage(c *gin.Context, data any, total, limit, offset int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"pagination": paginationMeta{
			Total:       total,
			Pages:       int(math.Ceil(float64(total) / float64(limit))),
			CurrentPage: offset/limit + 1,
			Limit:       limit,
		},
	})
}

// pageParams reads limit/offset query values with sane bounds.
func pageParams(c *gin.Context, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}

// serviceError maps sentinel errors from the service and repository layers
// to their HTTP status and French message. Anything unmapped is a 500; the
// underlying message only leaks in development.
func (h HandlerSet) serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		respondError(c, http.StatusBadRequest, "Un utilisateur avec cet email existe déjà")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "Email ou mot de passe incorrect")
	case errors.Is(err, service.ErrNotArticleOwner):
		respondError(c, http.StatusForbidden, "Accès non autorisé")
	case errors.Is(err, service.ErrLastAdmin):
		respondError(c, http.StatusBadRequest, "Impossible de supprimer le dernier administrateur")
	case errors.Is(err, repository.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "Utilisateur non trouvé")
	case errors.Is(err, repository.ErrArticleNotFound):
		respondError(c, http.StatusNotFound, "Article non trouvé")
	case errors.Is(err, repository.ErrEntryNotFound):
		respondError(c, http.StatusNotFound, "Émotion non trouvée ou accès non autorisé")
	case errors.Is(err, repository.ErrAlreadyLinked):
		respondError(c, http.StatusBadRequest, "Ce patient est déjà dans votre suivi")
	case errors.Is(err, repository.ErrPatientNotLinked):
		respondError(c, http.StatusForbidden, "Accès non autorisé à ce patient")
	case errors.Is(err, repository.ErrTokenInvalid):
		respondError(c, http.StatusBadRequest, "Token invalide ou expiré")
	case errors.Is(err, repository.ErrRoleNotFound):
		respondError(c, http.StatusNotFound, "Rôle non trouvé")
	case errors.Is(err, repository.ErrAssignmentNotFound):
		respondError(c, http.StatusNotFound, "Ce rôle n'est pas attribué à cet utilisateur")
	default:
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled service error")
		msg := "Une erreur interne est survenue"
		if h.cfg.Environment == "development" {
			msg = err.Error()
		}
		respondError(c, http.StatusInternalServerError, msg)
	}
}

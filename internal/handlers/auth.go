package handlers

import (
	"net/http"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"

	"cesizen/api/internal/middleware"
	"cesizen/api/internal/service"
)

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
}

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

// validatePassword enforces the password policy: at least 8 characters
// with an upper, a lower, a digit and a special character.
func validatePassword(password string) []fieldError {
	var errs []fieldError
	add := func(msg string) {
		errs = append(errs, fieldError{Field: "password", Message: msg})
	}

	if len(password) < 8 {
		add("Le mot de passe doit contenir au moins 8 caractères")
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	if !upper {
		add("Le mot de passe doit contenir au moins une majuscule")
	}
	if !lower {
		add("Le mot de passe doit contenir au moins une minuscule")
	}
	if !digit {
		add("Le mot de passe doit contenir au moins un chiffre")
	}
	if !special {
		add("Le mot de passe doit contenir au moins un caractère spécial")
	}
	return errs
}

func (h HandlerSet) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}
	if errs := validatePassword(req.Password); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.serviceError(c, err)
		return
	}

	respondData(c, http.StatusCreated, userResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Connexion réussie",
		"token":   token,
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h HandlerSet) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}

	if err := h.passwordService.RequestReset(c.Request.Context(), req.Email); err != nil {
		h.serviceError(c, err)
		return
	}

	// identical answer whether or not the account exists
	respondMessage(c, http.StatusOK, "Si un compte existe avec cet email, vous recevrez les instructions de réinitialisation.")
}

type resetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func (h HandlerSet) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}
	if errs := validatePassword(req.NewPassword); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	if err := h.passwordService.Reset(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		h.serviceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Mot de passe réinitialisé avec succès")
}

func (h HandlerSet) Profile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentification requise")
		return
	}

	respondData(c, http.StatusOK, userResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
	})
}

type updateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email" binding:"omitempty,email"`
}

func (h HandlerSet) UpdateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentification requise")
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}

	updated, err := h.authService.UpdateProfile(c.Request.Context(), user.ID, req.FirstName, req.LastName, req.Email)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	respondData(c, http.StatusOK, userResponse{
		ID:        updated.ID,
		Email:     updated.Email,
		FirstName: updated.FirstName,
		LastName:  updated.LastName,
		CreatedAt: updated.CreatedAt,
	})
}

func (h HandlerSet) MyRoles(c *gin.Context) {
	names := middleware.CallerRoles(c)

	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, string(name))
	}
	respondData(c, http.StatusOK, out)
}

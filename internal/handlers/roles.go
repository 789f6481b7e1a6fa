package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cesizen/api/internal/models"
)

type roleResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func toRoleResponses(roles []models.Role) []roleResponse {
	out := make([]roleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, roleResponse{
			ID:          r.ID,
			Name:        string(r.Name),
			Description: r.Description,
		})
	}
	return out
}

type roleChangeRequest struct {
	UserID string `json:"userId" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

func (h HandlerSet) AssignRole(c *gin.Context) {
	var req roleChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}

	role := models.RoleName(req.Role)
	if !role.Valid() {
		respondValidation(c, []fieldError{{Field: "role", Message: "Rôle invalide"}})
		return
	}

	if err := h.roleService.Assign(c.Request.Context(), req.UserID, role); err != nil {
		h.serviceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Rôle attribué avec succès")
}

func (h HandlerSet) RemoveRole(c *gin.Context) {
	var req roleChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}

	role := models.RoleName(req.Role)
	if !role.Valid() {
		respondValidation(c, []fieldError{{Field: "role", Message: "Rôle invalide"}})
		return
	}

	if err := h.roleService.Remove(c.Request.Context(), req.UserID, role); err != nil {
		h.serviceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Rôle retiré avec succès")
}

func (h HandlerSet) RolesOfUser(c *gin.Context) {
	roles, err := h.roleService.UserRoles(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.serviceError(c, err)
		return
	}
	respondData(c, http.StatusOK, toRoleResponses(roles))
}

func (h HandlerSet) AllRoles(c *gin.Context) {
	roles, err := h.roleService.All(c.Request.Context())
	if err != nil {
		h.serviceError(c, err)
		return
	}
	respondData(c, http.StatusOK, toRoleResponses(roles))
}

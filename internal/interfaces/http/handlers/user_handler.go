package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"shopgate.backend/internal/domain/entities"
	"shopgate.backend/internal/interfaces/http/response"
	"shopgate.backend/internal/usecases"
)

// UserHandler exposes user administration endpoints
type UserHandler struct {
	userUsecase *usecases.UserUsecase
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUsecase *usecases.UserUsecase) *UserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

// ListUsers lists users with an optional ?search= filter
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userUsecase.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// ChangeRole moves the target user to a new role, revoking their tokens
func (h *UserHandler) ChangeRole(c *gin.Context) {
	var input entities.ChangeRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userUsecase.ChangeRole(c.Request.Context(), c.Param("id"), input.Role); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "role changed; all sessions revoked"})
}

package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"shopgate.backend/internal/domain/entities"
	"shopgate.backend/internal/interfaces/http/middleware"
	"shopgate.backend/internal/interfaces/http/response"
	"shopgate.backend/internal/usecases"
)

// ApiKeyHandler exposes key issuance and key management endpoints
type ApiKeyHandler struct {
	apiKeyUsecase *usecases.ApiKeyUsecase
}

// NewApiKeyHandler creates a new api key handler
func NewApiKeyHandler(apiKeyUsecase *usecases.ApiKeyUsecase) *ApiKeyHandler {
	return &ApiKeyHandler{apiKeyUsecase: apiKeyUsecase}
}

// CreateKeys issues one or more API keys. The body is a single spec object
// or an array of them; the response preserves input order and carries each
// raw key exactly once.
func (h *ApiKeyHandler) CreateKeys(c *gin.Context) {
	principal, exists := middleware.GetPrincipal(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	specs, err := bindKeySpecs(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issued, err := h.apiKeyUsecase.IssueKeys(c.Request.Context(), principal, specs)
	if err != nil {
		// Keys minted before a mid-batch storage fault are still reported:
		// their raw values exist and would otherwise be lost.
		if len(issued) > 0 {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "storage failure part-way through the batch",
				"created": issued,
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"created": issued})
}

// ListKeys lists the caller's keys (digests and metadata only)
func (h *ApiKeyHandler) ListKeys(c *gin.Context) {
	principal, exists := middleware.GetPrincipal(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	keys, err := h.apiKeyUsecase.ListKeys(c.Request.Context(), principal)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"keys": keys})
}

// DisableKey disables one of the caller's keys
func (h *ApiKeyHandler) DisableKey(c *gin.Context) {
	principal, exists := middleware.GetPrincipal(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.apiKeyUsecase.DisableKey(c.Request.Context(), principal, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "key disabled"})
}

// DeleteKey deletes one of the caller's keys
func (h *ApiKeyHandler) DeleteKey(c *gin.Context) {
	principal, exists := middleware.GetPrincipal(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.apiKeyUsecase.DeleteKey(c.Request.Context(), principal, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "key deleted"})
}

// bindKeySpecs accepts `{...}` or `[{...}, ...]`. Any shape violation,
// including a non-string permission entry, fails the whole request before
// the issuance protocol runs.
func bindKeySpecs(c *gin.Context) ([]entities.CreateApiKeySpec, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var specs []entities.CreateApiKeySpec
		if err := json.Unmarshal(body, &specs); err != nil {
			return nil, err
		}
		return validateSpecs(specs)
	}

	var spec entities.CreateApiKeySpec
	if err := json.Unmarshal(body, &spec); err != nil {
		return nil, err
	}
	return validateSpecs([]entities.CreateApiKeySpec{spec})
}

func validateSpecs(specs []entities.CreateApiKeySpec) ([]entities.CreateApiKeySpec, error) {
	for i := range specs {
		if specs[i].Name == "" {
			return nil, errNameRequired
		}
	}
	return specs, nil
}

var errNameRequired = errors.New("each key spec requires a name")

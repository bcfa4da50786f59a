package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lexi-ai/internal/domain"
	"lexi-ai/internal/service"
)

// PersonaHandler mantiene dependencias para los endpoints del perfil.
type PersonaHandler struct {
	logger    *zap.Logger
	assistant *service.AssistantService
	persona   *service.PersonaService
}

func NewPersonaHandler(logger *zap.Logger, assistant *service.AssistantService, persona *service.PersonaService) *PersonaHandler {
	return &PersonaHandler{logger: logger, assistant: assistant, persona: persona}
}

// LearnPreference maneja POST /preferences.
func (h *PersonaHandler) LearnPreference(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req struct {
		Item     domain.Item `json:"item" binding:"required"`
		Rating   string      `json:"rating" binding:"required"`
		Category string      `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid learn request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.assistant.LearnPreference(c.Request.Context(), userID, req.Item, domain.Rating(req.Rating), req.Category)
	if errors.Is(err, domain.ErrInvalidRating) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("learn preference failed", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record preference"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recorded": true})
}

// GetPreferences maneja GET /preferences, opcionalmente con ?category=.
func (h *PersonaHandler) GetPreferences(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	if category := c.Query("category"); category != "" {
		prefs := h.persona.CategoryPreferences(c.Request.Context(), userID, category)
		c.JSON(http.StatusOK, gin.H{"preferences": prefs})
		return
	}

	prefs := h.persona.Preferences(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

// GetNegativeFilters maneja GET /preferences/filters, opcionalmente con
// ?category=.
func (h *PersonaHandler) GetNegativeFilters(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	if category := c.Query("category"); category != "" {
		filters := h.persona.CategoryNegativeFilters(c.Request.Context(), userID, category)
		c.JSON(http.StatusOK, gin.H{"filters": filters})
		return
	}

	filters := h.persona.NegativeFilters(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"filters": filters})
}

// GetSummary maneja GET /persona/summary.
func (h *PersonaHandler) GetSummary(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	summary := h.assistant.PersonaSummary(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetHealthReport maneja GET /wellbeing/report.
func (h *PersonaHandler) GetHealthReport(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	report := h.assistant.HealthReport(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"report": report})
}

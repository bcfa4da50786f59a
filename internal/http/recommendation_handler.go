package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lexi-ai/internal/domain"
	"lexi-ai/internal/service"
)

// RecommendationHandler mantiene dependencias para recomendaciones y
// decisiones asistidas.
type RecommendationHandler struct {
	logger    *zap.Logger
	assistant *service.AssistantService
}

func NewRecommendationHandler(logger *zap.Logger, assistant *service.AssistantService) *RecommendationHandler {
	return &RecommendationHandler{logger: logger, assistant: assistant}
}

// GetRecommendations maneja GET /recommendations?category=&limit=.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	category := c.Query("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category is required"})
		return
	}

	limit := service.DefaultRecommendationLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	recommendations, err := h.assistant.GetRecommendations(c.Request.Context(), userID, category, limit)
	if err != nil {
		h.logger.Error("get recommendations failed", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recommendations})
}

// CombatDecisionFatigue maneja POST /decisions.
func (h *RecommendationHandler) CombatDecisionFatigue(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req struct {
		Category string        `json:"category" binding:"required"`
		Options  []domain.Item `json:"options" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid decision request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	options := h.assistant.CombatDecisionFatigue(c.Request.Context(), userID, req.Category, req.Options)
	c.JSON(http.StatusOK, gin.H{"options": options})
}

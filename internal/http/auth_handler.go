package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lexi-ai/internal/service"
)

// AuthHandler emite tokens de acceso para los shells.
type AuthHandler struct {
	logger *zap.Logger
	jwtSvc *service.JWTService
}

func NewAuthHandler(logger *zap.Logger, jwtSvc *service.JWTService) *AuthHandler {
	return &AuthHandler{logger: logger, jwtSvc: jwtSvc}
}

// IssueToken maneja POST /auth/token.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid token request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	token, expiresIn, err := h.jwtSvc.IssueToken(req.UserID)
	if err != nil {
		h.logger.Error("issue token failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"expires_in":   expiresIn,
	})
}

package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lexi-ai/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	authH *AuthHandler,
	personaH *PersonaHandler,
	recH *RecommendationHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	auth := r.Group("/auth")
	auth.POST("/token", authH.IssueToken)

	protected := r.Group("/")
	protected.Use(JWTAuthMiddleware(jwtSvc))
	protected.POST("/preferences", personaH.LearnPreference)
	protected.GET("/preferences", personaH.GetPreferences)
	protected.GET("/preferences/filters", personaH.GetNegativeFilters)
	protected.GET("/persona/summary", personaH.GetSummary)
	protected.GET("/wellbeing/report", personaH.GetHealthReport)
	protected.GET("/recommendations", recH.GetRecommendations)
	protected.POST("/decisions", recH.CombatDecisionFatigue)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

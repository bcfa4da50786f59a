package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lexi-ai/internal/service"
)

const authUserKey = "auth_user_id"

// JWTAuthMiddleware valida el access token y deja el user id en el
// contexto; los handlers solo necesitan saber de quién es el perfil.
func JWTAuthMiddleware(jwtSvc *service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := jwtSvc.ParseAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(authUserKey, claims.UserID)
		c.Next()
	}
}

// bearerToken extrae el token de un header "Authorization: Bearer <token>".
func bearerToken(header string) (string, bool) {
	token, ok := strings.CutPrefix(strings.TrimSpace(header), "Bearer ")
	if !ok {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetAuthUserID obtiene el user id autenticado desde el contexto.
func GetAuthUserID(c *gin.Context) (string, bool) {
	val, ok := c.Get(authUserKey)
	if !ok {
		return "", false
	}
	userID, ok := val.(string)
	return userID, ok && userID != ""
}

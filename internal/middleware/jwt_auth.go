package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prefeitura-rio/app-ferramentas/internal/services"
)

// ValidadorToken confere o JWT emitido no login
type ValidadorToken interface {
	ValidarToken(token string) (*services.Claims, error)
}

// JWTAuthMiddleware exige um token Bearer válido e coloca o usuário no contexto
func JWTAuthMiddleware(validador ValidadorToken) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token não fornecido"})
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Formato do token inválido"})
			return
		}

		claims, err := validador.ValidarToken(strings.TrimSpace(tokenString))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token inválido ou expirado"})
			return
		}

		c.Set(UserIDKey, claims.ID)
		c.Set(UserNameKey, claims.Nome)
		c.Next()
	}
}

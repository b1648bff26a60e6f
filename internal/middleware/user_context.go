package middlewares

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey    = "user_id"
	UserNameKey  = "user_name"
	RequestIDKey = "request_id"
)

// GetUserID retorna o id do usuário autenticado ou 0
func GetUserID(c *gin.Context) int64 {
	if userID, exists := c.Get(UserIDKey); exists {
		if id, ok := userID.(int64); ok {
			return id
		}
	}
	return 0
}

// GetUserName retorna o nome do usuário autenticado
func GetUserName(c *gin.Context) string {
	if userName, exists := c.Get(UserNameKey); exists {
		if userNameStr, ok := userName.(string); ok {
			return userNameStr
		}
	}
	return ""
}

// GetRequestID retorna o id da requisição atual
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// RequireOwnership só deixa passar quando o parâmetro de rota é o próprio usuário
func RequireOwnership(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Usuário não autenticado"})
			return
		}

		ownerID, err := strconv.ParseInt(c.Param(param), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
			return
		}

		if ownerID != userID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Acesso negado: você só pode alterar seus próprios dados"})
			return
		}
		c.Next()
	}
}

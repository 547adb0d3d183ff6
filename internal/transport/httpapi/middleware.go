package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Роли актора из токена identity-сервиса.
const (
	RoleClient = "client"
	RolePro    = "pro"
)

const (
	ctxActorID   = "actor_id"
	ctxActorRole = "actor_role"
)

// Claims — полезная нагрузка JWT, который выпускает identity-сервис.
// Ядро токен только читает: subject — это id актора, который дальше
// передаётся во все операции явным параметром.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware проверяет Bearer-токен и кладёт actor id и роль
// в контекст запроса.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" || tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bearer token required"})
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		actorID, err := uuid.Parse(claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid subject in token"})
			return
		}

		c.Set(ctxActorID, actorID)
		c.Set(ctxActorRole, claims.Role)
		c.Next()
	}
}

// RequirePro пускает дальше только мастеров.
func RequirePro() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxActorRole) != RolePro {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "professional role required"})
			return
		}
		c.Next()
	}
}

// actorID достаёт id актора, положенный AuthMiddleware.
func actorID(c *gin.Context) uuid.UUID {
	v, ok := c.Get(ctxActorID)
	if !ok {
		return uuid.Nil
	}
	id, _ := v.(uuid.UUID)
	return id
}

package middleware

import (
	"net/http"
	"os"
	"strings"
	"time"

	"invoicing-backend/internal/cache"
	"invoicing-backend/internal/model"
	"invoicing-backend/internal/repository"
	"invoicing-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const principalKey = "principal"

const userCacheTTL = 5 * time.Minute

// authDeps holds the user store and cache used by RequireAdmin — set via
// InitAuthMiddleware.
var (
	authUserRepo repository.UserRepository
	authCache    *cache.Cache
)

// InitAuthMiddleware sets the dependencies for the auth middleware chain.
func InitAuthMiddleware(userRepo repository.UserRepository, c *cache.Cache) {
	authUserRepo = userRepo
	authCache = c
}

func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // Development fallback only — DO NOT use in production
	}
	return []byte(secret)
}

// UserValidate verifies the bearer token and stores the resulting Principal
// in the gin context. Requests with a missing or invalid token are rejected
// before any business logic runs.
func UserValidate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("Access Denied"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("Invalid authorization format. Expected 'Bearer <token>'"))
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return GetJWTSecret(), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("Invalid Token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("Invalid token claims"))
			return
		}

		principal, err := principalFromClaims(claims)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("Invalid token claims"))
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireAdmin checks the authenticated user's type against the user store.
// The lookup goes through the cache; the token's type claim alone is not
// trusted for admin gating. Must run after UserValidate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("Unauthorized"))
			return
		}

		user, err := cache.GetOrSet(c.Request.Context(), authCache, "user_"+principal.UserID.String(), userCacheTTL, func() (*model.User, error) {
			return authUserRepo.FindByID(c.Request.Context(), principal.UserID)
		})
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("Unauthorized"))
			return
		}

		if user.Type != model.UserTypeAdmin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("You have no admin rights"))
			return
		}

		c.Next()
	}
}

// GetPrincipal returns the Principal stored by UserValidate.
func GetPrincipal(c *gin.Context) (model.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return model.Principal{}, false
	}
	principal, ok := v.(model.Principal)
	return principal, ok
}

func principalFromClaims(claims jwt.MapClaims) (model.Principal, error) {
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return model.Principal{}, err
	}

	principal := model.Principal{UserID: userID}

	if raw, ok := claims["company_id"].(string); ok && raw != "" {
		companyID, err := uuid.Parse(raw)
		if err != nil {
			return model.Principal{}, err
		}
		principal.CompanyID = companyID
	}

	if t, ok := claims["type"].(string); ok {
		principal.Type = t
	}

	return principal, nil
}

package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/hostelcare/internal/app/models/dto"
	"github.com/yigit/hostelcare/internal/pkg/apperrors"
	"github.com/yigit/hostelcare/internal/pkg/auth"
)

const principalKey = "principal"

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "Authentication required").
					WithDetails("Authorization header missing"))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrorCodeInvalidToken, "Authentication failed").
					WithDetails("Invalid token format"))
			return
		}

		principal, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			code := dto.ErrorCodeInvalidToken
			details := "Invalid token"
			if errors.Is(err, apperrors.ErrTokenExpired) {
				code = dto.ErrorCodeExpiredToken
				details = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(code, "Authentication failed").WithDetails(details))
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RoleRequired middleware to check if user has required role
func (m *AuthMiddleware) RoleRequired(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "Authentication required"))
			return
		}

		if principal.Role != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrorCodeForbidden, "Access denied").
					WithDetails("You don't have sufficient permissions for this operation"))
			return
		}

		c.Next()
	}
}

// StudentSelfOrAdmin lets a request through when the caller is an admin or the student
// named by the given path parameter.
func (m *AuthMiddleware) StudentSelfOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := RequireSelfOrAdmin(c, c.Param(param)); err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetPrincipal returns the authenticated caller set by JWTAuth
func GetPrincipal(c *gin.Context) (*auth.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	p, ok := v.(*auth.Principal)
	return p, ok
}

// RequireSelfOrAdmin fails unless the caller is an admin or the given student
func RequireSelfOrAdmin(c *gin.Context, studentID string) error {
	principal, ok := GetPrincipal(c)
	if !ok {
		return apperrors.NewCustomError(apperrors.ErrTokenInvalid, "Authentication required")
	}
	if principal.IsAdmin() {
		return nil
	}
	if principal.Role == auth.RoleStudent && principal.Subject == studentID {
		return nil
	}
	return apperrors.NewForbiddenError("You can only access your own records")
}

// File: internal/middleware/auth.go
package middleware

import (
	"ktm_rentals_backend/internal/common"
	"ktm_rentals_backend/internal/firebase"
	"ktm_rentals_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware verifies the bearer token with Firebase and resolves the
// local user, provisioning it on first sight. The resolved identity (id,
// email, role) is stored on the request context.
func AuthMiddleware(firebaseService *firebase.FirebaseService, userService shared.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := common.GetTokenFromContext(c)
		if tokenString == "" {
			logger.Debug("Authorization header missing or malformed")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header must be 'Bearer <token>'."))
			return
		}

		token, err := firebaseService.VerifyIDToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Warn("Firebase token verification failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Invalid or expired identity token."))
			return
		}

		usr, wasCreated, err := userService.GetOrCreateUserFromFirebaseClaims(c.Request.Context(), token)
		if err != nil {
			logger.Error("Failed to resolve local user for verified token", zap.String("uid", token.UID), zap.Error(err))
			common.RespondWithError(c, common.ErrInternalServer.WithDetails("Could not resolve your account."))
			return
		}

		c.Set(common.UserIDKey, usr.ID)
		if usr.Email != nil {
			c.Set(common.UserEmailKey, *usr.Email)
		}
		c.Set(common.UserRoleKey, usr.Role)

		logger.Debug("User authenticated",
			zap.String("userID", usr.ID.String()),
			zap.String("role", usr.Role),
			zap.Bool("provisioned", wasCreated),
		)

		c.Next()
	}
}

// RoleAuthMiddleware checks that the authenticated user holds one of the
// allowed roles. Must run after AuthMiddleware.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := common.GetUserRoleFromContext(c)
		if userRole == "" {
			common.RespondWithError(c, common.ErrForbidden.WithDetails("User role not found in context."))
			return
		}

		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		common.RespondWithError(c, common.ErrForbidden.WithDetails("You do not have sufficient permissions for this resource."))
	}
}

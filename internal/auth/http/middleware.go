// Package http provides HTTP handlers and middleware for authentication.
package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/afga-dev/attendify-api/internal/auth/usecase"
	"github.com/afga-dev/attendify-api/internal/authz"
	apperrors "github.com/afga-dev/attendify-api/internal/errors"
	"github.com/afga-dev/attendify-api/internal/httputil"
)

// AuthenticationMiddleware provides authentication via Bearer token in the Authorization header.
//
// The middleware:
// 1. Passes the raw Authorization header to authUseCase.Authenticate()
// 2. Rejects anything that is not a verified ACCESS token
// 3. Stores the resolved principal in the request context
// 4. Allows downstream handlers to access the principal via GetPrincipal()
//
// Error handling:
//   - Missing or malformed Authorization header → 401 Unauthorized
//   - Invalid/expired token or refresh token presented → 401 Unauthorized
//
// Usage:
//
//	router.Use(AuthenticationMiddleware(authUseCase, logger))
//	router.GET("/protected", func(c *gin.Context) {
//	    principal, ok := GetPrincipal(c.Request.Context())
//	    ...
//	})
func AuthenticationMiddleware(
	authUC authUseCase.AuthUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		principal, err := authUC.Authenticate(c.Request.Context(), authHeader)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("error", err.Error()))
			// A missing or malformed header on a protected route is an
			// authentication failure, not a validation failure.
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		ctx := WithPrincipal(c.Request.Context(), principal)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("user_id", principal.UserID.String()))

		c.Next()
	}
}

// RequirePermission provides permission-based authorization for authenticated requests.
//
// This middleware MUST be used after AuthenticationMiddleware, as it requires a principal
// to be present in the request context. Ownership rules (owner vs force permission) cannot
// be decided at the route, so handlers that need them call authz.AuthorizeOwned themselves
// after loading the resource; this middleware covers the flat permission checks.
//
// Error handling:
//   - No principal in context → 401 Unauthorized (AuthenticationMiddleware not run)
//   - Principal lacks the permission → 403 Forbidden
//
// Usage:
//
//	router.POST("/v1/categories",
//	    AuthenticationMiddleware(authUseCase, logger),
//	    RequirePermission(authz.CategoryCreate, logger),
//	    handler)
func RequirePermission(
	permission authz.Permission,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := GetPrincipal(c.Request.Context())

		if err := authz.Authorize(principal, permission); err != nil {
			if principal != nil {
				logger.Debug("authorization failed",
					slog.String("user_id", principal.UserID.String()),
					slog.String("path", c.Request.URL.Path),
					slog.String("permission", string(permission)))
			} else {
				logger.Debug("authorization failed: no principal in context",
					slog.String("path", c.Request.URL.Path))
			}
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

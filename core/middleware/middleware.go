package middleware

import (
	"strings"

	"tempus/core/config"
	"tempus/core/constants"
	"tempus/core/controller"
	"tempus/core/errors"
	"tempus/core/utils"

	"github.com/labstack/echo/v4"
)

// Middleware bundles the request middlewares modules attach to their routes.
type Middleware struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Middleware {
	return &Middleware{cfg: cfg}
}

// AuthMiddleware validates the bearer token and stores the claims in context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return controller.NewErrorResponse(401, errors.ErrMissingAuthorizationHeader, "Missing Authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return controller.NewErrorResponse(401, errors.ErrInvalidTokenFormat, "Invalid Authorization header format")
			}

			claims, err := utils.ParseToken(parts[1], m.cfg.Auth.JWTSecret)
			if err != nil {
				return controller.NewErrorResponse(401, errors.ErrTokenExpired, "Invalid or expired token")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// RequestID attaches a short opaque id to every request for log correlation.
func (m *Middleware) RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get("X-Request-ID")
			if id == "" {
				id = utils.GenerateID()
			}
			c.Set(constants.ContextRequestID, id)
			c.Response().Header().Set("X-Request-ID", id)
			return next(c)
		}
	}
}

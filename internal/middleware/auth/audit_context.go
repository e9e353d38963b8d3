package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/Nicksok2413/Kronon/internal/audit"
	"github.com/Nicksok2413/Kronon/internal/domain/model"
)

// AuditContext binds the request's audit metadata into the context so the
// capture plugin can attribute every write performed while handling it.
// Must run after JWTMiddleware; unauthenticated requests (skip paths) get
// actorless context.
func AuditContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			ac := audit.Context{
				AppSource: model.SourceAPI,
				IP:        c.RealIP(),
				Method:    req.Method,
				URL:       req.URL.RequestURI(),
			}
			if user, err := GetUserFromContext(c); err == nil {
				id := user.ID
				ac.ActorID = &id
				ac.ActorEmail = user.Email
			}

			c.SetRequest(req.WithContext(audit.NewContext(req.Context(), ac)))
			return next(c)
		}
	}
}

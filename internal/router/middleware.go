package router

import (
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"noticeboard/internal/auth"
	"noticeboard/internal/errors"
	"noticeboard/internal/handler"
	"noticeboard/internal/policy"
)

const claimsContextKey = "claims"

// optionalJWT validates a bearer token when one is present and stores its
// claims. Missing or invalid tokens leave the request anonymous.
func optionalJWT(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ContextKey:  claimsContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
		ContinueOnIgnoredError: true,
	})
}

// resolveIdentity loads the user named by the token subject, if any.
func resolveIdentity(resolver auth.IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, _ := c.Get(claimsContextKey).(*auth.Claims)
			if claims == nil || claims.Subject == "" {
				return next(c)
			}
			subject := claims.Subject

			user, err := resolver.Resolve(c.Request().Context(), subject)
			if err != nil {
				c.Logger().Errorf("resolve identity %q: %v", subject, err)
				return toHTTPError(err)
			}
			handler.SetCurrentUser(c, user)
			return next(c)
		}
	}
}

// requireAccess enforces a route's declared access level. denied, when set,
// is returned instead of the level's default error.
func requireAccess(level Access, denied error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := handler.CurrentUser(c)
			switch level {
			case AccessUser:
				if user == nil {
					return toHTTPError(orDefault(denied, errors.ErrUnauthorized))
				}
			case AccessAdmin:
				// Anonymous callers get 403 here too, not 401.
				if !policy.IsAdmin(user) {
					return toHTTPError(orDefault(denied, errors.ErrForbidden))
				}
			}
			return next(c)
		}
	}
}

func toHTTPError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func orDefault(err, def error) error {
	if err != nil {
		return err
	}
	return def
}

package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"noticeboard/internal/auth"
	"noticeboard/internal/config"
	"noticeboard/internal/errors"
	"noticeboard/internal/handler"
)

// Access is the identity a route requires before its handler runs.
type Access int

const (
	// AccessPublic routes ignore the caller entirely.
	AccessPublic Access = iota
	// AccessOptional routes render differently for signed-in callers.
	AccessOptional
	// AccessUser routes reject anonymous callers with 401.
	AccessUser
	// AccessAdmin routes reject everyone but admins with 403.
	AccessAdmin
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessOptional:
		return "optional"
	case AccessUser:
		return "user"
	case AccessAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Route is one entry of the API route table.
type Route struct {
	Method  string
	Path    string
	Access  Access
	Handler echo.HandlerFunc
	// Denied replaces the default error returned when Access is not met.
	Denied error
}

// Routes returns the /api route table.
func Routes(boardHandler *handler.BoardHandler, userHandler *handler.UserHandler) []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/board", Access: AccessOptional, Handler: boardHandler.List},
		{Method: http.MethodGet, Path: "/board/", Access: AccessOptional, Handler: boardHandler.List},
		{Method: http.MethodGet, Path: "/board/notices", Access: AccessPublic, Handler: boardHandler.Notices},
		{Method: http.MethodGet, Path: "/board/:id", Access: AccessOptional, Handler: boardHandler.Get},
		{Method: http.MethodPost, Path: "/board", Access: AccessUser, Handler: boardHandler.Create},
		{Method: http.MethodPut, Path: "/board/:id", Access: AccessUser, Handler: boardHandler.Update},
		{Method: http.MethodDelete, Path: "/board/:id", Access: AccessUser, Handler: boardHandler.Delete},
		{
			Method:  http.MethodPost,
			Path:    "/board/:id/answer",
			Access:  AccessAdmin,
			Handler: boardHandler.AddAnswer,
			Denied:  errors.ErrAnswerForbidden,
		},
		{Method: http.MethodGet, Path: "/me", Access: AccessOptional, Handler: userHandler.Me},
	}
}

// Register wires routes and middleware and returns the /api route table it
// installed.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	resolver auth.IdentityResolver,
	boardHandler *handler.BoardHandler,
	userHandler *handler.UserHandler,
) []Route {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	routes := Routes(boardHandler, userHandler)
	api := e.Group("/api", optionalJWT(jwtService), resolveIdentity(resolver))
	for _, r := range routes {
		api.Add(r.Method, r.Path, r.Handler, requireAccess(r.Access, r.Denied))
	}
	return routes
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"noticeboard/internal/model"
)

// ContextKeyUser is where the identity middleware stores the resolved user.
const ContextKeyUser = "currentUser"

// CurrentUser returns the resolved user of the request, or nil if anonymous.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(ContextKeyUser).(*model.User)
	return user
}

// SetCurrentUser stores the resolved user on the request.
func SetCurrentUser(c echo.Context, user *model.User) {
	if user != nil {
		c.Set(ContextKeyUser, user)
	}
}

// queryInt reads an integer query parameter, falling back to def when it is
// missing or malformed. Values too large for int saturate at its bounds.
func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) {
		return v
	}
	if err != nil {
		return def
	}
	return v
}

// pathID parses the :id path parameter. ok is false for anything that is not
// a positive integer.
func pathID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"noticeboard/internal/policy"
)

// UserHandler exposes the caller's session state.
type UserHandler struct{}

// NewUserHandler creates a handler layer.
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// SessionResponse describes who the caller is, as far as the board cares.
type SessionResponse struct {
	IsLoggedIn bool   `json:"is_logged_in"`
	IsAdmin    bool   `json:"is_admin"`
	Nickname   string `json:"nickname,omitempty"`
}

// Me godoc
// @Summary Current session
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user := CurrentUser(c)
	resp := SessionResponse{
		IsLoggedIn: user != nil,
		IsAdmin:    policy.IsAdmin(user),
	}
	if user != nil {
		resp.Nickname = user.Nickname
	}
	return c.JSON(http.StatusOK, resp)
}

package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/nimbusworks/user-directory/internal/core/ports"
)

// callerIdentity extracts the claims injected by the Auth middleware. When
// no middleware ran (public route) the returned identity is anonymous.
func callerIdentity(c echo.Context) ports.Identity {
	authed, _ := c.Get("authenticated").(bool)
	if !authed {
		return ports.Identity{}
	}
	userID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	return ports.Identity{UserID: userID, Role: role, Authenticated: true}
}

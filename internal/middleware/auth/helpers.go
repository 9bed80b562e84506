package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repository"
)

const userContextKey = "currentUser"

// Gate resolves the session identity to a full user record before a
// guarded handler runs.
type Gate struct {
	Users repository.UserRepo
}

func setUserContext(c echo.Context, user *models.User) {
	c.Set(userContextKey, user)
}

// CurrentUser returns the user resolved by RequireLogin/AdminOnly,
// or nil on anonymous routes.
func CurrentUser(c echo.Context) *models.User {
	if user, ok := c.Get(userContextKey).(*models.User); ok {
		return user
	}
	return nil
}

func IsAdmin(c echo.Context) bool {
	user := CurrentUser(c)
	return user != nil && user.IsAdmin
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/hash"
	"github.com/Skotchmaster/storefront/internal/middleware/auth"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repository"
	"github.com/Skotchmaster/storefront/internal/session"
)

type AuthHandler struct {
	Users    repository.UserRepo
	Producer *mykafka.Producer
}

type RegisterRequest struct {
	Username string `form:"username" validate:"required"`
	Email    string `form:"email"    validate:"required"`
	Password string `form:"password" validate:"required"`
}

type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", viewData(c, nil))
}

func (h *AuthHandler) Register(c echo.Context) error {
	sess := session.FromContext(c)

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		sess.AddFlash("Invalid registration data.", "error")
		return c.Redirect(http.StatusFound, "/register")
	}
	if err := c.Validate(&req); err != nil {
		sess.AddFlash("Username, email and password are required.", "error")
		return c.Redirect(http.StatusFound, "/register")
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to hash password")
	}

	// is_admin is never settable through this route
	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
	}
	if err := h.Users.Create(c.Request().Context(), &user); err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExist) {
			sess.AddFlash("Username already exists.", "error")
			return c.Redirect(http.StatusFound, "/register")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})

	sess.AddFlash("Registration successful. Please log in.", "success")
	return c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", viewData(c, nil))
}

func (h *AuthHandler) Login(c echo.Context) error {
	sess := session.FromContext(c)

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		sess.AddFlash("Invalid username or password", "error")
		return c.Render(http.StatusOK, "login.html", viewData(c, nil))
	}
	if err := c.Validate(&req); err != nil {
		sess.AddFlash("Invalid username or password", "error")
		return c.Render(http.StatusOK, "login.html", viewData(c, nil))
	}

	user, err := h.Users.FindByUsername(c.Request().Context(), req.Username)
	if err != nil || !hash.CheckPassword(user.PasswordHash, req.Password) {
		// the same message for an unknown user and a wrong password
		sess.AddFlash("Invalid username or password", "error")
		return c.Render(http.StatusOK, "login.html", viewData(c, nil))
	}

	sess.SetUserID(user.ID)

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":     "user_logged_in",
		"userID":   user.ID,
		"username": user.Username,
	})

	return c.Redirect(http.StatusFound, "/dashboard")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	sess := session.FromContext(c)
	sess.ClearUser()
	return c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) Dashboard(c echo.Context) error {
	if auth.IsAdmin(c) {
		return c.Redirect(http.StatusFound, "/admin/dashboard")
	}
	return c.Render(http.StatusOK, "user_dashboard.html", viewData(c, map[string]any{
		"user": auth.CurrentUser(c),
	}))
}

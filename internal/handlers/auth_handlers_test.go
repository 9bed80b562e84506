package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
)

func TestRegisterCreatesUser(t *testing.T) {
	env := newTestEnv(t)
	sess := env.newSession()

	form := url.Values{}
	form.Set("username", "alice")
	form.Set("email", "alice@example.com")
	form.Set("password", "Secret123!")

	rec, c := env.doForm(http.MethodPost, "/register", form, sess)
	require.NoError(t, env.A.Register(c))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))

	user, err := env.Users.FindByUsername(c.Request().Context(), "alice")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", user.Email)
	require.False(t, user.IsAdmin, "registration must never grant admin")
	require.NotEqual(t, "Secret123!", user.PasswordHash, "raw password must not be stored")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("alice", "first", false)
	sess := env.newSession()

	form := url.Values{}
	form.Set("username", "alice")
	form.Set("email", "second@example.com")
	form.Set("password", "other")

	rec, c := env.doForm(http.MethodPost, "/register", form, sess)
	require.NoError(t, env.A.Register(c))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/register", rec.Header().Get("Location"))

	flashes := sess.PopFlashes()
	require.Len(t, flashes, 1)
	require.Equal(t, "Username already exists.", flashes[0].Message)

	var count int64
	env.DB.Model(&models.User{}).Count(&count)
	require.EqualValues(t, 1, count, "no new row on duplicate registration")
}

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("alice", "Secret123!", false)
	sess := env.newSession()

	form := url.Values{}
	form.Set("username", "alice")
	form.Set("password", "Secret123!")

	rec, c := env.doForm(http.MethodPost, "/login", form, sess)
	require.NoError(t, env.A.Login(c))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/dashboard", rec.Header().Get("Location"))
	require.Equal(t, user.ID, sess.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("alice", "Secret123!", false)
	sess := env.newSession()

	form := url.Values{}
	form.Set("username", "alice")
	form.Set("password", "wrong")

	rec, c := env.doForm(http.MethodPost, "/login", form, sess)
	require.NoError(t, env.A.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Zero(t, sess.UserID)

	rendered := decodeRender(t, rec)
	require.Equal(t, "login.html", rendered.Template)
	flashes := rendered.Data["flashes"].([]any)
	require.Len(t, flashes, 1)
	require.Equal(t, "Invalid username or password", flashes[0].(map[string]any)["message"])
}

func TestLoginUnknownUsername(t *testing.T) {
	env := newTestEnv(t)
	sess := env.newSession()

	form := url.Values{}
	form.Set("username", "ghost")
	form.Set("password", "whatever")

	rec, c := env.doForm(http.MethodPost, "/login", form, sess)
	require.NoError(t, env.A.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Zero(t, sess.UserID)

	// the same generic message as for a wrong password
	flashes := decodeRender(t, rec).Data["flashes"].([]any)
	require.Len(t, flashes, 1)
	require.Equal(t, "Invalid username or password", flashes[0].(map[string]any)["message"])
}

func TestLogoutKeepsCart(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("alice", "Secret123!", false)
	sess := env.newSession()
	sess.SetUserID(user.ID)
	sess.Cart.Add("5")

	rec, c := env.doGet("/logout", sess)
	require.NoError(t, env.A.Logout(c))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))
	require.Zero(t, sess.UserID)
	require.Equal(t, 1, sess.Cart.Count())
}

func TestRequireLoginRedirectsAnonymous(t *testing.T) {
	env := newTestEnv(t)
	sess := env.newSession()

	rec, c := env.doGet("/dashboard", sess)
	require.NoError(t, env.Gate.RequireLogin(env.A.Dashboard)(c))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestDashboardRedirectsAdmin(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser("root", "Secret123!", true)
	sess := env.newSession()
	sess.SetUserID(admin.ID)

	rec, c := env.doGet("/dashboard", sess)
	require.NoError(t, env.Gate.RequireLogin(env.A.Dashboard)(c))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/admin/dashboard", rec.Header().Get("Location"))
}

func TestDashboardRendersForUser(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser("alice", "Secret123!", false)
	sess := env.newSession()
	sess.SetUserID(user.ID)

	rec, c := env.doGet("/dashboard", sess)
	require.NoError(t, env.Gate.RequireLogin(env.A.Dashboard)(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "user_dashboard.html", decodeRender(t, rec).Template)
}

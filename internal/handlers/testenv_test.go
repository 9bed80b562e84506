package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/hash"
	"github.com/Skotchmaster/storefront/internal/middleware/auth"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repository"
	"github.com/Skotchmaster/storefront/internal/session"
	"github.com/Skotchmaster/storefront/internal/upload"
)

// stubRenderer stands in for the template engine: it echoes the view
// name and the data bag as JSON so tests can inspect both.
type stubRenderer struct{}

func (stubRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return json.NewEncoder(w).Encode(map[string]any{"template": name, "data": data})
}

type renderEnvelope struct {
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}

func decodeRender(t *testing.T, rec *httptest.ResponseRecorder) renderEnvelope {
	t.Helper()
	var env renderEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

type testEnv struct {
	T         *testing.T
	E         *echo.Echo
	DB        *gorm.DB
	Users     *repository.Users
	Products  *repository.Products
	Gate      *auth.Gate
	A         *AuthHandler
	P         *ProductHandler
	C         *CartHandler
	S         *SearchHandler
	UploadDir string
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}))

	uploadDir := filepath.Join(t.TempDir(), "uploads")
	uploads, err := upload.NewDiskStore(uploadDir)
	require.NoError(t, err)

	e := echo.New()
	e.Validator = NewValidator()
	e.Renderer = stubRenderer{}

	users := repository.NewUsers(db)
	products := repository.NewProducts(db)

	return &testEnv{
		T:         t,
		E:         e,
		DB:        db,
		Users:     users,
		Products:  products,
		Gate:      &auth.Gate{Users: users},
		A:         &AuthHandler{Users: users},
		P:         &ProductHandler{Products: products, Uploads: uploads},
		C:         &CartHandler{Products: products},
		S:         &SearchHandler{Products: products},
		UploadDir: uploadDir,
	}
}

func (env *testEnv) newSession() *session.Session {
	return session.NewSession("test-session")
}

func (env *testEnv) createUser(username, password string, admin bool) *models.User {
	env.T.Helper()
	passwordHash, err := hash.HashPassword(password)
	require.NoError(env.T, err)
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: passwordHash,
		IsAdmin:      admin,
	}
	require.NoError(env.T, env.DB.Create(user).Error)
	return user
}

func (env *testEnv) createProduct(name string, price float64) *models.Product {
	env.T.Helper()
	prod := &models.Product{Name: name, Price: price, Description: "desc", Img: "default.jpg"}
	require.NoError(env.T, env.DB.Create(prod).Error)
	return prod
}

func (env *testEnv) doJSON(method, path string, body any, sess *session.Session) (*httptest.ResponseRecorder, echo.Context) {
	env.T.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(env.T, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	c.Set("session", sess)
	return rec, c
}

func (env *testEnv) doForm(method, path string, form url.Values, sess *session.Session) (*httptest.ResponseRecorder, echo.Context) {
	env.T.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	c.Set("session", sess)
	return rec, c
}

func (env *testEnv) doGet(path string, sess *session.Session) (*httptest.ResponseRecorder, echo.Context) {
	env.T.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	c.Set("session", sess)
	return rec, c
}

package session

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	CookieName = "session"
	contextKey = "session"
)

func CreateCookie(name, value, path string, expTime time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expTime,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// FromContext returns the request's session. The middleware always
// sets one, so handlers may rely on it being present.
func FromContext(c echo.Context) *Session {
	if sess, ok := c.Get(contextKey).(*Session); ok {
		return sess
	}
	return NewSession("")
}

// Middleware resolves the visitor's session from the signed cookie,
// creating a fresh one when the cookie is missing or does not verify,
// and persists it after the handler if it was touched.
func Middleware(store Store, secret []byte, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			var sess *Session
			fresh := true
			if cookie, err := c.Cookie(CookieName); err == nil {
				if sid, err := ParseID(cookie.Value, secret); err == nil {
					if loaded, err := store.Load(ctx, sid); err == nil {
						sess = loaded
						fresh = false
					}
				}
			}
			if sess == nil {
				sid, err := NewID()
				if err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "failed to create session")
				}
				sess = NewSession(sid)
			}

			c.Set(contextKey, sess)

			err := next(c)

			if sess.Dirty() {
				if saveErr := store.Save(ctx, sess); saveErr != nil {
					c.Logger().Errorf("session save error: %v", saveErr)
				} else if fresh {
					signed, signErr := SignID(sess.ID, secret)
					if signErr != nil {
						c.Logger().Errorf("session sign error: %v", signErr)
					} else {
						c.SetCookie(CreateCookie(CookieName, signed, "/", time.Now().Add(ttl)))
					}
				}
			}
			return err
		}
	}
}

// Package session keeps per-visitor server-side state: the signed-in
// user id, the shopping cart and pending flash messages. The browser
// only ever holds a signed opaque session id.
package session

import (
	"context"
	"errors"

	"github.com/Skotchmaster/storefront/internal/cart"
)

var ErrNoSession = errors.New("session not found")

type Flash struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

type Session struct {
	ID      string    `json:"-"`
	UserID  uint      `json:"user_id"`
	Cart    cart.Cart `json:"cart"`
	Flashes []Flash   `json:"flashes"`

	dirty bool
}

func NewSession(id string) *Session {
	return &Session{ID: id, Cart: cart.New()}
}

// Touch marks the session for persistence at the end of the request.
func (s *Session) Touch() {
	s.dirty = true
}

func (s *Session) Dirty() bool {
	return s.dirty
}

func (s *Session) SetUserID(id uint) {
	s.UserID = id
	s.dirty = true
}

func (s *Session) ClearUser() {
	s.UserID = 0
	s.dirty = true
}

func (s *Session) LoggedIn() bool {
	return s.UserID != 0
}

func (s *Session) AddFlash(message, category string) {
	s.Flashes = append(s.Flashes, Flash{Message: message, Category: category})
	s.dirty = true
}

// PopFlashes hands out pending flashes exactly once.
func (s *Session) PopFlashes() []Flash {
	if len(s.Flashes) == 0 {
		return nil
	}
	out := s.Flashes
	s.Flashes = nil
	s.dirty = true
	return out
}

// Store persists sessions keyed by id. Writes are last-writer-wins;
// concurrent requests in one session are not coordinated.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

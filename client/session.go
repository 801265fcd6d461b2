package client

import (
	"context"
	"sync"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
)

// TokenStore persists the session token between runs. MemoryStore is the
// default; callers with a keychain or config file plug in their own.
type TokenStore interface {
	Load() (string, bool)
	Save(token string) error
	Clear() error
}

type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func (s *MemoryStore) Load() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// Session tracks whether the user is logged in. Anonymous sessions can browse
// the market and keep local favorites but cannot check out.
type Session struct {
	store TokenStore
}

func NewSession(store TokenStore) *Session {
	if store == nil {
		store = &MemoryStore{}
	}
	return &Session{store: store}
}

func (s *Session) Token() (string, bool) {
	return s.store.Load()
}

func (s *Session) Authenticated() bool {
	_, ok := s.store.Load()
	return ok
}

func (s *Session) Logout() error {
	return s.store.Clear()
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Location string `json:"location,omitempty"`
}

// Login exchanges credentials for a token and stores it in the session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp loginResponse
	if err := c.post(ctx, "/api/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return err
	}
	return c.session.store.Save(resp.Token)
}

// Register creates an account and logs straight in.
func (c *Client) Register(ctx context.Context, name, email, password, location string) error {
	var user models.User
	if err := c.post(ctx, "/api/auth/register", registerRequest{
		Name: name, Email: email, Password: password, Location: location,
	}, &user); err != nil {
		return err
	}
	return c.Login(ctx, email, password)
}

// Profile fetches the authenticated user's profile view.
func (c *Client) Profile(ctx context.Context) (*models.ProfileView, error) {
	var view models.ProfileView
	if err := c.get(ctx, "/api/users/me", nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

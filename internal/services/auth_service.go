package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shopadmin/internal/api"
	"shopadmin/internal/repos"
	"shopadmin/internal/store"
)

var (
	ErrBadCreds  = errors.New("invalid email or password")
	ErrNotAdmin  = errors.New("account is not an administrator")
	ErrNoSession = errors.New("no active session")
)

const roleAdmin = "ADMIN"

// Admin is a signed-in session: its authed client and its own stores.
type Admin struct {
	SID       string
	Email     string
	Role      string
	ExpiresAt time.Time
	Client    *api.Client
	Stores    *store.Set
}

type tokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	API      *api.Client
	Sessions *repos.SessionRepo

	// OnEvent, when set, is subscribed to every new admin's stores.
	OnEvent func(a *Admin, ev store.Event)
	Now     func() time.Time
	// RefreshWithin is how close to expiry a token gets renewed on use.
	RefreshWithin time.Duration

	mu     sync.Mutex
	admins map[string]*Admin
}

func NewAuthService(c *api.Client, sessions *repos.SessionRepo) *AuthService {
	return &AuthService{API: c, Sessions: sessions, Now: time.Now, RefreshWithin: 10 * time.Minute, admins: map[string]*Admin{}}
}

// Login trades credentials for a backend token and binds it to sid.
func (s *AuthService) Login(ctx context.Context, sid, email, password string) (*Admin, error) {
	tok, err := s.API.Login(ctx, email, password)
	if err != nil {
		if api.IsValidation(err) {
			return nil, ErrBadCreds
		}
		return nil, err
	}
	sess, err := sessionFromToken(sid, tok)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(sess.Role, roleAdmin) {
		return nil, ErrNotAdmin
	}
	if err := s.Sessions.Bind(sess); err != nil {
		return nil, err
	}
	return s.remember(sess), nil
}

// sessionFromToken reads the expiry and role the backend put in the token.
// The signature belongs to the backend and is not checked here.
func sessionFromToken(sid, tok string) (repos.Session, error) {
	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil {
		return repos.Session{}, err
	}
	sess := repos.Session{ID: sid, Email: claims.Email, Role: claims.Role, Token: tok}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	} else {
		sess.ExpiresAt = time.Now().Add(24 * time.Hour)
	}
	if sess.Email == "" {
		sess.Email = claims.Subject
	}
	return sess, nil
}

func (s *AuthService) remember(sess repos.Session) *Admin {
	a := &Admin{
		SID:       sess.ID,
		Email:     sess.Email,
		Role:      sess.Role,
		ExpiresAt: sess.ExpiresAt,
		Client:    s.API.WithToken(sess.Token),
	}
	a.Stores = store.NewSet(a.Client)
	if s.OnEvent != nil {
		a.Stores.Subscribe(func(ev store.Event) { s.OnEvent(a, ev) })
	}
	s.mu.Lock()
	s.admins[sess.ID] = a
	s.mu.Unlock()
	return a
}

// Current returns the admin bound to sid, restoring it from the session
// table after a restart. Expired sessions are dropped.
func (s *AuthService) Current(sid string) (*Admin, error) {
	if sid == "" {
		return nil, ErrNoSession
	}
	now := s.Now()
	s.mu.Lock()
	a, ok := s.admins[sid]
	s.mu.Unlock()
	if ok {
		if now.Before(a.ExpiresAt) {
			return a, nil
		}
		_ = s.Logout(sid)
		return nil, ErrNoSession
	}

	sess, err := s.Sessions.Get(sid)
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, repos.ErrUnseal) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	if !now.Before(sess.ExpiresAt) {
		_ = s.Sessions.Unbind(sid)
		return nil, ErrNoSession
	}
	_ = s.Sessions.Touch(sid)
	return s.remember(*sess), nil
}

// NeedsRefresh reports whether a's token expires within RefreshWithin.
func (s *AuthService) NeedsRefresh(a *Admin) bool {
	return s.Now().Add(s.RefreshWithin).After(a.ExpiresAt)
}

// Refresh asks the backend for a fresh token and rebinds the session. The
// returned admin replaces a and starts with empty stores.
func (s *AuthService) Refresh(ctx context.Context, a *Admin) (*Admin, error) {
	tok, err := a.Client.Check(ctx)
	if err != nil {
		return nil, err
	}
	sess, err := sessionFromToken(a.SID, tok)
	if err != nil {
		return nil, err
	}
	if err := s.Sessions.Bind(sess); err != nil {
		return nil, err
	}
	return s.remember(sess), nil
}

// PurgeExpired drops expired admins from memory and their rows from the
// session table.
func (s *AuthService) PurgeExpired(now time.Time) (int64, error) {
	s.mu.Lock()
	for sid, a := range s.admins {
		if !now.Before(a.ExpiresAt) {
			delete(s.admins, sid)
		}
	}
	s.mu.Unlock()
	return s.Sessions.PurgeExpired(now)
}

func (s *AuthService) Logout(sid string) error {
	s.mu.Lock()
	delete(s.admins, sid)
	s.mu.Unlock()
	return s.Sessions.Unbind(sid)
}

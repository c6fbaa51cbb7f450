package service

import (
	"context"
	"fmt"
	"sync"

	model "overcooked-storefront/ordering/domain"
	"overcooked-storefront/ordering/store"
	"overcooked-storefront/storefront/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Claims are read from the backend token without verifying the signature;
// the backend verifies it on every call.
type Claims struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	jwt.RegisteredClaims
}

type SessionService struct {
	backend    Backend
	dispatcher Dispatcher
	logger     *zap.Logger

	mu    sync.RWMutex
	token string
}

func NewSessionService(backend Backend, dispatcher Dispatcher, logger *zap.Logger) *SessionService {
	return &SessionService{backend: backend, dispatcher: dispatcher, logger: logger}
}

func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *SessionService) setToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *SessionService) Login(ctx context.Context, role model.Role, creds domain.Credentials) (*store.State, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	resp, err := s.backend.Login(ctx, string(role), creds)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	session, err := SessionFromToken(resp.Token, role)
	if err != nil {
		return nil, err
	}
	if resp.User != nil {
		mergeProfile(&session, *resp.User)
	}

	next, err := outcome(s.dispatcher.Dispatch(store.Login{Session: session}))
	if err != nil {
		return next, err
	}
	s.setToken(resp.Token)
	s.logger.Info("user logged in", zap.String("user_id", session.UserID), zap.String("role", string(session.Role)))
	return next, nil
}

func (s *SessionService) Logout() *store.State {
	s.setToken("")
	return s.dispatcher.Dispatch(store.Logout{})
}

func (s *SessionService) UpdateProfile(ctx context.Context, profile domain.Profile) (*store.State, error) {
	current, ok := s.dispatcher.State().Session()
	if !ok {
		return nil, ErrNotLoggedIn
	}

	updated, err := s.backend.UpdateProfile(ctx, s.Token(), profile)
	if err != nil {
		if ctx.Err() == nil {
			s.dispatcher.Dispatch(store.SetError{Message: err.Error()})
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	next := current.Clone()
	mergeProfile(&next, updated)
	return outcome(s.dispatcher.Dispatch(store.SetSessionProfile{Session: next}))
}

// SessionFromToken builds a session from the token claims. A role claim in
// the token wins over the role the user logged in with.
func SessionFromToken(token string, role model.Role) (model.Session, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return model.Session{}, fmt.Errorf("parse token: %w", err)
	}
	if claims.Subject == "" {
		return model.Session{}, fmt.Errorf("parse token: missing subject")
	}
	if r := model.Role(claims.Role); r.Valid() {
		role = r
	}

	attrs := map[string]string{}
	for k, v := range map[string]string{"email": claims.Email, "phone": claims.Phone, "address": claims.Address} {
		if v != "" {
			attrs[k] = v
		}
	}
	return model.Session{
		UserID:      claims.Subject,
		DisplayName: claims.Name,
		Role:        role,
		Attributes:  attrs,
	}, nil
}

func mergeProfile(s *model.Session, p domain.Profile) {
	if p.Name != "" {
		s.DisplayName = p.Name
	}
	if s.Attributes == nil {
		s.Attributes = map[string]string{}
	}
	for k, v := range map[string]string{"email": p.Email, "phone": p.Phone, "address": p.Address} {
		if v != "" {
			s.Attributes[k] = v
		}
	}
}

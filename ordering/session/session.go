// Package session gates who is logged in. Logging out also empties the cart.
package session

import (
	"errors"
	"fmt"

	"overcooked-storefront/ordering/cart"
	"overcooked-storefront/ordering/domain"
)

var (
	ErrNoSession      = errors.New("no active session")
	ErrInvalidSession = errors.New("invalid session")
)

// Login replaces any current session with next.
func Login(next domain.Session) (*domain.Session, error) {
	if next.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidSession)
	}
	if !next.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidSession, next.Role)
	}
	s := next.Clone()
	return &s, nil
}

// Logout drops the session together with the cart it was building.
func Logout() (*domain.Session, cart.Cart) {
	return nil, cart.Empty()
}

// UpdateProfile replaces profile fields of the active session. The user id and
// role are kept from the current session.
func UpdateProfile(current *domain.Session, profile domain.Session) (*domain.Session, error) {
	if current == nil {
		return nil, ErrNoSession
	}
	s := profile.Clone()
	s.UserID = current.UserID
	s.Role = current.Role
	if s.DisplayName == "" {
		s.DisplayName = current.DisplayName
	}
	return &s, nil
}

// Package session holds the dashboard state machine: zero or one
// authenticated identity, its capability menu, and the dispatch of chosen
// capabilities. Profile and Logout are handled here; everything else is
// delegated to the identity's handler table.
package session

import (
	"errors"

	"github.com/google/uuid"

	"github.com/rubiescode/shule/core/user"
)

// State of a Session.
type State int

const (
	LoggedOut State = iota
	LoggedIn
)

var ErrNotAuthenticated = errors.New("no identity logged in")

type (
	// Profile is the read-only identity summary rendered by CapProfile.
	Profile struct {
		Name     string     `json:"name"`
		Username string     `json:"username"`
		Role     user.Role  `json:"role"`
		Stage    user.Stage `json:"stage,omitempty"`
	}

	Session struct {
		id       uuid.UUID
		identity user.Identity
		handlers user.HandlerSet
	}
)

func New(hs user.HandlerSet) *Session {
	return &Session{id: uuid.New(), handlers: hs}
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) State() State {
	if s.identity == nil {
		return LoggedOut
	}
	return LoggedIn
}

// Login transitions to LoggedIn with a fresh session ID.
func (s *Session) Login(ident user.Identity) {
	s.identity = ident
	s.id = uuid.New()
}

func (s *Session) Logout() { s.identity = nil }

func (s *Session) Identity() (user.Identity, bool) {
	return s.identity, s.identity != nil
}

// Actions returns the logged-in identity's capability menu; empty when
// logged out.
func (s *Session) Actions() []user.Capability {
	if s.identity == nil {
		return nil
	}
	return s.identity.Actions()
}

// Perform routes a chosen capability: CapProfile renders the identity
// summary, CapLogout transitions back to LoggedOut, anything else goes
// through the identity's dispatch table.
func (s *Session) Perform(cap user.Capability, payload interface{}) (interface{}, error) {
	if s.identity == nil {
		return nil, ErrNotAuthenticated
	}
	switch cap {
	case user.CapProfile:
		return s.Profile(), nil
	case user.CapLogout:
		s.Logout()
		return nil, nil
	default:
		return s.identity.Perform(cap, payload, s.handlers)
	}
}

func (s *Session) Profile() Profile {
	if s.identity == nil {
		return Profile{}
	}
	p := Profile{
		Name:     s.identity.Name(),
		Username: s.identity.Username(),
		Role:     s.identity.Role(),
	}
	if st, ok := s.identity.(interface{ Stage() user.Stage }); ok {
		p.Stage = st.Stage()
	}
	return p
}

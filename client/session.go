package client

import (
	"context"
	"sync"
)

// Session is the sign-in gate. It holds the current user handle and tells
// subscribers about every transition; a subscriber registered while signed
// out is still notified once with nil so it can render the anonymous state.
// The session is either authenticated or anonymous, never both.
type Session struct {
	gw *Gateway

	mu      sync.Mutex
	current *User
	subs    []func(*User)
}

// NewSession builds a Session over the given gateway. Sign-in installs the
// issued token on the gateway so procedure calls are authenticated.
func NewSession(gw *Gateway) *Session {
	return &Session{gw: gw}
}

// OnChange registers a subscriber. It is invoked immediately with the current
// state, then again on every transition.
func (s *Session) OnChange(fn func(*User)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	current := s.current
	s.mu.Unlock()

	fn(current)
}

// Current returns the signed-in user, or nil when anonymous.
func (s *Session) Current() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

type loginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// SignIn exchanges credentials for a session. On success the token is set on
// the gateway and subscribers are notified with the new user.
func (s *Session) SignIn(ctx context.Context, email, password string) (*User, error) {
	var res loginResult
	if err := s.gw.post(ctx, s.gw.BaseURL+"/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &res); err != nil {
		return nil, err
	}

	s.gw.SetToken(res.Token)
	user := res.User
	s.transition(&user)
	return &user, nil
}

// Resume restores a previously issued session, for callers that persist the
// token between runs. No server round trip is made; an expired token simply
// fails on the first call.
func (s *Session) Resume(token string, u *User) {
	s.gw.SetToken(token)
	s.transition(u)
}

// SignOut drops the session. Subscribers are notified with nil.
func (s *Session) SignOut() {
	s.gw.SetToken("")
	s.transition(nil)
}

func (s *Session) transition(u *User) {
	s.mu.Lock()
	s.current = u
	subs := make([]func(*User), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(u)
	}
}

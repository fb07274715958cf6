// Package session carries the authenticated state of one CLI run. It is
// created at login and passed explicitly to every operation that needs the
// current user; there is no package-level auth state.
package session

import "covid-booking/internal/data/entity"

type Session struct {
	User  *entity.User
	Token string
}

func New(user *entity.User, token string) *Session {
	return &Session{User: user, Token: token}
}

func (s *Session) UserID() string {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.ID
}

func (s *Session) LoggedIn() bool {
	return s != nil && s.User != nil && s.Token != ""
}

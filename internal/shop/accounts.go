package shop

import (
	"github.com/sirupsen/logrus"

	"github.com/harrylevesque/storefront/internal/auth"
	"github.com/harrylevesque/storefront/internal/models"
	"github.com/harrylevesque/storefront/internal/utils"
)

// Register signs up a new user. The isAdmin flag is ignored unless admin
// signup is allowed.
func (s *Service) Register(email, password string, isAdmin bool) (models.User, error) {
	if !s.allowAdminSignup {
		isAdmin = false
	}
	u, err := s.AddUser(email, password, isAdmin)
	if err != nil {
		return models.User{}, err
	}
	s.log.WithFields(logrus.Fields{"user_id": u.ID, "admin": u.IsAdmin}).Info("user registered")
	return u, nil
}

// AddUser creates a user without any gate. It backs Register and seeding.
func (s *Service) AddUser(email, password string, isAdmin bool) (models.User, error) {
	stored, err := s.passwords.Prepare(password)
	if err != nil {
		return models.User{}, utils.Wrap(utils.KindInternal, "Could not store password.", err)
	}
	return s.accounts.Create(email, stored, isAdmin)
}

// Login opens a new session for the matching user. On failure the session
// the caller presented, if any, is revoked.
func (s *Service) Login(presented auth.Token, email, password string) (auth.Session, error) {
	u, ok := s.accounts.FindByCredentials(email, password, s.passwords.Match)
	if !ok {
		s.sessions.Revoke(presented)
		s.log.WithField("email", email).Warn("login failed")
		return auth.Session{}, utils.ErrAuthFailure
	}
	return s.sessions.Start(u.ID), nil
}

func (s *Service) ListUsers(token auth.Token) ([]models.User, error) {
	if _, err := s.requireAdmin(token, msgUsersForbidden); err != nil {
		return nil, err
	}
	return s.accounts.List(), nil
}

func (s *Service) PromoteUser(token auth.Token, userID string) error {
	admin, err := s.requireAdmin(token, msgUsersForbidden)
	if err != nil {
		return err
	}
	if err := s.accounts.Promote(userID); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "by": admin.ID}).Info("user promoted to admin")
	return nil
}

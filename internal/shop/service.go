// Package shop implements the storefront operations: accounts, catalog, cart
// and orders, each gated on the caller's session.
package shop

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/harrylevesque/storefront/internal/auth"
	"github.com/harrylevesque/storefront/internal/models"
	"github.com/harrylevesque/storefront/internal/store"
	"github.com/harrylevesque/storefront/internal/utils"
)

const (
	msgUsersForbidden = "Unauthorized. Action forbidden"
	msgAccessDenied   = "Unauthorized. Access denied."
)

type Options struct {
	// HashPasswords stores bcrypt hashes instead of the submitted passwords.
	HashPasswords bool
	// AllowAdminSignup honours the isAdmin flag on public registration.
	AllowAdminSignup bool
	Logger           logrus.FieldLogger
}

type Service struct {
	accounts         *store.Accounts
	catalog          *store.Catalog
	orders           *store.Orders
	sessions         *auth.Sessions
	passwords        auth.Passwords
	allowAdminSignup bool
	log              logrus.FieldLogger
	now              func() time.Time
}

func New(opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = utils.NewNopLogger()
	}
	return &Service{
		accounts:         store.NewAccounts(),
		catalog:          store.NewCatalog(),
		orders:           store.NewOrders(),
		sessions:         auth.NewSessions(),
		passwords:        auth.Passwords{Hash: opts.HashPasswords},
		allowAdminSignup: opts.AllowAdminSignup,
		log:              log,
		now:              time.Now,
	}
}

// Identify resolves token to the user it is logged in as. Sessions whose user
// has vanished resolve to nobody.
func (s *Service) Identify(token auth.Token) auth.Identity {
	id := auth.Identity{Token: token}
	sess, ok := s.sessions.Lookup(token)
	if !ok {
		return id
	}
	u, err := s.accounts.Get(sess.UserID)
	if err != nil {
		return id
	}
	id.User = &u
	return id
}

func (s *Service) requireUser(token auth.Token, denied string) (models.User, error) {
	id := s.Identify(token)
	if !auth.IsAuthenticated(id) {
		return models.User{}, utils.New(utils.KindUnauthorized, denied)
	}
	return *id.User, nil
}

func (s *Service) requireAdmin(token auth.Token, denied string) (models.User, error) {
	id := s.Identify(token)
	if !auth.IsAdmin(id) {
		return models.User{}, utils.New(utils.KindUnauthorized, denied)
	}
	return *id.User, nil
}

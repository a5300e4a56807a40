// Package store holds the in-memory collections behind the storefront. Each
// store owns its records behind a lock and hands out copies.
package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/harrylevesque/storefront/internal/models"
	"github.com/harrylevesque/storefront/internal/utils"
)

var errUserNotFound = utils.NotFound("User not found")

// PasswordMatcher reports whether a plaintext password matches the stored one.
type PasswordMatcher func(stored, plain string) bool

type Accounts struct {
	mu      sync.RWMutex
	users   []*models.User
	byID    map[string]*models.User
	byEmail map[string]*models.User
}

func NewAccounts() *Accounts {
	return &Accounts{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]*models.User),
	}
}

// Create adds a user with a fresh id, an empty cart and no orders. It fails
// with a duplicate-email error if the address is already taken.
func (a *Accounts) Create(email, password string, isAdmin bool) (models.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.byEmail[email]; exists {
		return models.User{}, utils.ErrDuplicateEmail
	}
	u := &models.User{
		ID:       uuid.New().String(),
		Email:    email,
		Password: password,
		IsAdmin:  isAdmin,
		Cart:     []models.CartLine{},
		Orders:   []string{},
	}
	a.users = append(a.users, u)
	a.byID[u.ID] = u
	a.byEmail[u.Email] = u
	return u.Clone(), nil
}

func (a *Accounts) Get(id string) (models.User, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	u, ok := a.byID[id]
	if !ok {
		return models.User{}, errUserNotFound
	}
	return u.Clone(), nil
}

// FindByCredentials returns the user whose email matches exactly and whose
// stored password satisfies match.
func (a *Accounts) FindByCredentials(email, password string, match PasswordMatcher) (models.User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	u, ok := a.byEmail[email]
	if !ok || !match(u.Password, password) {
		return models.User{}, false
	}
	return u.Clone(), true
}

func (a *Accounts) List() []models.User {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]models.User, 0, len(a.users))
	for _, u := range a.users {
		out = append(out, u.Clone())
	}
	return out
}

func (a *Accounts) Count() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.users)
}

// Promote flags the user as admin. Promoting an admin is a no-op.
func (a *Accounts) Promote(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	u, ok := a.byID[id]
	if !ok {
		return errUserNotFound
	}
	u.IsAdmin = true
	return nil
}

// UpdateCart runs fn against the user's cart while holding the write lock.
// The cart is replaced with whatever fn leaves behind only if fn succeeds.
func (a *Accounts) UpdateCart(id string, fn func(cart []models.CartLine) ([]models.CartLine, error)) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	u, ok := a.byID[id]
	if !ok {
		return errUserNotFound
	}
	cart, err := fn(append([]models.CartLine{}, u.Cart...))
	if err != nil {
		return err
	}
	u.Cart = cart
	return nil
}

func (a *Accounts) AppendOrder(id, orderID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	u, ok := a.byID[id]
	if !ok {
		return errUserNotFound
	}
	u.Orders = append(u.Orders, orderID)
	return nil
}

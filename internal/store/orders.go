package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/harrylevesque/storefront/internal/models"
)

type Orders struct {
	mu     sync.RWMutex
	orders []models.Order
}

func NewOrders() *Orders {
	return &Orders{}
}

// Create stores o under a fresh id and returns the stored copy.
func (s *Orders) Create(o models.Order) models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	o.ID = uuid.New().String()
	o = o.Clone()
	s.orders = append(s.orders, o)
	return o.Clone()
}

func (s *Orders) List() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.Clone())
	}
	return out
}

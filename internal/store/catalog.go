package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/harrylevesque/storefront/internal/models"
	"github.com/harrylevesque/storefront/internal/utils"
)

var errProductNotFound = utils.NotFound("Product not found.")

type Catalog struct {
	mu       sync.RWMutex
	products []*models.Product
	byID     map[string]*models.Product
}

func NewCatalog() *Catalog {
	return &Catalog{byID: make(map[string]*models.Product)}
}

// Create stores p under a fresh id and returns the stored copy.
func (c *Catalog) Create(p models.Product) models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	p.ID = uuid.New().String()
	stored := p
	c.products = append(c.products, &stored)
	c.byID[stored.ID] = &stored
	return stored
}

func (c *Catalog) Get(id string) (models.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.byID[id]
	if !ok {
		return models.Product{}, errProductNotFound
	}
	return *p, nil
}

// Exists reports whether id names a product, active or archived.
func (c *Catalog) Exists(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.byID[id]
	return ok
}

func (c *Catalog) List() []models.Product {
	return c.filter(func(models.Product) bool { return true })
}

func (c *Catalog) ListActive() []models.Product {
	return c.filter(func(p models.Product) bool { return p.IsActive })
}

func (c *Catalog) filter(keep func(models.Product) bool) []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		if keep(*p) {
			out = append(out, *p)
		}
	}
	return out
}

// Update applies patch to the product. Name, description and price are only
// replaced by non-empty, non-zero values; IsActive is replaced whenever it is
// present.
func (c *Catalog) Update(id string, patch models.ProductPatch) (models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.byID[id]
	if !ok {
		return models.Product{}, errProductNotFound
	}
	if patch.Name != nil && *patch.Name != "" {
		p.Name = *patch.Name
	}
	if patch.Description != nil && *patch.Description != "" {
		p.Description = *patch.Description
	}
	if patch.Price != nil && !patch.Price.IsZero() {
		p.Price = *patch.Price
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	return *p, nil
}

func (c *Catalog) Archive(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.byID[id]
	if !ok {
		return errProductNotFound
	}
	p.IsActive = false
	return nil
}

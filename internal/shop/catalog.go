package shop

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/harrylevesque/storefront/internal/auth"
	"github.com/harrylevesque/storefront/internal/models"
)

type NewProduct struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	IsActive    *bool           `json:"isActive,omitempty"`
}

// CreateProduct adds a product to the catalog. New products are always
// active: an explicit isActive=false is overridden.
func (s *Service) CreateProduct(token auth.Token, in NewProduct) (models.Product, error) {
	admin, err := s.requireAdmin(token, msgAccessDenied)
	if err != nil {
		return models.Product{}, err
	}
	p := s.AddProduct(models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		IsActive:    true,
	})
	s.log.WithFields(logrus.Fields{"product_id": p.ID, "by": admin.ID}).Info("product created")
	return p, nil
}

// AddProduct stores p as given, without any gate. It backs CreateProduct and
// seeding.
func (s *Service) AddProduct(p models.Product) models.Product {
	return s.catalog.Create(p)
}

func (s *Service) ListProducts() []models.Product {
	return s.catalog.List()
}

func (s *Service) ListActiveProducts() []models.Product {
	return s.catalog.ListActive()
}

func (s *Service) GetProduct(id string) (models.Product, error) {
	return s.catalog.Get(id)
}

func (s *Service) UpdateProduct(token auth.Token, id string, patch models.ProductPatch) (models.Product, error) {
	admin, err := s.requireAdmin(token, msgAccessDenied)
	if err != nil {
		return models.Product{}, err
	}
	p, err := s.catalog.Update(id, patch)
	if err != nil {
		return models.Product{}, err
	}
	s.log.WithFields(logrus.Fields{"product_id": id, "by": admin.ID}).Info("product updated")
	return p, nil
}

func (s *Service) ArchiveProduct(token auth.Token, id string) error {
	admin, err := s.requireAdmin(token, msgAccessDenied)
	if err != nil {
		return err
	}
	if err := s.catalog.Archive(id); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"product_id": id, "by": admin.ID}).Info("product archived")
	return nil
}

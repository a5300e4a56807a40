package files

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/harrylevesque/storefront/internal/models"
)

// Seed is the boot-time content of the stores, read from a YAML file.
type Seed struct {
	Users    []SeedUser    `yaml:"users"`
	Products []SeedProduct `yaml:"products"`
}

type SeedUser struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	IsAdmin  bool   `yaml:"isAdmin"`
}

type SeedProduct struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Price is kept as text so that "19.99" parses without float rounding.
	Price    string `yaml:"price"`
	IsActive *bool  `yaml:"isActive"`
}

// Target receives seeded records.
type Target interface {
	AddUser(email, password string, isAdmin bool) (models.User, error)
	AddProduct(p models.Product) models.Product
}

// ReadSeedFile loads and validates the seed file at path.
func ReadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for i, u := range seed.Users {
		if u.Email == "" {
			return nil, fmt.Errorf("seed user %d: email is required", i)
		}
	}
	for i, p := range seed.Products {
		if _, err := p.price(); err != nil {
			return nil, fmt.Errorf("seed product %d (%s): %w", i, p.Name, err)
		}
	}
	return &seed, nil
}

func (p SeedProduct) price() (decimal.Decimal, error) {
	if p.Price == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(p.Price)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid price %q: %w", p.Price, err)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("negative price %s", d)
	}
	return d, nil
}

// Apply writes the seed into t. Products default to active.
func (s *Seed) Apply(t Target) (users, products int, err error) {
	for _, u := range s.Users {
		if _, err := t.AddUser(u.Email, u.Password, u.IsAdmin); err != nil {
			return users, products, fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		users++
	}
	for _, p := range s.Products {
		price, err := p.price()
		if err != nil {
			return users, products, err
		}
		active := true
		if p.IsActive != nil {
			active = *p.IsActive
		}
		t.AddProduct(models.Product{
			Name:        p.Name,
			Description: p.Description,
			Price:       price,
			IsActive:    active,
		})
		products++
	}
	return users, products, nil
}

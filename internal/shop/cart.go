package shop

import (
	"github.com/shopspring/decimal"

	"github.com/harrylevesque/storefront/internal/auth"
	"github.com/harrylevesque/storefront/internal/models"
	"github.com/harrylevesque/storefront/internal/utils"
)

var (
	errCartProductNotFound = utils.NotFound("Product not found.")
	errCartLineNotFound    = utils.NotFound("Cart item not found.")
)

// AddToCart puts quantity of productID in the caller's cart, merging into an
// existing line for the same product. Archived products can still be added.
func (s *Service) AddToCart(token auth.Token, productID string, quantity decimal.Decimal) error {
	u, err := s.requireUser(token, msgAccessDenied)
	if err != nil {
		return err
	}
	if !s.catalog.Exists(productID) {
		return errCartProductNotFound
	}
	return s.accounts.UpdateCart(u.ID, func(cart []models.CartLine) ([]models.CartLine, error) {
		for i := range cart {
			if cart[i].ProductID == productID {
				cart[i].Quantity = cart[i].Quantity.Add(quantity)
				return cart, nil
			}
		}
		return append(cart, models.CartLine{ProductID: productID, Quantity: quantity}), nil
	})
}

func (s *Service) GetCart(token auth.Token) ([]models.CartLine, error) {
	u, err := s.requireUser(token, msgAccessDenied)
	if err != nil {
		return nil, err
	}
	return u.Cart, nil
}

// SetCartQuantity overwrites the quantity of an existing line. Zero and
// negative quantities are stored as given, fractions too.
func (s *Service) SetCartQuantity(token auth.Token, productID string, quantity decimal.Decimal) error {
	u, err := s.requireUser(token, msgAccessDenied)
	if err != nil {
		return err
	}
	return s.accounts.UpdateCart(u.ID, func(cart []models.CartLine) ([]models.CartLine, error) {
		for i := range cart {
			if cart[i].ProductID == productID {
				cart[i].Quantity = quantity
				return cart, nil
			}
		}
		return nil, errCartLineNotFound
	})
}

func (s *Service) RemoveFromCart(token auth.Token, productID string) error {
	u, err := s.requireUser(token, msgAccessDenied)
	if err != nil {
		return err
	}
	return s.accounts.UpdateCart(u.ID, func(cart []models.CartLine) ([]models.CartLine, error) {
		for i := range cart {
			if cart[i].ProductID == productID {
				return append(cart[:i], cart[i+1:]...), nil
			}
		}
		return nil, errCartLineNotFound
	})
}

// CartSubtotal prices the caller's cart at current catalog prices, without
// rounding.
func (s *Service) CartSubtotal(token auth.Token) (string, error) {
	u, err := s.requireUser(token, msgAccessDenied)
	if err != nil {
		return "", err
	}
	return s.cartSum(u.Cart).String(), nil
}

// CartTotal prices the caller's cart like CartSubtotal, rendered with exactly
// two decimal places.
func (s *Service) CartTotal(token auth.Token) (string, error) {
	u, err := s.requireUser(token, "Unauthorized. Access Denied.")
	if err != nil {
		return "", err
	}
	return s.cartSum(u.Cart).StringFixed(2), nil
}

// cartSum adds up price*quantity for every line. Lines whose product no
// longer resolves are skipped; archived products still count.
func (s *Service) cartSum(cart []models.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range cart {
		p, err := s.catalog.Get(line.ProductID)
		if err != nil {
			continue
		}
		sum = sum.Add(p.Price.Mul(line.Quantity))
	}
	return sum
}

package shop

import (
	"bytes"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/harrylevesque/storefront/internal/auth"
	"github.com/harrylevesque/storefront/internal/models"
)

// OrderRequest is an order as submitted. Products, Quantity and PurchasedOn
// are not interpreted.
type OrderRequest struct {
	UserID      string          `json:"userId"`
	Products    json.RawMessage `json:"products"`
	Quantity    json.RawMessage `json:"quantity"`
	PurchasedOn json.RawMessage `json:"purchasedOn"`
}

// PlaceOrder records an order. The order keeps the userId it was submitted
// with, even an empty one, while its id always lands in the caller's own order
// list. A missing or null purchasedOn is set to the current time.
func (s *Service) PlaceOrder(token auth.Token, req OrderRequest) (models.Order, error) {
	u, err := s.requireUser(token, msgAccessDenied)
	if err != nil {
		return models.Order{}, err
	}
	o := models.Order{
		UserID:      req.UserID,
		Products:    req.Products,
		Quantity:    req.Quantity,
		PurchasedOn: req.PurchasedOn,
	}
	if isAbsent(o.PurchasedOn) {
		now, err := json.Marshal(s.now().UTC())
		if err != nil {
			return models.Order{}, err
		}
		o.PurchasedOn = now
	}

	o = s.orders.Create(o)
	if err := s.accounts.AppendOrder(u.ID, o.ID); err != nil {
		return models.Order{}, err
	}
	s.log.WithFields(logrus.Fields{
		"order_id": o.ID,
		"user_id":  o.UserID,
		"by":       u.ID,
	}).Info("order placed")
	return o, nil
}

func (s *Service) ListOrders(token auth.Token) ([]models.Order, error) {
	if _, err := s.requireAdmin(token, msgAccessDenied); err != nil {
		return nil, err
	}
	return s.orders.List(), nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

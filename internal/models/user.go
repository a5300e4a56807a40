package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CartLine is one product in a cart. Quantity is any number the caller sent,
// fractional and negative values included.
type CartLine struct {
	ProductID string          `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type cartLineJSON CartLine

func (l CartLine) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		cartLineJSON
		Quantity json.RawMessage `json:"quantity"`
	}{cartLineJSON(l), decimalNumber(l.Quantity)})
}

type User struct {
	ID       string     `json:"id"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	IsAdmin  bool       `json:"isAdmin"`
	Cart     []CartLine `json:"cart"`
	Orders   []string   `json:"orders"`
}

// Clone returns a copy of u whose cart and order slices are not shared.
func (u User) Clone() User {
	u.Cart = append([]CartLine{}, u.Cart...)
	u.Orders = append([]string{}, u.Orders...)
	return u
}

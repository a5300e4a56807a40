package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	IsActive    bool            `json:"isActive"`
}

type productJSON Product

// MarshalJSON writes the price as a JSON number rather than a quoted string.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		productJSON
		Price json.RawMessage `json:"price"`
	}{productJSON(p), decimalNumber(p.Price)})
}

// ProductPatch carries the optional fields of a product update. Nil means absent.
type ProductPatch struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	IsActive    *bool            `json:"isActive,omitempty"`
}

func decimalNumber(d decimal.Decimal) json.RawMessage {
	return json.RawMessage(d.String())
}

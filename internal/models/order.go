package models

import "encoding/json"

// Order is a placed order. Products, Quantity and PurchasedOn are kept exactly
// as the caller sent them.
type Order struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Products    json.RawMessage `json:"products,omitempty"`
	Quantity    json.RawMessage `json:"quantity,omitempty"`
	PurchasedOn json.RawMessage `json:"purchasedOn,omitempty"`
}

// Clone returns a copy of o that does not share any raw payload.
func (o Order) Clone() Order {
	o.Products = cloneRaw(o.Products)
	o.Quantity = cloneRaw(o.Quantity)
	o.PurchasedOn = cloneRaw(o.PurchasedOn)
	return o
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	return append(json.RawMessage{}, raw...)
}

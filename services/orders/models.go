package orders

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Order is one inbound order submission. Nothing here outlives the request.
type Order struct {
	Items    []LineItem    `json:"items"`
	Customer *CustomerInfo `json:"customer,omitempty"`
}

type LineItem struct {
	Name        string   `json:"name"`
	Quantity    *float64 `json:"quantity,omitempty"`
	Price       float64  `json:"price"`
	Description string   `json:"description,omitempty"`
}

type CustomerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Qty returns the item quantity, defaulting to 1 when the payload omits it.
func (li LineItem) Qty() float64 {
	if li.Quantity == nil {
		return 1
	}
	return *li.Quantity
}

// Total is the payment amount: Σ(price × quantity) over all items.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromFloat(it.Qty())))
	}
	return total
}

// orderPayload keeps items raw so "missing", "not a list" and "empty" are
// distinguishable from a body that is not JSON at all.
type orderPayload struct {
	Items    json.RawMessage `json:"items"`
	Customer *CustomerInfo   `json:"customer"`
}

// ParseOrder decodes an order submission body. The transport may flag the
// body as plain text (sendBeacon clients cannot set a content type), so the
// caller always hands the raw bytes here and both paths parse them as JSON.
func ParseOrder(body []byte) (*Order, error) {
	var payload orderPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		// A body that is valid JSON but not an object (array, scalar) parsed
		// fine; it is an order without items, not a parse failure.
		if json.Valid(body) {
			return nil, ErrInvalidOrder
		}
		return nil, ErrInvalidJSON
	}
	items, ok := payload.itemsList()
	if !ok || len(items) == 0 {
		return nil, ErrInvalidOrder
	}
	for _, it := range items {
		if it.Price <= 0 {
			return nil, ErrInvalidOrder
		}
	}
	return &Order{Items: items, Customer: payload.Customer}, nil
}

func (p orderPayload) itemsList() ([]LineItem, bool) {
	raw := bytes.TrimSpace(p.Items)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var items []LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

package orders

import (
	"testing"
)

func TestParseOrder(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"Valid", `{"items":[{"name":"Tea","price":5}]}`, nil},
		{"ValidWithCustomer", `{"items":[{"name":"Tea","price":5}],"customer":{"name":"Ann","phone":"123"}}`, nil},
		{"NotJSON", `hello`, ErrInvalidJSON},
		{"Truncated", `{"items": [`, ErrInvalidJSON},
		{"TopLevelArray", `[1,2,3]`, ErrInvalidOrder},
		{"TopLevelString", `"hello"`, ErrInvalidOrder},
		{"TopLevelNumber", `42`, ErrInvalidOrder},
		{"MissingItems", `{}`, ErrInvalidOrder},
		{"NullItems", `{"items":null}`, ErrInvalidOrder},
		{"ItemsNotAList", `{"items":{"name":"Tea"}}`, ErrInvalidOrder},
		{"EmptyItems", `{"items":[]}`, ErrInvalidOrder},
		{"ZeroPrice", `{"items":[{"name":"Tea","price":0}]}`, ErrInvalidOrder},
		{"NegativePrice", `{"items":[{"name":"Tea","price":-1}]}`, ErrInvalidOrder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOrder([]byte(tt.body))
			if err != tt.wantErr {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseOrderKeepsCustomer(t *testing.T) {
	order, err := ParseOrder([]byte(`{"items":[{"name":"Tea","price":5}],"customer":{"name":"Ann","phone":"123"}}`))
	if err != nil {
		t.Fatal(err)
	}
	if order.Customer == nil || order.Customer.Name != "Ann" || order.Customer.Phone != "123" {
		t.Errorf("customer = %+v", order.Customer)
	}
}

func TestLineItemQtyDefault(t *testing.T) {
	two := 2.0
	tests := []struct {
		name string
		item LineItem
		want float64
	}{
		{"Absent", LineItem{Name: "Tea", Price: 5}, 1},
		{"Present", LineItem{Name: "Tea", Price: 5, Quantity: &two}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.Qty(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrderTotal(t *testing.T) {
	two := 2.0
	order := &Order{Items: []LineItem{
		{Name: "Tea", Price: 5, Quantity: &two},
		{Name: "Roti", Price: 3},
		{Name: "Kopi", Price: 2.5, Quantity: &two},
	}}
	got, _ := order.Total().Float64()
	if got != 18 {
		t.Errorf("total = %v, want 18", got)
	}
}

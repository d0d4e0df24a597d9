package akaunting

import (
	"bytes"
	"encoding/json"
)

// ID is an identifier of a record in the accounting system. The API returns
// numeric ids while configuration carries them as strings, so both JSON
// encodings are accepted.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

// Empty reports whether the identifier is unusable ("falsy" per the API:
// absent, empty string or zero).
func (id ID) Empty() bool {
	return id == "" || id == "0"
}

// ContactRepresentation is a customer record as returned by the API.
type ContactRepresentation struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Phone string `json:"phone"`
}

// ContactCreateModel is the body of a contact creation request.
type ContactCreateModel struct {
	Type         string `json:"type"`
	Name         string `json:"name"`
	Phone        string `json:"phone,omitempty"`
	CurrencyCode string `json:"currency_code"`
	Enabled      int    `json:"enabled"`
}

type contactEnvelope struct {
	Data ContactRepresentation `json:"data"`
}

type contactListEnvelope struct {
	Data []ContactRepresentation `json:"data"`
}

// DocumentItemModel is one invoice line.
type DocumentItemModel struct {
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
	Description string  `json:"description,omitempty"`
}

// DocumentCreateModel is the body of a document (invoice) creation request.
type DocumentCreateModel struct {
	Type           string              `json:"type"`
	DocumentNumber string              `json:"document_number"`
	Status         string              `json:"status"`
	IssuedAt       string              `json:"issued_at"`
	DueAt          string              `json:"due_at"`
	ContactID      ID                  `json:"contact_id"`
	CurrencyCode   string              `json:"currency_code"`
	CurrencyRate   float64             `json:"currency_rate"`
	CategoryID     int64               `json:"category_id"`
	Items          []DocumentItemModel `json:"items"`
	Notes          string              `json:"notes,omitempty"`
}

// DocumentRepresentation carries the fields this service reads back from a
// created document; the raw body is kept alongside for the caller.
type DocumentRepresentation struct {
	ID             ID     `json:"id"`
	DocumentNumber string `json:"document_number"`
	Status         string `json:"status"`
}

type documentEnvelope struct {
	Data DocumentRepresentation `json:"data"`
}

// TransactionCreateModel is the body of a payment recording request against
// a document.
type TransactionCreateModel struct {
	Type          string  `json:"type"`
	PaidAt        string  `json:"paid_at"`
	Amount        float64 `json:"amount"`
	AccountID     ID      `json:"account_id"`
	CurrencyCode  string  `json:"currency_code"`
	CurrencyRate  float64 `json:"currency_rate"`
	PaymentMethod string  `json:"payment_method"`
	Reference     string  `json:"reference,omitempty"`
}

type apiErrorBody struct {
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
}

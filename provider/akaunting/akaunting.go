// Package akaunting is a client for the Akaunting-compatible accounting REST
// API: contact search/create, document (invoice) creation and document
// transaction (payment) creation. Every call is scoped to a company and
// authenticated with the configured credential pair.
package akaunting

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// CurrencyMYR is the fixed currency code used on all created records.
	CurrencyMYR = "MYR"

	// DateFormat is the date layout the API expects.
	DateFormat = "2006-01-02"

	contactTypeCustomer = "customer"
)

// Config carries the resolved credentials and scoping for the API.
type Config struct {
	BaseURL   string // normalized, without the /api suffix
	Email     string
	Password  string
	APIKey    string
	CompanyID string
}

func NewProvider(cfg Config) *Provider {
	return &Provider{
		cfg: cfg,
		c:   newClient(cfg.Email, cfg.Password, cfg.APIKey),
		l:   zap.L().Named("akaunting_provider"),
	}
}

type Provider struct {
	cfg Config
	c   *client
	l   *zap.Logger
}

// RequestError is a non-2xx reply from the API, carrying the status and the
// message/errors detail extracted from the body for diagnostics.
type RequestError struct {
	Status int
	Detail string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("akaunting: status %d: %s", e.Status, e.Detail)
}

func newRequestError(status int, body []byte) *RequestError {
	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		detail := parsed.Message
		if len(parsed.Errors) > 0 && string(parsed.Errors) != "null" {
			detail += ": " + string(parsed.Errors)
		}
		return &RequestError{Status: status, Detail: detail}
	}
	return &RequestError{Status: status, Detail: string(body)}
}

func (p *Provider) apiURL(path string, q url.Values) (string, error) {
	_url, err := url.Parse(p.cfg.BaseURL + "/api" + path)
	if err != nil {
		return "", errors.Wrap(err, "failed parse url")
	}
	if q == nil {
		q = url.Values{}
	}
	q.Set("company_id", p.cfg.CompanyID)
	_url.RawQuery = q.Encode()
	return _url.String(), nil
}

// SearchContact looks up a customer-type contact by exact name. A miss —
// including a non-2xx search reply — is (nil, nil); only transport and
// malformed-body failures are errors.
func (p *Provider) SearchContact(name string) (*ContactRepresentation, error) {
	q := url.Values{}
	q.Set("search", "name:"+name)
	q.Set("type", contactTypeCustomer)
	q.Set("limit", "1")
	link, err := p.apiURL("/contacts", q)
	if err != nil {
		return nil, err
	}
	status, b, err := p.c.do("GET", link, nil)
	if err != nil {
		p.l.Warn(
			"search contact",
			zap.String("url", link),
			zap.Error(err),
		)
		return nil, errors.Wrap(err, "failed http get request")
	}
	if !is2xx(status) {
		p.l.Debug(
			"search contact miss",
			zap.String("name", name),
			zap.Int("status", status),
		)
		return nil, nil
	}
	out := &contactListEnvelope{}
	if err := json.Unmarshal(b, out); err != nil {
		return nil, errors.Wrap(err, "failed unmarshal")
	}
	if len(out.Data) == 0 {
		return nil, nil
	}
	return &out.Data[0], nil
}

// CreateContact creates a customer-type contact and returns its record.
func (p *Provider) CreateContact(name, phone string) (*ContactRepresentation, error) {
	link, err := p.apiURL("/contacts", nil)
	if err != nil {
		return nil, err
	}
	in := &ContactCreateModel{
		Type:         contactTypeCustomer,
		Name:         name,
		Phone:        phone,
		CurrencyCode: CurrencyMYR,
		Enabled:      1,
	}
	out := &contactEnvelope{}
	if _, err := p.c.POSTAndUnmarshalJson(link, in, out); err != nil {
		p.l.Warn(
			"create contact",
			zap.String("url", link),
			zap.Any("in", in),
			zap.Error(err),
		)
		return nil, errors.Wrap(err, "failed http post request")
	}
	return &out.Data, nil
}

// CreateDocument submits an invoice document. On 2xx it returns the raw
// response body and the created document id; a 2xx body that cannot be
// parsed still counts as success (the document exists upstream) with an
// empty id. Non-2xx replies come back as a RequestError.
func (p *Provider) CreateDocument(doc *DocumentCreateModel) (json.RawMessage, ID, error) {
	link, err := p.apiURL("/documents", nil)
	if err != nil {
		return nil, "", err
	}
	status, b, err := p.c.do("POST", link, doc)
	if err != nil {
		p.l.Warn(
			"create document",
			zap.String("url", link),
			zap.Error(err),
		)
		return nil, "", errors.Wrap(err, "failed http post request")
	}
	if !is2xx(status) {
		reqErr := newRequestError(status, b)
		p.l.Warn(
			"create document rejected",
			zap.String("url", link),
			zap.Int("status", status),
			zap.String("detail", reqErr.Detail),
		)
		return nil, "", reqErr
	}
	raw := rawJSON(b)
	out := &documentEnvelope{}
	if err := json.Unmarshal(b, out); err != nil {
		p.l.Warn(
			"create document: unparsable success body, returning opaque result",
			zap.String("url", link),
			zap.Error(err),
		)
		return raw, "", nil
	}
	return raw, out.Data.ID, nil
}

// CreateDocumentTransaction records a payment against a created document.
func (p *Provider) CreateDocumentTransaction(docID ID, tx *TransactionCreateModel) error {
	link, err := p.apiURL("/documents/"+string(docID)+"/transactions", nil)
	if err != nil {
		return err
	}
	status, b, err := p.c.do("POST", link, tx)
	if err != nil {
		return errors.Wrap(err, "failed http post request")
	}
	if !is2xx(status) {
		return newRequestError(status, b)
	}
	return nil
}

// NewDocumentNumber generates an invoice number from the current time.
// Uniqueness under concurrent requests is not guaranteed.
func NewDocumentNumber(now time.Time) string {
	return fmt.Sprintf("INV-%d", now.UnixMilli())
}

// NewPaymentReference generates a payment reference from the current time.
func NewPaymentReference(now time.Time) string {
	return fmt.Sprintf("PAY-%d", now.UnixMilli())
}

// rawJSON keeps a 2xx body embeddable in the caller's JSON response even
// when the upstream sent something that is not valid JSON.
func rawJSON(b []byte) json.RawMessage {
	if json.Valid(b) {
		return json.RawMessage(b)
	}
	quoted, err := json.Marshal(string(b))
	if err != nil {
		return json.RawMessage("null")
	}
	return json.RawMessage(quoted)
}

// Package orders turns an inbound web-shop order into a draft invoice in the
// external accounting system, with a best-effort payment record against it.
// The chain is strictly sequential: contact resolution gates invoice
// submission, which gates payment recording.
package orders

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"orderbridge/config"
	"orderbridge/provider/akaunting"
)

func NewService(cfg *config.Config) *Service {
	return &Service{
		cfg: cfg,
		p: akaunting.NewProvider(akaunting.Config{
			BaseURL:   cfg.BaseURL,
			Email:     cfg.Email,
			Password:  cfg.Password,
			APIKey:    cfg.APIKey,
			CompanyID: cfg.CompanyID,
		}),
		l: zap.L().Named("orders_service"),
	}
}

type Service struct {
	cfg *config.Config
	p   *akaunting.Provider
	l   *zap.Logger
}

// Submit runs the full intake chain and returns the raw invoice response
// from the accounting API. Any error returned here is terminal for the
// order; payment recording failures are absorbed before this returns.
func (s *Service) Submit(order *Order) (json.RawMessage, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	contactID, err := s.resolveContact(order.Customer)
	if err != nil {
		return nil, err
	}
	if contactID.Empty() {
		return nil, ErrMissingContact
	}

	raw, docID, err := s.p.CreateDocument(s.buildInvoice(contactID, order))
	if err != nil {
		return nil, errors.Wrap(err, "failed create invoice")
	}

	if !docID.Empty() {
		s.recordPayment(docID, order)
	}
	return raw, nil
}

// resolveContact implements search-or-create. Without a customer name the
// configured default contact is used directly. A failed resolution sequence
// falls back to the default contact when one is configured; otherwise it is
// terminal for the order.
func (s *Service) resolveContact(customer *CustomerInfo) (akaunting.ID, error) {
	if customer == nil || customer.Name == "" {
		return akaunting.ID(s.cfg.DefaultContactID), nil
	}
	id, err := s.findOrCreateContact(customer)
	if err != nil {
		if s.cfg.DefaultContactID != "" {
			s.l.Warn(
				"failed resolve contact, using default",
				zap.String("name", customer.Name),
				zap.Error(err),
			)
			return akaunting.ID(s.cfg.DefaultContactID), nil
		}
		return "", errors.Wrap(err, "failed resolve contact")
	}
	return id, nil
}

func (s *Service) findOrCreateContact(customer *CustomerInfo) (akaunting.ID, error) {
	found, err := s.p.SearchContact(customer.Name)
	if err != nil {
		return "", err
	}
	if found != nil {
		return found.ID, nil
	}
	created, err := s.p.CreateContact(customer.Name, customer.Phone)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

func (s *Service) buildInvoice(contactID akaunting.ID, order *Order) *akaunting.DocumentCreateModel {
	now := time.Now()
	items := make([]akaunting.DocumentItemModel, 0, len(order.Items))
	for _, it := range order.Items {
		desc := it.Description
		if desc == "" {
			desc = it.Name
		}
		lineTotal, _ := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromFloat(it.Qty())).Float64()
		items = append(items, akaunting.DocumentItemModel{
			Name:        it.Name,
			Quantity:    it.Qty(),
			Price:       it.Price,
			Total:       lineTotal,
			Description: desc,
		})
	}
	name, phone := "N/A", "N/A"
	if order.Customer != nil {
		if order.Customer.Name != "" {
			name = order.Customer.Name
		}
		if order.Customer.Phone != "" {
			phone = order.Customer.Phone
		}
	}
	return &akaunting.DocumentCreateModel{
		Type:           "invoice",
		DocumentNumber: akaunting.NewDocumentNumber(now),
		Status:         "draft",
		IssuedAt:       now.Format(akaunting.DateFormat),
		DueAt:          now.AddDate(0, 0, 30).Format(akaunting.DateFormat),
		ContactID:      contactID,
		CurrencyCode:   akaunting.CurrencyMYR,
		CurrencyRate:   1,
		CategoryID:     1,
		Items:          items,
		Notes:          fmt.Sprintf("Order via WhatsApp Web. Customer: %s, Phone: %s", name, phone),
	}
}

// recordPayment is best-effort: the invoice already exists upstream, so a
// failure here is logged and swallowed, never returned.
func (s *Service) recordPayment(docID akaunting.ID, order *Order) {
	total, _ := order.Total().Float64()
	tx := &akaunting.TransactionCreateModel{
		Type:          "income",
		PaidAt:        time.Now().Format(akaunting.DateFormat),
		Amount:        total,
		AccountID:     akaunting.ID(s.cfg.CashAccountID),
		CurrencyCode:  akaunting.CurrencyMYR,
		CurrencyRate:  1,
		PaymentMethod: "cash",
		Reference:     akaunting.NewPaymentReference(time.Now()),
	}
	if err := s.p.CreateDocumentTransaction(docID, tx); err != nil {
		paymentsFailed.Inc()
		s.l.Warn(
			"failed record payment, invoice kept as-is",
			zap.String("document_id", string(docID)),
			zap.Float64("amount", total),
			zap.Error(err),
		)
	}
}

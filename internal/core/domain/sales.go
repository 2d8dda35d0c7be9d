package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesType identifies the kind of product sold. The set is closed.
type SalesType string

const (
	Flight SalesType = "FLIGHT"
	Hotel  SalesType = "HOTEL"
)

// KnownSalesType reports whether t is one of the supported sales types.
func KnownSalesType(t SalesType) bool {
	return t == Flight || t == Hotel
}

// SalesTransaction is a sale recorded at the front desk. It stays pending
// (SyncedToAccounting == false) until the sync engine posts a matching
// journal entry, and is never deleted by the bridge.
type SalesTransaction struct {
	ID                 string          `json:"id"` // Assigned at creation, immutable
	Date               time.Time       `json:"date"`
	CustomerName       string          `json:"customerName"`
	CustomerEmail      string          `json:"customerEmail"`
	Type               SalesType       `json:"type"`
	ProductID          string          `json:"productID"`   // External catalog reference, not validated here
	ProductName        string          `json:"productName"`
	Quantity           int             `json:"quantity"`    // Positive
	UnitPrice          decimal.Decimal `json:"unitPrice"`   // Non-negative
	TotalAmount        decimal.Decimal `json:"totalAmount"` // quantity * unitPrice, enforced by the caller
	PaymentMethod      string          `json:"paymentMethod"`
	Reference          string          `json:"reference"`
	Notes              string          `json:"notes"`
	SyncedToAccounting bool            `json:"syncedToAccounting"`
	AuditFields
}

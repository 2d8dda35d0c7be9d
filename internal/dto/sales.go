package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
)

// RecordSaleRequest defines the data needed to record a sales transaction.
// ID is optional; when provided, re-recording the same ID replaces the
// earlier entry instead of duplicating it.
type RecordSaleRequest struct {
	ID            string           `json:"id"`
	Date          time.Time        `json:"date" binding:"required"`
	CustomerName  string           `json:"customerName" binding:"required"`
	CustomerEmail string           `json:"customerEmail" binding:"omitempty,email"`
	Type          domain.SalesType `json:"type" binding:"required,oneof=FLIGHT HOTEL"`
	ProductID     string           `json:"productID" binding:"required"`
	ProductName   string           `json:"productName" binding:"required"`
	Quantity      int              `json:"quantity" binding:"required,gt=0"`
	UnitPrice     decimal.Decimal  `json:"unitPrice" binding:"required"`
	PaymentMethod string           `json:"paymentMethod"`
	Reference     string           `json:"reference"`
	Notes         string           `json:"notes"`
}

// SalesTransactionResponse defines the data returned for a sales transaction.
type SalesTransactionResponse struct {
	ID                 string           `json:"id"`
	Date               time.Time        `json:"date"`
	CustomerName       string           `json:"customerName"`
	CustomerEmail      string           `json:"customerEmail,omitempty"`
	Type               domain.SalesType `json:"type"`
	ProductID          string           `json:"productID"`
	ProductName        string           `json:"productName"`
	Quantity           int              `json:"quantity"`
	UnitPrice          decimal.Decimal  `json:"unitPrice"`
	TotalAmount        decimal.Decimal  `json:"totalAmount"`
	PaymentMethod      string           `json:"paymentMethod,omitempty"`
	Reference          string           `json:"reference,omitempty"`
	Notes              string           `json:"notes,omitempty"`
	SyncedToAccounting bool             `json:"syncedToAccounting"`
	CreatedAt          time.Time        `json:"createdAt"`
}

// ListSalesParams defines query parameters for listing sales transactions.
type ListSalesParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListSalesResponse wraps the list of sales transactions.
type ListSalesResponse struct {
	Sales []SalesTransactionResponse `json:"sales"`
}

// ToSalesTransactionResponse converts a domain.SalesTransaction to its DTO.
func ToSalesTransactionResponse(txn *domain.SalesTransaction) SalesTransactionResponse {
	return SalesTransactionResponse{
		ID:                 txn.ID,
		Date:               txn.Date,
		CustomerName:       txn.CustomerName,
		CustomerEmail:      txn.CustomerEmail,
		Type:               txn.Type,
		ProductID:          txn.ProductID,
		ProductName:        txn.ProductName,
		Quantity:           txn.Quantity,
		UnitPrice:          txn.UnitPrice,
		TotalAmount:        txn.TotalAmount,
		PaymentMethod:      txn.PaymentMethod,
		Reference:          txn.Reference,
		Notes:              txn.Notes,
		SyncedToAccounting: txn.SyncedToAccounting,
		CreatedAt:          txn.CreatedAt,
	}
}

// ToListSalesResponse converts a slice of domain.SalesTransaction to the list DTO.
func ToListSalesResponse(txns []domain.SalesTransaction) ListSalesResponse {
	res := make([]SalesTransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToSalesTransactionResponse(&txns[i])
	}
	return ListSalesResponse{Sales: res}
}

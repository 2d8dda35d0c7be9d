package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
)

// CreateJournalLineRequest defines one line of a journal posting request.
// Lines reference accounts by ledger code, the identifier used everywhere
// outside the database.
type CreateJournalLineRequest struct {
	AccountCode string           `json:"accountCode" binding:"required,accountcode"`
	Amount      decimal.Decimal  `json:"amount" binding:"required"`
	EntryType   domain.EntryType `json:"entryType" binding:"required,oneof=DEBIT CREDIT"`
	Notes       string           `json:"notes"`
}

// CreateJournalRequest defines the data needed to post a journal entry.
type CreateJournalRequest struct {
	Date        time.Time                  `json:"date" binding:"required"`
	Description string                     `json:"description" binding:"required"`
	Reference   string                     `json:"reference"`
	Lines       []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID      string           `json:"lineID"`
	AccountID   string           `json:"accountID"`
	AccountCode string           `json:"accountCode"`
	Amount      decimal.Decimal  `json:"amount"`
	EntryType   domain.EntryType `json:"entryType"`
	Notes       string           `json:"notes,omitempty"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID   string                `json:"journalID"`
	Date        time.Time             `json:"date"`
	Description string                `json:"description"`
	Reference   string                `json:"reference,omitempty"`
	Status      domain.JournalStatus  `json:"status"`
	Amount      decimal.Decimal       `json:"amount"`
	Lines       []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
	CreatedBy   string                `json:"createdBy"`
}

// ListJournalsParams defines query parameters for listing journals.
type ListJournalsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListJournalsResponse wraps the list of journals.
type ListJournalsResponse struct {
	Journals []JournalResponse `json:"journals"`
}

// ToJournalLineResponse converts a domain.JournalLine to its DTO.
func ToJournalLineResponse(line *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:      line.LineID,
		AccountID:   line.AccountID,
		AccountCode: line.AccountCode,
		Amount:      line.Amount,
		EntryType:   line.EntryType,
		Notes:       line.Notes,
	}
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:   j.JournalID,
		Date:        j.JournalDate,
		Description: j.Description,
		Reference:   j.Reference,
		Status:      j.Status,
		Amount:      j.Amount,
		CreatedAt:   j.CreatedAt,
		CreatedBy:   j.CreatedBy,
	}
	if len(j.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(j.Lines))
		for i := range j.Lines {
			resp.Lines[i] = ToJournalLineResponse(&j.Lines[i])
		}
	}
	return resp
}

// ToListJournalsResponse converts a slice of domain.Journal to the list DTO.
func ToListJournalsResponse(journals []domain.Journal) ListJournalsResponse {
	res := make([]JournalResponse, len(journals))
	for i := range journals {
		res[i] = ToJournalResponse(&journals[i])
	}
	return ListJournalsResponse{Journals: res}
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// EntryType indicates whether a journal line is a debit or a credit.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// Journal represents a single, balanced financial event composed of journal lines.
type Journal struct {
	JournalID   string        `json:"journalID"`   // Primary key (UUID)
	JournalDate time.Time     `json:"journalDate"` // Date the event occurred
	Description string        `json:"description"`
	Reference   string        `json:"reference"` // External reference, e.g. the originating sales transaction ID
	Status      JournalStatus `json:"status"`    // Default: POSTED
	AuditFields
	Amount decimal.Decimal `json:"amount"` // Economic value: sum of the debit side
	Lines  []JournalLine   `json:"lines,omitempty"`
}

// JournalLine represents a single line item within a journal, affecting one account.
type JournalLine struct {
	LineID      string          `json:"lineID"`    // Primary key (UUID)
	JournalID   string          `json:"journalID"` // FK -> journals.journal_id
	AccountID   string          `json:"accountID"` // FK -> accounts.account_id
	AccountCode string          `json:"accountCode"`
	Amount      decimal.Decimal `json:"amount"` // Always positive
	EntryType   EntryType       `json:"entryType"`
	Notes       string          `json:"notes"`
	AuditFields
}

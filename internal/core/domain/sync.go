package domain

// AccountMapping defines which ledger accounts receive the postings for one
// sales type. Exactly one mapping exists per sales type.
type AccountMapping struct {
	SalesType             SalesType `json:"salesType"`
	RevenueAccountCode    string    `json:"revenueAccountCode"`    // Credited on sync
	ReceivableAccountCode string    `json:"receivableAccountCode"` // Debited on sync
	Description           string    `json:"description"`
	AuditFields
}

// SyncFrequency is the cadence at which pending sales transactions are posted
// to accounting.
type SyncFrequency string

const (
	SyncRealtime SyncFrequency = "REALTIME" // Post at the point of sale
	SyncHourly   SyncFrequency = "HOURLY"
	SyncDaily    SyncFrequency = "DAILY"
	SyncManual   SyncFrequency = "MANUAL" // Only on explicit trigger
)

// KnownSyncFrequency reports whether f is a supported cadence.
func KnownSyncFrequency(f SyncFrequency) bool {
	switch f {
	case SyncRealtime, SyncHourly, SyncDaily, SyncManual:
		return true
	}
	return false
}

// SyncSettings is the single global sync configuration record.
type SyncSettings struct {
	SyncFrequency SyncFrequency `json:"syncFrequency"`
	AuditFields
}

// SyncResult summarises one pass of the sync engine over the pending queue.
// It is returned to the caller and never persisted.
type SyncResult struct {
	Success     bool     `json:"success"` // True only when FailedCount == 0
	SyncedCount int      `json:"syncedCount"`
	FailedCount int      `json:"failedCount"`
	Errors      []string `json:"errors"` // One entry per failure, in processing order
}

package dto

import (
	"time"

	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
)

// UpdateAccountMappingRequest replaces the ledger mapping for one sales type.
type UpdateAccountMappingRequest struct {
	SalesType             domain.SalesType `json:"salesType" binding:"required"`
	RevenueAccountCode    string           `json:"revenueAccountCode" binding:"required,accountcode"`
	ReceivableAccountCode string           `json:"receivableAccountCode" binding:"required,accountcode"`
	Description           string           `json:"description"`
}

// AccountMappingResponse defines the data returned for an account mapping.
type AccountMappingResponse struct {
	SalesType             domain.SalesType `json:"salesType"`
	RevenueAccountCode    string           `json:"revenueAccountCode"`
	ReceivableAccountCode string           `json:"receivableAccountCode"`
	Description           string           `json:"description"`
	LastUpdatedAt         time.Time        `json:"lastUpdatedAt"`
}

// ListAccountMappingsResponse wraps the mapping list.
type ListAccountMappingsResponse struct {
	Mappings []AccountMappingResponse `json:"mappings"`
}

// UpdateSyncSettingsRequest changes the sync cadence.
type UpdateSyncSettingsRequest struct {
	SyncFrequency domain.SyncFrequency `json:"syncFrequency" binding:"required,oneof=REALTIME HOURLY DAILY MANUAL"`
}

// SyncSettingsResponse defines the data returned for the sync settings.
type SyncSettingsResponse struct {
	SyncFrequency domain.SyncFrequency `json:"syncFrequency"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
}

// SyncResultResponse summarises one sync pass for the caller.
type SyncResultResponse struct {
	Success     bool     `json:"success"`
	SyncedCount int      `json:"syncedCount"`
	FailedCount int      `json:"failedCount"`
	Errors      []string `json:"errors"`
}

// ToAccountMappingResponse converts a domain.AccountMapping to its DTO.
func ToAccountMappingResponse(m *domain.AccountMapping) AccountMappingResponse {
	return AccountMappingResponse{
		SalesType:             m.SalesType,
		RevenueAccountCode:    m.RevenueAccountCode,
		ReceivableAccountCode: m.ReceivableAccountCode,
		Description:           m.Description,
		LastUpdatedAt:         m.LastUpdatedAt,
	}
}

// ToListAccountMappingsResponse converts mappings to the list DTO.
func ToListAccountMappingsResponse(mappings []domain.AccountMapping) ListAccountMappingsResponse {
	res := make([]AccountMappingResponse, len(mappings))
	for i := range mappings {
		res[i] = ToAccountMappingResponse(&mappings[i])
	}
	return ListAccountMappingsResponse{Mappings: res}
}

// ToSyncSettingsResponse converts domain.SyncSettings to its DTO.
func ToSyncSettingsResponse(s *domain.SyncSettings) SyncSettingsResponse {
	return SyncSettingsResponse{
		SyncFrequency: s.SyncFrequency,
		LastUpdatedAt: s.LastUpdatedAt,
	}
}

// ToSyncResultResponse converts a domain.SyncResult to its DTO.
// Errors is always non-nil so the JSON shows an empty array rather than null.
func ToSyncResultResponse(r *domain.SyncResult) SyncResultResponse {
	errs := r.Errors
	if errs == nil {
		errs = []string{}
	}
	return SyncResultResponse{
		Success:     r.Success,
		SyncedCount: r.SyncedCount,
		FailedCount: r.FailedCount,
		Errors:      errs,
	}
}

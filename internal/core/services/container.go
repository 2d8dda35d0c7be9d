package services

import (
	portssvc "github.com/voyagebooks/voyage_backoffice/internal/core/ports/services"
)

// ServiceContainer holds instances of all application services. It is the
// entry point handlers use to reach service functionality.
type ServiceContainer struct {
	Account    portssvc.AccountSvcFacade
	Journal    portssvc.JournalSvcFacade
	Sales      portssvc.SalesSvcFacade
	Sync       portssvc.SyncSvcFacade
	SyncConfig portssvc.SyncConfigSvcFacade
	Reporting  portssvc.ReportingSvcFacade
	User       portssvc.UserSvcFacade
}

package services

import "propertydeals_backend/internal/email"

// ServiceContainer holds every service the handlers depend on.
type ServiceContainer struct {
	AuthService         *AuthService
	UserService         *UserService
	RoleAppService      *RoleApplicationService
	PropertyService     *PropertyService
	OfferService        *OfferService
	DashboardService    *DashboardService
	ReportService       *ReportService
	InquiryService      *InquiryService
	EventService        *EventService
	NotificationService *NotificationService
	EmailService        email.Provider
}

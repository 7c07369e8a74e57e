package handlers

// AppHandlers holds every handler the router mounts.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	RoleAppHandler      *RoleAppHandler
	PropertyHandler     *PropertyHandler
	OfferHandler        *OfferHandler
	DashboardHandler    *DashboardHandler
	ReportHandler       *ReportHandler
	InquiryHandler      *InquiryHandler
	EventHandler        *EventHandler
	NotificationHandler *NotificationHandler
}

package models

// Badge is the presentation mapping for a status, consumed by dashboard
// clients to render status chips consistently.
type Badge struct {
	Label      string `json:"label"`
	ColorToken string `json:"color_token"`
}

var badgeTables = map[EntityKind]map[string]Badge{
	EntityRoleApplication: {
		string(ApplicationStatusNotApplied): {Label: "Not Applied", ColorToken: "neutral"},
		string(ApplicationStatusPending):    {Label: "Pending Review", ColorToken: "warning"},
		string(ApplicationStatusApproved):   {Label: "Approved", ColorToken: "success"},
		string(ApplicationStatusDenied):     {Label: "Denied", ColorToken: "danger"},
	},
	EntityListing: {
		string(ListingStatusDraft):   {Label: "Draft", ColorToken: "neutral"},
		string(ListingStatusActive):  {Label: "Active", ColorToken: "success"},
		string(ListingStatusPending): {Label: "Under Contract", ColorToken: "warning"},
		string(ListingStatusClosed):  {Label: "Closed", ColorToken: "neutral"},
	},
	EntityOffer: {
		string(OfferStatusPending):   {Label: "Pending", ColorToken: "warning"},
		string(OfferStatusAccepted):  {Label: "Accepted", ColorToken: "success"},
		string(OfferStatusCountered): {Label: "Countered", ColorToken: "info"},
		string(OfferStatusRejected):  {Label: "Rejected", ColorToken: "danger"},
	},
	EntityReport: {
		string(ReportStatusPending):   {Label: "Pending", ColorToken: "warning"},
		string(ReportStatusReviewed):  {Label: "In Review", ColorToken: "info"},
		string(ReportStatusResolved):  {Label: "Resolved", ColorToken: "success"},
		string(ReportStatusDismissed): {Label: "Dismissed", ColorToken: "neutral"},
	},
}

// StatusBadge returns the badge for a status. Unknown statuses fall back to a
// neutral badge with the raw status as label.
func StatusBadge(kind EntityKind, status string) Badge {
	if table, ok := badgeTables[kind]; ok {
		if badge, ok := table[status]; ok {
			return badge
		}
	}
	return Badge{Label: status, ColorToken: "neutral"}
}

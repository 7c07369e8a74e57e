package models

type Role string
type ApplicationStatus string
type ListingStatus string
type OfferStatus string
type OfferAction string
type ReportStatus string
type ReportContentType string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleRep    Role = "rep"

	ApplicationStatusNotApplied ApplicationStatus = "not_applied"
	ApplicationStatusPending    ApplicationStatus = "pending"
	ApplicationStatusApproved   ApplicationStatus = "approved"
	ApplicationStatusDenied     ApplicationStatus = "denied"

	ListingStatusDraft   ListingStatus = "draft"
	ListingStatusActive  ListingStatus = "active"
	ListingStatusPending ListingStatus = "pending"
	ListingStatusClosed  ListingStatus = "closed"

	OfferStatusPending   OfferStatus = "pending"
	OfferStatusAccepted  OfferStatus = "accepted"
	OfferStatusCountered OfferStatus = "countered"
	OfferStatusRejected  OfferStatus = "rejected"

	OfferActionAccept  OfferAction = "accept"
	OfferActionCounter OfferAction = "counter"
	OfferActionReject  OfferAction = "reject"

	ReportStatusPending   ReportStatus = "pending"
	ReportStatusReviewed  ReportStatus = "reviewed"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"

	ReportContentProperty ReportContentType = "property"
	ReportContentUser     ReportContentType = "user"
	ReportContentMessage  ReportContentType = "message"
	ReportContentOther    ReportContentType = "other"
)

// ValidRoles lists the marketplace roles a user can hold.
var ValidRoles = []Role{RoleBuyer, RoleSeller, RoleRep}

func IsValidRole(r Role) bool {
	for _, v := range ValidRoles {
		if v == r {
			return true
		}
	}
	return false
}

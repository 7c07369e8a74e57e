package models

import "propertydeals_backend/pkg/apperrors"

// EntityKind names a status-bearing entity in the transition tables.
type EntityKind string

const (
	EntityRoleApplication EntityKind = "role_application"
	EntityListing         EntityKind = "listing"
	EntityOffer           EntityKind = "offer"
	EntityReport          EntityKind = "report"
)

// transitionTables holds the only legal status changes per entity kind.
// Everything not listed here is rejected. Listing pending->active is the
// explicit rollback for an accepted offer falling through.
var transitionTables = map[EntityKind]map[string][]string{
	EntityRoleApplication: {
		string(ApplicationStatusNotApplied): {string(ApplicationStatusPending)},
		string(ApplicationStatusPending):    {string(ApplicationStatusApproved), string(ApplicationStatusDenied)},
		string(ApplicationStatusDenied):     {string(ApplicationStatusPending)}, // re-application
	},
	EntityListing: {
		string(ListingStatusDraft):   {string(ListingStatusActive)},
		string(ListingStatusActive):  {string(ListingStatusPending)},
		string(ListingStatusPending): {string(ListingStatusClosed), string(ListingStatusActive)},
	},
	EntityOffer: {
		string(OfferStatusPending): {string(OfferStatusAccepted), string(OfferStatusCountered), string(OfferStatusRejected)},
	},
	EntityReport: {
		string(ReportStatusPending):  {string(ReportStatusReviewed)},
		string(ReportStatusReviewed): {string(ReportStatusResolved), string(ReportStatusDismissed)},
	},
}

// CanTransition reports whether from -> to is allowed for the entity kind.
// Pure lookup, no side effects.
func CanTransition(kind EntityKind, from, to string) bool {
	table, ok := transitionTables[kind]
	if !ok {
		return false
	}
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// GuardTransition returns a typed InvalidTransition error when the change is
// not permitted. Callers must not mutate state when an error is returned.
func GuardTransition(kind EntityKind, from, to string) error {
	if !CanTransition(kind, from, to) {
		return apperrors.ErrInvalidTransition(string(kind), from, to)
	}
	return nil
}

// TerminalStatuses reports whether the status has no outgoing transitions.
func IsTerminal(kind EntityKind, status string) bool {
	table, ok := transitionTables[kind]
	if !ok {
		return true
	}
	return len(table[status]) == 0
}

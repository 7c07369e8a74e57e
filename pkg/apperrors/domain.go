package apperrors

import (
	"fmt"
	"net/http"
)

// Domain errors for the PropertyDeals marketplace. Sentinel vars cover the
// static cases; factories cover errors that need runtime context.

// --- Factories ---

// ErrNotFound wraps a repository miss (e.g. gorm.ErrRecordNotFound) into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrInvalidTransition reports a state change not permitted by the transition
// table of the given entity kind. The requested change is never applied.
func ErrInvalidTransition(kind, from, to string) *AppError {
	return New(
		CodeInvalidTransition,
		kind,
		fmt.Sprintf("Transition %s -> %s is not allowed for %s", from, to, kind),
		http.StatusConflict,
	)
}

// --- Auth & roles ---

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrRoleNotApproved = New(
	CodeForbidden,
	"roles",
	"This action requires an approved role",
	http.StatusForbidden,
)

var ErrCannotModifySelf = New(
	CodeForbidden,
	"business_logic",
	"Operation on self is not allowed",
	http.StatusForbidden,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrUsernameAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Username already taken",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrUserSuspended = New(
	CodeForbidden,
	"auth",
	"Your account has been suspended",
	http.StatusForbidden,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

// --- Role applications ---

var ErrApplicationAlreadyApproved = New(
	CodeInvalidOperation,
	"roles",
	"Role is already approved",
	http.StatusConflict,
)

var ErrDenialNotesRequired = New(
	CodeValidationFailed,
	"roles",
	"Denial requires non-empty notes",
	http.StatusBadRequest,
)

// --- Listings ---

var ErrIncompleteListing = New(
	CodeValidationFailed,
	"listing",
	"Listing is missing required fields (address, price, at least one image)",
	http.StatusBadRequest,
)

var ErrInvalidListingStatus = New(
	CodeInvalidStatus,
	"listing",
	"Operation not allowed for the current listing status",
	http.StatusConflict,
)

var ErrListingNotAcceptingOffers = New(
	CodeInvalidStatus,
	"listing",
	"Listing is not accepting offers",
	http.StatusConflict,
)

// --- Offers ---

var ErrCannotOfferOnOwnListing = New(
	CodeInvalidOperation,
	"offer",
	"You cannot submit an offer on your own listing",
	http.StatusBadRequest,
)

var ErrCounterAmountRequired = New(
	CodeValidationFailed,
	"offer",
	"A counter offer requires a counter amount",
	http.StatusBadRequest,
)

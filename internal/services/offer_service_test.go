package services

import (
	"testing"

	"propertydeals_backend/internal/email"
	"propertydeals_backend/internal/models"
	"propertydeals_backend/internal/services/dto"
	"propertydeals_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type offerFixture struct {
	svc         *OfferService
	propertySvc *PropertyService
	users       *fakeUserRepo
	properties  *fakePropertyRepo
	offers      *fakeOfferRepo
	seller      *models.User
	buyer       *models.User
	listing     *dto.PropertyResponse
}

// newOfferFixture seeds an approved seller with an active $500k listing and
// an approved buyer.
func newOfferFixture(t *testing.T) *offerFixture {
	t.Helper()
	users := newFakeUserRepo()
	properties := newFakePropertyRepo()
	offers := newFakeOfferRepo()
	notifications := newFakeNotificationRepo()
	mailer := &email.MockProvider{}

	propertySvc := NewPropertyService(properties, offers, users, nil)
	svc := NewOfferService(offers, properties, users, notifications, propertySvc, mailer)

	seller := seedUser(t, users, models.RoleSeller)
	buyer := seedUser(t, users, models.RoleBuyer)

	listing, err := propertySvc.CreateDraft(nil, seller.ID, completeListingRequest())
	require.NoError(t, err)
	listing, err = propertySvc.Publish(nil, listing.ID, seller.ID)
	require.NoError(t, err)

	return &offerFixture{
		svc:         svc,
		propertySvc: propertySvc,
		users:       users,
		properties:  properties,
		offers:      offers,
		seller:      seller,
		buyer:       buyer,
		listing:     listing,
	}
}

func TestSubmitOffer_SnapshotsAskingPrice(t *testing.T) {
	t.Parallel()
	f := newOfferFixture(t)

	offer, err := f.svc.SubmitOffer(nil, f.buyer.ID, &dto.SubmitOfferRequest{
		PropertyID:  f.listing.ID,
		OfferAmount: 485000,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusPending, offer.Status)
	assert.Equal(t, float64(500000), offer.AskingPriceSnapshot)
	assert.Equal(t, 1, offer.Round)
}

func TestSubmitOffer_Guards(t *testing.T) {
	t.Parallel()
	f := newOfferFixture(t)

	// No approved buyer role.
	noRole := seedUser(t, f.users)
	_, err := f.svc.SubmitOffer(nil, noRole.ID, &dto.SubmitOfferRequest{PropertyID: f.listing.ID, OfferAmount: 1000})
	assert.ErrorIs(t, err, apperrors.ErrRoleNotApproved)

	// Own listing. The seller also holds buyer approval here to isolate the check.
	selfDealer := seedUser(t, f.users, models.RoleSeller, models.RoleBuyer)
	own, err := f.propertySvc.CreateDraft(nil, selfDealer.ID, completeListingRequest())
	require.NoError(t, err)
	_, err = f.propertySvc.Publish(nil, own.ID, selfDealer.ID)
	require.NoError(t, err)
	_, err = f.svc.SubmitOffer(nil, selfDealer.ID, &dto.SubmitOfferRequest{PropertyID: own.ID, OfferAmount: 1000})
	assert.ErrorIs(t, err, apperrors.ErrCannotOfferOnOwnListing)

	// Draft listing is not accepting offers.
	draft, err := f.propertySvc.CreateDraft(nil, f.seller.ID, completeListingRequest())
	require.NoError(t, err)
	_, err = f.svc.SubmitOffer(nil, f.buyer.ID, &dto.SubmitOfferRequest{PropertyID: draft.ID, OfferAmount: 1000})
	assert.ErrorIs(t, err, apperrors.ErrListingNotAcceptingOffers)
}

func TestRespond_OnlyListingOwner(t *testing.T) {
	t.Parallel()
	f := newOfferFixture(t)

	offer, err := f.svc.SubmitOffer(nil, f.buyer.ID, &dto.SubmitOfferRequest{PropertyID: f.listing.ID, OfferAmount: 485000})
	require.NoError(t, err)

	_, err = f.svc.Respond(nil, offer.ID, f.buyer.ID, &dto.RespondToOfferRequest{Action: models.OfferActionAccept})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestAccept_MovesListingUnderContract(t *testing.T) {
	t.Parallel()
	f := newOfferFixture(t)

	offer, err := f.svc.SubmitOffer(nil, f.buyer.ID, &dto.SubmitOfferRequest{PropertyID: f.listing.ID, OfferAmount: 485000})
	require.NoError(t, err)

	accepted, err := f.svc.Respond(nil, offer.ID, f.seller.ID, &dto.RespondToOfferRequest{Action: models.OfferActionAccept})
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusAccepted, accepted.Status)
	assert.NotNil(t, accepted.DecidedAt)

	listing, err := f.properties.FindByID(nil, f.listing.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ListingStatusPending, listing.Status)
	require.NotNil(t, listing.AcceptedOfferID)
	assert.Equal(t, offer.ID, *listing.AcceptedOfferID)
}

func TestAccept_IsIdempotent(t *testing.T) {
	t.Parallel()
	f := newOfferFixture(t)

	offer, err := f.svc.SubmitOffer(nil, f.buyer.ID, &dto.SubmitOfferRequest{PropertyID: f.listing.ID, OfferAmount: 485000})
	require.NoError(t, err)

	first, err := f.svc.Respond(nil, offer.ID, f.seller.ID, &dto.RespondToOfferRequest{Action: models.OfferActionAccept})
	require.NoError(t, err)

	// Double-click: same accept again is a no-op, not a conflict.
	second, err := f.svc.Respond(nil, offer.ID, f.seller.ID, &dto.RespondToOfferRequest{Action: models.OfferActionAccept})
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusAccepted, second.Status)
	assert.Equal(t, first.DecidedAt.Unix(), second.DecidedAt.Unix())

	// But countering or rejecting an accepted offer is still a conflict.
	amount := 490000.0
	_, err = f.svc.Respond(nil, offer.ID, f.seller.ID, &dto.RespondToOfferRequest{Action: models.OfferActionCounter, CounterAmount: &amount})
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidTransition, appErr.Code)
}

func TestAccept_SiblingWhileUnderContractKeepsSingleAcceptance(t *testing.T) {
	t.Parallel()
	f := newOfferFixture(t)

	rival := seedUser(t, f.users, models.RoleBuyer)

	first, err := f.svc.SubmitOffer(nil, f.buyer.ID, &dto.SubmitOfferRequest{PropertyID: f.listing.ID, OfferAmount: 485000})
	require.NoError(t, err)
	second, err := f.svc.SubmitOffer(nil, rival.ID, &dto.SubmitOfferRequest{PropertyID: f.listing.ID, OfferAmount: 495000})
	require.NoError(t, err)

	_, err = f.svc.Respond(nil, first.ID, f.seller.ID, &dto.RespondToOfferRequest{Action: models.OfferActionAccept})
	require.NoError(t, err)

	// The listing is under contract; accepting the rival offer is a conflict
	// and must not touch its row.
	_, err = f.svc.Respond(nil, second.ID, f.seller.ID, &dto.RespondToOfferRequest{Action: models.OfferActionAccept})
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidTransition, appErr.Code)

	stored, err := f.offers.FindByID(nil, second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusPending, stored.Status)
	assert.Nil(t, stored.DecidedAt)

	history, err := f.svc.GetPropertyOffers(nil, f.listing.ID, f.seller.ID)
	require.NoError(t, err)
	acceptedCount := 0
	for _, o := range history {
		if o.Status == models.OfferStatusAccepted {
			acceptedCount++
		}
	}
	assert.Equal(t, 1, acceptedCount)
}

func TestCounter_OpensNewRoundWithAudit(t *testing.T) {
	t.Parallel()
	f := newOfferFixture(t)

	offer, err := f.svc.SubmitOffer(nil, f.buyer.ID, &dto.SubmitOfferRequest{PropertyID: f.listing.ID, OfferAmount: 485000})
	require.NoError(t, err)

	// Counter without an amount is rejected up front.
	_, err = f.svc.Respond(nil, offer.ID, f.seller.ID, &dto.RespondToOfferRequest{Action: models.OfferActionCounter})
	assert.ErrorIs(t, err, apperrors.ErrCounterAmountRequired)

	amount := 492000.0
	next, err := f.svc.Respond(nil, offer.ID, f.seller.ID, &dto.RespondToOfferRequest{Action: models.OfferActionCounter, CounterAmount: &amount})
	require.NoError(t, err)

	// The new round is pending at the countered amount, linked to round one.
	assert.Equal(t, models.OfferStatusPending, next.Status)
	assert.Equal(t, 492000.0, next.OfferAmount)
	assert.Equal(t, 2, next.Round)
	require.NotNil(t, next.PreviousOfferID)
	assert.Equal(t, offer.ID, *next.PreviousOfferID)

	// Round one is closed as countered and stays on record.
	prior, err := f.offers.FindByID(nil, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusCountered, prior.Status)
	assert.Equal(t, 485000.0, prior.OfferAmount)
}

func TestReject_IsTerminal(t *testing.T) {
	t.Parallel()
	f := newOfferFixture(t)

	offer, err := f.svc.SubmitOffer(nil, f.buyer.ID, &dto.SubmitOfferRequest{PropertyID: f.listing.ID, OfferAmount: 485000})
	require.NoError(t, err)

	rejected, err := f.svc.Respond(nil, offer.ID, f.seller.ID, &dto.RespondToOfferRequest{Action: models.OfferActionReject})
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusRejected, rejected.Status)

	_, err = f.svc.Respond(nil, offer.ID, f.seller.ID, &dto.RespondToOfferRequest{Action: models.OfferActionAccept})
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidTransition, appErr.Code)

	// A rejected offer leaves the listing untouched.
	listing, err := f.properties.FindByID(nil, f.listing.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ListingStatusActive, listing.Status)
}

// TestNegotiation_FullFlow walks the complete happy path: a $485k opening
// offer on a $500k listing, a $492k counter, the buyer comes back at $490k,
// the seller accepts, the deal closes.
func TestNegotiation_FullFlow(t *testing.T) {
	t.Parallel()
	f := newOfferFixture(t)

	opening, err := f.svc.SubmitOffer(nil, f.buyer.ID, &dto.SubmitOfferRequest{
		PropertyID:  f.listing.ID,
		OfferAmount: 485000,
	})
	require.NoError(t, err)

	counterAmount := 492000.0
	counter, err := f.svc.Respond(nil, opening.ID, f.seller.ID, &dto.RespondToOfferRequest{
		Action:        models.OfferActionCounter,
		CounterAmount: &counterAmount,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, counter.Round)

	// Buyer effectively re-offers by letting the seller counter again; the
	// seller meets in the middle and accepts round two directly here.
	accepted, err := f.svc.Respond(nil, counter.ID, f.seller.ID, &dto.RespondToOfferRequest{
		Action: models.OfferActionAccept,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusAccepted, accepted.Status)

	listing, err := f.properties.FindByID(nil, f.listing.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ListingStatusPending, listing.Status)

	closed, err := f.propertySvc.Close(nil, f.listing.ID, f.seller.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ListingStatusClosed, closed.Status)

	// Full audit trail: round one countered, round two accepted.
	history, err := f.svc.GetPropertyOffers(nil, f.listing.ID, f.seller.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	statuses := map[models.OfferStatus]bool{}
	for _, o := range history {
		statuses[o.Status] = true
	}
	assert.True(t, statuses[models.OfferStatusCountered])
	assert.True(t, statuses[models.OfferStatusAccepted])
}

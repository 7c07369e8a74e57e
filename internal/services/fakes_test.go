package services

import (
	"strings"
	"sync"
	"time"

	"propertydeals_backend/internal/models"
	"propertydeals_backend/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. The services only see the interfaces, so the
// db argument is ignored throughout. All fakes are mutex-protected because
// notification side effects run on goroutines.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
	// When linked, role applications are refreshed from the shared repo on
	// every read, like the production Preload("RoleApplications") does.
	apps *fakeRoleAppRepo
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func newFakeUserRepoWithApps(apps *fakeRoleAppRepo) *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User), apps: apps}
}

func (r *fakeUserRepo) preloadApps(user *models.User) *models.User {
	if r.apps != nil {
		user.RoleApplications, _ = r.apps.FindByUser(nil, user.ID)
	}
	return user
}

func (r *fakeUserRepo) Create(_ *gorm.DB, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.preloadApps(user), nil
}

func (r *fakeUserRepo) FindByEmail(_ *gorm.DB, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return r.preloadApps(u), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByUsername(_ *gorm.DB, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return r.preloadApps(u), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ *gorm.DB, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

type fakeRoleAppRepo struct {
	mu   sync.Mutex
	apps map[string]*models.RoleApplication
}

func newFakeRoleAppRepo() *fakeRoleAppRepo {
	return &fakeRoleAppRepo{apps: make(map[string]*models.RoleApplication)}
}

func (r *fakeRoleAppRepo) Create(_ *gorm.DB, app *models.RoleApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	r.apps[app.ID] = app
	return nil
}

func (r *fakeRoleAppRepo) FindByUserAndRole(_ *gorm.DB, userID string, role models.Role) (*models.RoleApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.UserID == userID && a.Role == role {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRoleAppRepo) FindByUser(_ *gorm.DB, userID string) ([]models.RoleApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.RoleApplication
	for _, a := range r.apps {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeRoleAppRepo) Update(_ *gorm.DB, app *models.RoleApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps[app.ID] = app
	return nil
}

func (r *fakeRoleAppRepo) ListPending(_ *gorm.DB, page, pageSize int) ([]models.RoleApplication, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.RoleApplication
	for _, a := range r.apps {
		if a.Status == models.ApplicationStatusPending {
			out = append(out, *a)
		}
	}
	return out, int64(len(out)), nil
}

type fakePropertyRepo struct {
	mu       sync.Mutex
	listings map[string]*models.PropertyListing
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{listings: make(map[string]*models.PropertyListing)}
}

func (r *fakePropertyRepo) Create(_ *gorm.DB, p *models.PropertyListing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now()
	r.listings[p.ID] = p
	return nil
}

func (r *fakePropertyRepo) FindByID(_ *gorm.DB, id string) (*models.PropertyListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.listings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakePropertyRepo) Update(_ *gorm.DB, p *models.PropertyListing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings[p.ID] = p
	return nil
}

func (r *fakePropertyRepo) FindByOwner(_ *gorm.DB, ownerID string) ([]models.PropertyListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.PropertyListing
	for _, p := range r.listings {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePropertyRepo) Search(_ *gorm.DB, criteria repositories.PropertySearchCriteria) ([]models.PropertyListing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.PropertyListing
	for _, p := range r.listings {
		if criteria.Status != "" && p.Status != criteria.Status {
			continue
		}
		if criteria.City != "" && !strings.EqualFold(p.City, criteria.City) {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakePropertyRepo) CountByOwnerAndStatus(_ *gorm.DB, ownerID string) (map[models.ListingStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[models.ListingStatus]int64)
	for _, p := range r.listings {
		if p.OwnerID == ownerID {
			counts[p.Status]++
		}
	}
	return counts, nil
}

type fakeOfferRepo struct {
	mu     sync.Mutex
	offers map[string]*models.Offer
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{offers: make(map[string]*models.Offer)}
}

func (r *fakeOfferRepo) Create(_ *gorm.DB, o *models.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	o.CreatedAt = time.Now()
	r.offers[o.ID] = o
	return nil
}

func (r *fakeOfferRepo) FindByID(_ *gorm.DB, id string) (*models.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.offers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *fakeOfferRepo) Update(_ *gorm.DB, o *models.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offers[o.ID] = o
	return nil
}

func (r *fakeOfferRepo) FindByProperty(_ *gorm.DB, propertyID string) ([]models.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Offer
	for _, o := range r.offers {
		if o.PropertyID == propertyID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOfferRepo) FindByBuyer(_ *gorm.DB, buyerID string) ([]models.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Offer
	for _, o := range r.offers {
		if o.BuyerID == buyerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOfferRepo) FlagSuperseded(_ *gorm.DB, propertyID, acceptedOfferID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, o := range r.offers {
		if o.PropertyID == propertyID && o.ID != acceptedOfferID && o.Status == models.OfferStatusPending {
			id := acceptedOfferID
			o.SupersededByID = &id
			count++
		}
	}
	return count, nil
}

func (r *fakeOfferRepo) ClearSuperseded(_ *gorm.DB, propertyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.offers {
		if o.PropertyID == propertyID {
			o.SupersededByID = nil
		}
	}
	return nil
}

func (r *fakeOfferRepo) RejectExpired(_ *gorm.DB, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, o := range r.offers {
		if o.Status == models.OfferStatusPending && o.ClosingDate != nil && o.ClosingDate.Before(cutoff) {
			o.Status = models.OfferStatusRejected
			count++
		}
	}
	return count, nil
}

func (r *fakeOfferRepo) CountByBuyerAndStatus(_ *gorm.DB, buyerID string) (map[models.OfferStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[models.OfferStatus]int64)
	for _, o := range r.offers {
		if o.BuyerID == buyerID {
			counts[o.Status]++
		}
	}
	return counts, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(_ *gorm.DB, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *fakeNotificationRepo) FindByUser(_ *gorm.DB, userID string, unreadOnly bool) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for _, n := range r.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, *n)
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(_ *gorm.DB, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(_ *gorm.DB, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) CountUnread(_ *gorm.DB, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

type fakeReportRepo struct {
	mu      sync.Mutex
	reports map[string]*models.Report
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[string]*models.Report)}
}

func (r *fakeReportRepo) Create(_ *gorm.DB, report *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	report.CreatedAt = time.Now()
	r.reports[report.ID] = report
	return nil
}

func (r *fakeReportRepo) FindByID(_ *gorm.DB, id string) (*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return report, nil
}

func (r *fakeReportRepo) Update(_ *gorm.DB, report *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports[report.ID] = report
	return nil
}

func (r *fakeReportRepo) List(_ *gorm.DB, status models.ReportStatus, page, pageSize int) ([]models.Report, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Report
	for _, report := range r.reports {
		if status != "" && report.Status != status {
			continue
		}
		out = append(out, *report)
	}
	return out, int64(len(out)), nil
}

func (r *fakeReportRepo) CountByStatus(_ *gorm.DB) (map[models.ReportStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[models.ReportStatus]int64)
	for _, report := range r.reports {
		counts[report.Status]++
	}
	return counts, nil
}

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*models.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]*models.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Create(_ *gorm.DB, token *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeRefreshTokenRepo) FindByToken(_ *gorm.DB, token string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *fakeRefreshTokenRepo) Delete(_ *gorm.DB, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteByUser(_ *gorm.DB, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, k)
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ *gorm.DB) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for k, t := range r.tokens {
		if time.Now().After(t.ExpiresAt) {
			delete(r.tokens, k)
			count++
		}
	}
	return count, nil
}

package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"review-service/internal/model"
	"review-service/internal/repository"
	"review-service/internal/review"

	"github.com/google/uuid"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) (uuid.UUID, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return uuid.Nil, errors.New("duplicate email")
		}
	}
	user.ID = uuid.New()
	stored := *user
	r.users[user.ID] = &stored
	return user.ID, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	return r.users[id], nil
}

type fakeListingRepo struct {
	listings []model.Listing
}

func (r *fakeListingRepo) Create(_ context.Context, l *model.Listing) error {
	l.ID = uuid.New()
	l.CreatedAt = time.Now()
	r.listings = append(r.listings, *l)
	return nil
}

func (r *fakeListingRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Listing, error) {
	for i := range r.listings {
		if r.listings[i].ID == id {
			l := r.listings[i]
			return &l, nil
		}
	}
	return nil, nil
}

func (r *fakeListingRepo) FindFirstByAddress(_ context.Context, address string) (*model.Listing, error) {
	var first *model.Listing
	for i := range r.listings {
		l := r.listings[i]
		if l.Address != address {
			continue
		}
		if first == nil || l.CreatedAt.Before(first.CreatedAt) {
			first = &l
		}
	}
	return first, nil
}

type fakeImageRepo struct {
	images []model.Image
}

func (r *fakeImageRepo) Create(_ context.Context, img *model.Image) error {
	img.ID = uuid.New()
	r.images = append(r.images, *img)
	return nil
}

func (r *fakeImageRepo) FindByTarget(_ context.Context, targetID uuid.UUID, imageType model.ImageType) ([]model.Image, error) {
	var out []model.Image
	for _, img := range r.images {
		if img.TargetID == targetID && img.ImageType == imageType {
			out = append(out, img)
		}
	}
	return out, nil
}

type fakeReviewRepo struct {
	reviews  []model.Review
	dateLogs []model.DateLog
}

func (r *fakeReviewRepo) Create(_ context.Context, dateLog *model.DateLog, rv *model.Review) error {
	dateLog.ID = uuid.New()
	r.dateLogs = append(r.dateLogs, *dateLog)
	rv.DateLogID = dateLog.ID
	rv.ID = uuid.New()
	rv.CreatedAt = time.Now()
	r.reviews = append(r.reviews, *rv)
	return nil
}

func (r *fakeReviewRepo) filter(keep func(model.Review) bool) []model.Review {
	var out []model.Review
	for _, rv := range r.reviews {
		if !rv.IsDeleted() && keep(rv) {
			out = append(out, rv)
		}
	}
	return out
}

func (r *fakeReviewRepo) FindByAddress(_ context.Context, address string) ([]model.Review, error) {
	return r.filter(func(rv model.Review) bool { return rv.Address == address }), nil
}

func (r *fakeReviewRepo) FindByAddressContaining(_ context.Context, filter string) ([]model.Review, error) {
	return r.filter(func(rv model.Review) bool { return strings.Contains(rv.Address, filter) }), nil
}

func (r *fakeReviewRepo) FindByListing(_ context.Context, listingID uuid.UUID) ([]model.Review, error) {
	return r.filter(func(rv model.Review) bool { return rv.ListingID == listingID }), nil
}

func (r *fakeReviewRepo) FindActive(_ context.Context, page, pageSize int, key review.SortKey) ([]model.Review, error) {
	all := r.filter(func(model.Review) bool { return true })
	return review.Paginate(review.SortReviews(all, key), page, pageSize), nil
}

func (r *fakeReviewRepo) FindByIDAndUser(_ context.Context, id, userID uuid.UUID) (*model.Review, error) {
	for i := range r.reviews {
		if r.reviews[i].ID == id && r.reviews[i].UserID == userID {
			rv := r.reviews[i]
			return &rv, nil
		}
	}
	return nil, nil
}

func (r *fakeReviewRepo) SoftDelete(_ context.Context, id uuid.UUID, deletedAt time.Time) error {
	for i := range r.reviews {
		if r.reviews[i].ID == id {
			r.reviews[i].DeletedAt = &deletedAt
		}
	}
	return nil
}

type fakeTokenRepo struct {
	mu      sync.Mutex
	records []model.TokenRecord
}

func (r *fakeTokenRepo) Create(_ context.Context, token *model.TokenRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token.ID = uuid.New()
	token.CreatedAt = time.Now()
	r.records = append(r.records, *token)
	return nil
}

func (r *fakeTokenRepo) FindByPair(_ context.Context, accessToken, refreshToken string) (*model.TokenRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.AccessToken == accessToken && rec.RefreshToken == refreshToken {
			found := rec
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeTokenRepo) UpdateAccessToken(_ context.Context, token *model.TokenRecord, previousAccessToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == token.ID && r.records[i].AccessToken == previousAccessToken {
			r.records[i].AccessToken = token.AccessToken
			r.records[i].AccessTokenExpiresAt = token.AccessTokenExpiresAt
			return nil
		}
	}
	return repository.ErrStaleToken
}

type fakePublisher struct {
	mu      sync.Mutex
	created []uuid.UUID
	deleted []uuid.UUID
}

func (p *fakePublisher) PublishReviewCreated(r *model.Review) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, r.ID)
	return nil
}

func (p *fakePublisher) PublishReviewDeleted(reviewID, _ uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = append(p.deleted, reviewID)
	return nil
}

func (p *fakePublisher) counts() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.created), len(p.deleted)
}

type fakeSigner struct{}

func (fakeSigner) PresignGetURL(_ context.Context, key string) (string, error) {
	return "https://cdn.test/" + key + "?sig=1", nil
}

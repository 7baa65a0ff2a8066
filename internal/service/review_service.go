package service

import (
	"context"
	"log/slog"
	"time"

	"review-service/internal/events"
	"review-service/internal/model"
	"review-service/internal/repository"
	"review-service/internal/review"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("review-service/service")

// PageSizes are the fixed page sizes of the feeds. Recent sizes the recency
// feed; Detail sizes the star feed and the per-address list.
type PageSizes struct {
	Recent int
	Detail int
}

type SubmitReviewRequest struct {
	Address       string     `json:"address" validate:"required,max=100"`
	AddressDetail string     `json:"address_detail" validate:"max=50"`
	StartedAt     time.Time  `json:"started_at" validate:"required"`
	EndedAt       time.Time  `json:"end_at" validate:"required"`
	TotalRate     float64    `json:"total_rate"`
	CleanRate     float64    `json:"clean_rate"`
	NoiseRate     float64    `json:"noise_rate"`
	AccessRate    float64    `json:"access_rate"`
	HostRate      float64    `json:"host_rate"`
	FacilityRate  float64    `json:"facility_rate"`
	Content       string     `json:"content" validate:"required"`
	ImageID       *uuid.UUID `json:"image_id,omitempty"`
}

type ReviewService interface {
	GetRecentReviews(ctx context.Context, page int) ([]model.ReviewSummary, error)
	GetReviewsByStar(ctx context.Context, page int) ([]model.ReviewSummary, error)
	GetReviewsByAddress(ctx context.Context, address string) (*model.ReviewDetailSummary, error)
	GetOtherReviews(ctx context.Context, address string, page int) ([]model.OtherReview, error)
	SearchReviewsGroupedByAddress(ctx context.Context, addressFilter string) ([]model.ReviewSearchResult, error)
	SubmitReview(ctx context.Context, req SubmitReviewRequest, userID uuid.UUID) (*model.ReviewSummary, error)
	DeleteReview(ctx context.Context, reviewID, userID uuid.UUID) error
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	userRepo    repository.UserRepository
	listingRepo repository.ListingRepository
	images      *ImageResolver
	publisher   events.EventPublisher
	pages       PageSizes
	validate    *validator.Validate
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	userRepo repository.UserRepository,
	listingRepo repository.ListingRepository,
	images *ImageResolver,
	publisher events.EventPublisher,
	pages PageSizes,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		userRepo:    userRepo,
		listingRepo: listingRepo,
		images:      images,
		publisher:   publisher,
		pages:       pages,
		validate:    validator.New(),
	}
}

func (s *reviewService) GetRecentReviews(ctx context.Context, page int) ([]model.ReviewSummary, error) {
	return s.feed(ctx, page, s.pages.Recent, review.SortRecent)
}

func (s *reviewService) GetReviewsByStar(ctx context.Context, page int) ([]model.ReviewSummary, error) {
	return s.feed(ctx, page, s.pages.Detail, review.SortStar)
}

func (s *reviewService) feed(ctx context.Context, page, pageSize int, key review.SortKey) ([]model.ReviewSummary, error) {
	if page < 0 {
		return nil, ErrInvalidPage
	}

	reviews, err := s.reviewRepo.FindActive(ctx, page, pageSize, key)
	if err != nil {
		return nil, err
	}
	reviews = review.SortReviews(review.Active(reviews), key)

	lk := s.newLookup()
	summaries := make([]model.ReviewSummary, 0, len(reviews))
	for _, r := range reviews {
		summary, err := lk.summary(ctx, r)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

func (s *reviewService) GetReviewsByAddress(ctx context.Context, address string) (*model.ReviewDetailSummary, error) {
	ctx, span := tracer.Start(ctx, "ReviewService.GetReviewsByAddress")
	defer span.End()

	if address == "" {
		return nil, validationError(errEmptyAddress)
	}

	reviews, err := s.reviewRepo.FindByAddress(ctx, address)
	if err != nil {
		return nil, err
	}

	group, _ := review.GroupByAddress(review.Active(reviews)).Get(address)
	summary := group.Summary()
	span.SetAttributes(attribute.Int("review.count", summary.Count))

	imageURL, err := s.images.LookupMainImageByAddress(ctx, address)
	if err != nil {
		return nil, err
	}

	return &model.ReviewDetailSummary{
		Address:         address,
		ImageURL:        imageURL,
		ReviewCount:     summary.Count,
		AvgTotalRate:    summary.TotalRate,
		AvgCleanRate:    summary.CleanRate,
		AvgNoiseRate:    summary.NoiseRate,
		AvgAccessRate:   summary.AccessRate,
		AvgHostRate:     summary.HostRate,
		AvgFacilityRate: summary.FacilityRate,
	}, nil
}

func (s *reviewService) GetOtherReviews(ctx context.Context, address string, page int) ([]model.OtherReview, error) {
	if address == "" {
		return nil, validationError(errEmptyAddress)
	}
	if page < 0 {
		return nil, ErrInvalidPage
	}

	reviews, err := s.reviewRepo.FindByAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	sorted := review.SortReviews(review.Active(reviews), review.SortRecent)

	lk := s.newLookup()
	out := make([]model.OtherReview, 0, s.pages.Detail)
	for _, r := range review.Paginate(sorted, page, s.pages.Detail) {
		writer, err := lk.user(ctx, r.UserID)
		if err != nil {
			return nil, err
		}
		urls, err := s.images.ReviewImages(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, model.OtherReview{
			ReviewID:   r.ID,
			Nickname:   writer.Nickname,
			University: writer.University,
			TotalRate:  r.TotalRate,
			Content:    r.Content,
			ImageURLs:  urls,
			StartedAt:  r.StartedAt,
			EndedAt:    r.EndedAt,
			CreatedAt:  r.CreatedAt,
		})
	}
	return out, nil
}

func (s *reviewService) SearchReviewsGroupedByAddress(ctx context.Context, addressFilter string) ([]model.ReviewSearchResult, error) {
	ctx, span := tracer.Start(ctx, "ReviewService.SearchReviewsGroupedByAddress")
	defer span.End()

	reviews, err := s.reviewRepo.FindByAddressContaining(ctx, addressFilter)
	if err != nil {
		return nil, err
	}

	ranked := review.RankGroups(review.GroupByAddress(review.Active(reviews)).Groups())
	span.SetAttributes(attribute.Int("review.groups", len(ranked)))

	results := make([]model.ReviewSearchResult, 0, len(ranked))
	for _, g := range ranked {
		imageURL, err := s.images.LookupMainImageByAddress(ctx, g.Address)
		if err != nil {
			return nil, err
		}
		results = append(results, model.ReviewSearchResult{
			Address:      g.Address,
			AvgTotalRate: g.Summary.TotalRate,
			ReviewCount:  g.Summary.Count,
			ImageURL:     imageURL,
		})
	}
	return results, nil
}

func (s *reviewService) SubmitReview(ctx context.Context, req SubmitReviewRequest, userID uuid.UUID) (*model.ReviewSummary, error) {
	if err := s.validate.Struct(&req); err != nil {
		return nil, validationError(err)
	}
	if req.EndedAt.Before(req.StartedAt) {
		return nil, ErrInvalidPeriod
	}
	if !ratesInRange(req.TotalRate, req.CleanRate, req.NoiseRate, req.AccessRate, req.HostRate, req.FacilityRate) {
		return nil, ErrRateOutOfRange
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	listing, err := s.listingRepo.FindFirstByAddress(ctx, req.Address)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrListingNotFound
	}

	now := time.Now()
	dateLog := &model.DateLog{
		UserID:     userID,
		CreatedAt:  now,
		LastUserID: userID,
		UpdatedAt:  now,
	}

	rv := &model.Review{
		UserID:        userID,
		ListingID:     listing.ID,
		Address:       req.Address,
		AddressDetail: req.AddressDetail,
		StartedAt:     req.StartedAt,
		EndedAt:       req.EndedAt,
		TotalRate:     req.TotalRate,
		CleanRate:     req.CleanRate,
		NoiseRate:     req.NoiseRate,
		AccessRate:    req.AccessRate,
		HostRate:      req.HostRate,
		FacilityRate:  req.FacilityRate,
		Content:       req.Content,
		ImageID:       req.ImageID,
	}
	if err := s.reviewRepo.Create(ctx, dateLog, rv); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "review submitted", "review_id", rv.ID, "user_id", userID, "listing_id", listing.ID)

	go func(created model.Review) {
		if err := s.publisher.PublishReviewCreated(&created); err != nil {
			slog.Warn("publishing review.created failed", "review_id", created.ID, "error", err)
		}
	}(*rv)

	summary := buildSummary(*rv, user, listing, nil)
	return &summary, nil
}

func ratesInRange(rates ...float64) bool {
	for _, r := range rates {
		if r < model.MinRate || r > model.MaxRate {
			return false
		}
	}
	return true
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID, userID uuid.UUID) error {
	rv, err := s.reviewRepo.FindByIDAndUser(ctx, reviewID, userID)
	if err != nil {
		return err
	}
	if rv == nil || rv.IsDeleted() {
		return ErrReviewNotFound
	}

	if err := s.reviewRepo.SoftDelete(ctx, reviewID, time.Now()); err != nil {
		return err
	}
	slog.InfoContext(ctx, "review deleted", "review_id", reviewID, "user_id", userID)

	go func() {
		if err := s.publisher.PublishReviewDeleted(reviewID, userID); err != nil {
			slog.Warn("publishing review.deleted failed", "review_id", reviewID, "error", err)
		}
	}()

	return nil
}

// lookup memoizes users, listings and main images for one request.
type lookup struct {
	s        *reviewService
	users    map[uuid.UUID]*model.User
	listings map[uuid.UUID]*model.Listing
	images   map[uuid.UUID]*string
}

func (s *reviewService) newLookup() *lookup {
	return &lookup{
		s:        s,
		users:    make(map[uuid.UUID]*model.User),
		listings: make(map[uuid.UUID]*model.Listing),
		images:   make(map[uuid.UUID]*string),
	}
}

func (l *lookup) user(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := l.users[id]; ok {
		return u, nil
	}
	u, err := l.s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	l.users[id] = u
	return u, nil
}

func (l *lookup) listing(ctx context.Context, id uuid.UUID) (*model.Listing, *string, error) {
	if listing, ok := l.listings[id]; ok {
		return listing, l.images[id], nil
	}
	listing, err := l.s.listingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if listing == nil {
		return nil, nil, ErrListingNotFound
	}
	imageURL, err := l.s.images.LookupMainImage(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	l.listings[id] = listing
	l.images[id] = imageURL
	return listing, imageURL, nil
}

func (l *lookup) summary(ctx context.Context, r model.Review) (*model.ReviewSummary, error) {
	writer, err := l.user(ctx, r.UserID)
	if err != nil {
		return nil, err
	}
	listing, imageURL, err := l.listing(ctx, r.ListingID)
	if err != nil {
		return nil, err
	}
	summary := buildSummary(r, writer, listing, imageURL)
	return &summary, nil
}

func buildSummary(r model.Review, writer *model.User, listing *model.Listing, imageURL *string) model.ReviewSummary {
	return model.ReviewSummary{
		ReviewID:      r.ID,
		ListingID:     r.ListingID,
		Nickname:      writer.Nickname,
		Address:       r.Address,
		AddressDetail: r.AddressDetail,
		RoomType:      listing.RoomType,
		TotalRate:     r.TotalRate,
		Content:       r.Content,
		ImageURL:      imageURL,
		StartedAt:     r.StartedAt,
		EndedAt:       r.EndedAt,
		CreatedAt:     r.CreatedAt,
	}
}

package api

import (
	"context"

	"review-service/internal/model"
	"review-service/internal/service"

	"github.com/google/uuid"
)

type stubReviewService struct {
	lastPage    int
	lastAddress string
	lastUser    uuid.UUID
	lastReview  uuid.UUID
	err         error
}

func (s *stubReviewService) GetRecentReviews(_ context.Context, page int) ([]model.ReviewSummary, error) {
	s.lastPage = page
	return []model.ReviewSummary{{Address: "recent"}}, s.err
}

func (s *stubReviewService) GetReviewsByStar(_ context.Context, page int) ([]model.ReviewSummary, error) {
	s.lastPage = page
	return []model.ReviewSummary{{Address: "star"}}, s.err
}

func (s *stubReviewService) GetReviewsByAddress(_ context.Context, address string) (*model.ReviewDetailSummary, error) {
	s.lastAddress = address
	if s.err != nil {
		return nil, s.err
	}
	return &model.ReviewDetailSummary{Address: address, ReviewCount: 3, AvgTotalRate: 4}, nil
}

func (s *stubReviewService) GetOtherReviews(_ context.Context, address string, page int) ([]model.OtherReview, error) {
	s.lastAddress, s.lastPage = address, page
	return []model.OtherReview{}, s.err
}

func (s *stubReviewService) SearchReviewsGroupedByAddress(_ context.Context, filter string) ([]model.ReviewSearchResult, error) {
	s.lastAddress = filter
	return []model.ReviewSearchResult{}, s.err
}

func (s *stubReviewService) SubmitReview(_ context.Context, req service.SubmitReviewRequest, userID uuid.UUID) (*model.ReviewSummary, error) {
	s.lastAddress, s.lastUser = req.Address, userID
	if s.err != nil {
		return nil, s.err
	}
	return &model.ReviewSummary{ReviewID: uuid.New(), Address: req.Address}, nil
}

func (s *stubReviewService) DeleteReview(_ context.Context, reviewID, userID uuid.UUID) error {
	s.lastReview, s.lastUser = reviewID, userID
	return s.err
}

type stubTokenService struct {
	expired     bool
	lastCaller  uuid.UUID
	lastAccess  string
	lastRefresh string
	err         error
}

func (s *stubTokenService) IsExpired(accessToken string) bool {
	s.lastAccess = accessToken
	return s.expired
}

func (s *stubTokenService) Reissue(_ context.Context, callerID uuid.UUID, accessToken, refreshToken string) (*model.TokenRecord, error) {
	s.lastCaller, s.lastAccess, s.lastRefresh = callerID, accessToken, refreshToken
	if s.err != nil {
		return nil, s.err
	}
	return &model.TokenRecord{UserID: callerID, AccessToken: "rotated", RefreshToken: refreshToken}, nil
}

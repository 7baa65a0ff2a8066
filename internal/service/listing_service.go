package service

import (
	"context"
	"strings"

	"review-service/internal/model"
	"review-service/internal/repository"
	"review-service/internal/review"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type CreateListingRequest struct {
	RoomType      string  `json:"room_type" validate:"required"`
	Address       string  `json:"address" validate:"required,max=100"`
	AddressDetail string  `json:"address_detail" validate:"max=50"`
	Latitude      float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude     float64 `json:"longitude" validate:"min=-180,max=180"`
	Deposit       int64   `json:"deposit" validate:"min=0"`
	Price         int64   `json:"price" validate:"min=0"`
}

type ListingService interface {
	CreateListing(ctx context.Context, ownerID uuid.UUID, req CreateListingRequest) (*model.Listing, error)
	GetListing(ctx context.Context, id uuid.UUID) (*model.ListingDetail, error)
}

type listingService struct {
	listingRepo repository.ListingRepository
	reviewRepo  repository.ReviewRepository
	userRepo    repository.UserRepository
	images      *ImageResolver
	validate    *validator.Validate
}

func NewListingService(
	listingRepo repository.ListingRepository,
	reviewRepo repository.ReviewRepository,
	userRepo repository.UserRepository,
	images *ImageResolver,
) ListingService {
	return &listingService{
		listingRepo: listingRepo,
		reviewRepo:  reviewRepo,
		userRepo:    userRepo,
		images:      images,
		validate:    validator.New(),
	}
}

func (s *listingService) CreateListing(ctx context.Context, ownerID uuid.UUID, req CreateListingRequest) (*model.Listing, error) {
	if err := s.validate.Struct(&req); err != nil {
		return nil, validationError(err)
	}

	// The first four address tokens are the region parts.
	parts := strings.Fields(req.Address)
	if len(parts) < 4 {
		return nil, ErrInvalidAddress
	}

	owner, err := s.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ErrUserNotFound
	}

	listing := &model.Listing{
		OwnerID:       ownerID,
		RoomType:      req.RoomType,
		Address:       req.Address,
		AddressDetail: req.AddressDetail,
		Province:      parts[0],
		City:          parts[1],
		District:      parts[2],
		Neighborhood:  parts[3],
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Deposit:       req.Deposit,
		Price:         req.Price,
	}
	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

func (s *listingService) GetListing(ctx context.Context, id uuid.UUID) (*model.ListingDetail, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, ErrListingNotFound
	}

	imageURL, err := s.images.LookupMainImage(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.FindByListing(ctx, id)
	if err != nil {
		return nil, err
	}
	summary := review.Aggregate(review.Active(reviews))

	return &model.ListingDetail{
		Listing:     *listing,
		ImageURL:    imageURL,
		ReviewCount: summary.Count,
		AvgRate:     summary.TotalRate,
	}, nil
}

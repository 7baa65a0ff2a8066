package service

import (
	"context"
	"errors"
	"strings"

	"review-service/internal/model"
	"review-service/internal/repository"

	"github.com/google/uuid"
)

// URLSigner turns a bucket object key into a fetchable URL.
type URLSigner interface {
	PresignGetURL(ctx context.Context, objectKey string) (string, error)
}

// ImageResolver picks the main image of a listing or an address.
type ImageResolver struct {
	listingRepo repository.ListingRepository
	imageRepo   repository.ImageRepository
	signer      URLSigner
}

// NewImageResolver builds a resolver. signer may be nil, in which case stored
// URLs are returned as they are.
func NewImageResolver(listingRepo repository.ListingRepository, imageRepo repository.ImageRepository, signer URLSigner) *ImageResolver {
	return &ImageResolver{
		listingRepo: listingRepo,
		imageRepo:   imageRepo,
		signer:      signer,
	}
}

// ResolveMainImage returns the URL of the first main-flagged listing photo,
// or ErrImageNotFound.
func (r *ImageResolver) ResolveMainImage(ctx context.Context, listingID uuid.UUID) (string, error) {
	images, err := r.imageRepo.FindByTarget(ctx, listingID, model.ImageTypeListing)
	if err != nil {
		return "", err
	}

	for _, img := range images {
		if img.IsMain {
			return r.publicURL(ctx, img.URL)
		}
	}

	return "", ErrImageNotFound
}

// ResolveMainImageByAddress resolves the oldest listing at exactly address,
// then its main image.
func (r *ImageResolver) ResolveMainImageByAddress(ctx context.Context, address string) (string, error) {
	listing, err := r.listingRepo.FindFirstByAddress(ctx, address)
	if err != nil {
		return "", err
	}
	if listing == nil {
		return "", ErrListingNotFound
	}
	return r.ResolveMainImage(ctx, listing.ID)
}

// LookupMainImage is ResolveMainImage with not-found reported as nil.
func (r *ImageResolver) LookupMainImage(ctx context.Context, listingID uuid.UUID) (*string, error) {
	return optional(r.ResolveMainImage(ctx, listingID))
}

// LookupMainImageByAddress is ResolveMainImageByAddress with not-found
// reported as nil.
func (r *ImageResolver) LookupMainImageByAddress(ctx context.Context, address string) (*string, error) {
	return optional(r.ResolveMainImageByAddress(ctx, address))
}

// ReviewImages returns the URLs of every photo attached to a review.
func (r *ImageResolver) ReviewImages(ctx context.Context, reviewID uuid.UUID) ([]string, error) {
	images, err := r.imageRepo.FindByTarget(ctx, reviewID, model.ImageTypeReview)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(images))
	for _, img := range images {
		u, err := r.publicURL(ctx, img.URL)
		if err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, nil
}

func (r *ImageResolver) publicURL(ctx context.Context, stored string) (string, error) {
	if r.signer == nil || strings.HasPrefix(stored, "http://") || strings.HasPrefix(stored, "https://") {
		return stored, nil
	}
	return r.signer.PresignGetURL(ctx, stored)
}

func optional(url string, err error) (*string, error) {
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &url, nil
}

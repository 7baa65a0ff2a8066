package review

import (
	"fmt"
	"sort"

	"review-service/internal/model"
)

// SortKey selects the ordering of a flat review feed.
type SortKey int

const (
	// SortRecent orders by creation time, newest first.
	SortRecent SortKey = iota
	// SortStar orders by total rating, highest first.
	SortStar
)

func (k SortKey) String() string {
	switch k {
	case SortRecent:
		return "recent"
	case SortStar:
		return "star"
	default:
		return fmt.Sprintf("SortKey(%d)", int(k))
	}
}

// Active drops soft-deleted reviews, keeping order.
func Active(reviews []model.Review) []model.Review {
	out := make([]model.Review, 0, len(reviews))
	for _, r := range reviews {
		if r.IsDeleted() {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SortReviews returns a sorted copy. Equal keys keep their input order.
func SortReviews(reviews []model.Review, key SortKey) []model.Review {
	out := copyReviews(reviews)
	switch key {
	case SortStar:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].TotalRate > out[j].TotalRate
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

// RankedGroup is a group with its precomputed Summary.
type RankedGroup struct {
	Group
	Summary Summary
}

// RankGroups orders groups by average total rating, highest first. Equal
// averages keep their input order.
func RankGroups(groups []Group) []RankedGroup {
	out := make([]RankedGroup, len(groups))
	for i, g := range groups {
		out[i] = RankedGroup{Group: g, Summary: g.Summary()}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Summary.TotalRate > out[j].Summary.TotalRate
	})
	return out
}

// Paginate returns page (zero-indexed) of items. Pages past the end and
// non-positive sizes yield an empty, non-nil slice.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page < 0 || pageSize <= 0 {
		return []T{}
	}
	start := page * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

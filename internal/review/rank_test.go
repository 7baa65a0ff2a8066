package review_test

import (
	"testing"
	"time"

	"review-service/internal/model"
	"review-service/internal/review"

	"github.com/stretchr/testify/require"
)

func feed(n int) []model.Review {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.Review, n)
	for i := range out {
		out[i] = model.Review{
			Content:   string(rune('a' + i%26)),
			TotalRate: float64(i % 6),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}
	return out
}

func TestPaginate_Bounds(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}

	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, review.Paginate(items, 0, 10))
	require.Equal(t, []int{10, 11, 12, 13, 14}, review.Paginate(items, 1, 10))
	require.Empty(t, review.Paginate(items, 2, 10))
	require.NotNil(t, review.Paginate(items, 7, 10))
	require.Empty(t, review.Paginate(items, -1, 10))
	require.Empty(t, review.Paginate(items, 0, 0))
}

func TestPaginate_ConcatenatedPagesEqualSortedPrefix(t *testing.T) {
	sorted := review.SortReviews(feed(23), review.SortStar)

	for _, size := range []int{1, 5, 7} {
		var joined []model.Review
		for p := 0; p < 3; p++ {
			page := review.Paginate(sorted, p, size)
			require.LessOrEqual(t, len(page), size)
			joined = append(joined, page...)
		}
		require.Equal(t, sorted[:3*size], joined)
	}
}

func TestSortReviews_Recent(t *testing.T) {
	sorted := review.SortReviews(feed(5), review.SortRecent)
	for i := 1; i < len(sorted); i++ {
		require.True(t, sorted[i-1].CreatedAt.After(sorted[i].CreatedAt))
	}
}

func TestSortReviews_StableOnTies(t *testing.T) {
	in := []model.Review{
		{Content: "first", TotalRate: 3},
		{Content: "top", TotalRate: 5},
		{Content: "second", TotalRate: 3},
		{Content: "third", TotalRate: 3},
	}

	out := review.SortReviews(in, review.SortStar)
	require.Equal(t, []string{"top", "first", "second", "third"}, contents(out))
	require.Equal(t, "first", in[0].Content, "input must not be reordered")
}

func TestActive_DropsSoftDeleted(t *testing.T) {
	deletedAt := time.Now()
	in := []model.Review{
		{Content: "kept", TotalRate: 1},
		{Content: "gone", TotalRate: 5, DeletedAt: &deletedAt},
		{Content: "also kept", TotalRate: 2},
	}

	out := review.Active(in)
	require.Equal(t, []string{"kept", "also kept"}, contents(out))
	for _, key := range []review.SortKey{review.SortRecent, review.SortStar} {
		require.NotContains(t, contents(review.SortReviews(out, key)), "gone")
	}
}

func TestRankGroups_ByAverageThenInputOrder(t *testing.T) {
	reviews := []model.Review{
		rated("low", 1), rated("mid-a", 3), rated("high", 5),
		rated("mid-b", 4), rated("mid-b", 2), rated("high", 4),
	}

	ranked := review.RankGroups(review.GroupByAddress(reviews).Groups())
	require.Len(t, ranked, 4)

	var order []string
	for _, g := range ranked {
		order = append(order, g.Address)
	}
	require.Equal(t, []string{"high", "mid-a", "mid-b", "low"}, order)
	require.Equal(t, 4.5, ranked[0].Summary.TotalRate)
	require.Equal(t, 2, ranked[0].Summary.Count)
}

func TestSortKey_String(t *testing.T) {
	require.Equal(t, "recent", review.SortRecent.String())
	require.Equal(t, "star", review.SortStar.String())
	require.Equal(t, "SortKey(9)", review.SortKey(9).String())
}

func contents(reviews []model.Review) []string {
	out := make([]string, len(reviews))
	for i, r := range reviews {
		out[i] = r.Content
	}
	return out
}

package review

import "review-service/internal/model"

// Group is the set of reviews sharing one address.
type Group struct {
	Address string
	Reviews []model.Review
}

// Summary aggregates the group's reviews.
func (g Group) Summary() Summary {
	return Aggregate(g.Reviews)
}

// Index maps an address to its Group. Groups keep first-occurrence order and
// members keep input order. An Index is never modified after GroupByAddress
// returns it.
type Index struct {
	order  []string
	groups map[string][]model.Review
}

// GroupByAddress partitions reviews by exact address string. No trimming or
// case folding is applied.
func GroupByAddress(reviews []model.Review) *Index {
	idx := &Index{groups: make(map[string][]model.Review)}
	for _, r := range reviews {
		if _, ok := idx.groups[r.Address]; !ok {
			idx.order = append(idx.order, r.Address)
		}
		idx.groups[r.Address] = append(idx.groups[r.Address], r)
	}
	return idx
}

func (idx *Index) Len() int {
	return len(idx.order)
}

// Get returns a copy of the group for address.
func (idx *Index) Get(address string) (Group, bool) {
	members, ok := idx.groups[address]
	if !ok {
		return Group{}, false
	}
	return Group{Address: address, Reviews: copyReviews(members)}, true
}

// Groups returns copies of all groups in first-occurrence order.
func (idx *Index) Groups() []Group {
	out := make([]Group, 0, len(idx.order))
	for _, addr := range idx.order {
		out = append(out, Group{Address: addr, Reviews: copyReviews(idx.groups[addr])})
	}
	return out
}

func copyReviews(in []model.Review) []model.Review {
	out := make([]model.Review, len(in))
	copy(out, in)
	return out
}

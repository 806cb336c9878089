package ranking

import (
	"container/heap"
	"sort"

	"github.com/jonathan/job-matcher/internal/types"
)

// Order reports whether a ranks ahead of b.
type Order func(a, b types.MatchResult) bool

// ByScoreThenPosting ranks by score descending, breaking ties by posting id ascending.
// It is the order for candidate-anchored requests.
func ByScoreThenPosting(a, b types.MatchResult) bool {
	if a.MatchScore != b.MatchScore {
		return a.MatchScore > b.MatchScore
	}
	if a.PostingID != b.PostingID {
		return a.PostingID < b.PostingID
	}
	return a.CandidateID < b.CandidateID
}

// ByScoreThenCandidate ranks by score descending, breaking ties by candidate id ascending.
// It is the order for posting-anchored requests.
func ByScoreThenCandidate(a, b types.MatchResult) bool {
	if a.MatchScore != b.MatchScore {
		return a.MatchScore > b.MatchScore
	}
	if a.CandidateID != b.CandidateID {
		return a.CandidateID < b.CandidateID
	}
	return a.PostingID < b.PostingID
}

// Sort orders results in place.
func Sort(results []types.MatchResult, before Order) {
	sort.SliceStable(results, func(i, j int) bool {
		return before(results[i], results[j])
	})
}

// TopK keeps the best k results offered to it without materializing the rest.
// Not safe for concurrent use.
type TopK struct {
	k    int
	heap *resultHeap
}

// NewTopK returns an empty selector for at most k results. k <= 0 keeps nothing.
func NewTopK(k int, before Order) *TopK {
	capacity := min(max(k, 0), 1024)
	return &TopK{
		k:    k,
		heap: &resultHeap{before: before, items: make([]types.MatchResult, 0, capacity)},
	}
}

// Offer considers r for inclusion.
func (t *TopK) Offer(r types.MatchResult) {
	if t.k <= 0 {
		return
	}
	h := t.heap
	if h.Len() < t.k {
		heap.Push(h, r)
		return
	}
	if h.before(r, h.items[0]) {
		h.items[0] = r
		heap.Fix(h, 0)
	}
}

// Merge offers every result kept by other.
func (t *TopK) Merge(other *TopK) {
	for _, r := range other.heap.items {
		t.Offer(r)
	}
}

// Len returns the number of results currently kept.
func (t *TopK) Len() int {
	return t.heap.Len()
}

// Results returns the kept results in rank order.
func (t *TopK) Results() []types.MatchResult {
	out := make([]types.MatchResult, len(t.heap.items))
	copy(out, t.heap.items)
	Sort(out, t.heap.before)
	return out
}

// resultHeap keeps the worst kept result at the root.
type resultHeap struct {
	before Order
	items  []types.MatchResult
}

func (h *resultHeap) Len() int { return len(h.items) }

func (h *resultHeap) Less(i, j int) bool { return h.before(h.items[j], h.items[i]) }

func (h *resultHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *resultHeap) Push(x any) { h.items = append(h.items, x.(types.MatchResult)) }

func (h *resultHeap) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

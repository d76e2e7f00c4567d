// Package bloom provides probabilistic de-duplication of listing URLs for
// batch capture runs.
package bloom

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// SeenFilter tracks listing URLs already submitted for capture. Batch input
// lists routinely repeat the same listing with different tracking parameters,
// so URLs are canonicalized before being tested.
type SeenFilter struct {
	f *bloom.BloomFilter
}

// NewSeenFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewSeenFilter(n uint, fpRate float64) *SeenFilter {
	return &SeenFilter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen records the URL and reports whether it had already been recorded.
// False positives are possible; false negatives are not, so a false result
// guarantees the URL is new.
func (s *SeenFilter) Seen(url string) bool {
	return s.f.TestAndAddString(canonicalize(url))
}

// ApproxCount returns the approximate number of distinct URLs recorded.
func (s *SeenFilter) ApproxCount() uint {
	return uint(s.f.ApproximatedSize())
}

// canonicalize strips the query string and fragment and lowercases the URL so
// tracking-parameter variants of one listing collapse to one entry.
func canonicalize(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	return strings.ToLower(strings.TrimSuffix(strings.TrimSpace(url), "/"))
}

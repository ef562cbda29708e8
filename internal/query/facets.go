package query

import (
	"slices"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
)

// FacetCount is one facet value and the number of films carrying it.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FacetCounts tallies the non-empty values of facet across films, sorted
// by value. Each actor of a film counts separately.
func FacetCounts(films []catalog.Film, facet Facet) []FacetCount {
	counts := make(map[string]int)
	for _, f := range films {
		for _, v := range facetValues(f, facet) {
			counts[v]++
		}
	}
	out := make([]FacetCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, FacetCount{Value: v, Count: n})
	}
	c := newCollator()
	slices.SortFunc(out, func(a, b FacetCount) int {
		if r := c.CompareString(a.Value, b.Value); r != 0 {
			return r
		}
		return strings.Compare(a.Value, b.Value)
	})
	return out
}

// DistinctValues returns the sorted set of non-empty values of facet.
func DistinctValues(films []catalog.Film, facet Facet) []string {
	counts := FacetCounts(films, facet)
	out := make([]string, len(counts))
	for i, fc := range counts {
		out[i] = fc.Value
	}
	return out
}

func facetValues(f catalog.Film, facet Facet) []string {
	if facet == FacetActor {
		return f.ActorList()
	}
	v := facet.value(f)
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return []string{v}
}

// NarrowValues keeps the values that contain needle as a case-insensitive
// subsequence, closest matches first. An empty needle keeps everything.
func NarrowValues(values []string, needle string) []string {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return slices.Clone(values)
	}
	ranks := fuzzy.RankFindFold(needle, values)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	out := make([]string, len(ranks))
	for i, r := range ranks {
		out[i] = r.Target
	}
	return out
}

package domain

import (
	"sort"
	"time"
)

// FeedFilter holds the independently combinable feed filter flags.
type FeedFilter struct {
	CityInterest bool
	Follows      bool
	Relevancy    bool
}

// FeedParams holds pagination and filtering for feed composition.
type FeedParams struct {
	Page     int
	PageSize int
	Filter   FeedFilter
}

// Validate corrects out-of-bound values. This is bound correction, not
// validation.
func (p *FeedParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 10
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

// Feed composition split ratios. Each page is assembled from two
// sources: fresh filter matches (0.4 of the page) and the
// relevancy-ranked list (0.7 window).
const (
	freshPageRatio     = 0.4
	relevancyPageRatio = 0.7
)

// FreshLimit returns how many fresh candidate items one feed page
// takes: floor(pageSize * 0.4).
func FreshLimit(pageSize int) int {
	return int(float64(pageSize) * freshPageRatio)
}

// GroupTipsByDay partitions tips into groups sharing the same calendar
// day of creation (UTC). Groups appear in first-seen order; tips keep
// their input order inside each group.
func GroupTipsByDay(tips []*Tip) [][]*Tip {
	var groups [][]*Tip
	index := make(map[string]int)

	for _, t := range tips {
		day := t.CreatedAt.UTC().Format(time.DateOnly)
		if i, ok := index[day]; ok {
			groups[i] = append(groups[i], t)
			continue
		}
		index[day] = len(groups)
		groups = append(groups, []*Tip{t})
	}

	return groups
}

// SortByRelevancyPerDay reorders tips by engagement score inside each
// calendar-day group and concatenates the groups in their original day
// order. Within a group the sort is ascending by score; ties keep
// their input order.
func SortByRelevancyPerDay(tips []*Tip) []*Tip {
	groups := GroupTipsByDay(tips)

	sorted := make([]*Tip, 0, len(tips))
	for _, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			return EngagementScore(group[i], time.Time{}, time.Time{}) <
				EngagementScore(group[j], time.Time{}, time.Time{})
		})
		sorted = append(sorted, group...)
	}

	return sorted
}

// RelevancySlice returns the portion of the relevancy-ordered list that
// belongs on the given page:
//
//	[ floor((page-1)*pageSize*0.7), (page-1)*pageSize + floor(pageSize*0.7) )
//
// The start and end use different arithmetic on purpose, so the window
// widens relative to its start as pages advance. Bounds are clamped to
// the list.
func RelevancySlice(sorted []*Tip, page, pageSize int) []*Tip {
	start := int(float64((page-1)*pageSize) * relevancyPageRatio)
	end := (page-1)*pageSize + int(float64(pageSize)*relevancyPageRatio)

	if start >= len(sorted) || start >= end {
		return nil
	}
	if end > len(sorted) {
		end = len(sorted)
	}

	return sorted[start:end]
}

// TipIDs returns the ids of the given tips, preserving order.
func TipIDs(tips []*Tip) []int {
	ids := make([]int, len(tips))
	for i, t := range tips {
		ids[i] = t.ID
	}

	return ids
}

package domain

import "sort"

// RankedPlace pairs a place with its distance from the ranking anchor.
type RankedPlace[P Place] struct {
	Place    P
	Distance float64 // kilometers
}

// RankByProximity orders candidates by ascending distance from the
// candidate identified by anchorID. The anchor itself is excluded from
// the result. Ties keep input order (stable sort).
//
// When both page and pageSize are positive the result is the 1-based
// page slice; out-of-range pages yield an empty result. Otherwise the
// full ordered sequence is returned.
//
// If the anchor is not among the candidates the result is empty. This
// mirrors the behavior the ranking inherited from the product it
// replaced; callers that consider it a lookup failure must check for
// the anchor themselves.
func RankByProximity[P Place](anchorID int, candidates []P, page, pageSize int) []RankedPlace[P] {
	var anchor *P
	for i := range candidates {
		if candidates[i].PlaceID() == anchorID {
			anchor = &candidates[i]
			break
		}
	}
	if anchor == nil {
		return nil
	}

	origin := (*anchor).Location()
	ranked := make([]RankedPlace[P], 0, len(candidates)-1)
	for _, c := range candidates {
		if c.PlaceID() == anchorID {
			continue
		}
		ranked = append(ranked, RankedPlace[P]{
			Place:    c,
			Distance: Distance(origin, c.Location()),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})

	if page > 0 && pageSize > 0 {
		return pageSlice(ranked, page, pageSize)
	}

	return ranked
}

// pageSlice returns the 1-based page of size pageSize, clamped to the
// bounds of s. Out-of-range pages yield an empty slice.
func pageSlice[T any](s []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(s) {
		return nil
	}
	end := start + pageSize
	if end > len(s) {
		end = len(s)
	}

	return s[start:end]
}

package domain

import "time"

// Engagement weights. Business policy constants; downstream ordering
// depends on their exact values.
const (
	likeWeight    = 0.3
	commentWeight = 0.7
)

// EngagementScore computes the relevancy score for a tip:
//
//	score = likeCount * 0.3 * (commentCount * 0.7)
//
// Only events with windowStart <= createdAt <= windowEnd are counted.
// A zero windowStart or windowEnd leaves that side of the window open.
// A nil tip, or a tip with no qualifying likes or no qualifying
// comments, scores 0.
func EngagementScore(t *Tip, windowStart, windowEnd time.Time) float64 {
	if t == nil {
		return 0
	}

	likes := countInWindow(t.Likes, windowStart, windowEnd)
	comments := countInWindow(t.Comments, windowStart, windowEnd)

	return float64(likes) * likeWeight * (float64(comments) * commentWeight)
}

func countInWindow(events []EngagementEvent, start, end time.Time) int {
	n := 0
	for _, e := range events {
		if !start.IsZero() && e.CreatedAt.Before(start) {
			continue
		}
		if !end.IsZero() && e.CreatedAt.After(end) {
			continue
		}
		n++
	}

	return n
}

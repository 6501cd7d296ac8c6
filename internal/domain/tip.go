package domain

import "time"

// EngagementEvent is a single like or comment on a piece of content.
// The scorer only ever counts events inside a window; individual
// events are never inspected beyond their timestamp.
type EngagementEvent struct {
	SubjectID int       `json:"subjectId"`
	ActorID   int       `json:"actorId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Tip is a user's travel tip about a city, the content item the feed
// is composed of. The ranking core treats tips as read-only input;
// creation and like/comment side effects are owned by other services.
type Tip struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	CityID    int       `json:"cityId"`
	Message   string    `json:"message"`
	Medias    []string  `json:"medias,omitempty"`
	CreatedAt time.Time `json:"createdAt"`

	Likes    []EngagementEvent `json:"-"`
	Comments []EngagementEvent `json:"-"`
}

// IsLikedBy reports whether userID appears among the tip's like events.
func (t *Tip) IsLikedBy(userID int) bool {
	for _, l := range t.Likes {
		if l.ActorID == userID {
			return true
		}
	}

	return false
}

// FeedItem is a tip annotated with the per-viewer fields the feed
// returns to callers.
type FeedItem struct {
	Tip
	IsLiked        bool `json:"isLiked"`
	LikesAmount    int  `json:"likesAmount"`
	CommentsAmount int  `json:"commentsAmount"`
}

// InterestEvent records a user's declared interest in a city, the raw
// signal behind trending and recommendations. Append-only from the
// core's perspective.
type InterestEvent struct {
	UserID    int       `json:"userId"`
	CityID    int       `json:"cityId"`
	CreatedAt time.Time `json:"createdAt"`
}

// VisitRecord is one user's completed, possibly rated, visit to a
// city. Storage enforces at most one record per (user, city) pair; all
// ranking math assumes that invariant holds.
type VisitRecord struct {
	UserID    int       `json:"userId"`
	CityID    int       `json:"cityId"`
	Rating    *float64  `json:"rating"`
	Message   *string   `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

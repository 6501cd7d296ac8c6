package postgres

import (
	"time"

	"github.com/lib/pq"

	"trip-feed-service/internal/domain"
)

// CountryModel is the GORM model for the countries table.
type CountryModel struct {
	ID          int     `gorm:"primaryKey"`
	Name        string  `gorm:"type:varchar(100);not null"`
	Iso2        string  `gorm:"type:char(2);not null;uniqueIndex"`
	ContinentID int     `gorm:"not null;index"`
	Latitude    float64 `gorm:"type:decimal(9,6);not null"`
	Longitude   float64 `gorm:"type:decimal(9,6);not null"`
}

// TableName returns the table name for CountryModel.
func (CountryModel) TableName() string { return "countries" }

// ToDomain converts CountryModel to domain.Country.
func (m *CountryModel) ToDomain() domain.Country {
	return domain.Country{
		ID:          m.ID,
		Name:        m.Name,
		Iso2:        m.Iso2,
		ContinentID: m.ContinentID,
		Latitude:    m.Latitude,
		Longitude:   m.Longitude,
	}
}

// RegionModel is the GORM model for the regions table.
type RegionModel struct {
	ID        int     `gorm:"primaryKey"`
	Name      string  `gorm:"type:varchar(100);not null"`
	CountryID int     `gorm:"not null;index"`
	Latitude  float64 `gorm:"type:decimal(9,6);not null"`
	Longitude float64 `gorm:"type:decimal(9,6);not null"`

	Country CountryModel `gorm:"foreignKey:CountryID"`
}

// TableName returns the table name for RegionModel.
func (RegionModel) TableName() string { return "regions" }

// ToDomain converts RegionModel to domain.Region.
func (m *RegionModel) ToDomain() domain.Region {
	return domain.Region{
		ID:        m.ID,
		Name:      m.Name,
		CountryID: m.CountryID,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
	}
}

// CityModel is the GORM model for the cities table.
type CityModel struct {
	ID        int     `gorm:"primaryKey"`
	Name      string  `gorm:"type:varchar(100);not null"`
	RegionID  int     `gorm:"not null;index"`
	Latitude  float64 `gorm:"type:decimal(9,6);not null"`
	Longitude float64 `gorm:"type:decimal(9,6);not null"`

	Region RegionModel `gorm:"foreignKey:RegionID"`
}

// TableName returns the table name for CityModel.
func (CityModel) TableName() string { return "cities" }

// ToDomain converts CityModel to domain.City.
func (m *CityModel) ToDomain() domain.City {
	return domain.City{
		ID:        m.ID,
		Name:      m.Name,
		RegionID:  m.RegionID,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
	}
}

// UserModel is the GORM model for the users table. CityID is the
// user's home city, nullable for users without a declared residence.
type UserModel struct {
	ID        int       `gorm:"primaryKey"`
	Username  string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	CityID    *int      `gorm:"index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for UserModel.
func (UserModel) TableName() string { return "users" }

// FollowModel is one follower/following edge.
type FollowModel struct {
	FollowerID  int       `gorm:"primaryKey;autoIncrement:false"`
	FollowingID int       `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for FollowModel.
func (FollowModel) TableName() string { return "follows" }

// TipModel is the GORM model for the tips table.
type TipModel struct {
	ID        int            `gorm:"primaryKey"`
	UserID    int            `gorm:"not null;index"`
	CityID    int            `gorm:"not null;index"`
	Message   string         `gorm:"type:text;not null"`
	Medias    pq.StringArray `gorm:"type:text[]"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`

	Likes    []TipLikeModel    `gorm:"foreignKey:TipID"`
	Comments []TipCommentModel `gorm:"foreignKey:TipID"`
}

// TableName returns the table name for TipModel.
func (TipModel) TableName() string { return "tips" }

// ToDomain converts TipModel to domain.Tip, carrying the preloaded
// like and comment events.
func (m *TipModel) ToDomain() *domain.Tip {
	t := &domain.Tip{
		ID:        m.ID,
		UserID:    m.UserID,
		CityID:    m.CityID,
		Message:   m.Message,
		Medias:    m.Medias,
		CreatedAt: m.CreatedAt,
	}

	for _, l := range m.Likes {
		t.Likes = append(t.Likes, domain.EngagementEvent{
			SubjectID: l.TipID,
			ActorID:   l.UserID,
			CreatedAt: l.CreatedAt,
		})
	}
	for _, c := range m.Comments {
		t.Comments = append(t.Comments, domain.EngagementEvent{
			SubjectID: c.TipID,
			ActorID:   c.UserID,
			CreatedAt: c.CreatedAt,
		})
	}

	return t
}

// TipLikeModel is one like on a tip, at most one per (tip, user).
type TipLikeModel struct {
	TipID     int       `gorm:"primaryKey;autoIncrement:false"`
	UserID    int       `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

// TableName returns the table name for TipLikeModel.
func (TipLikeModel) TableName() string { return "tip_likes" }

// TipCommentModel is one comment on a tip.
type TipCommentModel struct {
	ID        int       `gorm:"primaryKey"`
	TipID     int       `gorm:"not null;index"`
	UserID    int       `gorm:"not null"`
	Message   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

// TableName returns the table name for TipCommentModel.
func (TipCommentModel) TableName() string { return "tip_comments" }

// CityInterestModel records a user's declared interest in a city.
type CityInterestModel struct {
	UserID    int       `gorm:"primaryKey;autoIncrement:false"`
	CityID    int       `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

// TableName returns the table name for CityInterestModel.
func (CityInterestModel) TableName() string { return "city_interests" }

// CityVisitModel is one user's visit of a city. Rating and Message are
// null for unreviewed visits. The composite key keeps visits unique
// per (user, city).
type CityVisitModel struct {
	UserID    int       `gorm:"primaryKey;autoIncrement:false"`
	CityID    int       `gorm:"primaryKey;autoIncrement:false;index"`
	Rating    *float64  `gorm:"type:decimal(3,1)"`
	Message   *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

// TableName returns the table name for CityVisitModel.
func (CityVisitModel) TableName() string { return "city_visits" }

// ToDomain converts CityVisitModel to domain.VisitRecord.
func (m *CityVisitModel) ToDomain() *domain.VisitRecord {
	return &domain.VisitRecord{
		UserID:    m.UserID,
		CityID:    m.CityID,
		Rating:    m.Rating,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}

// cityDetailRow is the scan target for city queries joined with region
// and country names.
type cityDetailRow struct {
	ID        int
	Name      string
	RegionID  int
	Latitude  float64
	Longitude float64
	Region    string
	Iso2      string
	Country   string
}

func (r *cityDetailRow) toDomain() domain.CityDetail {
	return domain.CityDetail{
		City: domain.City{
			ID:        r.ID,
			Name:      r.Name,
			RegionID:  r.RegionID,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		},
		Region:      r.Region,
		CountryIso2: r.Iso2,
		Country:     r.Country,
	}
}

package db

import (
	"time"
)

// Candidate is the store-held projection of a rankable entity. Rows are
// owned by the originating vertical; the engine only reads them.
//
// Composite PK: (EntityType, ID)
//   - ids are only unique within a vertical.
//
// Indexes:
//   - idx_candidate_type_lat_lon(entity_type, lat, lon)
//     Serves the bounding-box prefilter of radius queries.
//   - idx_candidate_type_fresh(entity_type, fresh_at DESC)
//     Serves unlocated NEWEST scans.
type Candidate struct {
	EntityType string   `gorm:"primaryKey;size:16;index:idx_candidate_type_lat_lon,priority:1;index:idx_candidate_type_fresh,priority:1"`
	ID         uint64   `gorm:"primaryKey;autoIncrement:false"`
	Lat        *float64 `gorm:"index:idx_candidate_type_lat_lon,priority:2"`
	Lon        *float64 `gorm:"index:idx_candidate_type_lat_lon,priority:3"`

	Gender   string `gorm:"size:32"`
	BodyType string `gorm:"size:32"`
	Race     string `gorm:"size:32"`
	JobType  string `gorm:"size:32"`

	Age         *int
	Price       *float64
	Rating      float64 `gorm:"not null;default:0"`
	ReviewCount int     `gorm:"not null;default:0"`

	FreshAt   time.Time `gorm:"not null;index:idx_candidate_type_fresh,priority:2,sort:desc"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// SwipeDecision is a viewer's like/pass on a candidate. Append-only.
//
// Composite PK: (ViewerID, CandidateID)
//   - at most one decision per ordered pair; a second insert is a conflict,
//     never an overwrite.
//
// Indexes:
//   - idx_swipe_candidate_direction_created(candidate_id, direction, created_at DESC, viewer_id)
//     Serves "who liked me" lists and the reverse-like lookup.
type SwipeDecision struct {
	ViewerID    uint64    `gorm:"primaryKey;autoIncrement:false;index:idx_swipe_candidate_direction_created,priority:4"`
	CandidateID uint64    `gorm:"primaryKey;autoIncrement:false;index:idx_swipe_candidate_direction_created,priority:1"`
	Direction   string    `gorm:"size:8;not null;index:idx_swipe_candidate_direction_created,priority:2"`
	SuperLike   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index:idx_swipe_candidate_direction_created,priority:3,sort:desc"`
}

// Match is a mutual like, stored once per unordered pair.
//
// Composite PK: (UserA, UserB) with UserA < UserB
//   - the uniqueness constraint that makes match creation exactly-once
//     across service instances.
//
// Indexes:
//   - idx_match_user_b_created(user_b, created_at DESC)
//     The PK already covers lookups by user_a.
type Match struct {
	UserA     uint64    `gorm:"primaryKey;autoIncrement:false"`
	UserB     uint64    `gorm:"primaryKey;autoIncrement:false;index:idx_match_user_b_created,priority:1"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_match_user_b_created,priority:2,sort:desc"`
}

// Models lists every table for AutoMigrate.
func Models() []any {
	return []any{&Candidate{}, &SwipeDecision{}, &Match{}}
}

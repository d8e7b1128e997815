package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/muzz-discovery/internal/db"
	"github.com/oggyb/muzz-discovery/internal/domain"
	"github.com/oggyb/muzz-discovery/internal/geo"
)

// CandidateRepository is the geo index adapter over the primary SQL store.
// The store narrows rows with a bounding box; exact distances are computed
// here with the haversine formula.
type CandidateRepository struct {
	db *gorm.DB
}

// NewCandidateRepository creates a new repository bound to the given DB connection.
func NewCandidateRepository(database *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db: database}
}

// Query returns the unordered candidates of q.EntityType within q.RadiusKm
// of q.Origin, each with DistanceKm attached.
//
// Behavior:
//   - Origin + radius → bounding-box prefilter in SQL, exact radius check in Go.
//   - Origin, no radius → every candidate; unlocated ones keep a nil distance.
//   - No origin, no radius → every candidate, no distances.
//   - No origin + radius → domain.ErrMissingLocation.
func (r *CandidateRepository) Query(ctx context.Context, q domain.GeoQuery) ([]domain.Candidate, error) {
	if q.Origin == nil && q.RadiusKm > 0 {
		return nil, fmt.Errorf("%w: radius query without origin", domain.ErrMissingLocation)
	}

	query := r.db.WithContext(ctx).
		Model(&db.Candidate{}).
		Where("entity_type = ?", string(q.EntityType))

	if q.Origin != nil && q.RadiusKm > 0 {
		box := geo.BoundingBox(*q.Origin, q.RadiusKm)
		query = query.Where("lat BETWEEN ? AND ?", box.MinLat, box.MaxLat)
		switch len(box.Lons) {
		case 1:
			query = query.Where("lon BETWEEN ? AND ?", box.Lons[0].Min, box.Lons[0].Max)
		case 2:
			query = query.Where("((lon BETWEEN ? AND ?) OR (lon BETWEEN ? AND ?))",
				box.Lons[0].Min, box.Lons[0].Max, box.Lons[1].Min, box.Lons[1].Max)
		}
	}

	var rows []db.Candidate
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Candidate, 0, len(rows))
	for _, row := range rows {
		c := CandidateToDomain(row)
		if q.Origin != nil && c.Location != nil {
			d := geo.Haversine(*q.Origin, *c.Location)
			if q.RadiusKm > 0 && d > q.RadiusKm {
				continue
			}
			c.DistanceKm = &d
		}
		out = append(out, c)
	}
	return out, nil
}

// Upsert writes candidate projections on behalf of their owning verticals.
// Existing rows are overwritten attribute by attribute.
func (r *CandidateRepository) Upsert(ctx context.Context, cs []domain.Candidate) error {
	if len(cs) == 0 {
		return nil
	}
	rows := make([]db.Candidate, 0, len(cs))
	for _, c := range cs {
		rows = append(rows, CandidateFromDomain(c))
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "entity_type"}, {Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"lat", "lon", "gender", "body_type", "race", "job_type",
				"age", "price", "rating", "review_count", "fresh_at", "updated_at",
			}),
		}).
		CreateInBatches(rows, 200).Error
}

// CandidateToDomain converts a stored row into the engine's view.
func CandidateToDomain(row db.Candidate) domain.Candidate {
	c := domain.Candidate{
		ID:          row.ID,
		EntityType:  domain.EntityType(row.EntityType),
		Gender:      domain.Gender(row.Gender),
		BodyType:    domain.BodyType(row.BodyType),
		Race:        domain.Race(row.Race),
		JobType:     domain.JobType(row.JobType),
		Age:         row.Age,
		Price:       row.Price,
		Rating:      row.Rating,
		ReviewCount: row.ReviewCount,
		FreshAt:     row.FreshAt,
	}
	if row.Lat != nil && row.Lon != nil {
		c.Location = &geo.Point{Lat: *row.Lat, Lon: *row.Lon}
	}
	return c
}

// CandidateFromDomain converts the engine's view into a storable row.
func CandidateFromDomain(c domain.Candidate) db.Candidate {
	row := db.Candidate{
		EntityType:  string(c.EntityType),
		ID:          c.ID,
		Gender:      string(c.Gender),
		BodyType:    string(c.BodyType),
		Race:        string(c.Race),
		JobType:     string(c.JobType),
		Age:         c.Age,
		Price:       c.Price,
		Rating:      c.Rating,
		ReviewCount: c.ReviewCount,
		FreshAt:     c.FreshAt,
	}
	if c.Location != nil {
		lat, lon := c.Location.Lat, c.Location.Lon
		row.Lat, row.Lon = &lat, &lon
	}
	return row
}

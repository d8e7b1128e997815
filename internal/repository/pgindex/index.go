// Package pgindex is a geo index adapter over a Postgres read replica of the
// candidates table. Distances are computed in SQL with the same haversine
// formula and Earth radius as package geo, so both adapters rank identically.
package pgindex

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oggyb/muzz-discovery/internal/domain"
	"github.com/oggyb/muzz-discovery/internal/geo"
)

// Querier is the subset of *pgxpool.Pool the index needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Index answers geo queries from Postgres.
type Index struct {
	pool Querier
}

// New wraps a pgx pool (or any Querier).
func New(pool Querier) *Index {
	return &Index{pool: pool}
}

const selectColumns = `c.id, c.lat, c.lon,
	COALESCE(c.gender, ''), COALESCE(c.body_type, ''), COALESCE(c.race, ''), COALESCE(c.job_type, ''),
	c.age, c.price, c.rating, c.review_count, c.fresh_at`

const unlocatedSQL = `SELECT ` + selectColumns + `, NULL::float8 AS distance_km
FROM candidates c
WHERE c.entity_type = $1`

// $2/$3 origin lat/lon; least() keeps rounding near antipodes inside asin's domain
const distanceExpr = `2 * 6371.0088 * asin(least(1, sqrt(
	power(sin(radians(c.lat - $2) / 2), 2) +
	cos(radians($2)) * cos(radians(c.lat)) * power(sin(radians(c.lon - $3) / 2), 2))))`

const locatedSQL = `SELECT ` + selectColumns + `,
	CASE WHEN c.lat IS NULL OR c.lon IS NULL THEN NULL ELSE ` + distanceExpr + ` END AS distance_km
FROM candidates c
WHERE c.entity_type = $1`

// $4/$5 bounding-box latitudes, $6 radius
const radiusSQL = `SELECT * FROM (
	SELECT ` + selectColumns + `, ` + distanceExpr + ` AS distance_km
	FROM candidates c
	WHERE c.entity_type = $1
	  AND c.lat BETWEEN $4 AND $5
	  AND c.lon IS NOT NULL
) within_box
WHERE distance_km <= $6`

// Query implements the discovery geo index contract.
func (i *Index) Query(ctx context.Context, q domain.GeoQuery) ([]domain.Candidate, error) {
	var (
		rows pgx.Rows
		err  error
	)
	switch {
	case q.Origin == nil && q.RadiusKm > 0:
		return nil, fmt.Errorf("%w: radius query without origin", domain.ErrMissingLocation)
	case q.Origin == nil:
		rows, err = i.pool.Query(ctx, unlocatedSQL, string(q.EntityType))
	case q.RadiusKm <= 0:
		rows, err = i.pool.Query(ctx, locatedSQL, string(q.EntityType), q.Origin.Lat, q.Origin.Lon)
	default:
		box := geo.BoundingBox(*q.Origin, q.RadiusKm)
		rows, err = i.pool.Query(ctx, radiusSQL,
			string(q.EntityType), q.Origin.Lat, q.Origin.Lon, box.MinLat, box.MaxLat, q.RadiusKm)
	}
	if err != nil {
		return nil, fmt.Errorf("geo query: %w", err)
	}
	defer rows.Close()

	var out []domain.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows, q.EntityType)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("geo query rows: %w", err)
	}
	return out, nil
}

func scanCandidate(rows pgx.Rows, et domain.EntityType) (domain.Candidate, error) {
	var (
		id                          int64
		lat, lon, price, distance   *float64
		gender, body, race, jobType string
		age                         *int64
		rating                      float64
		reviews                     int64
		freshAt                     time.Time
	)
	if err := rows.Scan(&id, &lat, &lon, &gender, &body, &race, &jobType,
		&age, &price, &rating, &reviews, &freshAt, &distance); err != nil {
		return domain.Candidate{}, fmt.Errorf("scan candidate: %w", err)
	}

	c := domain.Candidate{
		ID:          uint64(id),
		EntityType:  et,
		Gender:      domain.Gender(gender),
		BodyType:    domain.BodyType(body),
		Race:        domain.Race(race),
		JobType:     domain.JobType(jobType),
		Price:       price,
		Rating:      rating,
		ReviewCount: int(reviews),
		FreshAt:     freshAt,
		DistanceKm:  distance,
	}
	if lat != nil && lon != nil {
		c.Location = &geo.Point{Lat: *lat, Lon: *lon}
	}
	if age != nil {
		a := int(*age)
		c.Age = &a
	}
	return c, nil
}

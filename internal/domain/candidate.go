package domain

import (
	"fmt"
	"time"

	"github.com/oggyb/muzz-discovery/internal/geo"
)

// EntityType tags which vertical a candidate belongs to.
type EntityType string

const (
	EntityProfile EntityType = "profile"
	EntityListing EntityType = "listing"
	EntityContent EntityType = "content"
	EntityJob     EntityType = "job"
	EntityEvent   EntityType = "event"
)

// EntityTypes lists every known vertical.
var EntityTypes = []EntityType{EntityProfile, EntityListing, EntityContent, EntityJob, EntityEvent}

// ParseEntityType validates s against the known verticals.
func ParseEntityType(s string) (EntityType, error) {
	for _, et := range EntityTypes {
		if string(et) == s {
			return et, nil
		}
	}
	return "", fmt.Errorf("%w: unknown entity type %q", ErrInvalidRequest, s)
}

// Candidate is a rankable entity returned by a discovery query. The engine
// never mutates one; the owning vertical does.
type Candidate struct {
	ID         uint64
	EntityType EntityType
	Location   *geo.Point

	Gender   Gender
	BodyType BodyType
	Race     Race
	JobType  JobType

	Age         *int
	Price       *float64 // minimum advertised price
	Rating      float64
	ReviewCount int

	// FreshAt is last-active for profiles, created-at for everything else.
	FreshAt time.Time

	// DistanceKm is attached by the geo index when an origin was given.
	DistanceKm *float64
}

// CandidateIDs returns the ids of cs in order.
func CandidateIDs(cs []Candidate) []uint64 {
	ids := make([]uint64, len(cs))
	for i, c := range cs {
		ids[i] = c.ID
	}
	return ids
}

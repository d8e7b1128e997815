// Package discovery holds the wire messages and hand-written service
// descriptor of muzz.discovery.DiscoveryService. Messages travel with the
// JSON codec from package codec.
package discovery

// Location is a WGS84 point.
type Location struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

// IntRange is an inclusive range; nil bounds are open.
type IntRange struct {
	Min *int32 `json:"min,omitempty"`
	Max *int32 `json:"max,omitempty"`
}

// FloatRange is an inclusive range; nil bounds are open.
type FloatRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Filter lists allowed values per attribute (OR within, AND across).
type Filter struct {
	Genders   []string    `json:"genders,omitempty"`
	BodyTypes []string    `json:"body_types,omitempty"`
	Races     []string    `json:"races,omitempty"`
	JobTypes  []string    `json:"job_types,omitempty"`
	Age       *IntRange   `json:"age,omitempty"`
	Price     *FloatRange `json:"price,omitempty"`
	Rating    *FloatRange `json:"rating,omitempty"`
}

type DiscoverRequest struct {
	EntityType   string    `json:"entity_type" validate:"required"`
	Origin       *Location `json:"origin,omitempty"`
	RadiusKm     float64   `json:"radius_km,omitempty" validate:"gte=0"`
	Filter       *Filter   `json:"filter,omitempty"`
	SortKey      string    `json:"sort_key" validate:"required"`
	FallbackSort string    `json:"fallback_sort,omitempty"`
	Page         int32     `json:"page,omitempty"`
	PageSize     int32     `json:"page_size,omitempty"`
	Cursor       string    `json:"cursor,omitempty"`
}

func (x *DiscoverRequest) GetEntityType() string {
	if x != nil {
		return x.EntityType
	}
	return ""
}

func (x *DiscoverRequest) GetSortKey() string {
	if x != nil {
		return x.SortKey
	}
	return ""
}

func (x *DiscoverRequest) GetCursor() string {
	if x != nil {
		return x.Cursor
	}
	return ""
}

// Candidate is one ranked result.
type Candidate struct {
	Id            string    `json:"id"`
	EntityType    string    `json:"entity_type"`
	Location      *Location `json:"location,omitempty"`
	DistanceKm    *float64  `json:"distance_km,omitempty"`
	Gender        string    `json:"gender,omitempty"`
	BodyType      string    `json:"body_type,omitempty"`
	Race          string    `json:"race,omitempty"`
	JobType       string    `json:"job_type,omitempty"`
	Age           *int32    `json:"age,omitempty"`
	Price         *float64  `json:"price,omitempty"`
	Rating        float64   `json:"rating,omitempty"`
	ReviewCount   int32     `json:"review_count,omitempty"`
	FreshAtUnixMs int64     `json:"fresh_at_unix_ms"`
}

type DiscoverResponse struct {
	Items      []*Candidate `json:"items"`
	Page       int32        `json:"page"`
	PageSize   int32        `json:"page_size"`
	TotalCount int64        `json:"total_count"`
	TotalPages int32        `json:"total_pages"`
	HasMore    bool         `json:"has_more"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

type RefillQueueRequest struct {
	ViewerId        string    `json:"viewer_id" validate:"required,numeric"`
	SessionId       string    `json:"session_id" validate:"required,max=128"`
	Origin          *Location `json:"origin,omitempty"`
	RadiusKm        float64   `json:"radius_km,omitempty" validate:"gte=0"`
	Filter          *Filter   `json:"filter,omitempty"`
	Size            int32     `json:"size,omitempty" validate:"gte=0"`
	AllowNoLocation bool      `json:"allow_no_location,omitempty"`
}

func (x *RefillQueueRequest) GetViewerId() string {
	if x != nil {
		return x.ViewerId
	}
	return ""
}

type RefillQueueResponse struct {
	Candidates []*Candidate `json:"candidates"`
}

type ResetSessionRequest struct {
	ViewerId  string `json:"viewer_id" validate:"required,numeric"`
	SessionId string `json:"session_id" validate:"required,max=128"`
}

func (x *ResetSessionRequest) GetViewerId() string {
	if x != nil {
		return x.ViewerId
	}
	return ""
}

type ResetSessionResponse struct{}

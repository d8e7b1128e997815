package geo

import (
	"fmt"
	"math"
)

// EarthRadiusKm is the IUGG mean Earth radius used by Haversine.
const EarthRadiusKm = 6371.0088

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate reports whether p lies inside the valid lat/lon domain.
func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) {
		return fmt.Errorf("coordinate is NaN")
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", p.Lat)
	}
	if p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", p.Lon)
	}
	return nil
}

// Haversine returns the great-circle distance between a and b in kilometres.
func Haversine(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := lat2 - lat1
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	if h > 1 {
		h = 1
	}
	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// LonRange is an inclusive longitude band.
type LonRange struct {
	Min float64
	Max float64
}

// Box is a lat/lon rectangle enclosing a circle on the sphere. Lons holds one
// band normally and two when the circle crosses the antimeridian.
type Box struct {
	MinLat float64
	MaxLat float64
	Lons   []LonRange
}

// Contains reports whether p falls inside the box.
func (b Box) Contains(p Point) bool {
	if p.Lat < b.MinLat || p.Lat > b.MaxLat {
		return false
	}
	for _, r := range b.Lons {
		if p.Lon >= r.Min && p.Lon <= r.Max {
			return true
		}
	}
	return false
}

// BoundingBox returns a rectangle that contains every point within radiusKm
// of origin. It is a prefilter: callers must still check Haversine.
func BoundingBox(origin Point, radiusKm float64) Box {
	angular := radiusKm / EarthRadiusKm
	lat := radians(origin.Lat)
	lon := radians(origin.Lon)

	minLat := lat - angular
	maxLat := lat + angular

	// circle reaches a pole: every longitude is in play
	if minLat <= -math.Pi/2 || maxLat >= math.Pi/2 {
		return Box{
			MinLat: math.Max(degrees(minLat), -90),
			MaxLat: math.Min(degrees(maxLat), 90),
			Lons:   []LonRange{{Min: -180, Max: 180}},
		}
	}

	dLon := math.Asin(math.Sin(angular) / math.Cos(lat))
	minLon := degrees(lon - dLon)
	maxLon := degrees(lon + dLon)

	box := Box{MinLat: degrees(minLat), MaxLat: degrees(maxLat)}
	switch {
	case minLon < -180:
		box.Lons = []LonRange{{Min: minLon + 360, Max: 180}, {Min: -180, Max: maxLon}}
	case maxLon > 180:
		box.Lons = []LonRange{{Min: minLon, Max: 180}, {Min: -180, Max: maxLon - 360}}
	default:
		box.Lons = []LonRange{{Min: minLon, Max: maxLon}}
	}
	return box
}

func radians(d float64) float64 { return d * math.Pi / 180 }
func degrees(r float64) float64 { return r * 180 / math.Pi }

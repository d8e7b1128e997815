package discovery

import (
	"math"

	"golang.org/x/crypto/blake2b"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/oggyb/muzz-discovery/internal/discovery/filter"
	"github.com/oggyb/muzz-discovery/internal/domain"
	"github.com/oggyb/muzz-discovery/internal/geo"
)

const fingerprintSize = 16

// Fingerprint identifies (entity type, filter, effective sort, origin, radius).
// Equivalent filters (same lists in a different order, duplicates) hash the
// same; any change to the ordering inputs changes the hash.
func Fingerprint(et domain.EntityType, f domain.Filter, sort domain.SortKey, origin *geo.Point, radiusKm float64) []byte {
	f = filter.Normalize(f)

	var b []byte
	b = appendString(b, 1, string(et))
	b = appendString(b, 2, string(sort))
	if origin != nil {
		b = appendFloat(b, 3, origin.Lat)
		b = appendFloat(b, 4, origin.Lon)
	}
	b = appendFloat(b, 5, radiusKm)

	for _, g := range f.Genders {
		b = appendString(b, 10, string(g))
	}
	for _, v := range f.BodyTypes {
		b = appendString(b, 11, string(v))
	}
	for _, r := range f.Races {
		b = appendString(b, 12, string(r))
	}
	for _, j := range f.JobTypes {
		b = appendString(b, 13, string(j))
	}

	if f.Age.Min != nil {
		b = appendInt(b, 20, *f.Age.Min)
	}
	if f.Age.Max != nil {
		b = appendInt(b, 21, *f.Age.Max)
	}
	if f.Price.Min != nil {
		b = appendFloat(b, 22, *f.Price.Min)
	}
	if f.Price.Max != nil {
		b = appendFloat(b, 23, *f.Price.Max)
	}
	if f.Rating.Min != nil {
		b = appendFloat(b, 24, *f.Rating.Min)
	}
	if f.Rating.Max != nil {
		b = appendFloat(b, 25, *f.Rating.Max)
	}

	sum := blake2b.Sum256(b)
	return sum[:fingerprintSize]
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendFloat(b []byte, num protowire.Number, v float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

func appendInt(b []byte, num protowire.Number, v int) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeZigZag(int64(v)))
}

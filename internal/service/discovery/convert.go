package discovery

import (
	"strconv"

	"github.com/oggyb/muzz-discovery/internal/domain"
	"github.com/oggyb/muzz-discovery/internal/geo"
	pb "github.com/oggyb/muzz-discovery/internal/proto/discovery"
)

func toPoint(l *pb.Location) *geo.Point {
	if l == nil {
		return nil
	}
	return &geo.Point{Lat: l.Lat, Lon: l.Lon}
}

func toFilter(f *pb.Filter) domain.Filter {
	if f == nil {
		return domain.Filter{}
	}
	out := domain.Filter{
		Genders:   convertAll[domain.Gender](f.Genders),
		BodyTypes: convertAll[domain.BodyType](f.BodyTypes),
		Races:     convertAll[domain.Race](f.Races),
		JobTypes:  convertAll[domain.JobType](f.JobTypes),
	}
	if f.Age != nil {
		out.Age = domain.IntRange{Min: intPtr(f.Age.Min), Max: intPtr(f.Age.Max)}
	}
	if f.Price != nil {
		out.Price = domain.FloatRange{Min: f.Price.Min, Max: f.Price.Max}
	}
	if f.Rating != nil {
		out.Rating = domain.FloatRange{Min: f.Rating.Min, Max: f.Rating.Max}
	}
	return out
}

func convertAll[T ~string](in []string) []T {
	if len(in) == 0 {
		return nil
	}
	out := make([]T, len(in))
	for i, s := range in {
		out[i] = T(s)
	}
	return out
}

func intPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func toCandidate(c domain.Candidate) *pb.Candidate {
	out := &pb.Candidate{
		Id:            strconv.FormatUint(c.ID, 10),
		EntityType:    string(c.EntityType),
		DistanceKm:    c.DistanceKm,
		Gender:        string(c.Gender),
		BodyType:      string(c.BodyType),
		Race:          string(c.Race),
		JobType:       string(c.JobType),
		Price:         c.Price,
		Rating:        c.Rating,
		ReviewCount:   int32(c.ReviewCount),
		FreshAtUnixMs: c.FreshAt.UnixMilli(),
	}
	if c.Location != nil {
		out.Location = &pb.Location{Lat: c.Location.Lat, Lon: c.Location.Lon}
	}
	if c.Age != nil {
		a := int32(*c.Age)
		out.Age = &a
	}
	return out
}

func toCandidates(cs []domain.Candidate) []*pb.Candidate {
	out := make([]*pb.Candidate, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCandidate(c))
	}
	return out
}

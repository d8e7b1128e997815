// Package filter compiles a structured domain.Filter into a predicate over
// candidates. It is pure: no store access, no logging.
package filter

import (
	"fmt"
	"math"
	"slices"

	"github.com/oggyb/muzz-discovery/internal/domain"
)

// Predicate accepts or rejects one candidate.
type Predicate func(c domain.Candidate) bool

// Accept is the identity predicate.
func Accept(domain.Candidate) bool { return true }

// Compile validates f and returns the conjunction of its active attribute
// predicates. Invalid ranges and unknown categorical values fail with
// domain.ErrInvalidFilter instead of producing an empty result set.
func Compile(f domain.Filter) (Predicate, error) {
	if err := Validate(f); err != nil {
		return nil, err
	}

	var preds []Predicate

	if len(f.Genders) > 0 {
		set := setOf(f.Genders)
		preds = append(preds, func(c domain.Candidate) bool { _, ok := set[c.Gender]; return ok })
	}
	if len(f.BodyTypes) > 0 {
		set := setOf(f.BodyTypes)
		preds = append(preds, func(c domain.Candidate) bool { _, ok := set[c.BodyType]; return ok })
	}
	if len(f.Races) > 0 {
		set := setOf(f.Races)
		preds = append(preds, func(c domain.Candidate) bool { _, ok := set[c.Race]; return ok })
	}
	if len(f.JobTypes) > 0 {
		set := setOf(f.JobTypes)
		preds = append(preds, func(c domain.Candidate) bool { _, ok := set[c.JobType]; return ok })
	}

	// An active numeric range rejects candidates that do not carry the attribute.
	if f.Age.Active() {
		r := f.Age
		preds = append(preds, func(c domain.Candidate) bool {
			if c.Age == nil {
				return false
			}
			return inIntRange(*c.Age, r)
		})
	}
	if f.Price.Active() {
		r := f.Price
		preds = append(preds, func(c domain.Candidate) bool {
			if c.Price == nil {
				return false
			}
			return inFloatRange(*c.Price, r)
		})
	}
	if f.Rating.Active() {
		r := f.Rating
		preds = append(preds, func(c domain.Candidate) bool {
			if c.ReviewCount == 0 {
				return false
			}
			return inFloatRange(c.Rating, r)
		})
	}

	switch len(preds) {
	case 0:
		return Accept, nil
	case 1:
		return preds[0], nil
	}
	return func(c domain.Candidate) bool {
		for _, p := range preds {
			if !p(c) {
				return false
			}
		}
		return true
	}, nil
}

// Validate checks f without building a predicate.
func Validate(f domain.Filter) error {
	for _, g := range f.Genders {
		if !g.Valid() {
			return fmt.Errorf("%w: unknown gender %q", domain.ErrInvalidFilter, g)
		}
	}
	for _, b := range f.BodyTypes {
		if !b.Valid() {
			return fmt.Errorf("%w: unknown body type %q", domain.ErrInvalidFilter, b)
		}
	}
	for _, r := range f.Races {
		if !r.Valid() {
			return fmt.Errorf("%w: unknown race %q", domain.ErrInvalidFilter, r)
		}
	}
	for _, j := range f.JobTypes {
		if !j.Valid() {
			return fmt.Errorf("%w: unknown job type %q", domain.ErrInvalidFilter, j)
		}
	}
	if r := f.Age; r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		return fmt.Errorf("%w: age min %d > max %d", domain.ErrInvalidFilter, *r.Min, *r.Max)
	}
	if err := validateFloatRange("price", f.Price); err != nil {
		return err
	}
	return validateFloatRange("rating", f.Rating)
}

// Normalize returns a copy of f with every inclusion list sorted and
// de-duplicated, so equivalent filters share one fingerprint.
func Normalize(f domain.Filter) domain.Filter {
	out := f
	out.Genders = sortedUnique(f.Genders)
	out.BodyTypes = sortedUnique(f.BodyTypes)
	out.Races = sortedUnique(f.Races)
	out.JobTypes = sortedUnique(f.JobTypes)
	return out
}

func validateFloatRange(name string, r domain.FloatRange) error {
	if r.Min != nil && (math.IsNaN(*r.Min) || math.IsInf(*r.Min, 0)) {
		return fmt.Errorf("%w: %s min is not finite", domain.ErrInvalidFilter, name)
	}
	if r.Max != nil && (math.IsNaN(*r.Max) || math.IsInf(*r.Max, 0)) {
		return fmt.Errorf("%w: %s max is not finite", domain.ErrInvalidFilter, name)
	}
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		return fmt.Errorf("%w: %s min %v > max %v", domain.ErrInvalidFilter, name, *r.Min, *r.Max)
	}
	return nil
}

func inIntRange(v int, r domain.IntRange) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

func inFloatRange(v float64, r domain.FloatRange) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

func setOf[T comparable](vs []T) map[T]struct{} {
	set := make(map[T]struct{}, len(vs))
	for _, v := range vs {
		set[v] = struct{}{}
	}
	return set
}

func sortedUnique[T ~string](vs []T) []T {
	if len(vs) == 0 {
		return nil
	}
	out := slices.Clone(vs)
	slices.Sort(out)
	return slices.Compact(out)
}

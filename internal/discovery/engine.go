// Package discovery orchestrates the geo index, predicate compiler, ranker
// and pager into one query per vertical.
//
// Consistency: each call is a single logical read against the index. Nothing
// ties page N to page N+1 except the short-lived ranked snapshot cache;
// candidates may appear or disappear between pages once it expires.
package discovery

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/oggyb/muzz-discovery/internal/discovery/filter"
	"github.com/oggyb/muzz-discovery/internal/discovery/pager"
	"github.com/oggyb/muzz-discovery/internal/discovery/rank"
	"github.com/oggyb/muzz-discovery/internal/domain"
	"github.com/oggyb/muzz-discovery/internal/metrics"
)

// GeoIndex resolves the unordered candidate set for a vertical, with
// DistanceKm attached when an origin is given.
type GeoIndex interface {
	Query(ctx context.Context, q domain.GeoQuery) ([]domain.Candidate, error)
}

// Options tune paging and the ranked snapshot cache.
type Options struct {
	DefaultPageSize int
	MaxPageSize     int
	// SnapshotSize of 0 disables the snapshot cache.
	SnapshotSize int
	SnapshotTTL  time.Duration
}

// Engine answers discovery queries. It is safe for concurrent use.
type Engine struct {
	index     GeoIndex
	pager     pager.Pager
	snapshots *expirable.LRU[string, []domain.Candidate]
	log       *slog.Logger
}

// NewEngine wires an Engine over index.
func NewEngine(index GeoIndex, opts Options, log *slog.Logger) *Engine {
	e := &Engine{
		index: index,
		pager: pager.New(opts.DefaultPageSize, opts.MaxPageSize),
		log:   log,
	}
	if opts.SnapshotSize > 0 && opts.SnapshotTTL > 0 {
		e.snapshots = expirable.NewLRU[string, []domain.Candidate](opts.SnapshotSize, nil, opts.SnapshotTTL)
	}
	return e
}

// Pager exposes the engine's page size bounds.
func (e *Engine) Pager() pager.Pager { return e.pager }

// plan is a validated query, ready to run.
type plan struct {
	query       domain.Query
	sort        domain.SortKey
	pred        filter.Predicate
	fingerprint []byte
}

// Discover runs q and returns the requested page.
func (e *Engine) Discover(ctx context.Context, q domain.Query) (domain.Page, error) {
	start := time.Now()

	p, err := e.prepare(q)
	if err != nil {
		e.observe(q, "rejected", start)
		return domain.Page{}, err
	}
	page, size, err := e.pager.Resolve(q.Page, q.PageSize, q.Cursor, p.fingerprint)
	if err != nil {
		e.observe(q, "rejected", start)
		return domain.Page{}, err
	}

	ranked, err := e.ranked(ctx, p)
	if err != nil {
		e.observe(q, "error", start)
		return domain.Page{}, err
	}

	e.observe(q, "ok", start)
	return e.pager.Page(ranked, page, size, p.fingerprint), nil
}

// Ranked validates q and returns its full ranked sequence, ignoring paging.
// The returned slice may be shared with the snapshot cache: do not modify it.
func (e *Engine) Ranked(ctx context.Context, q domain.Query) ([]domain.Candidate, error) {
	p, err := e.prepare(q)
	if err != nil {
		return nil, err
	}
	return e.ranked(ctx, p)
}

// prepare validates everything that can be checked before touching the store.
func (e *Engine) prepare(q domain.Query) (plan, error) {
	if _, err := domain.ParseEntityType(string(q.EntityType)); err != nil {
		return plan{}, err
	}
	if math.IsNaN(q.RadiusKm) || math.IsInf(q.RadiusKm, 0) || q.RadiusKm < 0 {
		return plan{}, fmt.Errorf("%w: radius must be a non-negative number of km", domain.ErrInvalidFilter)
	}
	if q.Origin != nil {
		if err := q.Origin.Validate(); err != nil {
			return plan{}, fmt.Errorf("%w: origin: %v", domain.ErrInvalidRequest, err)
		}
	}

	pred, err := filter.Compile(q.Filter)
	if err != nil {
		return plan{}, err
	}

	sort, err := domain.ParseSortKey(string(q.SortKey))
	if err != nil {
		return plan{}, err
	}
	if q.Origin == nil {
		if q.RadiusKm > 0 {
			return plan{}, fmt.Errorf("%w: radius needs an origin point", domain.ErrMissingLocation)
		}
		if sort == domain.SortDistance {
			if q.FallbackSort == "" {
				return plan{}, fmt.Errorf("%w: %s sort needs an origin point", domain.ErrMissingLocation, sort)
			}
			fallback, err := domain.ParseSortKey(string(q.FallbackSort))
			if err != nil {
				return plan{}, err
			}
			if fallback == domain.SortDistance {
				return plan{}, fmt.Errorf("%w: fallback sort cannot be %s", domain.ErrMissingLocation, fallback)
			}
			sort = fallback
		}
	}
	if err := rank.Legal(q.EntityType, sort); err != nil {
		return plan{}, err
	}

	return plan{
		query:       q,
		sort:        sort,
		pred:        pred,
		fingerprint: Fingerprint(q.EntityType, q.Filter, sort, q.Origin, q.RadiusKm),
	}, nil
}

func (e *Engine) ranked(ctx context.Context, p plan) ([]domain.Candidate, error) {
	key := hex.EncodeToString(p.fingerprint)
	if e.snapshots != nil {
		if cached, ok := e.snapshots.Get(key); ok {
			metrics.RecordSnapshot(true)
			return cached, nil
		}
		metrics.RecordSnapshot(false)
	}

	raw, err := e.index.Query(ctx, domain.GeoQuery{
		EntityType: p.query.EntityType,
		Origin:     p.query.Origin,
		RadiusKm:   p.query.RadiusKm,
	})
	if err != nil {
		return nil, err
	}

	kept := raw[:0:0]
	for _, c := range raw {
		if c.EntityType == p.query.EntityType && p.pred(c) {
			kept = append(kept, c)
		}
	}

	ranked, err := rank.Rank(kept, p.sort)
	if err != nil {
		return nil, err
	}
	metrics.RecordCandidateSet(string(p.query.EntityType), len(ranked))

	e.log.Debug("discovery ranked",
		"entity_type", p.query.EntityType,
		"sort", p.sort,
		"raw", len(raw),
		"kept", len(ranked),
	)

	if e.snapshots != nil {
		e.snapshots.Add(key, ranked)
	}
	return ranked, nil
}

// observe keeps label cardinality bounded: unknown values are bucketed.
func (e *Engine) observe(q domain.Query, status string, start time.Time) {
	et, sort := "unknown", "unknown"
	if _, err := domain.ParseEntityType(string(q.EntityType)); err == nil {
		et = string(q.EntityType)
	}
	if k, err := domain.ParseSortKey(string(q.SortKey)); err == nil {
		sort = string(k)
	}
	metrics.RecordQuery(et, sort, status, time.Since(start).Seconds())
}

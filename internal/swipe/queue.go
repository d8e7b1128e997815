package swipe

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/oggyb/muzz-discovery/internal/discovery"
	"github.com/oggyb/muzz-discovery/internal/domain"
	"github.com/oggyb/muzz-discovery/internal/geo"
	"github.com/oggyb/muzz-discovery/internal/metrics"
	"github.com/oggyb/muzz-discovery/internal/repository"
	"github.com/oggyb/muzz-discovery/internal/seen"
)

// batchFactor sizes each scan window relative to the requested queue size.
const batchFactor = 4

// RefillRequest asks for the next profiles a viewer has not seen or decided on.
type RefillRequest struct {
	ViewerID  uint64
	SessionID string
	Origin    *geo.Point
	RadiusKm  float64
	Filter    domain.Filter
	Size      int
	// AllowNoLocation ranks by freshness when the viewer has no origin.
	AllowNoLocation bool
}

// Queue builds swipe queues on top of discovery.
type Queue struct {
	engine    *discovery.Engine
	decisions *repository.DecisionRepository
	seen      *seen.Tracker
	log       *slog.Logger
}

// NewQueue wires a Queue.
func NewQueue(engine *discovery.Engine, decisions *repository.DecisionRepository, tracker *seen.Tracker, log *slog.Logger) *Queue {
	return &Queue{engine: engine, decisions: decisions, seen: tracker, log: log}
}

// Refill returns up to req.Size ranked profiles, skipping the viewer, anyone
// the viewer already decided on and anything this session was already served.
// Returned ids are claimed in the seen set, so overlapping refills for the same
// session never hand out the same profile twice.
func (q *Queue) Refill(ctx context.Context, req RefillRequest) ([]domain.Candidate, error) {
	if req.ViewerID == 0 {
		return nil, fmt.Errorf("%w: viewer id is required", domain.ErrInvalidRequest)
	}
	if req.SessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", domain.ErrInvalidRequest)
	}
	size := q.engine.Pager().ClampSize(req.Size)

	query := domain.Query{
		EntityType: domain.EntityProfile,
		Origin:     req.Origin,
		RadiusKm:   req.RadiusKm,
		Filter:     req.Filter,
		SortKey:    domain.SortDistance,
	}
	if req.AllowNoLocation {
		query.FallbackSort = domain.SortNewest
	}
	ranked, err := q.engine.Ranked(ctx, query)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Candidate, 0, size)
	window := size * batchFactor
	for start := 0; start < len(ranked) && len(out) < size; start += window {
		end := min(start+window, len(ranked))
		// every pass marks what it claimed as seen, so the window shrinks
		// until it is exhausted or the queue is full
		for len(out) < size {
			batch, err := q.eligible(ctx, req, ranked[start:end])
			if err != nil {
				return nil, err
			}
			if len(batch) == 0 {
				break
			}

			need := min(size-len(out), len(batch))
			byID := make(map[uint64]domain.Candidate, need)
			for _, c := range batch[:need] {
				byID[c.ID] = c
			}
			won, err := q.seen.Claim(ctx, req.ViewerID, req.SessionID, domain.CandidateIDs(batch[:need]))
			if err != nil {
				return nil, err
			}
			for _, id := range won {
				out = append(out, byID[id])
			}
			if need == len(batch) {
				break
			}
		}
	}

	metrics.QueueDelivered.Observe(float64(len(out)))
	q.log.Debug("queue refilled",
		"viewer", req.ViewerID,
		"ranked", len(ranked),
		"delivered", len(out),
	)
	return out, nil
}

// eligible drops self, decided and seen candidates from batch, keeping order.
// The seen set and the viewer's decisions are loaded concurrently.
func (q *Queue) eligible(ctx context.Context, req RefillRequest, batch []domain.Candidate) ([]domain.Candidate, error) {
	var (
		unseen  []domain.Candidate
		decided map[uint64]struct{}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		unseen, err = q.seen.ExcludeSeen(gctx, req.ViewerID, req.SessionID, batch)
		return err
	})
	g.Go(func() error {
		var err error
		decided, err = q.decisions.DecidedAmong(gctx, req.ViewerID, domain.CandidateIDs(batch))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := unseen[:0:0]
	for _, c := range unseen {
		if c.ID == req.ViewerID {
			continue
		}
		if _, ok := decided[c.ID]; ok {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

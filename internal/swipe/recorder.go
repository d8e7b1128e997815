// Package swipe records like/pass decisions, resolves mutual likes into
// matches and refills viewers' swipe queues.
package swipe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/oggyb/muzz-discovery/internal/cache"
	"github.com/oggyb/muzz-discovery/internal/domain"
	"github.com/oggyb/muzz-discovery/internal/metrics"
	"github.com/oggyb/muzz-discovery/internal/repository"
	"github.com/oggyb/muzz-discovery/internal/utils/pagination"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	matchCountTTL    = time.Hour
)

// Recorder is the swipe write path and match coordinator. It holds no locks:
// exactly-once match creation rests on the primary key of the canonical pair.
type Recorder struct {
	decisions *repository.DecisionRepository
	matches   *repository.MatchRepository
	cache     *cache.RedisCache
	log       *slog.Logger

	counts singleflight.Group

	// afterWrite runs between the decision write and the reverse lookup.
	afterWrite func(domain.SwipeDecision)
}

// NewRecorder wires a Recorder. rc may be nil, which disables count caching.
func NewRecorder(
	decisions *repository.DecisionRepository,
	matches *repository.MatchRepository,
	rc *cache.RedisCache,
	log *slog.Logger,
) *Recorder {
	return &Recorder{decisions: decisions, matches: matches, cache: rc, log: log}
}

// Record stores one decision and reports whether the pair is now matched.
//
// Behavior:
//   - Zero ids, self-swipes and unknown directions → domain.ErrInvalidRequest.
//   - First decision for (viewer, candidate) is written; a replay of the same
//     direction is a no-op with DecisionRecorded=false; a different direction
//     → domain.ErrDuplicateSwipe.
//   - On LIKE (new or replayed) the reverse LIKE is read after our own write
//     has committed and, if present, the match row is inserted once.
//
// Of two reverse likes racing each other, at least one sees Matched=true:
// a lookup that runs after both writes observes the other like, and a match
// insert that loses on the primary key still reports the match. If one call's
// lookup finishes before the other call's write commits, only the later call
// reports Matched=true. The match row is created exactly once either way.
func (r *Recorder) Record(ctx context.Context, d domain.SwipeDecision) (domain.SwipeResult, error) {
	if d.ViewerID == 0 || d.CandidateID == 0 {
		return domain.SwipeResult{}, fmt.Errorf("%w: viewer and candidate ids are required", domain.ErrInvalidRequest)
	}
	if d.ViewerID == d.CandidateID {
		return domain.SwipeResult{}, fmt.Errorf("%w: cannot swipe on yourself", domain.ErrInvalidRequest)
	}
	dir, err := domain.ParseDirection(string(d.Direction))
	if err != nil {
		return domain.SwipeResult{}, err
	}
	d.Direction = dir

	inserted, err := r.decisions.InsertDecision(ctx, d)
	if err != nil {
		metrics.RecordSwipe(string(dir), "error")
		return domain.SwipeResult{}, err
	}
	if !inserted {
		existing, err := r.decisions.GetDecision(ctx, d.ViewerID, d.CandidateID)
		if err != nil {
			metrics.RecordSwipe(string(dir), "error")
			return domain.SwipeResult{}, err
		}
		if existing.Direction != dir {
			metrics.RecordSwipe(string(dir), "conflict")
			return domain.SwipeResult{}, fmt.Errorf("%w: %d already decided %s on %d",
				domain.ErrDuplicateSwipe, d.ViewerID, existing.Direction, d.CandidateID)
		}
	}

	if r.afterWrite != nil {
		r.afterWrite(d)
	}

	res := domain.SwipeResult{DecisionRecorded: inserted}
	if dir == domain.DirectionLike {
		// a replayed LIKE re-runs resolution so an interrupted earlier call is repaired
		res.Matched, err = r.resolveMatch(ctx, d.ViewerID, d.CandidateID)
		if err != nil {
			metrics.RecordSwipe(string(dir), "error")
			return domain.SwipeResult{}, err
		}
	}

	outcome := "recorded"
	if !inserted {
		outcome = "replayed"
	}
	metrics.RecordSwipe(string(dir), outcome)

	r.log.Debug("swipe recorded",
		"viewer", d.ViewerID,
		"candidate", d.CandidateID,
		"direction", dir,
		"super_like", d.SuperLike,
		"recorded", inserted,
		"matched", res.Matched,
	)
	return res, nil
}

func (r *Recorder) resolveMatch(ctx context.Context, viewerID, candidateID uint64) (bool, error) {
	reverse, err := r.decisions.HasLiked(ctx, candidateID, viewerID)
	if err != nil || !reverse {
		return false, err
	}

	created, err := r.matches.InsertMatch(ctx, viewerID, candidateID)
	if err != nil {
		return false, err
	}
	metrics.RecordMatch(created)
	if !created {
		// the other side, or an earlier replay, already wrote the row
		r.log.Debug("match race resolved", "viewer", viewerID, "candidate", candidateID)
		return true, nil
	}

	r.log.Info("match created", "user_a", min(viewerID, candidateID), "user_b", max(viewerID, candidateID))
	if r.cache != nil {
		if err := r.cache.InvalidateMatchCounts(ctx, viewerID, candidateID); err != nil {
			r.log.Warn("match count invalidation failed", "err", err)
		}
	}
	return true, nil
}

// IsMatched reports whether x and y are matched, from either side.
func (r *Recorder) IsMatched(ctx context.Context, x, y uint64) (bool, error) {
	if x == 0 || y == 0 || x == y {
		return false, fmt.Errorf("%w: two distinct user ids are required", domain.ErrInvalidRequest)
	}
	return r.matches.Exists(ctx, x, y)
}

// ListMatches returns userID's matches, newest first, with a continuation token.
func (r *Recorder) ListMatches(ctx context.Context, userID uint64, token string, limit int) ([]domain.Match, string, error) {
	if userID == 0 {
		return nil, "", fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}
	matches, next, err := r.matches.ListForUser(ctx, userID, token, clampLimit(limit))
	if err != nil {
		return nil, "", wrapToken(err)
	}
	return matches, next, nil
}

// ListAdmirers returns users who liked userID and are still awaiting userID's decision.
func (r *Recorder) ListAdmirers(ctx context.Context, userID uint64, token string, limit int) ([]domain.Admirer, string, error) {
	if userID == 0 {
		return nil, "", fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}
	admirers, next, err := r.decisions.ListAdmirers(ctx, userID, token, clampLimit(limit))
	if err != nil {
		return nil, "", wrapToken(err)
	}
	return admirers, next, nil
}

// CountMatches returns how many matches userID has.
// Cache-first: Redis, then the store through a singleflight so a cold key is
// loaded once, then Redis is refilled with a 1h TTL.
func (r *Recorder) CountMatches(ctx context.Context, userID uint64) (int64, error) {
	if userID == 0 {
		return 0, fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}

	if r.cache != nil {
		if n, ok, err := r.cache.GetMatchCount(ctx, userID); err == nil && ok {
			return n, nil
		} else if err != nil {
			r.log.Warn("match count cache read failed", "user", userID, "err", err)
		}
	}

	v, err, _ := r.counts.Do(strconv.FormatUint(userID, 10), func() (interface{}, error) {
		n, err := r.matches.CountForUser(ctx, userID)
		if err != nil {
			return int64(0), err
		}
		if r.cache != nil {
			if err := r.cache.SetMatchCount(ctx, userID, n, matchCountTTL); err != nil {
				r.log.Warn("match count cache write failed", "user", userID, "err", err)
			}
		}
		return n, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultListLimit
	case limit > maxListLimit:
		return maxListLimit
	}
	return limit
}

// wrapToken reports a malformed pagination token as a bad request.
func wrapToken(err error) error {
	if errors.Is(err, pagination.ErrInvalidToken) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	return err
}

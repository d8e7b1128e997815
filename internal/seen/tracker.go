// Package seen tracks which candidates a viewer session has already been
// shown. Sets live in Redis keyed per (viewer, session); rotating the session
// token starts a fresh set and idle sets expire after the sliding TTL.
package seen

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oggyb/muzz-discovery/internal/cache"
	"github.com/oggyb/muzz-discovery/internal/domain"
)

// Tracker is safe for concurrent use; all writes are set unions.
type Tracker struct {
	cache *cache.RedisCache
	ttl   time.Duration
}

// New returns a Tracker whose sets expire ttl after their last write.
func New(c *cache.RedisCache, ttl time.Duration) *Tracker {
	return &Tracker{cache: c, ttl: ttl}
}

func (t *Tracker) key(viewerID uint64, sessionID string) (string, error) {
	if viewerID == 0 {
		return "", fmt.Errorf("%w: viewer id is required", domain.ErrInvalidRequest)
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return "", fmt.Errorf("%w: session id is required", domain.ErrInvalidRequest)
	}
	return t.cache.KeyForSeen(viewerID, sessionID), nil
}

// MarkSeen adds ids to the session's seen set. Idempotent and commutative.
func (t *Tracker) MarkSeen(ctx context.Context, viewerID uint64, sessionID string, ids []uint64) error {
	key, err := t.key(viewerID, sessionID)
	if err != nil {
		return err
	}
	return t.cache.SAdd(ctx, key, t.ttl, formatIDs(ids)...)
}

// Claim marks ids as seen and returns, in input order, those no earlier call
// had marked. Overlapping claims never both receive the same id.
func (t *Tracker) Claim(ctx context.Context, viewerID uint64, sessionID string, ids []uint64) ([]uint64, error) {
	key, err := t.key(viewerID, sessionID)
	if err != nil {
		return nil, err
	}
	added, err := t.cache.SClaim(ctx, key, t.ttl, formatIDs(ids)...)
	if err != nil {
		return nil, err
	}
	won := make(map[string]struct{}, len(added))
	for _, a := range added {
		won[a] = struct{}{}
	}
	out := make([]uint64, 0, len(added))
	for _, id := range ids {
		s := strconv.FormatUint(id, 10)
		if _, ok := won[s]; ok {
			out = append(out, id)
			delete(won, s)
		}
	}
	return out, nil
}

// Seen returns the session's seen ids as a set.
func (t *Tracker) Seen(ctx context.Context, viewerID uint64, sessionID string) (map[uint64]struct{}, error) {
	key, err := t.key(viewerID, sessionID)
	if err != nil {
		return nil, err
	}
	members, err := t.cache.SMembers(ctx, key)
	if err != nil {
		return nil, err
	}
	out := make(map[uint64]struct{}, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			continue
		}
		out[id] = struct{}{}
	}
	return out, nil
}

// ExcludeSeen drops candidates the session has already seen, keeping order.
func (t *Tracker) ExcludeSeen(ctx context.Context, viewerID uint64, sessionID string, candidates []domain.Candidate) ([]domain.Candidate, error) {
	key, err := t.key(viewerID, sessionID)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return candidates, nil
	}
	flags, err := t.cache.SMIsMember(ctx, key, formatIDs(domain.CandidateIDs(candidates))...)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Candidate, 0, len(candidates))
	for i, c := range candidates {
		if !flags[i] {
			out = append(out, c)
		}
	}
	return out, nil
}

// Reset discards the session's seen set.
func (t *Tracker) Reset(ctx context.Context, viewerID uint64, sessionID string) error {
	key, err := t.key(viewerID, sessionID)
	if err != nil {
		return err
	}
	return t.cache.Del(ctx, key)
}

func formatIDs(ids []uint64) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strconv.FormatUint(id, 10)
	}
	return out
}

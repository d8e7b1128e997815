package domain

import (
	"fmt"
	"strings"
	"time"
)

// Direction of a swipe.
type Direction string

const (
	DirectionLike Direction = "LIKE"
	DirectionPass Direction = "PASS"
)

// ParseDirection accepts LIKE/PASS in any case.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToUpper(strings.TrimSpace(s))); d {
	case DirectionLike, DirectionPass:
		return d, nil
	}
	return "", fmt.Errorf("%w: unknown direction %q", ErrInvalidRequest, s)
}

// SwipeDecision is an append-only record of one viewer's decision on one candidate.
type SwipeDecision struct {
	ViewerID    uint64
	CandidateID uint64
	Direction   Direction
	SuperLike   bool
	CreatedAt   time.Time
}

// SwipeResult is what the coordinator reports back for a swipe.
type SwipeResult struct {
	// DecisionRecorded is false when the call replayed an identical decision.
	DecisionRecorded bool
	Matched          bool
}

// Match is a mutual like between two users, stored once per unordered pair.
type Match struct {
	UserA     uint64
	UserB     uint64
	CreatedAt time.Time
}

// CanonicalPair orders two user ids so that a < b.
func CanonicalPair(x, y uint64) (a, b uint64) {
	if x < y {
		return x, y
	}
	return y, x
}

// HasUser reports whether id is one side of the match.
func (m Match) HasUser(id uint64) bool { return m.UserA == id || m.UserB == id }

// Peer returns the other side of the match for id.
func (m Match) Peer(id uint64) (uint64, bool) {
	switch id {
	case m.UserA:
		return m.UserB, true
	case m.UserB:
		return m.UserA, true
	}
	return 0, false
}

// Admirer is someone who liked the viewer and is still waiting for a decision.
type Admirer struct {
	ActorID   uint64
	SuperLike bool
	LikedAt   time.Time
}

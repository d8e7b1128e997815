package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/muzz-discovery/internal/db"
	"github.com/oggyb/muzz-discovery/internal/domain"
	"github.com/oggyb/muzz-discovery/internal/utils/pagination"
)

// MatchRepository stores mutual likes. The composite primary key on the
// canonical pair is the only guard against duplicate matches.
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new repository bound to the given DB connection.
func NewMatchRepository(database *gorm.DB) *MatchRepository {
	return &MatchRepository{db: database}
}

// InsertMatch creates the match for the unordered pair {x, y}.
// Returns false when the row already existed: another writer won the race.
func (r *MatchRepository) InsertMatch(ctx context.Context, x, y uint64) (bool, error) {
	a, b := domain.CanonicalPair(x, y)
	row := db.Match{UserA: a, UserB: b}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_a"}, {Name: "user_b"}},
			DoNothing: true,
		}).
		Create(&row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Exists reports whether x and y are matched, in either direction.
func (r *MatchRepository) Exists(ctx context.Context, x, y uint64) (bool, error) {
	a, b := domain.CanonicalPair(x, y)
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Match{}).
		Where("user_a = ? AND user_b = ?", a, b).
		Count(&count).Error
	return count > 0, err
}

// CountForUser returns how many matches userID is part of.
func (r *MatchRepository) CountForUser(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Match{}).
		Where("(user_a = ? OR user_b = ?)", userID, userID).
		Count(&count).Error
	return count, err
}

// matchRow is a match seen from one user's side.
type matchRow struct {
	PeerID    uint64
	CreatedAt time.Time
}

// ListForUser returns userID's matches, newest first.
//
// Behavior:
//   - Ordered by created_at DESC, peer id DESC.
//   - Supports cursor-based pagination via paginationToken.
//
// Example:
//
//	repo.ListForUser(ctx, 42, "", 20)
func (r *MatchRepository) ListForUser(
	ctx context.Context,
	userID uint64,
	paginationToken string,
	limit int,
) ([]domain.Match, string, error) {
	cursor, err := pagination.DecodeKeyset(paginationToken)
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Table("matches m").
		Select("CASE WHEN m.user_a = ? THEN m.user_b ELSE m.user_a END AS peer_id, m.created_at", userID).
		Where("(m.user_a = ? OR m.user_b = ?)", userID, userID).
		Order("m.created_at DESC, peer_id DESC").
		Limit(limit + 1)

	if !cursor.IsZero() {
		ts := cursor.CreatedAt()
		query = query.Where(
			"(m.created_at < ? OR (m.created_at = ? AND (CASE WHEN m.user_a = ? THEN m.user_b ELSE m.user_a END) < ?))",
			ts, ts, userID, cursor.PeerID,
		)
	}

	var rows []matchRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, "", err
	}

	var nextToken string
	if len(rows) > limit {
		last := rows[limit-1]
		nextToken, _ = pagination.EncodeKeyset(pagination.KeysetCursor{
			PeerID:          last.PeerID,
			CreatedUnixNano: last.CreatedAt.UnixNano(),
		})
		rows = rows[:limit]
	}

	matches := make([]domain.Match, 0, len(rows))
	for _, row := range rows {
		a, b := domain.CanonicalPair(userID, row.PeerID)
		matches = append(matches, domain.Match{UserA: a, UserB: b, CreatedAt: row.CreatedAt})
	}
	return matches, nextToken, nil
}

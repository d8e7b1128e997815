package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/muzz-discovery/internal/db"
	"github.com/oggyb/muzz-discovery/internal/domain"
	"github.com/oggyb/muzz-discovery/internal/utils/pagination"
)

// DecisionRepository provides data access methods for the SwipeDecision model.
// Decisions are append-only: nothing here updates or deletes a row.
type DecisionRepository struct {
	db *gorm.DB
}

// NewDecisionRepository creates a new repository bound to the given DB connection.
func NewDecisionRepository(database *gorm.DB) *DecisionRepository {
	return &DecisionRepository{db: database}
}

// InsertDecision writes a decision unless one already exists for the pair.
//
// Behavior:
//   - New (viewer_id, candidate_id) pair → row inserted, returns true.
//   - Existing pair → nothing written, returns false. The caller decides
//     whether that is an idempotent replay or a conflict.
//
// Example:
//
//	repo.InsertDecision(ctx, domain.SwipeDecision{ViewerID: 1, CandidateID: 2, Direction: domain.DirectionLike})
func (r *DecisionRepository) InsertDecision(ctx context.Context, d domain.SwipeDecision) (bool, error) {
	row := db.SwipeDecision{
		ViewerID:    d.ViewerID,
		CandidateID: d.CandidateID,
		Direction:   string(d.Direction),
		SuperLike:   d.SuperLike,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "viewer_id"}, {Name: "candidate_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// GetDecision loads the decision viewer made on candidate.
// Returns gorm.ErrRecordNotFound when there is none.
func (r *DecisionRepository) GetDecision(ctx context.Context, viewerID, candidateID uint64) (domain.SwipeDecision, error) {
	var row db.SwipeDecision
	err := r.db.WithContext(ctx).
		Where("viewer_id = ? AND candidate_id = ?", viewerID, candidateID).
		Take(&row).Error
	if err != nil {
		return domain.SwipeDecision{}, err
	}
	return decisionToDomain(row), nil
}

// HasLiked checks whether an actor has liked a recipient.
//
// Behavior:
//   - Returns true if there exists a decision row where viewer_id = X,
//     candidate_id = Y, and direction = LIKE.
//   - Used for the reverse-like check of the match coordinator.
//
// Example:
//
//	repo.HasLiked(ctx, 1, 2) // -> true if user 1 liked user 2
func (r *DecisionRepository) HasLiked(ctx context.Context, actorID, recipientID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.SwipeDecision{}).
		Where("viewer_id = ? AND candidate_id = ? AND direction = ?", actorID, recipientID, string(domain.DirectionLike)).
		Count(&count).Error
	return count > 0, err
}

// DecidedAmong returns which of candidateIDs the viewer has already decided on.
func (r *DecisionRepository) DecidedAmong(ctx context.Context, viewerID uint64, candidateIDs []uint64) (map[uint64]struct{}, error) {
	decided := make(map[uint64]struct{})
	if len(candidateIDs) == 0 {
		return decided, nil
	}

	var ids []uint64
	err := r.db.WithContext(ctx).
		Model(&db.SwipeDecision{}).
		Where("viewer_id = ? AND candidate_id IN ?", viewerID, candidateIDs).
		Pluck("candidate_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		decided[id] = struct{}{}
	}
	return decided, nil
}

// ListAdmirers returns users who liked the recipient and are still waiting
// for the recipient's decision.
//
// Behavior:
//   - Only decisions where candidate_id = X and direction = LIKE are returned.
//   - Excludes actors the recipient already liked back or passed.
//   - Ordered by created_at DESC, viewer_id DESC.
//   - Supports cursor-based pagination via paginationToken.
//
// Example:
//
//	repo.ListAdmirers(ctx, 42, "", 20) // first 20 pending admirers of user 42
func (r *DecisionRepository) ListAdmirers(
	ctx context.Context,
	recipientID uint64,
	paginationToken string,
	limit int,
) ([]domain.Admirer, string, error) {
	cursor, err := pagination.DecodeKeyset(paginationToken)
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Table("swipe_decisions d").
		Where("d.candidate_id = ? AND d.direction = ?", recipientID, string(domain.DirectionLike)).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM swipe_decisions d2
				WHERE d2.viewer_id = ?
				  AND d2.candidate_id = d.viewer_id
			)`, recipientID).
		Order("d.created_at DESC, d.viewer_id DESC").
		Limit(limit + 1)

	// apply cursor
	if !cursor.IsZero() {
		ts := cursor.CreatedAt()
		query = query.Where(
			"(d.created_at < ? OR (d.created_at = ? AND d.viewer_id < ?))",
			ts, ts, cursor.PeerID,
		)
	}

	var rows []db.SwipeDecision
	if err := query.Find(&rows).Error; err != nil {
		return nil, "", err
	}

	// pagination: build next cursor if needed
	var nextToken string
	if len(rows) > limit {
		last := rows[limit-1]
		nextToken, _ = pagination.EncodeKeyset(pagination.KeysetCursor{
			PeerID:          last.ViewerID,
			CreatedUnixNano: last.CreatedAt.UnixNano(),
		})
		rows = rows[:limit]
	}

	admirers := make([]domain.Admirer, 0, len(rows))
	for _, row := range rows {
		admirers = append(admirers, domain.Admirer{
			ActorID:   row.ViewerID,
			SuperLike: row.SuperLike,
			LikedAt:   row.CreatedAt,
		})
	}
	return admirers, nextToken, nil
}

// IsNotFound reports whether err is the store's "no such row" error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func decisionToDomain(row db.SwipeDecision) domain.SwipeDecision {
	return domain.SwipeDecision{
		ViewerID:    row.ViewerID,
		CandidateID: row.CandidateID,
		Direction:   domain.Direction(row.Direction),
		SuperLike:   row.SuperLike,
		CreatedAt:   row.CreatedAt,
	}
}

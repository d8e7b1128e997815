package swipe

import (
	"context"
	"strconv"

	"github.com/oggyb/muzz-discovery/internal/app"
	"github.com/oggyb/muzz-discovery/internal/domain"
	svcErr "github.com/oggyb/muzz-discovery/internal/errors"
	"github.com/oggyb/muzz-discovery/internal/logger"
	pb "github.com/oggyb/muzz-discovery/internal/proto/swipe"
)

// Service implements the Swipe gRPC API.
// It contains the request handling on top of the swipe recorder.
type Service struct {
	appCtx *app.AppContext

	pb.UnimplementedSwipeServiceServer
}

// NewSwipeService creates a new Swipe service with dependencies from AppContext.
func NewSwipeService(appCtx *app.AppContext) *Service {
	return &Service{appCtx: appCtx}
}

// Swipe records a like or pass and reports whether it produced a match.
//
// Behavior:
//   - actor == recipient → InvalidArgument.
//   - Replaying the same direction is idempotent (decision_recorded=false).
//   - Changing direction on an existing decision → AlreadyExists / DUPLICATE_SWIPE.
//   - A like that completes a mutual pair reports matched=true. When the two
//     likes race, the call whose reverse lookup runs after both writes sees
//     matched=true; the other may see false. The match row exists once either way.
//
// Example:
//
//	svc.Swipe(ctx, &pb.SwipeRequest{ActorUserId: "1", RecipientUserId: "2", Direction: "LIKE"})
func (s *Service) Swipe(ctx context.Context, req *pb.SwipeRequest) (*pb.SwipeResponse, error) {
	log := logger.FromContext(ctx)
	log.Debug(
		"Swipe called",
		"actor", req.GetActorUserId(),
		"recipient", req.GetRecipientUserId(),
		"direction", req.GetDirection(),
	)

	if err := s.appCtx.Validator.Validate(req); err != nil {
		return nil, svcErr.Map(err)
	}
	actorID, err := parseID("actor_user_id", req.ActorUserId)
	if err != nil {
		return nil, err
	}
	recipientID, err := parseID("recipient_user_id", req.RecipientUserId)
	if err != nil {
		return nil, err
	}

	res, err := s.appCtx.Recorder.Record(ctx, domain.SwipeDecision{
		ViewerID:    actorID,
		CandidateID: recipientID,
		Direction:   domain.Direction(req.Direction),
		SuperLike:   req.SuperLike,
	})
	if err != nil {
		log.Debug("Swipe rejected", "err", err)
		return nil, svcErr.Map(err)
	}
	return &pb.SwipeResponse{DecisionRecorded: res.DecisionRecorded, Matched: res.Matched}, nil
}

// IsMatched answers from either side of the pair.
func (s *Service) IsMatched(ctx context.Context, req *pb.IsMatchedRequest) (*pb.IsMatchedResponse, error) {
	if err := s.appCtx.Validator.Validate(req); err != nil {
		return nil, svcErr.Map(err)
	}
	a, err := parseID("user_id", req.UserId)
	if err != nil {
		return nil, err
	}
	b, err := parseID("other_user_id", req.OtherUserId)
	if err != nil {
		return nil, err
	}

	matched, err := s.appCtx.Recorder.IsMatched(ctx, a, b)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.IsMatchedResponse{Matched: matched}, nil
}

// ListMatches returns the user's matches, newest first.
//
// Example:
//
//	svc.ListMatches(ctx, &pb.ListMatchesRequest{UserId: "42", Limit: 20})
func (s *Service) ListMatches(ctx context.Context, req *pb.ListMatchesRequest) (*pb.ListMatchesResponse, error) {
	logger.FromContext(ctx).Debug("ListMatches called", "user", req.GetUserId())

	if err := s.appCtx.Validator.Validate(req); err != nil {
		return nil, svcErr.Map(err)
	}
	userID, err := parseID("user_id", req.UserId)
	if err != nil {
		return nil, err
	}

	matches, next, err := s.appCtx.Recorder.ListMatches(ctx, userID, req.PaginationToken, int(req.Limit))
	if err != nil {
		return nil, svcErr.Map(err)
	}

	resp := &pb.ListMatchesResponse{
		Matches:             make([]*pb.ListMatchesResponse_Match, 0, len(matches)),
		NextPaginationToken: next,
	}
	for _, m := range matches {
		peer, _ := m.Peer(userID)
		resp.Matches = append(resp.Matches, &pb.ListMatchesResponse_Match{
			PeerUserId:    strconv.FormatUint(peer, 10),
			UnixTimestamp: uint64(m.CreatedAt.UnixMilli()),
		})
	}
	return resp, nil
}

// CountMatches returns how many matches the user has (cache-first).
func (s *Service) CountMatches(ctx context.Context, req *pb.CountMatchesRequest) (*pb.CountMatchesResponse, error) {
	if err := s.appCtx.Validator.Validate(req); err != nil {
		return nil, svcErr.Map(err)
	}
	userID, err := parseID("user_id", req.UserId)
	if err != nil {
		return nil, err
	}

	n, err := s.appCtx.Recorder.CountMatches(ctx, userID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.CountMatchesResponse{Count: uint64(n)}, nil
}

// ListAdmirers returns users who liked the caller and still await a decision.
// Super-likes are flagged so clients can surface them first.
func (s *Service) ListAdmirers(ctx context.Context, req *pb.ListAdmirersRequest) (*pb.ListAdmirersResponse, error) {
	logger.FromContext(ctx).Debug("ListAdmirers called", "user", req.GetUserId())

	if err := s.appCtx.Validator.Validate(req); err != nil {
		return nil, svcErr.Map(err)
	}
	userID, err := parseID("user_id", req.UserId)
	if err != nil {
		return nil, err
	}

	admirers, next, err := s.appCtx.Recorder.ListAdmirers(ctx, userID, req.PaginationToken, int(req.Limit))
	if err != nil {
		return nil, svcErr.Map(err)
	}

	resp := &pb.ListAdmirersResponse{
		Admirers:            make([]*pb.ListAdmirersResponse_Admirer, 0, len(admirers)),
		NextPaginationToken: next,
	}
	for _, a := range admirers {
		resp.Admirers = append(resp.Admirers, &pb.ListAdmirersResponse_Admirer{
			ActorId:       strconv.FormatUint(a.ActorID, 10),
			SuperLike:     a.SuperLike,
			UnixTimestamp: uint64(a.LikedAt.UnixMilli()),
		})
	}
	return resp, nil
}

func parseID(field, value string) (uint64, error) {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil || id == 0 {
		return 0, svcErr.InvalidArgument(field + " must be a valid uint64")
	}
	return id, nil
}

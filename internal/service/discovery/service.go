package discovery

import (
	"context"
	"strconv"
	"strings"

	"github.com/oggyb/muzz-discovery/internal/app"
	"github.com/oggyb/muzz-discovery/internal/domain"
	svcErr "github.com/oggyb/muzz-discovery/internal/errors"
	"github.com/oggyb/muzz-discovery/internal/logger"
	pb "github.com/oggyb/muzz-discovery/internal/proto/discovery"
	"github.com/oggyb/muzz-discovery/internal/swipe"
)

// Service implements the Discovery gRPC API on top of the discovery engine,
// the swipe queue and the seen-set tracker.
type Service struct {
	appCtx *app.AppContext

	pb.UnimplementedDiscoveryServiceServer
}

// NewDiscoveryService creates a new Discovery service with dependencies from AppContext.
func NewDiscoveryService(appCtx *app.AppContext) *Service {
	return &Service{appCtx: appCtx}
}

// Discover runs one ranked, paginated discovery query.
//
// Behavior:
//   - Validates the request shape, then the filter, sort and location rules.
//   - A cursor overrides page/page_size and must belong to the same query,
//     otherwise the call fails with FailedPrecondition / STALE_CURSOR.
//   - Returns the page plus next_cursor while more results remain.
//
// Example:
//
//	svc.Discover(ctx, &pb.DiscoverRequest{EntityType: "listing", SortKey: "LOWEST_PRICE", PageSize: 10})
func (s *Service) Discover(ctx context.Context, req *pb.DiscoverRequest) (*pb.DiscoverResponse, error) {
	log := logger.FromContext(ctx)
	log.Debug("Discover called", "entity_type", req.GetEntityType(), "sort", req.GetSortKey(), "cursor", req.GetCursor() != "")

	if err := s.appCtx.Validator.Validate(req); err != nil {
		return nil, svcErr.Map(err)
	}

	page, err := s.appCtx.Engine.Discover(ctx, domain.Query{
		EntityType:   domain.EntityType(strings.ToLower(strings.TrimSpace(req.EntityType))),
		Origin:       toPoint(req.Origin),
		RadiusKm:     req.RadiusKm,
		Filter:       toFilter(req.Filter),
		SortKey:      domain.SortKey(req.SortKey),
		FallbackSort: domain.SortKey(req.FallbackSort),
		Page:         int(req.Page),
		PageSize:     int(req.PageSize),
		Cursor:       req.Cursor,
	})
	if err != nil {
		log.Debug("Discover rejected", "err", err)
		return nil, svcErr.Map(err)
	}

	return &pb.DiscoverResponse{
		Items:      toCandidates(page.Items),
		Page:       int32(page.Page),
		PageSize:   int32(page.PageSize),
		TotalCount: int64(page.TotalCount),
		TotalPages: int32(page.TotalPages),
		HasMore:    page.HasMore,
		NextCursor: page.NextCursor,
	}, nil
}

// RefillQueue returns the next profiles for a viewer's swipe deck and marks
// them as seen for the session.
//
// Example:
//
//	svc.RefillQueue(ctx, &pb.RefillQueueRequest{ViewerId: "42", SessionId: "tab-1", Origin: &pb.Location{Lat: -33.87, Lon: 151.21}})
func (s *Service) RefillQueue(ctx context.Context, req *pb.RefillQueueRequest) (*pb.RefillQueueResponse, error) {
	log := logger.FromContext(ctx)
	log.Debug("RefillQueue called", "viewer", req.GetViewerId())

	if err := s.appCtx.Validator.Validate(req); err != nil {
		return nil, svcErr.Map(err)
	}
	viewerID, err := strconv.ParseUint(req.ViewerId, 10, 64)
	if err != nil {
		return nil, svcErr.InvalidArgument("viewer_id must be a valid uint64")
	}

	size := int(req.Size)
	if size == 0 {
		size = s.appCtx.Config.Queue.DefaultSize
	}

	candidates, err := s.appCtx.Queue.Refill(ctx, swipe.RefillRequest{
		ViewerID:        viewerID,
		SessionID:       req.SessionId,
		Origin:          toPoint(req.Origin),
		RadiusKm:        req.RadiusKm,
		Filter:          toFilter(req.Filter),
		Size:            size,
		AllowNoLocation: req.AllowNoLocation,
	})
	if err != nil {
		log.Error("RefillQueue failed", "viewer", viewerID, "err", err)
		return nil, svcErr.Map(err)
	}

	log.Debug("RefillQueue result", "viewer", viewerID, "delivered", len(candidates))
	return &pb.RefillQueueResponse{Candidates: toCandidates(candidates)}, nil
}

// ResetSession discards the session's seen set so the deck starts over.
func (s *Service) ResetSession(ctx context.Context, req *pb.ResetSessionRequest) (*pb.ResetSessionResponse, error) {
	logger.FromContext(ctx).Debug("ResetSession called", "viewer", req.GetViewerId())

	if err := s.appCtx.Validator.Validate(req); err != nil {
		return nil, svcErr.Map(err)
	}
	viewerID, err := strconv.ParseUint(req.ViewerId, 10, 64)
	if err != nil {
		return nil, svcErr.InvalidArgument("viewer_id must be a valid uint64")
	}

	if err := s.appCtx.Seen.Reset(ctx, viewerID, req.SessionId); err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.ResetSessionResponse{}, nil
}

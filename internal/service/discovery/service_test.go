package discovery_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oggyb/muzz-discovery/internal/app"
	"github.com/oggyb/muzz-discovery/internal/cache"
	"github.com/oggyb/muzz-discovery/internal/config"
	"github.com/oggyb/muzz-discovery/internal/db"
	"github.com/oggyb/muzz-discovery/internal/domain"
	svcErr "github.com/oggyb/muzz-discovery/internal/errors"
	"github.com/oggyb/muzz-discovery/internal/geo"
	pb "github.com/oggyb/muzz-discovery/internal/proto/discovery"
	"github.com/oggyb/muzz-discovery/internal/repository"
	"github.com/oggyb/muzz-discovery/internal/server"
	"github.com/oggyb/muzz-discovery/internal/service/discovery"
)

//
// Test helpers
//

func ptr[T any](v T) *T { return &v }

var (
	sydney = geo.Point{Lat: -33.87, Lon: 151.21}
	epoch  = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
)

// seedCandidates inserts a small deterministic dataset.
//
// Listings (price / rating / reviews), freshness grows with id:
//   - 1: 50 / 4.5 / 10
//   - 2: 20 / 3.0 / 5
//   - 3: 35 / 5.0 / 2
//   - 4: no price / 4.0 / 1
//   - 5: 20 / 4.9 / 8
//
// Profiles 11..14 sit 1, 2, 3 and 300 km south of Sydney.
func seedCandidates(t *testing.T, gdb *gorm.DB) {
	t.Helper()

	listing := func(id uint64, price *float64, rating float64, reviews int) domain.Candidate {
		return domain.Candidate{
			ID: id, EntityType: domain.EntityListing, Price: price, Rating: rating, ReviewCount: reviews,
			Location: &sydney, FreshAt: epoch.Add(time.Duration(id) * 24 * time.Hour),
		}
	}
	profile := func(id uint64, km float64, gender domain.Gender, age int) domain.Candidate {
		return domain.Candidate{
			ID: id, EntityType: domain.EntityProfile, Gender: gender, Age: ptr(age),
			Location: &geo.Point{Lat: sydney.Lat - km/111.2, Lon: sydney.Lon},
			FreshAt:  epoch,
		}
	}

	require.NoError(t, repository.NewCandidateRepository(gdb).Upsert(context.Background(), []domain.Candidate{
		listing(1, ptr(50.0), 4.5, 10),
		listing(2, ptr(20.0), 3.0, 5),
		listing(3, ptr(35.0), 5.0, 2),
		listing(4, nil, 4.0, 1),
		listing(5, ptr(20.0), 4.9, 8),
		profile(11, 1, domain.GenderFemale, 27),
		profile(12, 2, domain.GenderMale, 31),
		profile(13, 3, domain.GenderFemale, 45),
		profile(14, 300, domain.GenderFemale, 29),
	}))
}

// setupClient wires the full stack (SQLite, miniredis, interceptors) behind a
// bufconn listener and returns a client for it.
func setupClient(t *testing.T) pb.DiscoveryServiceClient {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dbase, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := dbase.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.Migrate(dbase))
	seedCandidates(t, dbase)

	mr := miniredis.RunT(t)
	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()
	cfg.Discovery.DefaultPageSize = 2
	redisCache := cache.NewRedisCache(cfg)
	t.Cleanup(func() { _ = redisCache.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil)) // discard logs in tests
	appCtx := app.New(cfg, dbase, redisCache, log, nil)

	lis := bufconn.Listen(1 << 20)
	srv := server.NewGRPCServer(log, discovery.NewRegistrar(appCtx))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return pb.NewDiscoveryServiceClient(conn)
}

func ids(items []*pb.Candidate) []string {
	out := make([]string, len(items))
	for i, c := range items {
		out[i] = c.Id
	}
	return out
}

func requireStatus(t *testing.T, err error, code codes.Code, reason string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, status.Code(err), err.Error())
	assert.Equal(t, reason, svcErr.Reason(err))
}

//
// Tests
//

// TestDiscoverCursorWalkAndStaleCursor pages listings by price with a cursor,
// then replays that cursor under a different sort.
func TestDiscoverCursorWalkAndStaleCursor(t *testing.T) {
	ctx := context.Background()
	client := setupClient(t)

	first, err := client.Discover(ctx, &pb.DiscoverRequest{EntityType: "listing", SortKey: "LOWEST_PRICE"})
	require.NoError(t, err)
	assert.Equal(t, []string{"5", "2"}, ids(first.Items), "price ties broken by freshness")
	assert.Equal(t, int64(5), first.TotalCount)
	assert.Equal(t, int32(3), first.TotalPages)
	require.True(t, first.HasMore)
	require.NotEmpty(t, first.NextCursor)

	second, err := client.Discover(ctx, &pb.DiscoverRequest{EntityType: "listing", SortKey: "LOWEST_PRICE", Cursor: first.NextCursor})
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1"}, ids(second.Items))
	assert.Equal(t, int32(2), second.Page)

	third, err := client.Discover(ctx, &pb.DiscoverRequest{EntityType: "listing", SortKey: "LOWEST_PRICE", Cursor: second.NextCursor})
	require.NoError(t, err)
	assert.Equal(t, []string{"4"}, ids(third.Items), "unpriced listing last")
	assert.False(t, third.HasMore)
	assert.Empty(t, third.NextCursor)

	_, err = client.Discover(ctx, &pb.DiscoverRequest{EntityType: "listing", SortKey: "HIGHEST_RATING", Cursor: first.NextCursor})
	requireStatus(t, err, codes.FailedPrecondition, svcErr.ReasonStaleCursor)
}

func TestDiscoverProfilesByDistance(t *testing.T) {
	ctx := context.Background()
	client := setupClient(t)

	var header metadata.MD
	resp, err := client.Discover(ctx, &pb.DiscoverRequest{
		EntityType: "profile",
		SortKey:    "DISTANCE",
		Origin:     &pb.Location{Lat: sydney.Lat, Lon: sydney.Lon},
		RadiusKm:   50,
		Filter: &pb.Filter{
			Genders: []string{"female"},
			Age:     &pb.IntRange{Min: ptr(int32(18)), Max: ptr(int32(40))},
		},
		PageSize: 10,
	}, grpc.Header(&header))
	require.NoError(t, err)

	assert.Equal(t, []string{"11"}, ids(resp.Items))
	require.NotNil(t, resp.Items[0].DistanceKm)
	assert.InDelta(t, 1.0, *resp.Items[0].DistanceKm, 0.05)
	assert.NotEmpty(t, header.Get(server.RequestIDHeader))
}

func TestDiscoverValidation(t *testing.T) {
	ctx := context.Background()
	client := setupClient(t)

	_, err := client.Discover(ctx, &pb.DiscoverRequest{EntityType: "profile", SortKey: "DISTANCE"})
	requireStatus(t, err, codes.FailedPrecondition, svcErr.ReasonMissingLocation)

	_, err = client.Discover(ctx, &pb.DiscoverRequest{
		EntityType: "profile", SortKey: "NEWEST",
		Filter: &pb.Filter{Age: &pb.IntRange{Min: ptr(int32(40)), Max: ptr(int32(30))}},
	})
	requireStatus(t, err, codes.InvalidArgument, svcErr.ReasonInvalidFilter)

	_, err = client.Discover(ctx, &pb.DiscoverRequest{EntityType: "profile", SortKey: "LOWEST_PRICE"})
	requireStatus(t, err, codes.InvalidArgument, svcErr.ReasonUnsupportedSort)

	_, err = client.Discover(ctx, &pb.DiscoverRequest{SortKey: "NEWEST"})
	requireStatus(t, err, codes.InvalidArgument, svcErr.ReasonInvalidRequest)

	_, err = client.Discover(ctx, &pb.DiscoverRequest{EntityType: "listing", SortKey: "NEWEST", Page: -1})
	requireStatus(t, err, codes.InvalidArgument, svcErr.ReasonInvalidRequest)

	// no origin but an explicit fallback is fine
	resp, err := client.Discover(ctx, &pb.DiscoverRequest{EntityType: "profile", SortKey: "DISTANCE", FallbackSort: "NEWEST", PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 4)
}

func TestRefillQueueAndResetSession(t *testing.T) {
	ctx := context.Background()
	client := setupClient(t)

	req := &pb.RefillQueueRequest{
		ViewerId:  "11",
		SessionId: "tab-1",
		Origin:    &pb.Location{Lat: sydney.Lat, Lon: sydney.Lon},
		Size:      2,
	}
	first, err := client.RefillQueue(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"12", "13"}, ids(first.Candidates), "viewer never sees themself")

	second, err := client.RefillQueue(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"14"}, ids(second.Candidates))

	_, err = client.ResetSession(ctx, &pb.ResetSessionRequest{ViewerId: "11", SessionId: "tab-1"})
	require.NoError(t, err)

	again, err := client.RefillQueue(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"12", "13"}, ids(again.Candidates))

	_, err = client.RefillQueue(ctx, &pb.RefillQueueRequest{ViewerId: "x", SessionId: "s"})
	requireStatus(t, err, codes.InvalidArgument, svcErr.ReasonInvalidRequest)
}

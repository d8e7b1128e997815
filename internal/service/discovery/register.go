package discovery

import (
	"google.golang.org/grpc"

	"github.com/oggyb/muzz-discovery/internal/app"
	pb "github.com/oggyb/muzz-discovery/internal/proto/discovery"
)

// Registrar ties the Discovery service into the gRPC server
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the Discovery service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the Discovery service implementation to the gRPC server
func (r *Registrar) Register(s grpc.ServiceRegistrar) {
	pb.RegisterDiscoveryServiceServer(s, NewDiscoveryService(r.appCtx))
}

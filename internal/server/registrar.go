package server

import "google.golang.org/grpc"

// Registrar attaches one gRPC service to a server.
type Registrar interface {
	Register(s grpc.ServiceRegistrar)
}

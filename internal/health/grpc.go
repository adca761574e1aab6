// Package health exposes the standard gRPC health service so that
// orchestrators can probe the admin service without speaking HTTP.
package health

import (
	"context"
	"log"
	"net"
	"time"

	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name reported for the admin API.
const ServiceName = "ordenes.admin.v1.Orders"

// Pinger is any dependency whose reachability decides readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	srv    *grpc.Server
	status *grpchealth.Server
	deps   []Pinger
}

func NewServer(deps ...Pinger) *Server {
	s := &Server{srv: grpc.NewServer(), status: grpchealth.NewServer(), deps: deps}
	healthpb.RegisterHealthServer(s.srv, s.status)
	return s
}

// Check pings every dependency and publishes the result.
func (s *Server) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	st := healthpb.HealthCheckResponse_SERVING
	for _, d := range s.deps {
		if err := d.Ping(ctx); err != nil {
			log.Printf("[health] dependency unavailable: %v", err)
			st = healthpb.HealthCheckResponse_NOT_SERVING
			break
		}
	}
	s.status.SetServingStatus("", st)
	s.status.SetServingStatus(ServiceName, st)
	return st
}

// Watch re-runs Check every interval until ctx is done.
func (s *Server) Watch(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		checkCtx, cancel := context.WithTimeout(ctx, interval/2)
		s.Check(checkCtx)
		cancel()
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

func (s *Server) Serve(l net.Listener) error { return s.srv.Serve(l) }

// Stop marks the service NOT_SERVING and drains in-flight probes.
func (s *Server) Stop() {
	s.status.Shutdown()
	s.srv.GracefulStop()
}

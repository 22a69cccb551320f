package grpc

import (
	"context"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"alugae-backend/internal/api/grpc/interceptor"
	"alugae-backend/internal/logger"
	"alugae-backend/internal/security"
)

// ReleaseServiceName is the health service name reported for the release
// pipeline. The empty name reports overall process health.
const ReleaseServiceName = "alugae.release"

// Probe checks one dependency of the release pipeline.
type Probe func(ctx context.Context) error

// NewServer builds the operations gRPC server: health and reflection.
func NewServer(tm security.TokenManager, hs *health.Server) *grpc.Server {
	auth := interceptor.NewAuthInterceptor(tm)
	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(interceptor.Logging(), auth.Unary()),
		grpc.StreamInterceptor(auth.Stream()),
	)
	healthpb.RegisterHealthServer(s, hs)
	reflection.Register(s)
	return s
}

// HealthReporter keeps the health server in step with the probes.
type HealthReporter struct {
	server *health.Server
	probes map[string]Probe

	mu   sync.Mutex
	last healthpb.HealthCheckResponse_ServingStatus
}

func NewHealthReporter(hs *health.Server, probes map[string]Probe) *HealthReporter {
	return &HealthReporter{server: hs, probes: probes, last: healthpb.HealthCheckResponse_UNKNOWN}
}

// Check runs every probe once and publishes the combined status.
func (r *HealthReporter) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	st := healthpb.HealthCheckResponse_SERVING
	for name, probe := range r.probes {
		if err := probe(ctx); err != nil {
			logger.Warn("Health probe failed", "probe", name, "error", err)
			st = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}

	r.mu.Lock()
	changed := st != r.last
	r.last = st
	r.mu.Unlock()
	if changed {
		logger.Info("Release pipeline health changed", "status", st.String())
	}

	r.server.SetServingStatus(ReleaseServiceName, st)
	r.server.SetServingStatus("", st)
	return st
}

// Run checks on every tick until ctx is done.
func (r *HealthReporter) Run(ctx context.Context, interval time.Duration) {
	r.Check(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, interval/2)
			r.Check(probeCtx)
			cancel()
		}
	}
}

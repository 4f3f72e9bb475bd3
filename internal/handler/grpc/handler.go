package grpc

import (
	"github.com/MKhiriev/go-cred-keeper/internal/logger"
	"github.com/MKhiriev/go-cred-keeper/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Handler is the root gRPC transport handler.
//
// The gRPC surface of the coordinator is intentionally small: it serves the
// standard health checking protocol so that orchestrators can probe the
// process, plus server reflection for debugging tooling. The domain API
// stays HTTP-only.
type Handler struct {
	// services provides access to all application business operations.
	services *service.Services

	// health is the standard gRPC health service driven by the server
	// lifecycle.
	health *health.Server

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger, and returns the initialized instance.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
}

// Register attaches the handler's services to the given gRPC server.
func (h *Handler) Register(server *grpc.Server) {
	grpc_health_v1.RegisterHealthServer(server, h.health)
	reflection.Register(server)
}

// SetServing switches the reported health status of the whole process.
func (h *Handler) SetServing(serving bool) {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus("", status)
}

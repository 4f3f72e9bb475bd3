package server

import (
	"net"

	"github.com/MKhiriev/go-cred-keeper/internal/config"
	myGRPC "github.com/MKhiriev/go-cred-keeper/internal/handler/grpc"
	"github.com/MKhiriev/go-cred-keeper/internal/logger"

	"google.golang.org/grpc"
)

type grpcServer struct {
	handler *myGRPC.Handler
	address string

	server *grpc.Server

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	server := grpc.NewServer()
	handler.Register(server)

	return &grpcServer{
		handler: handler,
		address: cfg.GRPCAddress,
		server:  server,
		logger:  logger,
	}
}

func (g *grpcServer) RunServer() {
	listener, err := net.Listen("tcp", g.address)
	if err != nil {
		g.logger.Error().Msgf("gRPC server Listen: %v", err)
		return
	}

	g.handler.SetServing(true)

	if err := g.server.Serve(listener); err != nil {
		g.logger.Error().Msgf("gRPC server Serve: %v", err)
	}
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.handler.SetServing(false)
	g.server.GracefulStop()
}

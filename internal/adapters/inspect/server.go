package inspect

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"

	"go.trai.ch/uifirst/internal/core/domain"
	"go.trai.ch/uifirst/internal/core/ports"
	"go.trai.ch/zerr"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	dirPerm    = 0o750
	socketPerm = 0o600
)

// Server answers inspector queries from a StatusSource.
type Server struct {
	source     ports.StatusSource
	tracer     ports.Tracer
	grpcServer *grpc.Server
}

// NewServer creates a server reading from source. Every RPC is traced.
func NewServer(source ports.StatusSource, tracer ports.Tracer) *Server {
	s := &Server{source: source, tracer: tracer}
	s.grpcServer = grpc.NewServer(grpc.UnaryInterceptor(s.trace))
	s.grpcServer.RegisterService(&serviceDesc, s)
	return s
}

// Serve listens on socketPath until ctx is done.
func (s *Server) Serve(ctx context.Context, socketPath string) error {
	if err := os.MkdirAll(filepath.Dir(socketPath), dirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInspectorListen.Error()), "socket", socketPath)
	}
	if err := os.Remove(socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrInspectorListen.Error()), "socket", socketPath)
	}

	lis, err := net.Listen("unix", socketPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInspectorListen.Error()), "socket", socketPath)
	}
	defer func() { _ = os.Remove(socketPath) }()

	if err := os.Chmod(socketPath, socketPerm); err != nil {
		_ = lis.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrInspectorListen.Error()), "socket", socketPath)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.grpcServer.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		s.grpcServer.GracefulStop()
		return nil
	case err := <-errCh:
		return err
	}
}

// Status implements the Status RPC.
func (s *Server) Status(_ context.Context, _ *emptypb.Empty) (*wrapperspb.BytesValue, error) {
	out, err := encodeReport(s.source.Snapshot())
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// NodeStatus implements the NodeStatus RPC.
func (s *Server) NodeStatus(_ context.Context, in *wrapperspb.UInt64Value) (*wrapperspb.StringValue, error) {
	id := domain.NodeID(in.GetValue())
	if id == domain.InvalidNodeID {
		return nil, status.Error(codes.InvalidArgument, "id must be a node number")
	}
	return wrapperspb.String(string(s.source.NodeStatus(id))), nil
}

func (s *Server) trace(
	ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler,
) (any, error) {
	ctx, span := s.tracer.Start(ctx, "inspect.rpc", ports.WithRoot())
	defer span.End()
	span.SetAttribute("rpc.method", info.FullMethod)

	resp, err := handler(ctx, req)
	if err != nil {
		span.RecordError(err)
	}
	return resp, err
}

package grpcapi

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/rs/xid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/service"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
	"github.com/BrandonDHaskell/gatewarden/internal/logging"
)

type Dependencies struct {
	Logger *slog.Logger
	Engine *service.CorrelationEngine
	Guard  *service.GuardService
}

// Server hosts the Gate gRPC service for lane cameras and QR readers.
type Server struct {
	grpc   *grpc.Server
	logger *slog.Logger
	engine *service.CorrelationEngine
	guard  *service.GuardService
}

var _ GateServer = (*Server)(nil)

func NewServer(d Dependencies) *Server {
	s := &Server{
		logger: d.Logger,
		engine: d.Engine,
		guard:  d.Guard,
	}
	s.grpc = grpc.NewServer(grpc.UnaryInterceptor(s.logged))
	RegisterGateServer(s.grpc, s)
	return s
}

// Serve blocks until the listener fails or the server stops.
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("grpc listening", "addr", lis.Addr().String())
	if err := s.grpc.Serve(lis); err != nil {
		return fmt.Errorf("serve gRPC: %w", err)
	}
	return nil
}

// Shutdown drains in-flight calls, forcing a stop when ctx ends first.
func (s *Server) Shutdown(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.grpc.Stop()
	}
}

func (s *Server) logged(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	ctx = logging.WithTraceID(ctx, xid.New().String())
	resp, err := handler(ctx, req)
	s.logger.DebugContext(ctx, "rpc",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp, err
}

func (s *Server) ReportPlate(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	f := in.GetFields()
	plate, dir, err := service.ParseCameraInput(types.CameraInput{
		Plate:     f["plate"].GetStringValue(),
		Direction: f["direction"].GetStringValue(),
	})
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	s.engine.RecordDetection(ctx, plate, dir)
	return &emptypb.Empty{}, nil
}

func (s *Server) PresentIdentity(ctx context.Context, in *wrapperspb.Int64Value) (*structpb.Struct, error) {
	if in.GetValue() <= 0 {
		return nil, status.Error(codes.InvalidArgument, service.ErrInvalidIdentityID.Error())
	}
	d, err := s.engine.OnIdentityPresented(ctx, in.GetValue())
	if err != nil {
		return nil, status.Errorf(codes.Internal, "present identity: %v", err)
	}
	return decisionToProto(d), nil
}

func (s *Server) ForceOpen(ctx context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error) {
	s.guard.ForceOpen(ctx, in.GetValue())
	return &emptypb.Empty{}, nil
}

func (s *Server) ForceClose(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	s.guard.ForceClose(ctx)
	return &emptypb.Empty{}, nil
}

func (s *Server) Reject(ctx context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error) {
	s.guard.Reject(ctx, in.GetValue())
	return &emptypb.Empty{}, nil
}

func (s *Server) BarrierStatus(_ context.Context, _ *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	return wrapperspb.Bool(s.guard.BarrierStatus().Open), nil
}

func decisionToProto(d types.Decision) *structpb.Struct {
	fields := map[string]*structpb.Value{
		"granted":     structpb.NewBoolValue(d.Granted),
		"reason":      structpb.NewStringValue(d.Reason),
		"identity_id": structpb.NewNumberValue(float64(d.IdentityID)),
		"decided_at":  structpb.NewStringValue(d.DecidedAt),
	}
	if d.Plate != "" {
		fields["plate"] = structpb.NewStringValue(d.Plate)
		fields["direction"] = structpb.NewStringValue(string(d.Direction))
	}
	if d.Event != nil {
		fields["event_id"] = structpb.NewNumberValue(float64(d.Event.ID))
	}
	return &structpb.Struct{Fields: fields}
}

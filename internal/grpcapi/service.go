package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The Gate service is described by hand; every message is a protobuf
// well-known type.

const (
	ServiceName = "gatewarden.v1.Gate"

	ReportPlateMethod     = "/" + ServiceName + "/ReportPlate"
	PresentIdentityMethod = "/" + ServiceName + "/PresentIdentity"
	ForceOpenMethod       = "/" + ServiceName + "/ForceOpen"
	ForceCloseMethod      = "/" + ServiceName + "/ForceClose"
	RejectMethod          = "/" + ServiceName + "/Reject"
	BarrierStatusMethod   = "/" + ServiceName + "/BarrierStatus"
)

// GateServer is the server API for the Gate service.
type GateServer interface {
	ReportPlate(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	PresentIdentity(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	ForceOpen(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	ForceClose(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Reject(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	BarrierStatus(context.Context, *emptypb.Empty) (*wrapperspb.BoolValue, error)
}

var GateServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GateServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ReportPlate", Handler: unary(ReportPlateMethod, GateServer.ReportPlate)},
		{MethodName: "PresentIdentity", Handler: unary(PresentIdentityMethod, GateServer.PresentIdentity)},
		{MethodName: "ForceOpen", Handler: unary(ForceOpenMethod, GateServer.ForceOpen)},
		{MethodName: "ForceClose", Handler: unary(ForceCloseMethod, GateServer.ForceClose)},
		{MethodName: "Reject", Handler: unary(RejectMethod, GateServer.Reject)},
		{MethodName: "BarrierStatus", Handler: unary(BarrierStatusMethod, GateServer.BarrierStatus)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gatewarden/v1/gate.proto",
}

func RegisterGateServer(s grpc.ServiceRegistrar, srv GateServer) {
	s.RegisterService(&GateServiceDesc, srv)
}

func unary[Req, Resp any](fullMethod string, call func(GateServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(GateServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(GateServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// GateClient calls the Gate service. Lane devices and tests use it.
type GateClient struct {
	cc grpc.ClientConnInterface
}

func NewGateClient(cc grpc.ClientConnInterface) *GateClient {
	return &GateClient{cc: cc}
}

func (c *GateClient) ReportPlate(ctx context.Context, plate, direction string, opts ...grpc.CallOption) error {
	in, err := structpb.NewStruct(map[string]any{"plate": plate, "direction": direction})
	if err != nil {
		return err
	}
	return c.cc.Invoke(ctx, ReportPlateMethod, in, new(emptypb.Empty), opts...)
}

func (c *GateClient) PresentIdentity(ctx context.Context, identityID int64, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, PresentIdentityMethod, wrapperspb.Int64(identityID), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *GateClient) ForceOpen(ctx context.Context, plate string, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, ForceOpenMethod, wrapperspb.String(plate), new(emptypb.Empty), opts...)
}

func (c *GateClient) ForceClose(ctx context.Context, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, ForceCloseMethod, new(emptypb.Empty), new(emptypb.Empty), opts...)
}

func (c *GateClient) Reject(ctx context.Context, plate string, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, RejectMethod, wrapperspb.String(plate), new(emptypb.Empty), opts...)
}

func (c *GateClient) BarrierStatus(ctx context.Context, opts ...grpc.CallOption) (bool, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, BarrierStatusMethod, new(emptypb.Empty), out, opts...); err != nil {
		return false, err
	}
	return out.GetValue(), nil
}

// Package inspect exposes the scheduler state over gRPC on a unix socket.
package inspect

import (
	"context"
	"encoding/json"

	"go.trai.ch/uifirst/internal/core/domain"
	"go.trai.ch/zerr"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const serviceName = "uifirst.inspect.v1.Inspector"

const (
	statusMethod     = "/" + serviceName + "/Status"
	nodeStatusMethod = "/" + serviceName + "/NodeStatus"
)

// inspectorServer is the server API of the inspector service. Requests and
// responses are well-known protobuf types, so no generated code is needed.
// Node ids travel as uint64 values and reports as JSON bytes, which keeps
// ids above 2^53 exact.
type inspectorServer interface {
	Status(ctx context.Context, in *emptypb.Empty) (*wrapperspb.BytesValue, error)
	NodeStatus(ctx context.Context, in *wrapperspb.UInt64Value) (*wrapperspb.StringValue, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*inspectorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Status", Handler: statusHandler},
		{MethodName: "NodeStatus", Handler: nodeStatusHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "uifirst/inspect/v1/inspect.proto",
}

func statusHandler(
	srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(inspectorServer).Status(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: statusMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(inspectorServer).Status(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func nodeStatusHandler(
	srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(wrapperspb.UInt64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(inspectorServer).NodeStatus(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: nodeStatusMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(inspectorServer).NodeStatus(ctx, req.(*wrapperspb.UInt64Value))
	}
	return interceptor(ctx, in, info, handler)
}

func encodeReport(rep domain.FrameReport) (*wrapperspb.BytesValue, error) {
	data, err := json.Marshal(rep)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode frame report")
	}
	return wrapperspb.Bytes(data), nil
}

func decodeReport(in *wrapperspb.BytesValue) (domain.FrameReport, error) {
	var rep domain.FrameReport
	if err := json.Unmarshal(in.GetValue(), &rep); err != nil {
		return rep, zerr.Wrap(err, "failed to decode frame report")
	}
	return rep, nil
}

package notifier

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "patientmonitor.v1.NotifierService"

// Full method names.
const (
	NotifyMethod            = "/" + ServiceName + "/Notify"
	UpdateStatusMethod      = "/" + ServiceName + "/UpdateStatus"
	UpdateExpressionsMethod = "/" + ServiceName + "/UpdateExpressions"
	GetReportMethod         = "/" + ServiceName + "/GetReport"
	ListAlertsMethod        = "/" + ServiceName + "/ListAlerts"
)

// ServiceServer is the server side of NotifierService.
type ServiceServer interface {
	Notify(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error)
	UpdateStatus(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error)
	UpdateExpressions(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error)
	GetReport(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	ListAlerts(ctx context.Context, req *wrapperspb.Int32Value) (*structpb.ListValue, error)
}

// ServiceDesc describes NotifierService for grpc.Server.RegisterService.
//
//nolint:gochecknoglobals // Service descriptors are package-level by gRPC convention.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Notify", NotifyMethod, newMessage[structpb.Struct], ServiceServer.Notify),
		unary("UpdateStatus", UpdateStatusMethod, newMessage[wrapperspb.StringValue], ServiceServer.UpdateStatus),
		unary("UpdateExpressions", UpdateExpressionsMethod, newMessage[structpb.Struct], ServiceServer.UpdateExpressions),
		unary("GetReport", GetReportMethod, newMessage[emptypb.Empty], ServiceServer.GetReport),
		unary("ListAlerts", ListAlertsMethod, newMessage[wrapperspb.Int32Value], ServiceServer.ListAlerts),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "patientmonitor/v1/notifier.proto",
}

// RegisterServiceServer registers srv on s.
func RegisterServiceServer(s grpc.ServiceRegistrar, srv ServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func newMessage[T any]() *T {
	return new(T)
}

// unary builds a method descriptor that decodes Req and dispatches to call
// through the server interceptor chain.
func unary[Req, Resp proto.Message](
	name, fullMethod string,
	newReq func() Req,
	call func(ServiceServer, context.Context, Req) (Resp, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(
			srv any,
			ctx context.Context,
			dec func(any) error,
			interceptor grpc.UnaryServerInterceptor,
		) (any, error) {
			in := newReq()
			if err := dec(in); err != nil {
				return nil, err
			}

			server, _ := srv.(ServiceServer)

			if interceptor == nil {
				return call(server, ctx, in)
			}

			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				r, _ := req.(Req)
				return call(server, ctx, r)
			}

			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceClient is the client side of NotifierService.
type ServiceClient interface {
	Notify(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	UpdateStatus(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
	UpdateExpressions(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	GetReport(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListAlerts(ctx context.Context, in *wrapperspb.Int32Value, opts ...grpc.CallOption) (*structpb.ListValue, error)
}

type serviceClient struct {
	cc grpc.ClientConnInterface
}

// NewServiceClient returns a NotifierService client over cc.
//
//nolint:ireturn // Mirrors generated gRPC constructors.
func NewServiceClient(cc grpc.ClientConnInterface) ServiceClient {
	return &serviceClient{cc: cc}
}

func invoke[Resp any](
	ctx context.Context,
	cc grpc.ClientConnInterface,
	method string,
	in proto.Message,
	opts []grpc.CallOption,
) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *serviceClient) Notify(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, NotifyMethod, in, opts)
}

func (c *serviceClient) UpdateStatus(
	ctx context.Context,
	in *wrapperspb.StringValue,
	opts ...grpc.CallOption,
) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, UpdateStatusMethod, in, opts)
}

func (c *serviceClient) UpdateExpressions(
	ctx context.Context,
	in *structpb.Struct,
	opts ...grpc.CallOption,
) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, UpdateExpressionsMethod, in, opts)
}

func (c *serviceClient) GetReport(
	ctx context.Context,
	in *emptypb.Empty,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, GetReportMethod, in, opts)
}

func (c *serviceClient) ListAlerts(
	ctx context.Context,
	in *wrapperspb.Int32Value,
	opts ...grpc.CallOption,
) (*structpb.ListValue, error) {
	return invoke[structpb.ListValue](ctx, c.cc, ListAlertsMethod, in, opts)
}

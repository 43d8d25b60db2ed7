// Package orgchartrpc は組織図 gRPC サービスの記述子とクライアントです。
// メッセージは google.protobuf.Struct で表現し、フィールド名は snake_case を使います。
package orgchartrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "orgchart.v1.OrgChartService"

	AddEmployeeFullMethodName = "/" + ServiceName + "/AddEmployee"
	GetOrgChartFullMethodName = "/" + ServiceName + "/GetOrgChart"
)

// OrgChartServiceServer は組織図サービスのサーバー側インターフェースです。
type OrgChartServiceServer interface {
	AddEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetOrgChart(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedOrgChartServiceServer は未実装メソッドに Unimplemented を返します。
type UnimplementedOrgChartServiceServer struct{}

func (UnimplementedOrgChartServiceServer) AddEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method AddEmployee not implemented")
}

func (UnimplementedOrgChartServiceServer) GetOrgChart(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetOrgChart not implemented")
}

// RegisterOrgChartServiceServer はサーバーに組織図サービスを登録します。
func RegisterOrgChartServiceServer(s grpc.ServiceRegistrar, srv OrgChartServiceServer) {
	s.RegisterService(&OrgChartServiceDesc, srv)
}

func addEmployeeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrgChartServiceServer).AddEmployee(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: AddEmployeeFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OrgChartServiceServer).AddEmployee(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func getOrgChartHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrgChartServiceServer).GetOrgChart(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetOrgChartFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OrgChartServiceServer).GetOrgChart(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// OrgChartServiceDesc は組織図サービスの grpc.ServiceDesc です。
var OrgChartServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OrgChartServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AddEmployee", Handler: addEmployeeHandler},
		{MethodName: "GetOrgChart", Handler: getOrgChartHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "orgchart/v1/orgchart.proto",
}

// OrgChartServiceClient は組織図サービスのクライアントです。
type OrgChartServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewOrgChartServiceClient は OrgChartServiceClient を生成します。
func NewOrgChartServiceClient(cc grpc.ClientConnInterface) *OrgChartServiceClient {
	return &OrgChartServiceClient{cc: cc}
}

// AddEmployee は社員を追加し、更新後の組織図を受け取ります。
func (c *OrgChartServiceClient) AddEmployee(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, AddEmployeeFullMethodName, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetOrgChart は現在の組織図を取得します。
func (c *OrgChartServiceClient) GetOrgChart(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if req == nil {
		req = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetOrgChartFullMethodName, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

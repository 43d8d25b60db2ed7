package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ogurasousui/simple-orgchart/internal/adapters/grpc/orgchartrpc"
	"github.com/ogurasousui/simple-orgchart/internal/core/orgchart"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// OrgChartGrpcHandler は OrgChartService の gRPC 実装です。
// 社員追加はアプリケーションコントローラー経由でワークフローを起動します。
type OrgChartGrpcHandler struct {
	controller orgchart.ApplicationController
	queries    orgchart.QueryUseCase
	orgchartrpc.UnimplementedOrgChartServiceServer
}

// NewOrgChartGrpcHandler は OrgChartGrpcHandler を生成します。
func NewOrgChartGrpcHandler(controller orgchart.ApplicationController, queries orgchart.QueryUseCase) *OrgChartGrpcHandler {
	return &OrgChartGrpcHandler{controller: controller, queries: queries}
}

// AddEmployee は社員を追加し、更新後の組織図を返します。
// manager_id が空の場合はルート社員として追加します。
func (h *OrgChartGrpcHandler) AddEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	info := orgchart.EmployeeInfo{
		FirstName: stringField(req, "first_name"),
		LastName:  stringField(req, "last_name"),
		Email:     stringField(req, "email"),
	}.Normalize()
	if err := info.Validate(); err != nil {
		return nil, toStatusError(err)
	}

	var manager *orgchart.Employee
	if managerID := strings.TrimSpace(stringField(req, "manager_id")); managerID != "" {
		found, err := h.queries.Employee(ctx, managerID)
		if errors.Is(err, orgchart.ErrEmployeeNotFound) {
			return nil, toStatusError(fmt.Errorf("%w: %s", orgchart.ErrManagerNotFound, managerID))
		}
		if err != nil {
			return nil, toStatusError(err)
		}
		manager = found
	}

	if err := h.controller.Execute(ctx, orgchart.AddNewEmployeeData{
		Info:    orgchart.StaticInfo(info),
		Manager: orgchart.StaticManager(manager),
	}); err != nil {
		return nil, toStatusError(err)
	}

	return h.orgChartResponse(ctx)
}

// GetOrgChart は現在の組織図を返します。
func (h *OrgChartGrpcHandler) GetOrgChart(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return h.orgChartResponse(ctx)
}

func (h *OrgChartGrpcHandler) orgChartResponse(ctx context.Context) (*structpb.Struct, error) {
	roots, err := h.queries.OrgChart(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}

	employees := make([]any, 0, len(roots))
	for _, root := range roots {
		employees = append(employees, toEmployeeNode(root))
	}

	resp, err := structpb.NewStruct(map[string]any{"employees": employees})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}

func toEmployeeNode(e *orgchart.Employee) map[string]any {
	subs := e.Employees()
	children := make([]any, 0, len(subs))
	for _, sub := range subs {
		children = append(children, toEmployeeNode(sub))
	}
	return map[string]any{
		"id":         e.ID,
		"first_name": e.FirstName,
		"last_name":  e.LastName,
		"email":      e.Email,
		"manager_id": e.ManagerID(),
		"employees":  children,
	}
}

func stringField(s *structpb.Struct, key string) string {
	return s.GetFields()[key].GetStringValue()
}

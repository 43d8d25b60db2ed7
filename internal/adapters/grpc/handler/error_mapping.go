package handler

import (
	"errors"

	"github.com/ogurasousui/simple-orgchart/internal/core/appcontroller"
	"github.com/ogurasousui/simple-orgchart/internal/core/orgchart"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toStatusError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, orgchart.ErrInvalidFirstName),
		errors.Is(err, orgchart.ErrInvalidLastName),
		errors.Is(err, orgchart.ErrInvalidEmail),
		errors.Is(err, orgchart.ErrInvalidID),
		errors.Is(err, orgchart.ErrManagerCycle):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, orgchart.ErrEmailAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, orgchart.ErrEmployeeNotFound), errors.Is(err, orgchart.ErrManagerNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, appcontroller.ErrCommandNotFound):
		return status.Error(codes.Unimplemented, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

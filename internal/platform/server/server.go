package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/ogurasousui/simple-orgchart/internal/adapters/grpc/handler"
	"github.com/ogurasousui/simple-orgchart/internal/adapters/grpc/orgchartrpc"
	"github.com/ogurasousui/simple-orgchart/internal/core/orgchart"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	grpcServer *grpc.Server
	logger     zerolog.Logger
}

// New は指定されたアドレスで待ち受ける gRPC サーバーを構築します。
// 各リクエストのコンテキストには logger が埋め込まれます。
func New(listenAddr string, logger zerolog.Logger, controller orgchart.ApplicationController, queries orgchart.QueryUseCase, opts ...grpc.ServerOption) *Server {
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(LoggingInterceptor(logger))}, opts...)
	srv := grpc.NewServer(opts...)
	orgchartrpc.RegisterOrgChartServiceServer(srv, handler.NewOrgChartGrpcHandler(controller, queries))

	return &Server{
		listenAddr: listenAddr,
		grpcServer: srv,
		logger:     logger,
	}
}

// LoggingInterceptor はリクエストごとにロガーをコンテキストへ渡し、結果を記録します。
func LoggingInterceptor(logger zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		reqLogger := logger.With().Str("method", info.FullMethod).Logger()
		ctx = reqLogger.WithContext(ctx)

		started := time.Now()
		resp, err := next(ctx, req)

		ev := reqLogger.Info()
		if err != nil {
			ev = reqLogger.Warn().Err(err)
		}
		ev.Str("code", status.Code(err).String()).Dur("elapsed", time.Since(started)).Msg("grpc request")
		return resp, err
	}
}

// Serve は lis 上でサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		s.grpcServer.GracefulStop()
	}()

	s.logger.Info().Str("addr", lis.Addr().String()).Msg("gRPC server listening")
	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	return nil
}

// Run は listenAddr で待ち受けを開始して Serve します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// GracefulStop はサーバーを安全に停止します。
func (s *Server) GracefulStop() {
	s.grpcServer.GracefulStop()
}

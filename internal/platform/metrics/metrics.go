package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ogurasousui/simple-orgchart/internal/core/orgchart"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 5 * time.Second

// WorkflowMetrics は社員追加ワークフローの結果を Prometheus で公開します。
type WorkflowMetrics struct {
	registry *prometheus.Registry
	added    *prometheus.CounterVec
}

// NewWorkflowMetrics は専用レジストリにコレクタを登録した WorkflowMetrics を生成します。
func NewWorkflowMetrics() (*WorkflowMetrics, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("metrics: register go collector: %w", err)
	}

	added := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orgchart",
		Name:      "employees_added_total",
		Help:      "Number of employees added to the org chart.",
	}, []string{"placement"})
	if err := reg.Register(added); err != nil {
		return nil, fmt.Errorf("metrics: register employees_added_total: %w", err)
	}

	return &WorkflowMetrics{registry: reg, added: added}, nil
}

// EmployeeAdded は EmployeeAddedEvent の購読ハンドラです。
func (m *WorkflowMetrics) EmployeeAdded(_ context.Context, ev orgchart.EmployeeAddedEvent) error {
	placement := "root"
	if ev.Employee != nil && ev.Employee.Manager() != nil {
		placement = "subordinate"
	}
	m.added.WithLabelValues(placement).Inc()
	return nil
}

// Handler は /metrics 用の http.Handler を返します。
func (m *WorkflowMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Serve は listenAddr で /metrics を公開し、ctx がキャンセルされると停止します。
func (m *WorkflowMetrics) Serve(ctx context.Context, listenAddr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("metrics server shutdown")
		}
	}()

	zerolog.Ctx(ctx).Info().Str("addr", listenAddr).Msg("metrics server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics: serve %s: %w", listenAddr, err)
	}
	return nil
}

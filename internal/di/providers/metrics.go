package providers

import (
	"github.com/samber/do/v2"

	"github.com/caterdir/caterdir-server/internal/metrics"
)

// ProvideMetrics provides the Prometheus metrics registry and middleware.
func ProvideMetrics(i do.Injector) (*metrics.Metrics, error) {
	return metrics.New(), nil
}

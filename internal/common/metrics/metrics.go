package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 指标统一挂默认 registry，/metrics 由 promhttp 暴露。
var (
	// HTTPRequests 按路由/方法/状态码统计 HTTP 请求量。
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "openfleet",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	// GRPCRequests 按 method/结果统计 gRPC 请求量。
	GRPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "openfleet",
		Name:      "grpc_requests_total",
		Help:      "Total gRPC requests by full method and result.",
	}, []string{"method", "result"})

	// FleetOps 按操作/结果统计车辆行为操作（start/stop/accelerate/charge）。
	FleetOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "openfleet",
		Name:      "fleet_ops_total",
		Help:      "Total fleet vehicle operations by op and result.",
	}, []string{"op", "result"})

	// VehicleEvents 按事件类型统计发出的 Kafka 事件。
	VehicleEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "openfleet",
		Name:      "vehicle_events_total",
		Help:      "Total vehicle state-change events published.",
	}, []string{"type", "result"})
)

// Handler 返回 /metrics 的 HTTP handler。
func Handler() http.Handler {
	return promhttp.Handler()
}

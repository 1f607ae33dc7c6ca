package fleet

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/openfleet/openfleet/internal/common/config"
	"github.com/openfleet/openfleet/internal/common/metrics"
	"github.com/openfleet/openfleet/internal/common/middleware"
	"github.com/openfleet/openfleet/internal/vehicle"
)

// 事件类型：车辆登记 / 生命周期流转 / 行为操作。
const (
	EventRegistered    = "vehicle.registered"
	EventStatusChanged = "vehicle.status_changed"
	EventStarted       = "vehicle.started"
	EventStopped       = "vehicle.stopped"
	EventAccelerated   = "vehicle.accelerated"
	EventCharged       = "vehicle.charged"
)

// Event 车辆状态变更事件（JSON 上 Kafka）。
type Event struct {
	Type      string       `json:"type"`
	VehicleID string       `json:"vehicle_id"`
	Kind      vehicle.Kind `json:"kind"`
	Status    Status       `json:"status"`
	Speed     float64      `json:"speed"`
	Charge    float64      `json:"charge,omitempty"`
	At        time.Time    `json:"at"`
}

// Publisher 事件发布接口；业务侧只依赖接口，便于测试。
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// KafkaPublisher 基于 kafka-go 的发布器。
// 写入走熔断器：Kafka 持续不可用时快速失败，不拖垮业务操作。
type KafkaPublisher struct {
	writer  *kafka.Writer
	breaker *middleware.CircuitBreaker
}

func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(cfg.Brokers...),
			Topic:    cfg.Topic,
			Balancer: &kafka.LeastBytes{},
		},
		breaker: middleware.NewCircuitBreaker("kafka-events", 5, 30*time.Second),
	}
}

// Publish 发送事件；key 为 vehicle_id，保证同一辆车的事件有序。
func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		metrics.VehicleEvents.WithLabelValues(e.Type, "error").Inc()
		return err
	}

	err = p.breaker.Call(ctx, func() error {
		return p.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(e.VehicleID),
			Value: value,
		})
	})
	if err != nil {
		metrics.VehicleEvents.WithLabelValues(e.Type, "error").Inc()
		return err
	}
	metrics.VehicleEvents.WithLabelValues(e.Type, "ok").Inc()
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

var _ sales.EventPublisher = (*OrderEventProducer)(nil)

// OrderEventProducer publica eventos de órdenes confirmadas en Kafka para
// consumidores externos (reportes, notificaciones). La publicación ocurre
// después del commit y es best effort: un fallo aquí no revierte la orden.
type OrderEventProducer struct {
	w   *kafka.Writer
	log *logger.Logger
}

// NewOrderEventProducer construye el productor. Async para no bloquear la
// respuesta HTTP; los errores de entrega se registran en Completion.
func NewOrderEventProducer(brokers []string, topic string, log *logger.Logger) *OrderEventProducer {
	p := &OrderEventProducer{log: log}
	p.w = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Warn().Err(err).Int("messages", len(messages)).Msg("entrega de eventos de orden falló")
			}
		},
	}
	return p
}

// PublishOrderCreated publica el evento de orden creada (key = order_id para
// mantener el orden por orden dentro de la partición).
func (p *OrderEventProducer) PublishOrderCreated(ctx context.Context, event dto.OrderCreatedEvent) {
	value, err := json.Marshal(event)
	if err != nil {
		p.log.Error().Err(err).Str("order_id", event.OrderID).Msg("serializar evento de orden")
		return
	}
	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
	})
	if err != nil {
		p.log.Warn().Err(err).Str("order_id", event.OrderID).Msg("publicar evento de orden")
	}
}

// Close cierra el writer drenando los mensajes pendientes.
func (p *OrderEventProducer) Close() error {
	return p.w.Close()
}

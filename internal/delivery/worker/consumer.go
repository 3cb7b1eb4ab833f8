package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"storefront/config"
	"storefront/internal/delivery"
	"storefront/internal/delivery/worker/handler"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"
)

const (
	defaultQueue    = "storefront.notifier"
	defaultPrefetch = 8
)

// amqpDelivery is the part of amqp.Delivery the consumer needs.
type amqpDelivery interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// ConsumerParams holds dependencies for the RabbitMQ consumer
type ConsumerParams struct {
	fx.In

	Lc        fx.Lifecycle
	Cfg       *config.Config
	Logger    *slog.Logger
	Processor *handler.EventProcessor
}

type rabbitConsumer struct {
	cfg       *config.RabbitMQConfig
	enabled   bool
	logger    *slog.Logger
	processor *handler.EventProcessor

	mu     sync.Mutex
	conn   *amqp.Connection
	ch     *amqp.Channel
	cancel context.CancelFunc
}

// NewConsumer creates the RabbitMQ consumer. It serves nothing unless
// pubsub.provider is "rabbitmq".
func NewConsumer(params ConsumerParams) (delivery.Delivery, error) {
	c := &rabbitConsumer{
		cfg:       params.Cfg.RabbitMQ,
		enabled:   params.Cfg.PubSub != nil && params.Cfg.PubSub.Provider == constants.PubSubProviderRabbitMQ,
		logger:    params.Logger,
		processor: params.Processor,
	}
	if c.enabled && (c.cfg == nil || c.cfg.URL == "") {
		return nil, errors.New("rabbitmq url is required for rabbitmq provider")
	}

	params.Lc.Append(fx.StopHook(c.stop))

	return c, nil
}

// Serve declares the queue, binds every notification routing key and consumes until stopped.
func (c *rabbitConsumer) Serve(ctx context.Context) error {
	if !c.enabled {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	msgs, err := c.connect(ctx, cancel)
	if err != nil {
		return err
	}

	c.logger.Info("Consuming notification events", slog.String("queue", c.queueName()))

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}

				return errors.New("rabbitmq delivery channel closed")
			}
			c.handle(ctx, d.Body, requestIDOf(&d), &d)
		}
	}
}

func (c *rabbitConsumer) connect(ctx context.Context, cancel context.CancelFunc) (<-chan amqp.Delivery, error) {
	exchange := c.cfg.Exchange
	if exchange == "" {
		exchange = "storefront.notifications"
	}
	prefix := c.cfg.RoutingKey
	if prefix == "" {
		prefix = "notification"
	}

	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "dial rabbitmq")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()

		return nil, errors.Wrap(err, "open channel")
	}

	fail := func(err error, msg string) (<-chan amqp.Delivery, error) {
		_ = ch.Close()
		_ = conn.Close()

		return nil, errors.Wrap(err, msg)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return fail(err, "declare exchange")
	}
	q, err := ch.QueueDeclare(c.queueName(), true, false, false, false, nil)
	if err != nil {
		return fail(err, "declare queue")
	}
	if err := ch.QueueBind(q.Name, prefix+".#", exchange, false, nil); err != nil {
		return fail(err, "bind queue")
	}
	if err := ch.Qos(defaultPrefetch, 0, false); err != nil {
		return fail(err, "set qos")
	}

	msgs, err := ch.ConsumeWithContext(ctx, q.Name, "", false, false, false, false, nil)
	if err != nil {
		return fail(err, "consume")
	}

	c.mu.Lock()
	c.conn, c.ch, c.cancel = conn, ch, cancel
	c.mu.Unlock()

	return msgs, nil
}

// handle acks delivered and undecodable messages, and requeues transient failures.
func (c *rabbitConsumer) handle(ctx context.Context, body []byte, requestID string, d amqpDelivery) {
	var event service.NotificationEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.logger.Error("[Worker] Dropping undecodable message", slog.Any("error", err))
		_ = d.Nack(false, false)

		return
	}

	if requestID == "" {
		requestID = event.RequestID
	}

	if err := c.processor.Process(ctx, &event, requestID); err != nil {
		_ = d.Nack(false, true)

		return
	}

	_ = d.Ack(false)
}

func (c *rabbitConsumer) queueName() string {
	if c.cfg != nil && c.cfg.Queue != "" {
		return c.cfg.Queue
	}

	return defaultQueue
}

func (c *rabbitConsumer) stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		return errors.WithStack(c.conn.Close())
	}

	return nil
}

func requestIDOf(d *amqp.Delivery) string {
	if d.CorrelationId != "" {
		return d.CorrelationId
	}
	if id, ok := d.Headers["request_id"].(string); ok {
		return id
	}

	return ""
}

package runlog

import (
	"context"
	"encoding/json"
	"time"

	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/internal/repository/unitofwork"
	"sales-intel-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// EventPublisher is the subset of the NATS publisher the recorder needs.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Logger is the producer side: it hands a finished run record to the
// in-process queue and returns immediately. A publish failure is logged and
// swallowed; it must never surface to the request that produced the record.
type Logger struct {
	pubSub *gochannel.GoChannel
	topic  string
	log    logger.ILogger
}

func NewLogger(pubSub *gochannel.GoChannel, topic string, log logger.ILogger) *Logger {
	return &Logger{
		pubSub: pubSub,
		topic:  topic,
		log:    log,
	}
}

func (l *Logger) Log(record *entity.AgentRun) {
	if record.Id == uuid.Nil {
		record.Id = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	payload, err := json.Marshal(record)
	if err != nil {
		l.log.Error("runlog", "failed to marshal run record", map[string]interface{}{
			"run_id": record.Id.String(),
			"error":  err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := l.pubSub.Publish(l.topic, msg); err != nil {
		l.log.Error("runlog", "failed to enqueue run record", map[string]interface{}{
			"run_id": record.Id.String(),
			"error":  err.Error(),
		})
	}
}

// Recorder is the consumer side: it drains the queue and persists one row per
// record. Persistence is best effort with no retry, so every message is
// acked regardless of outcome.
type Recorder struct {
	pubSub     *gochannel.GoChannel
	topic      string
	uowFactory unitofwork.RepositoryFactory
	publisher  EventPublisher
	log        logger.ILogger
}

func NewRecorder(
	pubSub *gochannel.GoChannel,
	topic string,
	uowFactory unitofwork.RepositoryFactory,
	publisher EventPublisher,
	log logger.ILogger,
) *Recorder {
	return &Recorder{
		pubSub:     pubSub,
		topic:      topic,
		uowFactory: uowFactory,
		publisher:  publisher,
		log:        log,
	}
}

func (r *Recorder) Consume(ctx context.Context) error {
	messages, err := r.pubSub.Subscribe(ctx, r.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			r.processMessage(ctx, msg)
			msg.Ack()
		}
	}()

	return nil
}

func (r *Recorder) processMessage(ctx context.Context, msg *message.Message) {
	var record entity.AgentRun
	if err := json.Unmarshal(msg.Payload, &record); err != nil {
		r.log.Error("runlog", "failed to unmarshal run record", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AgentRunRepository().Create(ctx, &record); err != nil {
		r.log.Error("runlog", "failed to persist run record", map[string]interface{}{
			"run_id": record.Id.String(),
			"error":  err.Error(),
		})
		return
	}

	if r.publisher != nil {
		event := events.NewAgentRunCompleted(record.Id, record.AgentType, record.Status, record.TotalTokens, record.Cost)
		if err := r.publisher.Publish(ctx, event); err != nil {
			r.log.Warn("runlog", "failed to publish run event", map[string]interface{}{
				"run_id": record.Id.String(),
				"error":  err.Error(),
			})
		}
	}
}

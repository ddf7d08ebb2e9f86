package service

import (
	"context"
	"encoding/json"
	"time"

	"llm-chat-be/internal/dto"
	"llm-chat-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// UsageRecorder receives every completed exchange.
type UsageRecorder func(event dto.ExchangeCompletedEvent)

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	logger     logger.ILogger
	recorders  []UsageRecorder
}

// NewConsumerService logs provider usage for each exchange.completed event and
// forwards it to the optional recorders.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	log logger.ILogger,
	recorders ...UsageRecorder,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		logger:     log,
		recorders:  recorders,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var event dto.ExchangeCompletedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("USAGE", "Failed to unmarshal exchange event", map[string]interface{}{
			"error": err.Error(),
		})
		// Malformed payloads would loop forever on Nack.
		msg.Ack()
		return
	}

	details := map[string]interface{}{
		"user_id":         event.UserId.String(),
		"conversation_id": event.ConversationId.String(),
		"provider":        event.Provider,
		"model":           event.Model,
		"latency_ms":      event.LatencyMs,
	}
	if event.Usage != nil {
		details["prompt_tokens"] = event.Usage.PromptTokens
		details["completion_tokens"] = event.Usage.CompletionTokens
		details["total_tokens"] = event.Usage.TotalTokens
	}
	cs.logger.Info("USAGE", "Exchange completed", details)

	for _, record := range cs.recorders {
		record(event)
	}
	msg.Ack()
}

// ExternalPublisher sends a serialized event off-process, e.g. to NATS JetStream.
type ExternalPublisher interface {
	Publish(ctx context.Context, subject string, payload []byte) error
}

// ForwardTo returns a recorder that republishes every event on subject.
func ForwardTo(publisher ExternalPublisher, subject string, log logger.ILogger) UsageRecorder {
	return func(event dto.ExchangeCompletedEvent) {
		payload, err := json.Marshal(event)
		if err != nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := publisher.Publish(ctx, subject, payload); err != nil {
			log.Warn("USAGE", "Failed to forward exchange event", map[string]interface{}{
				"subject": subject,
				"error":   err.Error(),
			})
		}
	}
}

package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	TopicSubmissionReceived = "gradebook.submission.received"
	TopicSubmissionGraded   = "gradebook.submission.graded"
)

// SubmissionReceived is published when a student hands in work.
type SubmissionReceived struct {
	SubmissionID uint      `json:"submission_id"`
	AssignmentID uint      `json:"assignment_id"`
	StudentID    uint      `json:"student_id"`
	AutoScored   bool      `json:"auto_scored"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// SubmissionGraded is published when a score lands on a submission,
// whether from auto-scoring or a teacher.
type SubmissionGraded struct {
	SubmissionID uint      `json:"submission_id"`
	AssignmentID uint      `json:"assignment_id"`
	StudentID    uint      `json:"student_id"`
	Score        int       `json:"score"`
	GradedBy     *uint     `json:"graded_by"`
	GradedAt     time.Time `json:"graded_at"`
}

// Publisher emits domain events to the message broker.
type Publisher interface {
	Publish(topic string, event interface{}) error
	Close() error
}

type watermillPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

// NewKafkaPublisher creates a publisher backed by Kafka brokers.
func NewKafkaPublisher(brokers []string, logger *slog.Logger) (Publisher, error) {
	pub, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}

	return &watermillPublisher{publisher: pub, logger: logger}, nil
}

// NewGoChannelPublisher creates an in-process publisher, used when no
// broker is configured and in tests.
func NewGoChannelPublisher(logger *slog.Logger) Publisher {
	pub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewSlogLogger(logger),
	)
	return &watermillPublisher{publisher: pub, logger: logger}
}

func (p *watermillPublisher) Publish(topic string, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	p.logger.Debug("event published", "topic", topic, "message_id", msg.UUID)
	return nil
}

func (p *watermillPublisher) Close() error {
	return p.publisher.Close()
}

package data_engine

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// EventType represents different types of events that can be produced
type EventType string

const (
	// Enhancement pipeline events
	EnhancementStartedEvent   EventType = "enhancement_started"
	EnhancementCompletedEvent EventType = "enhancement_completed"
	AnalyticsComputedEvent    EventType = "analytics_computed"

	// System events
	SystemEventType EventType = "system"
	ErrorEvent      EventType = "error"
	WarningEvent    EventType = "warning"
	InfoEvent       EventType = "info"
)

// Event represents a generic event to be sent to Kafka
type Event struct {
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data"`
	SessionID string                 `json:"session_id,omitempty"`
}

// EventProducer handles producing events to Kafka
type EventProducer struct {
	writer      *kafka.Writer
	isConnected bool
	config      EventProducerConfig
}

// EventProducerConfig contains configuration for the event producer
type EventProducerConfig struct {
	KafkaBrokers []string
	Topic        string
	ClientID     string
	BatchSize    int
	BatchTimeout time.Duration
	Async        bool
}

// NewEventProducer creates a new event producer
func NewEventProducer(config EventProducerConfig) *EventProducer {
	if len(config.KafkaBrokers) == 0 {
		config.KafkaBrokers = []string{"localhost:9092"}
	}

	if config.Topic == "" {
		config.Topic = "threatscape-events"
	}

	if config.ClientID == "" {
		config.ClientID = "threatscape"
	}

	if config.BatchSize == 0 {
		config.BatchSize = 100
	}

	if config.BatchTimeout == 0 {
		config.BatchTimeout = 1 * time.Second
	}

	return &EventProducer{
		config: config,
	}
}

// Connect establishes a connection to Kafka
func (p *EventProducer) Connect(ctx context.Context) error {
	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(p.config.KafkaBrokers...),
		Topic:        p.config.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    p.config.BatchSize,
		BatchTimeout: p.config.BatchTimeout,
		Async:        p.config.Async,
		RequiredAcks: kafka.RequireOne,
	}

	// Test connection by sending a ping message
	pingEvent := Event{
		Type:      SystemEventType,
		Timestamp: time.Now(),
		Source:    "event_producer",
		Data: map[string]interface{}{
			"message": "ping",
		},
	}

	err := p.ProduceEvent(ctx, pingEvent)
	if err != nil {
		return fmt.Errorf("failed to connect to Kafka: %w", err)
	}

	p.isConnected = true
	return nil
}

// ProduceEvent sends an event to Kafka
func (p *EventProducer) ProduceEvent(ctx context.Context, event Event) error {
	if p.writer == nil {
		return fmt.Errorf("event producer not connected")
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(string(event.Type)),
		Value: value,
		Time:  event.Timestamp,
		Headers: []kafka.Header{
			{Key: "source", Value: []byte(event.Source)},
			{Key: "type", Value: []byte(event.Type)},
		},
	}

	err = p.writer.WriteMessages(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	return nil
}

// ProduceSystemEvent produces a system event
func (p *EventProducer) ProduceSystemEvent(ctx context.Context, eventType EventType, data map[string]interface{}) error {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    "system",
		Data:      data,
	}

	return p.ProduceEvent(ctx, event)
}

// Close closes the Kafka connection
func (p *EventProducer) Close() error {
	if p.writer != nil {
		err := p.writer.Close()
		p.writer = nil
		p.isConnected = false
		return err
	}

	return nil
}

// IsConnected returns whether the producer is connected to Kafka
func (p *EventProducer) IsConnected() bool {
	return p.isConnected
}

package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

const (
	EventMatchStart = "match.start"
	EventMove       = "move"
	EventMatchEnd   = "match.end"
)

// Event is the JSON body of every message on the analytics topic.
type Event struct {
	Event   string         `json:"event"`
	MatchID string         `json:"matchId"`
	TS      time.Time      `json:"ts"`
	Data    map[string]any `json:"data,omitempty"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher sends match telemetry to Kafka. A Publisher without brokers
// (or a nil one) drops every event.
type Publisher struct {
	writer  messageWriter
	log     zerolog.Logger
	timeout time.Duration
}

func NewPublisher(brokers []string, topic string, log zerolog.Logger) *Publisher {
	if len(brokers) == 0 {
		log.Info().Msg("no kafka brokers configured, analytics disabled")
		return &Publisher{log: log}
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Warn().Err(err).Int("messages", len(messages)).Msg("kafka emit failed")
			}
		},
	}
	log.Info().Strs("brokers", brokers).Str("topic", topic).Msg("analytics enabled")
	return &Publisher{writer: w, log: log, timeout: 2 * time.Second}
}

func (p *Publisher) Enabled() bool {
	return p != nil && p.writer != nil
}

// Emit never fails the caller: analytics problems are logged and dropped.
func (p *Publisher) Emit(event, matchID string, data map[string]any) {
	if !p.Enabled() {
		return
	}
	if err := p.emit(event, matchID, data); err != nil {
		p.log.Warn().Err(err).Str("event", event).Str("match", matchID).Msg("analytics event dropped")
	}
}

func (p *Publisher) emit(event, matchID string, data map[string]any) error {
	body, err := json.Marshal(Event{
		Event:   event,
		MatchID: matchID,
		TS:      time.Now().UTC(),
		Data:    data,
	})
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(matchID), Value: body}); err != nil {
		return errors.Wrap(err, "write message")
	}
	return nil
}

func (p *Publisher) Close() error {
	if !p.Enabled() {
		return nil
	}
	return p.writer.Close()
}

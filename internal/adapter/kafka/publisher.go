package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/wildfire-explorer/internal/config"
	"github.com/couchcryptid/wildfire-explorer/internal/domain"
	"github.com/couchcryptid/wildfire-explorer/internal/observability"
	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
)

// View names carried in the "view" message header.
const (
	ViewYearLabel = "year_label"
	ViewMap       = "map"
	ViewBarChart  = "bar_chart"
	ViewHeatmap   = "heatmap"
)

// ViewUpdate is the JSON value of every published message.
type ViewUpdate struct {
	Session     string            `json:"session"`
	Seq         uint64            `json:"seq"`
	View        string            `json:"view"`
	Year        int               `json:"year"`
	Cause       string            `json:"cause,omitempty"`
	Incidents   []domain.Incident `json:"incidents,omitempty"`
	Counts      []domain.Count    `json:"counts,omitempty"`
	PublishedAt time.Time         `json:"published_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher is an explorer renderer that mirrors every view refresh onto a
// Kafka topic. Writes are asynchronous so a slow broker never stalls the engine.
type Publisher struct {
	writer  messageWriter
	session string
	seq     atomic.Uint64
	year    atomic.Int64
	clock   clockwork.Clock
	logger  *slog.Logger
}

// NewPublisher creates an async producer for the configured view topic.
// All messages are keyed by session so they land on one partition in order.
func NewPublisher(cfg *config.Config, session string, metrics *observability.Metrics, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaViewTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
		Async:        true,
		Completion: func(msgs []kafkago.Message, err error) {
			if err == nil {
				return
			}
			metrics.PublishErrors.Add(float64(len(msgs)))
			logger.Error("publish view updates", "messages", len(msgs), "error", err)
		},
	}
	return newPublisher(w, session, clockwork.NewRealClock(), logger)
}

func newPublisher(w messageWriter, session string, clock clockwork.Clock, logger *slog.Logger) *Publisher {
	return &Publisher{
		writer:  w,
		session: session,
		clock:   clock,
		logger:  logger,
	}
}

// RefreshYearLabel implements explorer.Renderer.
func (p *Publisher) RefreshYearLabel(year int) {
	p.year.Store(int64(year))
	p.publish(ViewUpdate{View: ViewYearLabel, Year: year})
}

// RefreshMap implements explorer.Renderer.
func (p *Publisher) RefreshMap(incidents []domain.Incident) {
	// The year label is always refreshed first.
	p.publish(ViewUpdate{View: ViewMap, Year: int(p.year.Load()), Incidents: incidents})
}

// RefreshBarChart implements explorer.Renderer.
func (p *Publisher) RefreshBarChart(causeCounts []domain.Count, year int) {
	p.publish(ViewUpdate{View: ViewBarChart, Year: year, Counts: causeCounts})
}

// RefreshHeatmap implements explorer.Renderer.
func (p *Publisher) RefreshHeatmap(stateCounts []domain.Count, cause string, year int) {
	p.publish(ViewUpdate{View: ViewHeatmap, Year: year, Cause: cause, Counts: stateCounts})
}

// Close flushes pending messages and closes the producer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func (p *Publisher) publish(u ViewUpdate) {
	u.Session = p.session
	u.Seq = p.seq.Add(1)
	u.PublishedAt = p.clock.Now().UTC()

	msg, err := serializeToMessage(u)
	if err != nil {
		p.logger.Error("serialize view update", "view", u.View, "error", err)
		return
	}
	// Async writer: errors surface through the Completion callback.
	if err := p.writer.WriteMessages(context.Background(), msg); err != nil {
		p.logger.Error("enqueue view update", "view", u.View, "error", err)
	}
}

// serializeToMessage marshals a ViewUpdate into a Kafka message.
func serializeToMessage(u ViewUpdate) (kafkago.Message, error) {
	data, err := json.Marshal(u)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize view update: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(u.Session),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "view", Value: []byte(u.View)},
			{Key: "seq", Value: []byte(strconv.FormatUint(u.Seq, 10))},
		},
	}, nil
}

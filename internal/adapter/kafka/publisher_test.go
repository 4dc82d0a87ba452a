package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/couchcryptid/wildfire-explorer/internal/domain"
	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func decode(t *testing.T, msg kafkago.Message) ViewUpdate {
	t.Helper()
	var u ViewUpdate
	require.NoError(t, json.Unmarshal(msg.Value, &u))
	return u
}

var testTime = time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)

func newTestPublisher(w messageWriter) *Publisher {
	return newPublisher(w, "session-1", clockwork.NewFakeClockAt(testTime), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSerializeToMessage(t *testing.T) {
	u := ViewUpdate{
		Session:     "session-1",
		Seq:         7,
		View:        ViewBarChart,
		Year:        2005,
		Counts:      []domain.Count{{Key: "Lightning", Count: 3}},
		PublishedAt: testTime,
	}

	msg, err := serializeToMessage(u)
	require.NoError(t, err)

	assert.Equal(t, []byte("session-1"), msg.Key)
	assert.Contains(t, string(msg.Value), `"view":"bar_chart"`)
	assert.Contains(t, string(msg.Value), `"counts":[{"key":"Lightning","count":3}]`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "view", msg.Headers[0].Key)
	assert.Equal(t, []byte("bar_chart"), msg.Headers[0].Value)
	assert.Equal(t, "seq", msg.Headers[1].Key)
	assert.Equal(t, []byte("7"), msg.Headers[1].Value)
}

func TestPublisher_PublishesInRefreshOrder(t *testing.T) {
	w := &fakeWriter{}
	p := newTestPublisher(w)

	incidents := []domain.Incident{{Year: 2001, State: "CA", Cause: "Lightning", Size: 4}}
	counts := []domain.Count{{Key: "Lightning", Count: 1}}

	p.RefreshYearLabel(2001)
	p.RefreshMap(incidents)
	p.RefreshBarChart(counts, 2001)
	p.RefreshHeatmap([]domain.Count{{Key: "CA", Count: 1}}, "Lightning", 2001)

	require.Len(t, w.msgs, 4)
	var views []string
	for i, msg := range w.msgs {
		u := decode(t, msg)
		views = append(views, u.View)
		assert.Equal(t, uint64(i+1), u.Seq)
		assert.Equal(t, 2001, u.Year)
		assert.Equal(t, "session-1", u.Session)
		assert.True(t, testTime.Equal(u.PublishedAt))
	}
	assert.Equal(t, []string{ViewYearLabel, ViewMap, ViewBarChart, ViewHeatmap}, views)

	mapUpdate := decode(t, w.msgs[1])
	assert.Equal(t, incidents, mapUpdate.Incidents)

	heat := decode(t, w.msgs[3])
	assert.Equal(t, "Lightning", heat.Cause)
}

func TestPublisher_EmptyMapKeepsYear(t *testing.T) {
	w := &fakeWriter{}
	p := newTestPublisher(w)

	p.RefreshYearLabel(1999)
	p.RefreshMap(nil)

	require.Len(t, w.msgs, 2)
	u := decode(t, w.msgs[1])
	assert.Equal(t, 1999, u.Year)
	assert.Empty(t, u.Incidents)
}

func TestPublisher_WriteErrorDoesNotPanic(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := newTestPublisher(w)

	assert.NotPanics(t, func() { p.RefreshYearLabel(2000) })
	assert.Empty(t, w.msgs)
}

func TestPublisher_Close(t *testing.T) {
	w := &fakeWriter{}
	p := newTestPublisher(w)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

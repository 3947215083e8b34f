package pipeline_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/ghcn-daily-etl/internal/domain"
	"github.com/couchcryptid/ghcn-daily-etl/internal/observability"
	"github.com/couchcryptid/ghcn-daily-etl/internal/pipeline"
)

// --- mocks ---

type mockExtractor struct {
	batches [][]domain.RawEvent
	index   atomic.Int64
	err     error
}

func (m *mockExtractor) ExtractBatch(ctx context.Context, _ int) ([]domain.RawEvent, error) {
	if m.err != nil {
		return nil, m.err
	}
	i := int(m.index.Add(1) - 1)
	if i >= len(m.batches) {
		// block until context cancelled to simulate waiting for messages
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.batches[i], nil
}

type mockTransformer struct {
	err error
}

func (m *mockTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.StationMonth, error) {
	if m.err != nil {
		return domain.StationMonth{}, m.err
	}
	return domain.StationMonth{ID: string(raw.Key)}, nil
}

type mockLoader struct {
	mu     sync.Mutex
	loaded []domain.StationMonth
	err    error
}

func (m *mockLoader) LoadBatch(_ context.Context, records []domain.StationMonth) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.loaded = append(m.loaded, records...)
	return nil
}

func (m *mockLoader) ids() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.loaded))
	for _, r := range m.loaded {
		out = append(out, r.ID)
	}
	return out
}

func runFor(t *testing.T, p *pipeline.Pipeline, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	require.NoError(t, p.Run(ctx))
}

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	ext := &mockExtractor{batches: [][]domain.RawEvent{{
		{Key: []byte("a")}, {Key: []byte("b")}, {Key: []byte("c")},
	}}}
	ldr := &mockLoader{}
	metrics := observability.NewMetricsForTesting()

	p := pipeline.New(ext, &mockTransformer{}, ldr, slog.Default(), metrics, 50, 3)
	runFor(t, p, 300*time.Millisecond)

	// concurrent transforms must not reorder the batch
	assert.Equal(t, []string{"a", "b", "c"}, ldr.ids())
	assert.NoError(t, p.CheckReadiness(context.Background()))
	assert.InDelta(t, 3, testutil.ToFloat64(metrics.MessagesConsumed), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(metrics.MessagesProduced), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(metrics.DecodeWorkers), 0)
}

func TestPipeline_Run_ContextCancellation(t *testing.T) {
	ldr := &mockLoader{}
	p := pipeline.New(&mockExtractor{}, &mockTransformer{}, ldr, slog.Default(), observability.NewMetricsForTesting(), 50, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, p.Run(ctx))
	assert.Empty(t, ldr.loaded)
}

func TestPipeline_Run_TransformError(t *testing.T) {
	var committed atomic.Bool
	raw := domain.RawEvent{Key: []byte("bad"), Commit: func(context.Context) error {
		committed.Store(true)
		return nil
	}}

	ext := &mockExtractor{batches: [][]domain.RawEvent{{raw}}}
	tfm := &mockTransformer{err: &domain.FieldError{Field: domain.FieldElement, Day: -1, Raw: "XXXX", Err: domain.ErrUnknownCode}}
	ldr := &mockLoader{}
	metrics := observability.NewMetricsForTesting()

	p := pipeline.New(ext, tfm, ldr, slog.Default(), metrics, 50, 2)
	runFor(t, p, 300*time.Millisecond)

	assert.Empty(t, ldr.loaded)
	assert.Error(t, p.CheckReadiness(context.Background()))
	assert.True(t, committed.Load(), "poison messages are committed so they are not redelivered")
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.TransformErrors), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.DecodeErrors.WithLabelValues("unknown_code")), 0)
}

func TestPipeline_Run_FilteredIsNotAnError(t *testing.T) {
	ext := &mockExtractor{batches: [][]domain.RawEvent{{{Key: []byte("x")}}}}
	tfm := &mockTransformer{err: pipeline.ErrFiltered}
	metrics := observability.NewMetricsForTesting()

	p := pipeline.New(ext, tfm, &mockLoader{}, slog.Default(), metrics, 50, 1)
	runFor(t, p, 300*time.Millisecond)

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.RecordsFiltered), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.TransformErrors), 0)
}

func TestPipeline_Run_CommitsAfterLoad(t *testing.T) {
	var committed atomic.Bool
	raw := domain.RawEvent{
		Key:   []byte("evt-5"),
		Topic: "raw-ghcn-daily",
		Commit: func(context.Context) error {
			committed.Store(true)
			return nil
		},
	}

	p := pipeline.New(&mockExtractor{batches: [][]domain.RawEvent{{raw}}}, &mockTransformer{}, &mockLoader{}, slog.Default(), observability.NewMetricsForTesting(), 50, 1)
	runFor(t, p, 300*time.Millisecond)

	assert.True(t, committed.Load())
}

func TestPipeline_Run_LoadErrorDoesNotCommit(t *testing.T) {
	var commits atomic.Int32
	raw := domain.RawEvent{Key: []byte("evt-6"), Commit: func(context.Context) error {
		commits.Add(1)
		return nil
	}}

	ldr := &mockLoader{err: errors.New("broker down")}
	p := pipeline.New(&mockExtractor{batches: [][]domain.RawEvent{{raw}}}, &mockTransformer{}, ldr, slog.Default(), observability.NewMetricsForTesting(), 50, 1)
	runFor(t, p, 300*time.Millisecond)

	assert.Zero(t, commits.Load())
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_ExtractErrorBacksOff(t *testing.T) {
	ext := &mockExtractor{err: errors.New("no brokers")}
	p := pipeline.New(ext, &mockTransformer{}, &mockLoader{}, slog.Default(), observability.NewMetricsForTesting(), 50, 1)

	start := time.Now()
	runFor(t, p, 300*time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), 250*time.Millisecond)
}

func TestGHCNTransformer_EndToEnd(t *testing.T) {
	line := encodeLine(t, domain.Header{StationID: "USW00094728", Year: 2021, Month: 6, Element: domain.MaxTemp},
		domain.Day{DayOfMonth: 1, Value: domain.PresentValue(289), Source: domain.SourceDSI9618},
	)

	ext := &mockExtractor{batches: [][]domain.RawEvent{{
		{Key: []byte("k1"), Value: line},
		{Key: []byte("k2"), Value: []byte("garbage")},
	}}}
	ldr := &mockLoader{}
	metrics := observability.NewMetricsForTesting()

	p := pipeline.New(ext, pipeline.NewTransformer(nil, slog.Default()), ldr, slog.Default(), metrics, 50, 4)
	runFor(t, p, 300*time.Millisecond)

	assert.Equal(t, []string{"USW00094728-2021-06-TMAX"}, ldr.ids())
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.DecodeErrors.WithLabelValues("out_of_bounds")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.DaysDecoded.WithLabelValues("TMAX", "present")), 0)
	assert.InDelta(t, 29, testutil.ToFloat64(metrics.DaysDecoded.WithLabelValues("TMAX", "missing")), 0)
}
